// internal/application/usecase/errors.go
package usecase

import "errors"

// Error taxonomy shared by the storefront usecases. Handlers map these to
// HTTP status codes with errors.Is.
var (
	// ErrValidation: a precondition failed before any external call was made.
	ErrValidation = errors.New("usecase: validation failed")

	// ErrUpload: the receipt blob upload failed; nothing else was touched.
	ErrUpload = errors.New("usecase: receipt upload failed")

	// ErrPersistence: a database write failed partway through submission.
	ErrPersistence = errors.New("usecase: persistence failed")

	// ErrSubmitInFlight: the user already has a submission in progress.
	ErrSubmitInFlight = errors.New("usecase: submission already in flight")
)
