// internal/domain/receipt/port.go
package receipt

import (
	"context"
	"time"
)

// ViewURLValidity is the fixed lifetime of a signed receipt view URL.
const ViewURLValidity = 15 * time.Minute

// Store is the blob-storage port for payment receipts.
//
// Object paths are opaque to callers: Upload returns the path it stored
// under, and only that exact path is later passed to IssueViewURL.
type Store interface {
	// Upload writes data under objectPath and returns the stored path.
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)

	// IssueViewURL returns a short-lived signed GET URL for objectPath.
	IssueViewURL(ctx context.Context, objectPath string, expiresIn time.Duration) (string, error)
}
