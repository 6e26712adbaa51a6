// internal/domain/settings/repository_port.go
package settings

import (
	"context"
	"errors"
)

// KeyBankDetails is the singleton row holding the bank-transfer details
// shown at checkout (JSON, stored and served verbatim).
const KeyBankDetails = "bank_details"

var ErrNotFound = errors.New("settings: not found")

// Repository reads store settings from store_settings(key, value).
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
}
