// internal/application/usecase/settings_usecase.go
package usecase

import (
	"context"

	settingsdom "storefront/internal/domain/settings"
)

// SettingsUsecase exposes the read-only store settings to handlers.
type SettingsUsecase struct {
	repo settingsdom.Repository
}

func NewSettingsUsecase(repo settingsdom.Repository) *SettingsUsecase {
	return &SettingsUsecase{repo: repo}
}

// BankDetails returns the bank-transfer details JSON verbatim; absent
// configuration surfaces as settings.ErrNotFound.
func (uc *SettingsUsecase) BankDetails(ctx context.Context) (string, error) {
	return uc.repo.Get(ctx, settingsdom.KeyBankDetails)
}
