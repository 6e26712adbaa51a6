// internal/adapters/in/http/store/handler/settings_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	usecase "storefront/internal/application/usecase"
	settingsdom "storefront/internal/domain/settings"
)

// SettingsHandler serves GET /store/bank-details: the bank-transfer details
// shown on the checkout page, returned verbatim as stored.
type SettingsHandler struct {
	uc *usecase.SettingsUsecase
}

func NewSettingsHandler(uc *usecase.SettingsUsecase) http.Handler {
	return &SettingsHandler{uc: uc}
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "settings handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	value, err := h.uc.BankDetails(r.Context())
	if err != nil {
		if errors.Is(err, settingsdom.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "bank details not configured")
			return
		}
		log.Printf("[store_settings_handler] get failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to load bank details")
		return
	}

	// value is stored as JSON; pass it through untouched
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]json.RawMessage{"bankDetails": json.RawMessage(value)})
}
