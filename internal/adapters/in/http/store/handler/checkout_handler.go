// internal/adapters/in/http/store/handler/checkout_handler.go
package storeHandler

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	usecase "storefront/internal/application/usecase"
	"storefront/internal/adapters/in/http/middleware"
)

const maxReceiptBytes = 10 << 20 // 10MB

// CheckoutHandler serves POST /store/me/orders.
//
// Request is multipart/form-data with an optional "receipt" file part; a
// plain POST without a body submits the order with no receipt (bank
// transfer, receipt uploaded later from the orders page).
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	uid, email, ok := middleware.CurrentUserUIDAndEmail(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	file, err := readReceiptPart(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid receipt upload")
		return
	}

	o, err := h.uc.Submit(r.Context(), uid, file, email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, toOrderJSON(o, nil))
	case errors.Is(err, usecase.ErrValidation):
		writeErr(w, http.StatusBadRequest, "cart is empty or request invalid")
	case errors.Is(err, usecase.ErrSubmitInFlight):
		writeErr(w, http.StatusConflict, "order submission already in progress")
	case errors.Is(err, usecase.ErrUpload):
		log.Printf("[store_checkout_handler] upload failed: %v", err)
		writeErr(w, http.StatusBadGateway, "receipt upload failed")
	default:
		log.Printf("[store_checkout_handler] submit failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "order submission failed")
	}
}

// readReceiptPart returns nil when the request carries no receipt file.
func readReceiptPart(r *http.Request) (*usecase.ReceiptFile, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return nil, nil
	}
	if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
		return nil, err
	}

	f, hdr, err := r.FormFile("receipt")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return receiptFromPart(f, hdr)
}

func receiptFromPart(f multipart.File, hdr *multipart.FileHeader) (*usecase.ReceiptFile, error) {
	data, err := io.ReadAll(io.LimitReader(f, maxReceiptBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || len(data) > maxReceiptBytes {
		return nil, errors.New("receipt size out of range")
	}

	ext := strings.TrimPrefix(filepath.Ext(hdr.Filename), ".")
	contentType := hdr.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &usecase.ReceiptFile{
		Data:        data,
		Ext:         ext,
		ContentType: contentType,
	}, nil
}
