// internal/adapters/in/http/store/handler/order_handler.go
package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "storefront/internal/application/usecase"
	orderdom "storefront/internal/domain/order"
	"storefront/internal/adapters/in/http/middleware"
)

// OrderHandler serves the buyer order endpoints:
//
//	GET  /store/me/orders                    own orders with items, newest first
//	POST /store/me/orders/{id}/receipt       upload a payment receipt
//	GET  /store/me/orders/{id}/receipt-url   signed view URL for the own receipt
type OrderHandler struct {
	orders   *usecase.OrderUsecase
	receipts *usecase.ReceiptUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase, receipts *usecase.ReceiptUsecase) http.Handler {
	return &OrderHandler{orders: orders, receipts: receipts}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.orders == nil || h.receipts == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && hasSuffixAny(path, "/orders"):
		h.handleList(w, r, uid)
	case r.Method == http.MethodPost && hasSuffixAny(path, "/receipt"):
		h.handleUploadReceipt(w, r, uid, orderIDFromPath(path, "/receipt"))
	case r.Method == http.MethodGet && hasSuffixAny(path, "/receipt-url"):
		h.handleReceiptURL(w, r, uid, orderIDFromPath(path, "/receipt-url"))
	default:
		methodNotAllowed(w)
	}
}

func (h *OrderHandler) handleList(w http.ResponseWriter, r *http.Request, uid string) {
	list, err := h.orders.ListByUser(r.Context(), uid)
	if err != nil {
		log.Printf("[store_order_handler] list failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, toOrderListJSON(list))
}

func (h *OrderHandler) handleUploadReceipt(w http.ResponseWriter, r *http.Request, uid, orderID string) {
	if orderID == "" {
		writeErr(w, http.StatusBadRequest, "missing order id")
		return
	}

	file, err := readReceiptPart(r)
	if err != nil || file == nil {
		writeErr(w, http.StatusBadRequest, "receipt file is required")
		return
	}

	o, err := h.receipts.Upload(r.Context(), uid, orderID, *file)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, toOrderJSON(o, nil))
	case errors.Is(err, orderdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, "order not found")
	case errors.Is(err, usecase.ErrReceiptInvalidArgument):
		writeErr(w, http.StatusBadRequest, "invalid receipt upload")
	case errors.Is(err, usecase.ErrUpload):
		log.Printf("[store_order_handler] receipt upload failed: %v", err)
		writeErr(w, http.StatusBadGateway, "receipt upload failed")
	default:
		log.Printf("[store_order_handler] receipt update failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to attach receipt")
	}
}

func (h *OrderHandler) handleReceiptURL(w http.ResponseWriter, r *http.Request, uid, orderID string) {
	if orderID == "" {
		writeErr(w, http.StatusBadRequest, "missing order id")
		return
	}

	ow, err := h.orders.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, orderdom.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("[store_order_handler] get failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	// owners only
	if ow.Order.UserID != uid {
		writeErr(w, http.StatusNotFound, "order not found")
		return
	}
	if ow.Order.ReceiptPath == nil {
		writeErr(w, http.StatusNotFound, "no receipt on order")
		return
	}

	url, err := h.receipts.ViewURL(r.Context(), *ow.Order.ReceiptPath)
	if err != nil {
		log.Printf("[store_order_handler] sign failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to issue receipt url")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// orderIDFromPath extracts {id} from ".../orders/{id}<suffix>".
func orderIDFromPath(path, suffix string) string {
	p := strings.TrimSuffix(path, suffix)
	i := strings.LastIndex(p, "/orders/")
	if i < 0 {
		return ""
	}
	id := strings.Trim(p[i+len("/orders/"):], "/")
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
