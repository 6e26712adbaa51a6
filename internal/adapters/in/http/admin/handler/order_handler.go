// internal/adapters/in/http/admin/handler/order_handler.go
package adminHandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "storefront/internal/application/usecase"
	orderdom "storefront/internal/domain/order"
)

// OrderHandler serves the operator order endpoints:
//
//	GET /admin/orders                        all orders with items, newest first
//	PUT /admin/orders/{id}/status            validated transition; force=true overrides
//	PUT /admin/orders/{id}/notes             replace operator notes
//	GET /admin/orders/{id}/receipt-url       signed view URL for the receipt
//
// The admin claim gate sits in front of this handler (middleware).
type OrderHandler struct {
	orders   *usecase.OrderUsecase
	receipts *usecase.ReceiptUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase, receipts *usecase.ReceiptUsecase) http.Handler {
	return &OrderHandler{orders: orders, receipts: receipts}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.orders == nil || h.receipts == nil {
		writeErr(w, http.StatusInternalServerError, "admin order handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/orders"):
		h.handleList(w, r)
	case r.Method == http.MethodPut && strings.HasSuffix(path, "/status"):
		h.handleSetStatus(w, r, orderIDFromPath(path, "/status"))
	case r.Method == http.MethodPut && strings.HasSuffix(path, "/notes"):
		h.handleSetNotes(w, r, orderIDFromPath(path, "/notes"))
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/receipt-url"):
		h.handleReceiptURL(w, r, orderIDFromPath(path, "/receipt-url"))
	default:
		methodNotAllowed(w)
	}
}

func (h *OrderHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.ListAll(r.Context())
	if err != nil {
		log.Printf("[admin_order_handler] list failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, toOrderListJSON(list))
}

type setStatusRequest struct {
	Status string `json:"status"`
	// Force bypasses the lifecycle validation (operator override).
	Force bool `json:"force,omitempty"`
}

func (h *OrderHandler) handleSetStatus(w http.ResponseWriter, r *http.Request, orderID string) {
	if orderID == "" {
		writeErr(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req setStatusRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	st, err := orderdom.ParseStatus(req.Status)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "unknown status value")
		return
	}

	var o orderdom.Order
	if req.Force {
		o, err = h.orders.ForceStatus(r.Context(), orderID, st)
	} else {
		o, err = h.orders.SetStatus(r.Context(), orderID, st)
	}
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, toOrderJSON(o))
	case errors.Is(err, orderdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, "order not found")
	case errors.Is(err, orderdom.ErrInvalidTransition):
		writeErr(w, http.StatusConflict, "status transition not allowed")
	default:
		log.Printf("[admin_order_handler] set status failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to update status")
	}
}

type setNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *OrderHandler) handleSetNotes(w http.ResponseWriter, r *http.Request, orderID string) {
	if orderID == "" {
		writeErr(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req setNotesRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	o, err := h.orders.SetAdminNotes(r.Context(), orderID, req.Notes)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, toOrderJSON(o))
	case errors.Is(err, orderdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, "order not found")
	default:
		log.Printf("[admin_order_handler] set notes failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to update notes")
	}
}

func (h *OrderHandler) handleReceiptURL(w http.ResponseWriter, r *http.Request, orderID string) {
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
		log.Printf("[admin_order_handler] get failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if ow.Order.ReceiptPath == nil {
		writeErr(w, http.StatusNotFound, "no receipt on order")
		return
	}

	url, err := h.receipts.ViewURL(r.Context(), *ow.Order.ReceiptPath)
	if err != nil {
		log.Printf("[admin_order_handler] sign failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to issue receipt url")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// ============================================================
// Local helpers (package-scoped, mirrors the store handler set)
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

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

func toOrderJSON(o orderdom.Order) map[string]any {
	out := map[string]any{
		"id":          o.ID,
		"userId":      o.UserID,
		"totalAmount": o.TotalAmount,
		"status":      string(o.Status),
		"createdAt":   o.CreatedAt.UTC(),
	}
	if o.ReceiptPath != nil {
		out["receiptPath"] = *o.ReceiptPath
	}
	if o.AdminNotes != nil {
		out["adminNotes"] = *o.AdminNotes
	}
	return out
}

func toOrderListJSON(list []usecase.OrderWithItems) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, ow := range list {
		m := toOrderJSON(ow.Order)
		items := make([]map[string]any, 0, len(ow.Items))
		for _, it := range ow.Items {
			items = append(items, map[string]any{
				"id":          it.ID,
				"productId":   it.ProductID,
				"productName": it.ProductName,
				"quantity":    it.Quantity,
				"color":       it.Color,
				"size":        it.Size,
				"unitPrice":   it.UnitPrice,
			})
		}
		m["items"] = items
		out = append(out, m)
	}
	return out
}
