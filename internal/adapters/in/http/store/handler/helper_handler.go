// internal/adapters/in/http/store/handler/helper_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	itemdom "storefront/internal/domain/orderItem"
	uc "storefront/internal/application/usecase"
)

// ============================================================
// HTTP helpers
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
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func hasSuffixAny(p string, suffixes ...string) bool {
	for _, s := range suffixes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.HasSuffix(p, s) {
			return true
		}
	}
	return false
}

func toRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ============================================================
// Response DTOs
// ============================================================

type cartItemJSON struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type cartJSON struct {
	UserID      string         `json:"userId"`
	Items       []cartItemJSON `json:"items"`
	TotalAmount int64          `json:"totalAmount"`
	TotalItems  int            `json:"totalItems"`
	UpdatedAt   string         `json:"updatedAt,omitempty"`
}

func toCartJSON(c *cartdom.Cart) cartJSON {
	items := make([]cartItemJSON, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemJSON{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Color:       it.Color,
			Size:        it.Size,
			ImageURL:    it.ImageURL,
		})
	}
	return cartJSON{
		UserID:      c.UserID,
		Items:       items,
		TotalAmount: c.TotalAmount(),
		TotalItems:  c.TotalItems(),
		UpdatedAt:   toRFC3339(c.UpdatedAt),
	}
}

type orderItemJSON struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
	UnitPrice   int64  `json:"unitPrice"`
}

type orderJSON struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	TotalAmount int64           `json:"totalAmount"`
	Status      string          `json:"status"`
	ReceiptPath *string         `json:"receiptPath,omitempty"`
	AdminNotes  *string         `json:"adminNotes,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	Items       []orderItemJSON `json:"items,omitempty"`
}

func toOrderJSON(o orderdom.Order, items []itemdom.OrderItem) orderJSON {
	out := orderJSON{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		ReceiptPath: o.ReceiptPath,
		AdminNotes:  o.AdminNotes,
		CreatedAt:   toRFC3339(o.CreatedAt),
	}
	for _, it := range items {
		out.Items = append(out.Items, orderItemJSON{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Color:       it.Color,
			Size:        it.Size,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

func toOrderListJSON(list []uc.OrderWithItems) []orderJSON {
	out := make([]orderJSON, 0, len(list))
	for _, ow := range list {
		out = append(out, toOrderJSON(ow.Order, ow.Items))
	}
	return out
}
