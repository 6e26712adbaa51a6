// internal/adapters/in/http/store/handler/cart_handler.go
package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
	"storefront/internal/adapters/in/http/middleware"
)

// CartHandler serves the buyer cart endpoints:
//
//	GET    /store/me/cart        current cart (empty cart when absent)
//	DELETE /store/me/cart        clear
//	POST   /store/me/cart/items  add (merge by productId+color+size)
//	PUT    /store/me/cart/items  set quantity (qty<1 removes)
//	DELETE /store/me/cart/items  remove exact entry
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && hasSuffixAny(path, "/cart"):
		h.handleGet(w, r, uid)
	case r.Method == http.MethodDelete && hasSuffixAny(path, "/cart"):
		h.handleClear(w, r, uid)
	case r.Method == http.MethodPost && hasSuffixAny(path, "/cart/items"):
		h.handleAddItem(w, r, uid)
	case r.Method == http.MethodPut && hasSuffixAny(path, "/cart/items"):
		h.handleSetQuantity(w, r, uid)
	case r.Method == http.MethodDelete && hasSuffixAny(path, "/cart/items"):
		h.handleRemoveItem(w, r, uid)
	default:
		methodNotAllowed(w)
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, uid string) {
	c, err := h.uc.Get(r.Context(), uid)
	if err != nil {
		log.Printf("[store_cart_handler] get failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, toCartJSON(c))
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, uid string) {
	if err := h.uc.Clear(r.Context(), uid); err != nil {
		log.Printf("[store_cart_handler] clear failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, uid string) {
	var req addItemRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	c, err := h.uc.AddItem(r.Context(), uid, cartdom.Item{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Color:       req.Color,
		Size:        req.Size,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrCartInvalidArgument) {
			writeErr(w, http.StatusBadRequest, "invalid cart item")
			return
		}
		log.Printf("[store_cart_handler] add failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to add item")
		return
	}
	writeJSON(w, http.StatusOK, toCartJSON(c))
}

type setQuantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request, uid string) {
	var req setQuantityRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	c, err := h.uc.SetItemQuantity(r.Context(), uid, req.ProductID, req.Quantity, req.Color, req.Size)
	if err != nil {
		if errors.Is(err, usecase.ErrCartInvalidArgument) {
			writeErr(w, http.StatusBadRequest, "invalid quantity update")
			return
		}
		log.Printf("[store_cart_handler] set quantity failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to update quantity")
		return
	}
	writeJSON(w, http.StatusOK, toCartJSON(c))
}

type removeItemRequest struct {
	ProductID string `json:"productId"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, uid string) {
	var req removeItemRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), uid, req.ProductID, req.Color, req.Size)
	if err != nil {
		if errors.Is(err, usecase.ErrCartInvalidArgument) {
			writeErr(w, http.StatusBadRequest, "invalid remove request")
			return
		}
		log.Printf("[store_cart_handler] remove failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to remove item")
		return
	}
	writeJSON(w, http.StatusOK, toCartJSON(c))
}
