// internal/platform/di/store/register.go
package store

import (
	"encoding/json"
	"log"
	"net/http"

	adminhandler "storefront/internal/adapters/in/http/admin/handler"
	"storefront/internal/adapters/in/http/middleware"
	storehandler "storefront/internal/adapters/in/http/store/handler"
)

// requireUserAuth wraps handler with UserAuthMiddleware (fail-closed).
// If the middleware is not initialized it returns 503 so the bug is obvious.
func requireUserAuth(mw *middleware.UserAuthMiddleware, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.FirebaseAuth == nil {
		log.Printf("[store.register] ERROR: UserAuthMiddleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "user_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// requireAdmin chains token verification and the admin claim gate.
func requireAdmin(mw *middleware.UserAuthMiddleware, h http.Handler, name string) http.Handler {
	admin := &middleware.AdminAuthMiddleware{}
	return requireUserAuth(mw, admin.Handler(h), name)
}

// Register registers storefront routes onto mux.
// Pure DI: construct handlers and mount; no method/path branching here.
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	userAuthMW := &middleware.UserAuthMiddleware{}
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		userAuthMW.FirebaseAuth = cont.Infra.FirebaseAuth
	} else {
		// fail-closed in requireUserAuth
		log.Printf("[store.register] WARN: FirebaseAuth is nil (protected endpoints will return 503)")
	}

	// ----------------------------
	// Buyer surface
	// ----------------------------
	cartH := storehandler.NewCartHandler(cont.CartUC)
	checkoutH := storehandler.NewCheckoutHandler(cont.CheckoutUC)
	orderH := storehandler.NewOrderHandler(cont.OrderUC, cont.ReceiptUC)
	settingsH := storehandler.NewSettingsHandler(cont.SettingsUC)

	mux.Handle("/store/me/cart", requireUserAuth(userAuthMW, cartH, "Cart"))
	mux.Handle("/store/me/cart/", requireUserAuth(userAuthMW, cartH, "Cart"))

	// POST /store/me/orders is checkout; everything under it is the read
	// side / receipt endpoints.
	mux.Handle("/store/me/orders", requireUserAuth(userAuthMW, methodSwitch(checkoutH, orderH), "Orders"))
	mux.Handle("/store/me/orders/", requireUserAuth(userAuthMW, orderH, "Orders"))

	mux.Handle("/store/bank-details", settingsH)

	// ----------------------------
	// Admin surface
	// ----------------------------
	adminOrderH := adminhandler.NewOrderHandler(cont.OrderUC, cont.ReceiptUC)
	mux.Handle("/admin/orders", requireAdmin(userAuthMW, adminOrderH, "AdminOrders"))
	mux.Handle("/admin/orders/", requireAdmin(userAuthMW, adminOrderH, "AdminOrders"))

	log.Printf("[store.register] routes registered")
}

// methodSwitch sends POST to create and everything else to read.
func methodSwitch(create, read http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			create.ServeHTTP(w, r)
			return
		}
		read.ServeHTTP(w, r)
	})
}
