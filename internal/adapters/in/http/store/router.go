// internal/adapters/in/http/store/router.go
package store

import (
	"net/http"

	"storefront/internal/adapters/in/http/middleware"
)

// Deps is the storefront handler set.
type Deps struct {
	Catalog  http.Handler
	Cart     http.Handler
	Checkout http.Handler
	Account  http.Handler
	Admin    http.Handler
	Media    http.Handler
}

// Register registers storefront routes onto mux.
// Session decoding happens in the outer chain; per-route access control
// happens here.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// public catalog
	if deps.Catalog != nil {
		mux.Handle("/store/items", deps.Catalog)
		mux.Handle("/store/items/", deps.Catalog)
	}

	// cart + checkout (signed-in customer)
	if deps.Cart != nil {
		mux.Handle("/store/cart", middleware.RequireUser(deps.Cart))
		mux.Handle("/store/cart/", middleware.RequireUser(deps.Cart))
	}
	if deps.Checkout != nil {
		mux.Handle("/store/checkout", middleware.RequireUser(deps.Checkout))
		mux.Handle("/store/checkout/", middleware.RequireUser(deps.Checkout))
	}

	// account (register/login are public; the handler guards me/orders itself)
	if deps.Account != nil {
		mux.Handle("/store/account/", deps.Account)
	}

	// multimedia library (signed-in customer)
	if deps.Media != nil {
		mux.Handle("/store/media", middleware.RequireUser(deps.Media))
		mux.Handle("/store/media/", middleware.RequireUser(deps.Media))
	}

	// back office
	if deps.Admin != nil {
		mux.Handle("/admin/", middleware.RequireAdmin(deps.Admin))
	}
}
