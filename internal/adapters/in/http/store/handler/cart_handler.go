// internal/adapters/in/http/store/handler/cart_handler.go
package storeHandler

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/adapters/in/http/middleware"
	"storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cartline"
	"storefront/internal/domain/money"
)

// CartHandler serves the signed-in customer's cart.
// - GET    /store/cart
// - DELETE /store/cart
// - POST   /store/cart/items              {"itemId": "..."}
// - PUT    /store/cart/items/{itemId}     {"quantity": n}
// - DELETE /store/cart/items/{itemId}
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sess, ok := middleware.CurrentSession(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "sign in required")
		return
	}

	if tail, ok := pathTail(r, "/store/cart/items/"); ok && tail != "" {
		switch r.Method {
		case http.MethodPut:
			h.setQuantity(w, r, sess.Email, tail)
		case http.MethodDelete:
			h.remove(w, r, sess.Email, tail)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if tail, ok := pathTail(r, "/store/cart/items"); ok && tail == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.add(w, r, sess.Email)
		return
	}

	if tail, ok := pathTail(r, "/store/cart"); ok && tail == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r, sess.Email)
		case http.MethodDelete:
			h.clear(w, r, sess.Email)
		default:
			methodNotAllowed(w)
		}
		return
	}

	notFound(w)
}

func (h *CartHandler) list(w http.ResponseWriter, r *http.Request, email string) {
	lines, err := h.uc.ListLines(r.Context(), email)
	if err != nil {
		writeErr(w, err)
		return
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(money.Total(l.ItemPrice, l.Quantity))
	}
	if lines == nil {
		lines = []*cartdom.Line{}
	}

	writeOK(w, http.StatusOK, "ok", map[string]any{
		"lines":          lines,
		"total":          total,
		"totalFormatted": money.FormatAmount(total, money.ZAR),
	})
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request, email string) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := readJSON(r, &req); err != nil || strings.TrimSpace(req.ItemID) == "" {
		writeFail(w, http.StatusBadRequest, "itemId is required")
		return
	}

	line, err := h.uc.AddItem(r.Context(), email, req.ItemID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "item added to cart", map[string]any{"line": line})
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request, email, itemID string) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := readJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "quantity is required")
		return
	}

	if err := h.uc.SetQuantity(r.Context(), email, itemID, req.Quantity); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "cart updated", nil)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request, email, itemID string) {
	if err := h.uc.RemoveItem(r.Context(), email, itemID); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "item removed from cart", nil)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request, email string) {
	if err := h.uc.Clear(r.Context(), email); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "cart cleared", nil)
}
