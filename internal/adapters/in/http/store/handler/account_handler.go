// internal/adapters/in/http/store/handler/account_handler.go
package storeHandler

import (
	"net/http"
	"strings"

	"storefront/internal/adapters/in/http/middleware"
	"storefront/internal/application/usecase"
	custdom "storefront/internal/domain/customer"
)

// AccountHandler covers registration and both sign-in paths.
// - POST /store/account/register          {"name","email","password"}
// - POST /store/account/login             {"email","password"}
// - POST /store/account/logout
// - POST /store/account/federated         (Authorization: Bearer <Firebase ID token>)
// - GET  /store/account/me
// - GET  /store/account/orders
type AccountHandler struct {
	accounts *usecase.AccountUsecase
	sales    *usecase.SalesUsecase
	sessions *middleware.SessionManager

	// firebaseAuth is optional; nil disables federated sign-in.
	firebaseAuth *middleware.FirebaseAuthClient
}

func NewAccountHandler(
	accounts *usecase.AccountUsecase,
	sales *usecase.SalesUsecase,
	sessions *middleware.SessionManager,
	firebaseAuth *middleware.FirebaseAuthClient,
) http.Handler {
	return &AccountHandler{
		accounts:     accounts,
		sales:        sales,
		sessions:     sessions,
		firebaseAuth: firebaseAuth,
	}
}

func (h *AccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	tail, ok := pathTail(r, "/store/account/")
	if !ok || tail == "" {
		notFound(w)
		return
	}

	switch tail {
	case "register":
		h.post(w, r, h.register)
	case "login":
		h.post(w, r, h.login)
	case "logout":
		h.post(w, r, h.logout)
	case "federated":
		h.post(w, r, h.federatedSignIn)
	case "me":
		h.get(w, r, h.me)
	case "orders":
		h.get(w, r, h.orders)
	default:
		notFound(w)
	}
}

func (h *AccountHandler) post(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	fn(w, r)
}

func (h *AccountHandler) get(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	fn(w, r)
}

func (h *AccountHandler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.sessions.Issue(w, c.Email, c.Name, c.IsAdmin); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "account created", map[string]any{"customer": publicCustomer(c)})
}

func (h *AccountHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.sessions.Issue(w, c.Email, c.Name, c.IsAdmin); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "signed in", map[string]any{"customer": publicCustomer(c)})
}

func (h *AccountHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	writeOK(w, http.StatusOK, "signed out", nil)
}

func (h *AccountHandler) federatedSignIn(w http.ResponseWriter, r *http.Request) {
	if h.firebaseAuth == nil {
		writeFail(w, http.StatusServiceUnavailable, "federated sign-in not configured")
		return
	}

	id, err := middleware.VerifyBearer(r, h.firebaseAuth)
	if err != nil {
		writeFail(w, http.StatusUnauthorized, err.Error())
		return
	}

	c, err := h.accounts.FederatedSignIn(r.Context(), id.Email, id.Name)
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.sessions.Issue(w, c.Email, c.Name, c.IsAdmin); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "signed in", map[string]any{"customer": publicCustomer(c)})
}

func (h *AccountHandler) me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.CurrentSession(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "sign in required")
		return
	}

	c, err := h.accounts.GetByEmail(r.Context(), sess.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "ok", map[string]any{"customer": publicCustomer(c)})
}

func (h *AccountHandler) orders(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.CurrentSession(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "sign in required")
		return
	}

	records, err := h.sales.ListByCustomer(r.Context(), sess.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "ok", map[string]any{"orders": records})
}

// publicCustomer strips fields the storefront client has no business seeing.
func publicCustomer(c *custdom.Customer) map[string]any {
	return map[string]any{
		"id":      c.ID,
		"name":    c.Name,
		"email":   strings.ToLower(c.Email),
		"isAdmin": c.IsAdmin,
	}
}
