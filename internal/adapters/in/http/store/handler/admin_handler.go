// internal/adapters/in/http/store/handler/admin_handler.go
package storeHandler

import (
	"net/http"
	"strings"
	"time"

	"storefront/internal/application/usecase"
	"storefront/internal/domain/money"
)

// defaultReportWindow is used when the sales report request has no bounds.
const defaultReportWindow = 30 * 24 * time.Hour

// AdminHandler is the back-office surface. The router wraps it with
// middleware.RequireAdmin.
// - POST   /admin/items
// - PUT    /admin/items/{id}
// - DELETE /admin/items/{id}
// - PUT    /admin/items/{id}/stock     {"quantity": n}
// - GET    /admin/dashboard
// - GET    /admin/sales-report?from=&to=&category=&customer=
type AdminHandler struct {
	catalog *usecase.CatalogUsecase
	sales   *usecase.SalesUsecase
}

func NewAdminHandler(catalog *usecase.CatalogUsecase, sales *usecase.SalesUsecase) http.Handler {
	return &AdminHandler{catalog: catalog, sales: sales}
}

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image"`
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if tail, ok := pathTail(r, "/admin/items/"); ok && tail != "" {
		if id, found := strings.CutSuffix(tail, "/stock"); found {
			if r.Method != http.MethodPut {
				methodNotAllowed(w)
				return
			}
			h.setStock(w, r, id)
			return
		}
		switch r.Method {
		case http.MethodPut:
			h.updateItem(w, r, tail)
		case http.MethodDelete:
			h.deleteItem(w, r, tail)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if tail, ok := pathTail(r, "/admin/items"); ok && tail == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.createItem(w, r)
		return
	}

	if tail, ok := pathTail(r, "/admin/dashboard"); ok && tail == "" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.dashboard(w, r)
		return
	}

	if tail, ok := pathTail(r, "/admin/sales-report"); ok && tail == "" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.salesReport(w, r)
		return
	}

	notFound(w)
}

func (h *AdminHandler) createItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := readJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := money.Parse(req.Price, money.ZAR)
	if err != nil {
		writeErr(w, err)
		return
	}

	it, err := h.catalog.CreateItem(r.Context(), usecase.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       price,
		Quantity:    req.Quantity,
		Image:       req.Image,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "item created", map[string]any{"item": it})
}

func (h *AdminHandler) updateItem(w http.ResponseWriter, r *http.Request, id string) {
	var req itemRequest
	if err := readJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := money.Parse(req.Price, money.ZAR)
	if err != nil {
		writeErr(w, err)
		return
	}

	it, err := h.catalog.GetItem(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	it.Name = strings.TrimSpace(req.Name)
	it.Description = strings.TrimSpace(req.Description)
	it.Category = strings.TrimSpace(req.Category)
	it.Price = price
	it.Quantity = req.Quantity
	it.Image = strings.TrimSpace(req.Image)

	if err := h.catalog.UpdateItem(r.Context(), it); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "item updated", map[string]any{"item": it})
}

func (h *AdminHandler) deleteItem(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.catalog.DeleteItem(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "item deleted", nil)
}

func (h *AdminHandler) setStock(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := readJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "quantity is required")
		return
	}

	it, err := h.catalog.SetStock(r.Context(), id, req.Quantity)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "stock updated", map[string]any{"item": it})
}

func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.sales.Dashboard(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "ok", map[string]any{"dashboard": d})
}

func (h *AdminHandler) salesReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	now := time.Now().UTC()
	from := now.Add(-defaultReportWindow)
	to := now.Add(24 * time.Hour)

	if s := strings.TrimSpace(q.Get("from")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		from = t
	}
	if s := strings.TrimSpace(q.Get("to")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}
		// inclusive end date
		to = t.Add(24 * time.Hour)
	}

	report, err := h.sales.Report(r.Context(), from, to, q.Get("category"), q.Get("customer"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "ok", map[string]any{"report": report})
}
