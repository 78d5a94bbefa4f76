// internal/adapters/in/http/store/handler/catalog_handler.go
package storeHandler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/application/usecase"
	itemdom "storefront/internal/domain/item"
)

// CatalogHandler serves the public storefront catalog.
// - GET /store/items            (searchQuery / category / sortBy / minPrice / maxPrice)
// - GET /store/items/{id}
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) http.Handler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	tail, ok := pathTail(r, "/store/items/")
	if !ok {
		notFound(w)
		return
	}
	if tail == "" {
		h.list(w, r)
		return
	}
	h.get(w, r, tail)
}

func (h *CatalogHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	it, err := h.uc.GetItem(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "ok", map[string]any{"item": it})
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListItems(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	q := r.URL.Query()
	items = filterItems(items,
		q.Get("searchQuery"),
		q.Get("category"),
		q.Get("minPrice"),
		q.Get("maxPrice"),
	)
	sortItems(items, q.Get("sortBy"))

	writeOK(w, http.StatusOK, "ok", map[string]any{
		"items":      items,
		"categories": itemdom.AvailableCategories,
	})
}

// filterItems applies the storefront search controls in memory.
// Bad price bounds are ignored rather than rejected.
func filterItems(items []*itemdom.Item, search, category, minPrice, maxPrice string) []*itemdom.Item {
	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.TrimSpace(category)

	var minP, maxP *decimal.Decimal
	if v, err := decimal.NewFromString(strings.TrimSpace(minPrice)); err == nil && minPrice != "" {
		minP = &v
	}
	if v, err := decimal.NewFromString(strings.TrimSpace(maxPrice)); err == nil && maxPrice != "" {
		maxP = &v
	}

	out := make([]*itemdom.Item, 0, len(items))
	for _, it := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		if category != "" && !strings.EqualFold(it.Category, category) {
			continue
		}
		if minP != nil && it.Price.LessThan(*minP) {
			continue
		}
		if maxP != nil && it.Price.GreaterThan(*maxP) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func sortItems(items []*itemdom.Item, sortBy string) {
	switch strings.TrimSpace(sortBy) {
	case "price_asc":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.LessThan(items[j].Price) })
	case "price_desc":
		sort.SliceStable(items, func(i, j int) bool { return items[j].Price.LessThan(items[i].Price) })
	case "name", "":
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	default:
		// unknown sort keys fall back to name order
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
}
