// internal/adapters/in/http/store/handler/checkout_handler.go
package storeHandler

import (
	"fmt"
	"net/http"

	"storefront/internal/adapters/in/http/middleware"
	"storefront/internal/application/usecase"
)

// CheckoutHandler converts the signed-in customer's cart into sales.
// - POST /store/checkout
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	sess, ok := middleware.CurrentSession(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "sign in required")
		return
	}

	purchased, err := h.uc.Checkout(r.Context(), sess.Email, sess.Name)
	if err != nil {
		writeJSON(w, statusForErr(err), map[string]any{
			"success":        false,
			"message":        checkoutFailureMessage(err, purchased),
			"itemsPurchased": purchased,
		})
		return
	}

	writeOK(w, http.StatusOK,
		fmt.Sprintf("checkout complete: %d item(s) purchased", purchased),
		map[string]any{"itemsPurchased": purchased},
	)
}

// checkoutFailureMessage spells out that a mid-run failure leaves earlier
// lines committed. A retry of the same cart skips those lines.
func checkoutFailureMessage(err error, purchased int) string {
	if purchased <= 0 {
		return err.Error()
	}
	return fmt.Sprintf("%s; %d item(s) were already purchased before the failure and will not be sold again on retry",
		err.Error(), purchased)
}
