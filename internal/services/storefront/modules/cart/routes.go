package cart

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.CartItems, h.handleAdd)
	mux.HandleFunc(http.MethodPost+" "+routepath.CartItems+"/{id}/{action}", h.handleLineAction)
	mux.HandleFunc(http.MethodGet+" "+routepath.CartCheckout, h.handleCheckoutPrompt)
	mux.HandleFunc(http.MethodPost+" "+routepath.CartCheckout, h.handleCheckoutConfirm)
}
