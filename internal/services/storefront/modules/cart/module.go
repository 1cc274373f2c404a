package cart

import (
	"net/http"

	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Module serves cart mutations and the two-step checkout.
type Module struct{}

// New returns a cart module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "cart" }

// Mount wires cart route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(deps.Catalog, deps.Carts)
	h := newHandlers(svc, deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.CartPrefix, Handler: mux}, nil
}
