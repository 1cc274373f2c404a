package catalog

import (
	"net/http"

	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Module serves the catalog grid fragment.
type Module struct{}

// New returns a catalog module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "catalog" }

// Mount wires catalog route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Catalog, Handler: mux}, nil
}
