package inquiry

import (
	"net/http"

	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Module serves the contact form submission.
type Module struct{}

// New returns an inquiry module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "inquiry" }

// Mount wires inquiry route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(deps.Log()), deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Inquiry, Handler: mux}, nil
}
