package catalog

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/cart"
	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/i18n"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/pagerender"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/visitor"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"go.uber.org/zap"
)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

// handleCatalog re-fetches and re-renders the grid in place. Plain
// navigations go to the full page instead.
func (h handlers) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if !httpx.IsHTMXRequest(r) {
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	loc, _ := i18n.ResolveLocalizer(w, r)
	session, release := h.session(r)
	defer release()
	grid := pagerender.CatalogFor(r, h.deps, session, loc)
	if err := pagerender.WriteFragment(w, r, http.StatusOK, grid); err != nil {
		h.deps.Log().Warn("render catalog", zap.Error(err))
	}
}

func (h handlers) session(r *http.Request) (*cart.Session, func()) {
	visitorID, ok := visitor.FromContext(r.Context())
	if !ok || h.deps.Carts == nil {
		return nil, func() {}
	}
	session, release, err := h.deps.Carts.Acquire(r.Context(), visitorID)
	if err != nil {
		h.deps.Log().Warn("resolve cart session", zap.Error(err))
		return nil, func() {}
	}
	return session, release
}
