// Package module defines the contracts shared by storefront feature modules.
package module

import (
	"context"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/cart"
	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"go.uber.org/zap"
)

// CartSessions resolves the cart session owned by a visitor. The session
// stays live until release is called.
type CartSessions interface {
	Acquire(ctx context.Context, visitorID string) (session *cart.Session, release func(), err error)
}

// Dependencies carries shared collaborators into modules.
type Dependencies struct {
	Catalog      catalog.Source
	Carts        CartSessions
	Logger       *zap.Logger
	SchemePolicy requestmeta.SchemePolicy
}

// Log returns the configured logger or a no-op logger.
func (d Dependencies) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Mount is a module's contribution to the root mux.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is a self-contained route group.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
