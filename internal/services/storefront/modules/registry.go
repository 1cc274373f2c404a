package modules

import (
	"github.com/louisbranch/storefront/internal/services/storefront/modules/cart"
	"github.com/louisbranch/storefront/internal/services/storefront/modules/catalog"
	"github.com/louisbranch/storefront/internal/services/storefront/modules/inquiry"
	"github.com/louisbranch/storefront/internal/services/storefront/modules/public"
)

// DefaultModules returns the storefront modules in mount order.
func DefaultModules() []Module {
	return []Module{
		public.New(),
		catalog.New(),
		cart.New(),
		inquiry.New(),
	}
}
