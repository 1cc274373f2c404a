package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// CatalogContainerID is the element replaced on every catalog render.
const CatalogContainerID = "product-container"

// CatalogGrid renders one card per item inside the catalog container. The
// container is always replaced whole, so rendering never accumulates.
func CatalogGrid(items []catalog.DisplayItem, loc Localizer) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<div`)
		m.attr("id", CatalogContainerID)
		m.attr("class", "product-grid")
		m.raw(`>`)
		if len(items) == 0 {
			m.raw(`<p class="catalog-empty">`)
			m.text(T(loc, "catalog.empty"))
			m.raw(`</p>`)
		}
		for _, item := range items {
			m.component(ctx, productCard(item, loc))
		}
		m.raw(`</div>`)
	})
}

func productCard(item catalog.DisplayItem, loc Localizer) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.raw(`<article class="product-card"`)
		m.attr("data-product-id", strconv.Itoa(item.ID))
		m.raw(`><img`)
		m.attr("src", routepath.Asset(item.Image))
		m.attr("alt", item.Title)
		m.raw(` loading="lazy"><div class="product-body"><h3 class="product-title">`)
		m.text(item.Title)
		m.raw(`</h3><span class="product-category">`)
		m.text(item.Category)
		m.raw(`</span><p class="product-price">$`)
		m.text(item.Price)
		m.raw(`</p><form method="post"`)
		m.attr("action", routepath.CartItems)
		m.attr("hx-post", routepath.CartItems)
		m.raw(` hx-target="#cart-summary" hx-swap="outerHTML"><input type="hidden" name="id"`)
		m.attr("value", strconv.Itoa(item.ID))
		m.raw(`><button type="submit" class="btn btn-add">`)
		m.text(T(loc, "catalog.add"))
		m.raw(`</button></form></div></article>`)
	})
}

// CatalogError renders the static error panel in place of the grid.
func CatalogError(loc Localizer) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.raw(`<div`)
		m.attr("id", CatalogContainerID)
		m.attr("class", "product-grid")
		m.raw(`><p class="catalog-error" role="alert">`)
		m.text(T(loc, "catalog.error"))
		m.raw(`</p></div>`)
	})
}
