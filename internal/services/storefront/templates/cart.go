package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/storefront/cart"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// CartSummary renders the line list, total and checkout trigger, followed
// by an out-of-band badge update. With oob set the summary itself is also
// swapped out of band alongside another target.
func CartSummary(summary cart.Summary, loc Localizer, oob bool) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.component(ctx, summaryPanel(summary, loc, oob))
		m.component(ctx, CartBadge(summary.ItemCount, true))
	})
}

func summaryPanel(summary cart.Summary, loc Localizer, oob bool) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<div id="cart-summary" class="cart-summary"`)
		m.attrIf(oob, "hx-swap-oob", "true")
		m.raw(`><ul id="cart-items" class="cart-items">`)
		if summary.Empty() {
			m.raw(`<li class="cart-empty">`)
			m.text(T(loc, "cart.empty"))
			m.raw(`</li>`)
		}
		for _, line := range summary.Lines {
			m.component(ctx, cartRow(line, loc))
		}
		m.raw(`</ul><p class="cart-total-row">`)
		m.text(T(loc, "cart.total"))
		m.raw(`: $<span id="cart-total">`)
		m.text(summary.TotalText())
		m.raw(`</span></p><a id="checkout-btn" class="btn btn-checkout"`)
		m.attr("href", routepath.CartCheckout)
		m.attr("hx-get", routepath.CartCheckout)
		m.raw(` hx-target="#` + DialogRegionID + `">`)
		m.text(T(loc, "cart.checkout"))
		m.raw(`</a></div>`)
	})
}

// CartBadge renders the item counter. With oob set it updates an existing
// badge out of band.
func CartBadge(count int, oob bool) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.raw(`<span id="cart-count" class="badge"`)
		m.attrIf(oob, "hx-swap-oob", "true")
		m.raw(`>`)
		m.text(strconv.Itoa(count))
		m.raw(`</span>`)
	})
}

func cartRow(line cart.LineSummary, loc Localizer) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<li class="cart-line"`)
		m.attr("data-line-id", strconv.Itoa(line.ID))
		m.raw(`><img`)
		m.attr("src", routepath.Asset(line.Image))
		m.attr("alt", line.Title)
		m.raw(` class="cart-thumb"><div class="cart-line-body"><h4>`)
		m.text(line.Title)
		m.raw(`</h4><p class="cart-line-price">$`)
		m.text(line.Price)
		m.raw(` x `)
		m.text(strconv.Itoa(line.Quantity))
		m.raw(`</p><div class="cart-line-controls">`)
		m.component(ctx, lineAction(line.ID, routepath.ActionDecrement, "-", T(loc, "cart.decrease")))
		m.raw(`<span class="cart-line-qty">`)
		m.text(strconv.Itoa(line.Quantity))
		m.raw(`</span>`)
		m.component(ctx, lineAction(line.ID, routepath.ActionIncrement, "+", T(loc, "cart.increase")))
		m.raw(`</div></div><div class="cart-line-side"><p class="cart-line-subtotal">$`)
		m.text(line.SubtotalText())
		m.raw(`</p>`)
		m.component(ctx, lineAction(line.ID, routepath.ActionRemove, T(loc, "cart.remove"), T(loc, "cart.remove")))
		m.raw(`</div></li>`)
	})
}

func lineAction(id int, action string, label string, title string) templ.Component {
	return component(func(_ context.Context, m *markup) {
		path := routepath.CartItemAction(id, action)
		m.raw(`<form method="post" class="inline-form"`)
		m.attr("action", path)
		m.attr("hx-post", path)
		m.raw(` hx-target="#cart-summary" hx-swap="outerHTML"><button type="submit"`)
		m.attr("class", "btn btn-"+action)
		m.attr("title", title)
		m.raw(`>`)
		m.text(label)
		m.raw(`</button></form>`)
	})
}
