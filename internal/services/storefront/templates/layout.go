package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/storefront/cart"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/i18n"
)

// HTMXScriptURL is the htmx build loaded by the layout.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Page is the full document view.
type Page struct {
	Title     string
	Lang      string
	Loc       Localizer
	Languages []i18n.LanguageOption
	Catalog   templ.Component
	Summary   cart.Summary
	Inquiry   InquiryFormView
	Toasts    []ToastView
	Dialog    DialogView
}

// Layout renders the whole storefront page.
func Layout(page Page) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		loc := page.Loc
		title := page.Title
		if title == "" {
			title = T(loc, "core.app_name")
		}
		lang := page.Lang
		if lang == "" {
			lang = i18n.Default().String()
		}
		m.raw(`<!doctype html><html`)
		m.attr("lang", lang)
		m.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><meta name="description"`)
		m.attr("content", T(loc, "core.meta_description"))
		m.raw(`><title>`)
		m.text(title)
		m.raw(`</title><link rel="stylesheet" href="/static/storefront.css"><script`)
		m.attr("src", HTMXScriptURL)
		m.raw(` defer></script><script src="/static/storefront.js" defer></script></head><body hx-boost="false"><header class="site-header"><a href="/" class="brand">`)
		m.text(T(loc, "core.app_name"))
		m.raw(`</a><nav class="site-nav"><a href="#catalog">`)
		m.text(T(loc, "core.nav.catalog"))
		m.raw(`</a><a href="#cartModal" class="cart-link">`)
		m.text(T(loc, "core.nav.cart"))
		m.raw(` `)
		m.component(ctx, CartBadge(page.Summary.ItemCount, false))
		m.raw(`</a><a href="#contact">`)
		m.text(T(loc, "core.nav.inquiry"))
		m.raw(`</a></nav><ul class="language-switcher">`)
		for _, option := range page.Languages {
			m.raw(`<li><a`)
			m.attr("href", option.URL)
			m.attr("hreflang", option.Tag)
			m.attrIf(option.Active, "aria-current", "true")
			m.raw(`>`)
			m.text(option.Label)
			m.raw(`</a></li>`)
		}
		m.raw(`</ul></header><main><section id="catalog" class="catalog"><h1>`)
		m.text(T(loc, "catalog.title"))
		m.raw(`</h1>`)
		if page.Catalog != nil {
			m.component(ctx, page.Catalog)
		} else {
			m.component(ctx, CatalogGrid(nil, loc))
		}
		m.raw(`</section><section id="cartModal" class="cart-panel"><h2>`)
		m.text(T(loc, "cart.title"))
		m.raw(`</h2>`)
		m.component(ctx, summaryPanel(page.Summary, loc, false))
		m.raw(`</section><section id="contact" class="contact">`)
		m.component(ctx, InquiryForm(page.Inquiry, loc, false))
		m.raw(`</section></main><div id="` + ToastRegionID + `" class="toast-region" aria-live="polite">`)
		for _, toast := range page.Toasts {
			m.component(ctx, Toast(toast, false))
		}
		m.raw(`</div><div id="` + DialogRegionID + `" class="dialog-region">`)
		m.component(ctx, Dialog(page.Dialog, loc))
		m.raw(`</div></body></html>`)
	})
}
