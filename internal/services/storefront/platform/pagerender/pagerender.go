// Package pagerender centralizes full-page and fragment rendering for
// storefront modules.
package pagerender

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/storefront/cart"
	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/i18n"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/visitor"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
	"go.uber.org/zap"
)

// Page describes a full storefront document. The catalog, cart summary and
// any pending flash notice are resolved at render time.
type Page struct {
	StatusCode int
	Loc        i18n.Localizer
	Lang       string
	Inquiry    templates.InquiryFormView
	Toasts     []templates.ToastView
	Dialog     templates.DialogView
}

// WritePage renders the full layout for the requesting visitor.
func WritePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	if w == nil {
		return nil
	}
	ctx := httpx.RequestContext(r)
	loc, lang := page.Loc, page.Lang
	if loc == nil {
		loc, lang = i18n.ResolveLocalizer(w, r)
	}

	toasts := append([]templates.ToastView(nil), page.Toasts...)
	if notices, ok := flash.ReadAndClear(w, r, deps.SchemePolicy); ok {
		for _, notice := range notices {
			toasts = append(toasts, NoticeToast(loc, notice))
		}
	}

	var session *cart.Session
	if visitorID, ok := visitor.FromContext(ctx); ok && deps.Carts != nil {
		resolved, release, err := deps.Carts.Acquire(ctx, visitorID)
		if err != nil {
			deps.Log().Warn("resolve cart session", zap.Error(err))
		} else {
			defer release()
			session = resolved
		}
	}

	catalogView := CatalogFor(r, deps, session, loc)
	summary := cart.Summarize(nil)
	if session != nil {
		summary = session.Cart.Snapshot()
	}

	path := "/"
	if r != nil && r.URL != nil && r.Method == http.MethodGet {
		path = r.URL.Path
	}

	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	return templates.Layout(templates.Page{
		Lang:      lang,
		Loc:       loc,
		Languages: i18n.LanguageOptions(loc, lang, path),
		Catalog:   catalogView,
		Summary:   summary,
		Inquiry:   page.Inquiry,
		Toasts:    toasts,
		Dialog:    page.Dialog,
	}).Render(ctx, w)
}

// CatalogFor fetches the catalog and remembers it on session. A failed
// fetch renders the error panel.
func CatalogFor(r *http.Request, deps module.Dependencies, session *cart.Session, loc i18n.Localizer) templ.Component {
	if deps.Catalog == nil {
		return templates.CatalogError(loc)
	}
	items, err := deps.Catalog.FetchAndTransform(httpx.RequestContext(r))
	if err != nil {
		fields := []zap.Field{zap.Error(err), zap.String("request_id", httpx.RequestIDFrom(r))}
		if catalog.IsFetchError(err) {
			deps.Log().Warn("fetch catalog", fields...)
		} else {
			deps.Log().Error("fetch catalog", fields...)
		}
		return templates.CatalogError(loc)
	}
	if session != nil {
		session.Remember(items)
	}
	return templates.CatalogGrid(items, loc)
}

// WriteFragment writes components as an htmx partial response.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, components ...templ.Component) error {
	if w == nil {
		return nil
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	return templates.Fragments(components...).Render(httpx.RequestContext(r), w)
}

// NoticeToast localizes a flash notice.
func NoticeToast(loc i18n.Localizer, notice flash.Notice) templates.ToastView {
	args := make([]any, 0, len(notice.Args))
	for _, arg := range notice.Args {
		args = append(args, arg)
	}
	text := strings.TrimSpace(templates.T(loc, notice.Key, args...))
	return templates.ToastView{Kind: string(notice.Kind), Text: text}
}
