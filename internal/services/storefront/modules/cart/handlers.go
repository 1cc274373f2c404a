package cart

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	storecart "github.com/louisbranch/storefront/internal/services/storefront/cart"
	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/i18n"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/pagerender"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/visitor"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/weberror"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
	"go.uber.org/zap"
)

// closeCartEvent asks the page to close the cart view.
const closeCartEvent = "cart:close"

type handlers struct {
	service service
	deps    module.Dependencies
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, deps: deps}
}

func (h handlers) session(r *http.Request) (*storecart.Session, func(), error) {
	visitorID, _ := visitor.FromContext(r.Context())
	return h.service.session(r.Context(), visitorID)
}

func (h handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r.PostFormValue("id"))
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	session, release, err := h.session(r)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	defer release()
	line, summary, err := h.service.add(r.Context(), session, id)
	if err != nil && !errors.Is(err, storecart.ErrPersist) {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	notices := []flash.Notice{flash.NoticeSuccess("cart.toast.added", line.Title)}
	if err != nil {
		notices = append(notices, flash.NoticeWarning("cart.toast.persist_failed"))
	}
	h.writeCart(w, r, summary, notices...)
}

func (h handlers) handleLineAction(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r.PathValue("id"))
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	session, release, err := h.session(r)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	defer release()
	summary, err := h.service.applyLineAction(r.Context(), session, id, r.PathValue("action"))
	if err != nil && !errors.Is(err, storecart.ErrPersist) {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	var notices []flash.Notice
	if err != nil {
		notices = append(notices, flash.NoticeWarning("cart.toast.persist_failed"))
	}
	h.writeCart(w, r, summary, notices...)
}

func (h handlers) handleCheckoutPrompt(w http.ResponseWriter, r *http.Request) {
	session, release, err := h.session(r)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	defer release()
	loc, lang := i18n.ResolveLocalizer(w, r)
	summary, err := session.Cart.BeginCheckout()
	dialog := confirmDialog(loc, summary)
	if errors.Is(err, storecart.ErrEmptyCart) {
		dialog = emptyCartDialog(loc)
	}
	h.writeDialog(w, r, pagerender.Page{Loc: loc, Lang: lang, Dialog: dialog})
}

func (h handlers) handleCheckoutConfirm(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("confirm") != "yes" {
		if httpx.IsHTMXRequest(r) {
			h.writeFragment(w, r)
			return
		}
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	session, release, err := h.session(r)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	defer release()
	loc, lang := i18n.ResolveLocalizer(w, r)
	summary, err := session.Cart.ConfirmCheckout(r.Context())
	switch {
	case errors.Is(err, storecart.ErrEmptyCart):
		h.writeDialog(w, r, pagerender.Page{Loc: loc, Lang: lang, Dialog: emptyCartDialog(loc)})
		return
	case err != nil && !errors.Is(err, storecart.ErrPersist):
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}

	page := pagerender.Page{Loc: loc, Lang: lang, Dialog: templates.DialogView{
		Kind:  templates.ToastSuccess,
		Title: templates.T(loc, "checkout.done.title"),
		Text:  templates.T(loc, "checkout.done.text"),
	}}
	if err != nil {
		page.Toasts = []templates.ToastView{pagerender.NoticeToast(loc, flash.NoticeWarning("cart.toast.persist_failed"))}
	}
	if !httpx.IsHTMXRequest(r) {
		h.writePage(w, r, page)
		return
	}
	httpx.SetHXTrigger(w, closeCartEvent)
	components := []templ.Component{
		templates.Dialog(page.Dialog, loc),
		templates.CartSummary(summary, loc, true),
	}
	for _, toast := range page.Toasts {
		components = append(components, templates.Toast(toast, true))
	}
	h.writeFragment(w, r, components...)
}

// writeCart answers a cart mutation with the refreshed summary and toasts
// for htmx, or a flash and a redirect back to the page otherwise.
func (h handlers) writeCart(w http.ResponseWriter, r *http.Request, summary storecart.Summary, notices ...flash.Notice) {
	if !httpx.IsHTMXRequest(r) {
		flash.Write(w, r, h.deps.SchemePolicy, notices...)
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	loc, _ := i18n.ResolveLocalizer(w, r)
	components := []templ.Component{templates.CartSummary(summary, loc, false)}
	for _, notice := range notices {
		components = append(components, templates.Toast(pagerender.NoticeToast(loc, notice), true))
	}
	h.writeFragment(w, r, components...)
}

func (h handlers) writeDialog(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if httpx.IsHTMXRequest(r) {
		h.writeFragment(w, r, templates.Dialog(page.Dialog, page.Loc))
		return
	}
	h.writePage(w, r, page)
}

func (h handlers) writeFragment(w http.ResponseWriter, r *http.Request, components ...templ.Component) {
	if err := pagerender.WriteFragment(w, r, http.StatusOK, components...); err != nil {
		h.deps.Log().Warn("render cart fragment", zap.Error(err))
	}
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, h.deps, page); err != nil {
		h.deps.Log().Warn("render cart page", zap.Error(err))
	}
}

func confirmDialog(loc i18n.Localizer, summary storecart.Summary) templates.DialogView {
	return templates.DialogView{
		Kind:  templates.ToastInfo,
		Title: templates.T(loc, "checkout.confirm.title"),
		Text:  templates.T(loc, "checkout.confirm.text", summary.TotalText()),
		Confirm: &templates.DialogConfirm{
			Action: routepath.CartCheckout,
			Yes:    templates.T(loc, "checkout.confirm.yes"),
			No:     templates.T(loc, "checkout.confirm.no"),
		},
	}
}

func emptyCartDialog(loc i18n.Localizer) templates.DialogView {
	return templates.DialogView{
		Kind:  templates.ToastWarning,
		Title: templates.T(loc, "checkout.empty.title"),
		Text:  templates.T(loc, "checkout.empty.text"),
	}
}
