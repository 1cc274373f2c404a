package inquiry

import (
	"net/http"

	"github.com/a-h/templ"
	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/i18n"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/pagerender"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/weberror"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
	"go.uber.org/zap"
)

type handlers struct {
	service service
	deps    module.Dependencies
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, deps: deps}
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	loc, lang := i18n.ResolveLocalizer(w, r)
	accepted, err := h.service.submit(submission{
		Name:    r.PostFormValue("nombre"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("mensaje"),
	})
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindInvalidInput {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
		form := templates.InquiryFormView{
			Name:    accepted.Name,
			Email:   accepted.Email,
			Message: accepted.Message,
			Error:   weberror.PublicMessage(loc, err),
		}
		h.writeRejected(w, r, loc, lang, form)
		return
	}

	dialog := templates.DialogView{
		Kind:  templates.ToastSuccess,
		Title: templates.T(loc, "inquiry.done.title"),
		Text:  templates.T(loc, "inquiry.done.text", accepted.Name),
	}
	if !httpx.IsHTMXRequest(r) {
		h.writePage(w, r, pagerender.Page{Loc: loc, Lang: lang, Dialog: dialog})
		return
	}
	h.writeFragment(w, r, http.StatusOK,
		templates.Dialog(dialog, loc),
		templates.InquiryForm(templates.InquiryFormView{}, loc, true),
	)
}

// writeRejected re-renders the form with its values and the validation
// message, in place for htmx or inside the full page otherwise.
func (h handlers) writeRejected(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, lang string, form templates.InquiryFormView) {
	if !httpx.IsHTMXRequest(r) {
		h.writePage(w, r, pagerender.Page{StatusCode: http.StatusBadRequest, Loc: loc, Lang: lang, Inquiry: form})
		return
	}
	w.Header().Set("HX-Retarget", "#"+templates.InquiryFormID)
	w.Header().Set("HX-Reswap", "outerHTML")
	h.writeFragment(w, r, http.StatusBadRequest, templates.InquiryForm(form, loc, false))
}

func (h handlers) writeFragment(w http.ResponseWriter, r *http.Request, status int, components ...templ.Component) {
	if err := pagerender.WriteFragment(w, r, status, components...); err != nil {
		h.deps.Log().Warn("render inquiry fragment", zap.Error(err))
	}
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, h.deps, page); err != nil {
		h.deps.Log().Warn("render inquiry page", zap.Error(err))
	}
}
