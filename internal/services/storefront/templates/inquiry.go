package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// InquiryFormView carries submitted values back into the form when a
// submission is rejected.
type InquiryFormView struct {
	Name    string
	Email   string
	Message string
	Error   string
}

// InquiryFormID is the form element id.
const InquiryFormID = "contact-form"

// InquiryForm renders the contact form. With oob set it replaces the form
// out of band, which is how a successful submission resets it.
func InquiryForm(form InquiryFormView, loc Localizer, oob bool) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.raw(`<form id="` + InquiryFormID + `" class="contact-form" method="post"`)
		m.attr("action", routepath.Inquiry)
		m.attr("hx-post", routepath.Inquiry)
		m.attrIf(oob, "hx-swap-oob", "true")
		m.raw(` hx-target="#` + DialogRegionID + `"><h2>`)
		m.text(T(loc, "inquiry.title"))
		m.raw(`</h2>`)
		if form.Error != "" {
			m.raw(`<p class="form-error" role="alert">`)
			m.text(form.Error)
			m.raw(`</p>`)
		}
		m.raw(`<label for="inquiry-name">`)
		m.text(T(loc, "inquiry.name"))
		m.raw(`</label><input id="inquiry-name" type="text" name="nombre"`)
		m.attr("value", form.Name)
		m.raw(`><label for="inquiry-email">`)
		m.text(T(loc, "inquiry.email"))
		m.raw(`</label><input id="inquiry-email" type="email" name="email"`)
		m.attr("value", form.Email)
		m.raw(`><label for="inquiry-message">`)
		m.text(T(loc, "inquiry.message"))
		m.raw(`</label><textarea id="inquiry-message" name="mensaje" rows="4">`)
		m.text(form.Message)
		m.raw(`</textarea><button type="submit" class="btn btn-submit">`)
		m.text(T(loc, "inquiry.submit"))
		m.raw(`</button></form>`)
	})
}
