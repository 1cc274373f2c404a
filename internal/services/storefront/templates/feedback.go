package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// ToastRegionID and DialogRegionID name the fixed regions of the layout.
const (
	ToastRegionID  = "toast-region"
	DialogRegionID = "dialog-region"
)

// Toast kinds mirror flash notice kinds.
const (
	ToastSuccess = "success"
	ToastInfo    = "info"
	ToastWarning = "warning"
	ToastError   = "error"
)

// ToastView is one transient notification.
type ToastView struct {
	Kind string
	Text string
}

// Toast renders a notification. With oob set the toast is appended to the
// toast region out of band.
func Toast(toast ToastView, oob bool) templ.Component {
	return component(func(_ context.Context, m *markup) {
		if toast.Text == "" {
			return
		}
		kind := toast.Kind
		if kind == "" {
			kind = ToastInfo
		}
		if oob {
			m.raw(`<div hx-swap-oob="beforeend:#` + ToastRegionID + `">`)
		}
		m.raw(`<div`)
		m.attr("class", "toast toast-"+kind)
		m.raw(` role="status" data-toast-timeout="3000"><span class="toast-text">`)
		m.text(toast.Text)
		m.raw(`</span><span class="toast-progress"></span></div>`)
		if oob {
			m.raw(`</div>`)
		}
	})
}

// DialogConfirm adds a confirm/cancel pair posting to Action.
type DialogConfirm struct {
	Action string
	Yes    string
	No     string
}

// DialogView is a modal message.
type DialogView struct {
	Kind    string
	Title   string
	Text    string
	Confirm *DialogConfirm
}

// Dialog renders a modal inside the dialog region.
func Dialog(dialog DialogView, loc Localizer) templ.Component {
	return component(func(_ context.Context, m *markup) {
		if dialog.Title == "" && dialog.Text == "" {
			return
		}
		kind := dialog.Kind
		if kind == "" {
			kind = ToastInfo
		}
		m.raw(`<div class="dialog-backdrop"><div`)
		m.attr("class", "dialog dialog-"+kind)
		m.raw(` role="dialog" aria-modal="true"><h2 class="dialog-title">`)
		m.text(dialog.Title)
		m.raw(`</h2><p class="dialog-text">`)
		m.text(dialog.Text)
		m.raw(`</p><div class="dialog-actions">`)
		if confirm := dialog.Confirm; confirm != nil {
			m.raw(`<form method="post"`)
			m.attr("action", confirm.Action)
			m.attr("hx-post", confirm.Action)
			m.raw(` hx-target="#` + DialogRegionID + `"><input type="hidden" name="confirm" value="yes"><button type="submit" class="btn btn-confirm">`)
			m.text(confirm.Yes)
			m.raw(`</button></form><a class="btn btn-cancel" data-dialog-close`)
			m.attr("href", routepath.Root)
			m.raw(`>`)
			m.text(confirm.No)
			m.raw(`</a>`)
		} else {
			m.raw(`<a class="btn btn-close" data-dialog-close`)
			m.attr("href", routepath.Root)
			m.raw(`>`)
			m.text(T(loc, "core.dialog.close"))
			m.raw(`</a>`)
		}
		m.raw(`</div></div></div>`)
	})
}
