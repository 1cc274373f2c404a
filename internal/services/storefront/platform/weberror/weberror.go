// Package weberror renders visitor-facing error responses for storefront
// modules.
package weberror

import (
	"net/http"
	"strings"

	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/i18n"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/pagerender"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
	"go.uber.org/zap"
)

// PublicKey returns the localization key shown for err.
func PublicKey(err error) string {
	if key := apperrors.LocalizationKey(err); key != "" {
		return key
	}
	switch apperrors.HTTPStatus(err) {
	case http.StatusNotFound:
		return "errors.not_found"
	case http.StatusServiceUnavailable:
		return "errors.unavailable"
	default:
		return "errors.internal"
	}
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc i18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if localized := strings.TrimSpace(loc.Sprintf(PublicKey(err))); localized != "" {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteModuleError writes err as an out-of-band error toast for htmx,
// a flash plus redirect for plain form posts, or a text response otherwise.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if statusCode >= http.StatusInternalServerError {
		deps.Log().Warn("request failed",
			zap.Error(err),
			zap.Int("status", statusCode),
			zap.String("request_id", httpx.RequestIDFrom(r)),
		)
	}

	loc, _ := i18n.ResolveLocalizer(w, r)
	message := PublicMessage(loc, err)
	switch {
	case httpx.IsHTMXRequest(r):
		w.Header().Set("HX-Reswap", "none")
		toast := templates.Toast(templates.ToastView{Kind: templates.ToastError, Text: message}, true)
		if renderErr := pagerender.WriteFragment(w, r, statusCode, toast); renderErr != nil {
			deps.Log().Warn("render error toast", zap.Error(renderErr))
		}
	case r != nil && requestmeta.IsMutation(r):
		flash.Write(w, r, deps.SchemePolicy, flash.Notice{Kind: flash.KindError, Key: PublicKey(err)})
		httpx.WriteRedirect(w, r, routepath.Root)
	default:
		http.Error(w, message, statusCode)
	}
}
