// Package flash carries toast notices across a post/redirect/get.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
)

// CookieName is the cookie holding the pending notices.
const CookieName = "sf_flash"

const (
	maxArgs    = 4
	maxNotices = 4
)

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice references a localized message plus its format arguments.
type Notice struct {
	Kind Kind     `json:"kind"`
	Key  string   `json:"key"`
	Args []string `json:"args,omitempty"`
}

// NoticeSuccess creates a success notice for key.
func NoticeSuccess(key string, args ...string) Notice {
	return Notice{Kind: KindSuccess, Key: key, Args: args}
}

// NoticeWarning creates a warning notice for key.
func NoticeWarning(key string, args ...string) Notice {
	return Notice{Kind: KindWarning, Key: key, Args: args}
}

// Write stores notices, in order, for the next page render. Invalid notices
// are dropped; nothing is written when none remain.
func Write(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, notices ...Notice) {
	if w == nil {
		return
	}
	pending := normalizeNotices(notices)
	if len(pending) == 0 {
		return
	}
	payload, err := json.Marshal(pending)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending notices and expires their cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) ([]Notice, bool) {
	if r == nil {
		return nil, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return nil, false
	}
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   policy.IsHTTPS(r),
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
	notices := decodeNotices(cookie.Value)
	return notices, len(notices) > 0
}

func decodeNotices(raw string) []Notice {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(decoded, &notices); err != nil {
		return nil
	}
	return normalizeNotices(notices)
}

func normalizeNotices(notices []Notice) []Notice {
	pending := make([]Notice, 0, len(notices))
	for _, notice := range notices {
		normalized, ok := normalizeNotice(notice)
		if !ok {
			continue
		}
		pending = append(pending, normalized)
		if len(pending) == maxNotices {
			break
		}
	}
	return pending
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	if notice.Key == "" || len(notice.Args) > maxArgs {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
