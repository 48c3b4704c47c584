package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS      bool          // only when traffic is HTTPS end-to-end
	HSTSMaxAge      time.Duration // default 180 days
	NoStore         bool          // Cache-Control: no-store on every response
	NoStorePrefixes []string      // or only on paths below these prefixes
	EnablePolicy    bool          // Permissions-Policy and cross-domain policy
}

type header struct{ name, value string }

// SecurityHeaders hardens JSON responses. nosniff, frame denial and
// no-referrer are always sent. Player-private paths (NoStorePrefixes, e.g.
// /me) are marked no-store; leaderboards stay cacheable behind their ETag.
// HSTS is only emitted on HTTPS requests, directly or via X-Forwarded-Proto.
// There is no CSP: the Swagger UI is the only HTML served.
//
// X-Request-ID, when already set by RequestID, is appended to
// Access-Control-Expose-Headers so browser clients can quote it.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	base := []header{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
	}
	if opt.EnablePolicy {
		base = append(base,
			header{"Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()"},
			header{"X-Permitted-Cross-Domain-Policies", "none"},
		)
	}
	noStore := []header{
		{"Cache-Control", "no-store"},
		{"Pragma", "no-cache"},
		{"Expires", "0"},
	}

	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = 180 * 24 * time.Hour
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range base {
			h.Set(kv.name, kv.value)
		}
		if opt.NoStore || hasAnyPrefix(c.Request.URL.Path, opt.NoStorePrefixes) {
			for _, kv := range noStore {
				h.Set(kv.name, kv.value)
			}
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		if h.Get(requestIDHeader) != "" {
			exposeHeader(h, requestIDHeader)
		}
		c.Next()
	}
}

// exposeHeader adds name to Access-Control-Expose-Headers unless present.
func exposeHeader(h http.Header, name string) {
	const key = "Access-Control-Expose-Headers"
	switch cur := h.Get(key); {
	case cur == "":
		h.Set(key, name)
	case !strings.Contains(cur, name):
		h.Set(key, cur+", "+name)
	}
}

// isHTTPS reports whether the request arrived over TLS, directly or through
// a proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
