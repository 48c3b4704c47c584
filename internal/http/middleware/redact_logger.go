package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Patterns scrubbed from query strings and header values. UUIDs go first:
// the phone pattern would otherwise match their digit groups.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// RedactOptions adds header names (case-insensitive) whose values are
// replaced with "[REDACTED]", on top of Authorization, Cookie and Set-Cookie.
type RedactOptions struct {
	MaskHeaders []string
}

type scrubber struct {
	masked map[string]struct{}
}

func newScrubber(extra []string) scrubber {
	s := scrubber{masked: map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}}
	for _, h := range extra {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			s.masked[h] = struct{}{}
		}
	}
	return s
}

func (scrubber) value(v string) string {
	if v == "" {
		return v
	}
	v = uuidRE.ReplaceAllString(v, "[REDACTED:id]")
	v = emailRE.ReplaceAllString(v, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(v, "[REDACTED:phone]")
}

func (s scrubber) headers(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, ok := s.masked[strings.ToLower(k)]; ok {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = s.value(strings.Join(vv, ", "))
	}
	return out
}

// RedactingLogger writes one structured access log line per request and
// installs the request-scoped logger (request_id, method, route) used by
// LoggerFrom in handlers and log.Ctx in services.
//
// Bodies are never logged, so submitted phrases and player e-mails in
// payloads stay out of the logs. Query strings and headers are scrubbed of
// ids, e-mail addresses and phone numbers; credentials are masked entirely.
// The line is logged at info, warn for 4xx, error for 5xx or when handlers
// attached gin errors.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	scrub := newScrubber(opts.MaskHeaders)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		rid, _ := c.Get(requestIDKey)
		setLogger(c, log.With().
			Str("request_id", asString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger())

		query := truncate(scrub.value(c.Request.URL.RawQuery), maxQueryLogLength)
		headers := scrub.headers(c.Request.Header)

		c.Next()

		// Re-read: Auth adds the user id to the scoped logger.
		lg := LoggerFrom(c)
		status := c.Writer.Status()

		var ev *zerolog.Event
		switch {
		case len(c.Errors) > 0:
			ev = lg.Error().Str("errors", c.Errors.String())
		case status >= 500:
			ev = lg.Error()
		case status >= 400:
			ev = lg.Warn()
		default:
			ev = lg.Info()
		}
		ev.Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
