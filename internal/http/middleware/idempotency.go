package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey carries the client's retry key. Clients reuse the key
// when retrying a vote so a dropped response never costs a second vote.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // a stored response exists
	ctxKeyRateBypass = "rate.bypass" // RateLimiter skips the request
)

var defaultIdemPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key, if the request carried one.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, _ := c.Get(ctxKeyIdemKey)
	s := asString(v)
	return s, s != ""
}

// IsReplay reports whether a stored response exists for the request's key.
func IsReplay(c *gin.Context) bool {
	v, _ := c.Get(ctxKeyIdemReplay)
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures key validation. Expiry belongs to the lookup.
type IdempotencyOptions struct {
	MaxLen  int              // default 200
	Pattern *regexp.Regexp   // default ^[A-Za-z0-9._~\-:]+$
	Now     func() time.Time // default time.Now
}

// IdempotencyLookup reports whether an unexpired response is stored for
// (userID, scope, key). Scope is the ":id" route parameter, the submission
// a vote targets.
type IdempotencyLookup func(ctx context.Context, userID, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates Idempotency-Key on unsafe methods and stashes
// it for the handler. When lookup finds a stored response for the
// authenticated player, the request is flagged as a replay and exempted from
// rate limiting; the handler serves the stored body. A malformed key is 400
// bad_idempotency_key. Lookup failures are logged and the request proceeds
// as a first attempt.
//
// Install after Auth so the player id is known.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultIdemPattern
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			abortJSON(c, http.StatusBadRequest, "bad_idempotency_key", "invalid Idempotency-Key")
			return
		}
		c.Set(ctxKeyIdemKey, key)

		uid := userIDFromCtx(c)
		if lookup != nil && uid != "" {
			exists, err := lookup(c.Request.Context(), uid, c.Param("id"), key, now().UTC())
			switch {
			case err != nil:
				LoggerFrom(c).Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
			case exists:
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}
		c.Next()
	}
}

func isSafeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}

// userIDFromCtx returns the id stored by Auth, or "" when unauthenticated.
func userIDFromCtx(c *gin.Context) string {
	v, _ := c.Get(UserIDKey)
	return asString(v)
}
