package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// rateLimited counts rejected requests per named bucket.
var rateLimited = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by a rate-limit bucket.",
	},
	[]string{"bucket"},
)

// KeyFunc maps a request to the identity its bucket is keyed by.
type KeyFunc func(*gin.Context) string

// KeyByUserOrIP keys authenticated requests by player ("user:<id>") and
// anonymous ones by client address ("ip:<addr>").
func KeyByUserOrIP() KeyFunc {
	return func(c *gin.Context) string {
		if uid := userIDFromCtx(c); uid != "" {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a process-local token bucket per key. The router builds one
// for ordinary API traffic and a stricter one for routes that call the
// language-model oracle, since every scoring or generation request is billed.
//
// Buckets idle for longer than ttl are swept at most once per sweepEvery.
type RateLimiter struct {
	name  string
	rps   rate.Limit
	burst int
	keyFn KeyFunc

	mu        sync.Mutex
	visitors  map[string]*visitor
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

const sweepEvery = time.Minute

// NewRateLimiter returns a limiter named name (the metrics label) refilling
// rps tokens per second up to burst. A burst below 1 is raised to 1.
func NewRateLimiter(name string, rps float64, burst int, keyFn KeyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		name:     name,
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
		now:      time.Now,
	}
}

// limiterFor returns the bucket for key, creating it on first use.
func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Sweep before the lookup so a stale bucket for key starts fresh.
	if now.Sub(rl.lastSweep) >= sweepEvery {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked the request as a
// replay of a stored response.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler enforces the limit. Replays skip the bucket. A rejected request
// gets 429 with the standard error envelope and a Retry-After header in
// whole seconds until the next token.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		lim := rl.limiterFor(rl.keyFn(c))
		now := rl.now()
		res := lim.ReserveN(now, 1)
		if res.OK() && res.DelayFrom(now) == 0 {
			c.Next()
			return
		}
		wait := time.Minute
		if res.OK() {
			wait = res.DelayFrom(now)
			res.CancelAt(now)
		}

		rateLimited.WithLabelValues(rl.name).Inc()
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		abortJSON(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
	}
}
