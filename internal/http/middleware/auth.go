// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file authenticates players. A request carries either a bearer token
// (HS256 JWT whose subject is the user id) or, in local development only, an
// X-User-ID header. The resolved id is stored under the "userID" Gin context
// key, which handlers, the rate limiter and the idempotency validator read.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// UserIDKey is the Gin context key holding the authenticated user id.
	UserIDKey = "userID"
	// HeaderUserID is the development-only identity header.
	HeaderUserID = "X-User-ID"
)

// ErrTokenExpired is returned by ParseToken for an expired token.
var ErrTokenExpired = errors.New("token expired")

// Claims is the JWT payload. Subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// AuthOptions configures Auth.
type AuthOptions struct {
	// Secret verifies HS256 bearer tokens. Empty disables bearer auth.
	Secret []byte
	// AllowDevHeader accepts X-User-ID without a token.
	AllowDevHeader bool
}

// IssueToken signs a token for userID valid for ttl.
func IssueToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies raw and returns its subject.
func ParseToken(secret []byte, raw string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// Auth resolves the caller's identity or aborts with 401.
func Auth(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := authenticate(c, opts)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(UserIDKey, uid)
		setLogger(c, LoggerFrom(c).With().Str("user_id", uid).Logger())
		c.Next()
	}
}

func authenticate(c *gin.Context, opts AuthOptions) (string, error) {
	if h := c.GetHeader("Authorization"); h != "" {
		if len(opts.Secret) == 0 {
			return "", errors.New("bearer tokens are not accepted")
		}
		scheme, raw, found := strings.Cut(h, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			return "", errors.New("invalid Authorization header")
		}
		uid, err := ParseToken(opts.Secret, strings.TrimSpace(raw))
		if errors.Is(err, ErrTokenExpired) {
			return "", err
		}
		if err != nil {
			return "", errors.New("invalid token")
		}
		return uid, nil
	}
	if opts.AllowDevHeader {
		if uid := strings.TrimSpace(c.GetHeader(HeaderUserID)); uid != "" {
			return uid, nil
		}
	}
	return "", errors.New("missing credentials")
}

// AdminCheck reports whether userID may use operator endpoints.
type AdminCheck func(ctx context.Context, userID string) (bool, error)

// RequireAdmin aborts with 403 unless isAdmin approves the caller. It must
// run after Auth.
func RequireAdmin(isAdmin AdminCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFromCtx(c)
		if uid == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing credentials")
			return
		}
		allowed, err := isAdmin(c.Request.Context(), uid)
		if err != nil {
			LoggerFrom(c).Error().Err(err).Msg("admin check failed")
			abortJSON(c, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
		if !allowed {
			abortJSON(c, http.StatusForbidden, "forbidden", "admin only")
			return
		}
		c.Next()
	}
}

// abortJSON writes the standard error envelope.
func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}
