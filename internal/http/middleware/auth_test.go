package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken(testSecret, "u1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	uid, err := ParseToken(testSecret, tok)
	if err != nil || uid != "u1" {
		t.Fatalf("ParseToken = %q, %v", uid, err)
	}

	if _, err := ParseToken([]byte("other"), tok); err == nil {
		t.Fatalf("wrong secret must fail")
	}

	expired, _ := IssueToken(testSecret, "u1", -time.Minute)
	if _, err := ParseToken(testSecret, expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}})
	raw, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := ParseToken(testSecret, raw); err == nil {
		t.Fatalf("alg=none must be rejected")
	}
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	valid, _ := IssueToken(testSecret, "u-token", time.Hour)
	expired, _ := IssueToken(testSecret, "u-token", -time.Minute)

	tests := []struct {
		name   string
		opts   AuthOptions
		header map[string]string
		status int
		user   string
	}{
		{"bearer", AuthOptions{Secret: testSecret}, map[string]string{"Authorization": "Bearer " + valid}, http.StatusOK, "u-token"},
		{"lowercase scheme", AuthOptions{Secret: testSecret}, map[string]string{"Authorization": "bearer " + valid}, http.StatusOK, "u-token"},
		{"token wins over dev header", AuthOptions{Secret: testSecret, AllowDevHeader: true}, map[string]string{"Authorization": "Bearer " + valid, HeaderUserID: "dev"}, http.StatusOK, "u-token"},
		{"dev header", AuthOptions{AllowDevHeader: true}, map[string]string{HeaderUserID: " dev "}, http.StatusOK, "dev"},
		{"dev header disabled", AuthOptions{Secret: testSecret}, map[string]string{HeaderUserID: "dev"}, http.StatusUnauthorized, ""},
		{"expired", AuthOptions{Secret: testSecret}, map[string]string{"Authorization": "Bearer " + expired}, http.StatusUnauthorized, ""},
		{"garbage", AuthOptions{Secret: testSecret}, map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"wrong scheme", AuthOptions{Secret: testSecret}, map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized, ""},
		{"bearer without secret", AuthOptions{AllowDevHeader: true}, map[string]string{"Authorization": "Bearer " + valid}, http.StatusUnauthorized, ""},
		{"nothing", AuthOptions{Secret: testSecret, AllowDevHeader: true}, nil, http.StatusUnauthorized, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID())
			r.Use(Auth(tc.opts))
			r.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, userIDFromCtx(c)) })

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.status, w.Body.String())
			}
			if tc.status == http.StatusOK && w.Body.String() != tc.user {
				t.Fatalf("user = %q, want %q", w.Body.String(), tc.user)
			}
			if tc.status == http.StatusUnauthorized {
				var body map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["code"] != "unauthorized" {
					t.Fatalf("unexpected body %s", w.Body.String())
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	check := func(_ context.Context, uid string) (bool, error) {
		switch uid {
		case "root":
			return true, nil
		case "broken":
			return false, errors.New("db down")
		}
		return false, nil
	}

	r := gin.New()
	admin := r.Group("/admin", Auth(AuthOptions{AllowDevHeader: true}), RequireAdmin(check))
	admin.POST("/users", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for user, want := range map[string]int{
		"root":   http.StatusCreated,
		"player": http.StatusForbidden,
		"broken": http.StatusInternalServerError,
		"":       http.StatusUnauthorized,
	} {
		req := httptest.NewRequest(http.MethodPost, "/admin/users", nil)
		if user != "" {
			req.Header.Set(HeaderUserID, user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("user %q: status = %d, want %d", user, w.Code, want)
		}
	}

	// Without Auth in front there is no identity.
	bare := gin.New()
	bare.GET("/x", RequireAdmin(check), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	bare.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
