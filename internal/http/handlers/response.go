// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by all endpoints: the error
// envelope, the 5xx logging done by fail, and thin success writers.
//
// Conventions:
//   - All error responses return an ErrorResponse with a stable `code`.
//   - `fail()` logs 5xx responses with the request-scoped logger.
//   - `ok()` writes success responses.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "already_submitted",
//	  "message": "already submitted for this category today"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/phrase-craze-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: correlation id echoed from X-Request-ID.
//   - Code: stable, machine-readable string (see errors.go and the service
//     error codes).
//   - Message: human-readable description, safe to show to players.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code
	Code string `json:"code" example:"quota_exceeded"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"no votes left in this category"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	failWithCause(c, status, code, msg, nil)
}

// failWithCause is fail with the underlying error attached to the 5xx log
// line. The cause never reaches the client.
func failWithCause(c *gin.Context, status int, code, msg string, cause error) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		ev := lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg)
		if cause != nil {
			ev = ev.Err(cause)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for the router's NoRoute and
// NoMethod handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
