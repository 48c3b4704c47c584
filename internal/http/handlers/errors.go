// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Transport-level failures (malformed JSON, bad path parameters, routing) use
// the generic codes below. Service failures carry their own stable code
// (e.g. "quota_exceeded", "self_vote") which failService echoes unchanged,
// choosing the status from the error's kind.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "quota_exceeded",
//	  "message": "no votes left in this category"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/phrase-craze-backend/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// statusForKind maps a service error kind to an HTTP status.
func statusForKind(k services.Kind) int {
	switch k {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindDependency:
		return http.StatusServiceUnavailable
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// failService translates a service error into an error envelope.
// Unclassified errors become a generic 500; their cause is only logged.
func failService(c *gin.Context, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		failWithCause(c, http.StatusInternalServerError, ErrCodeInternal, "internal error", err)
		return
	}
	failWithCause(c, statusForKind(se.Kind), se.Code, se.Message, err)
}
