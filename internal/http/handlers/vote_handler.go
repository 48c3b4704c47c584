// Vote HTTP handlers.
//
//   - POST /submissions/{id}/votes      (cast, idempotent with Idempotency-Key)
//   - GET  /votes/{category}/remaining  (quota left for the voting day)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous vote with the
// same key on the same submission completed, the stored response is returned
// verbatim with `Idempotency-Replayed: true` and no vote is consumed.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/http/middleware"
)

const headerIdempotencyReplayed = "Idempotency-Replayed"

// CastVoteRequest is the JSON payload for casting a vote.
type CastVoteRequest struct {
	// Category the voter believes the submission belongs to.
	Category string `json:"category" binding:"required" example:"tiny_story"`
}

// CastVoteResponse reports the votes left after a successful vote.
type CastVoteResponse struct {
	SubmissionID string          `json:"submission_id" example:"5c2d8f3e-7a1b-4e6f-9c0d-2b3a4e5f6a7b"`
	Category     domain.Category `json:"category"      example:"tiny_story"`
	Remaining    int             `json:"remaining"     example:"4"`
}

// CastVote godoc
// @ID          castVote
// @Summary     Vote for a submission
// @Description Adds one vote to a submission of yesterday's challenge and consumes one unit of the
// @Description caller's daily quota in that category. Supports idempotency via the Idempotency-Key header.
// @Tags        Votes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       X-User-ID        header  string  false "User ID (dev header)"                           example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       id               path    string  true  "Submission ID (UUID)"                            format(uuid)
// @Param       body             body    handlers.CastVoteRequest  true  "Vote payload"
//
// @Success     200  {object}  handlers.CastVoteResponse
// @Header      200  {string}  Idempotency-Replayed  "true when served from idempotency store"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid input or self vote"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Submission not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Quota exceeded or voting closed"
// @Router      /submissions/{id}/votes [post]
func (h *Handlers) CastVote(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	subID := c.Param("id")
	if _, err := uuid.Parse(subID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "submission id must be a UUID")
		return
	}
	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "category is required")
		return
	}
	ctx := c.Request.Context()

	// Replay path.
	idemKey, hasKey := middleware.GetIdempotencyKey(c)
	if hasKey && h.idem != nil {
		if rec, err := h.idem.Get(ctx, uid, subID, idemKey, time.Now().UTC()); err == nil && rec != nil {
			c.Header(headerIdempotencyReplayed, "true")
			c.Data(rec.Status, "application/json; charset=utf-8", []byte(rec.Body))
			return
		}
	}

	cat, _ := domain.ParseCategory(req.Category)
	remaining, err := h.svc.Votes.Cast(ctx, uid, subID, cat, h.today())
	if err != nil {
		failService(c, err)
		return
	}
	resp := CastVoteResponse{SubmissionID: subID, Category: cat, Remaining: remaining}

	// Store path (best effort).
	if hasKey && h.idem != nil {
		if body, err := json.Marshal(resp); err == nil {
			if err := h.idem.Save(ctx, uid, subID, idemKey, http.StatusOK, string(body), h.idemTTL); err != nil {
				lg := middleware.LoggerFrom(c)
				lg.Warn().Err(err).Str("submission_id", subID).Msg("idempotency record not stored")
			}
		}
	}
	ok(c, http.StatusOK, resp)
}

// GetRemainingVotes godoc
// @ID          getRemainingVotes
// @Summary     Remaining votes
// @Description Returns how many votes the caller has left in a category for the current voting day.
// @Tags        Votes
// @Produce     json
// @Security    BearerAuth
//
// @Param       X-User-ID  header  string  false "User ID (dev header)"  example(user123)
// @Param       category   path    string  true  "Category"              example(tiny_story)
//
// @Success     200  {object}  services.Quota
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown category"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /votes/{category}/remaining [get]
func (h *Handlers) GetRemainingVotes(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	cat, valid := categoryParam(c)
	if !valid {
		return
	}
	q, err := h.svc.Votes.Remaining(c.Request.Context(), uid, cat, h.today())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}
