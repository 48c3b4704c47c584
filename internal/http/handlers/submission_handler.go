// Submission HTTP handlers.
//
//   - POST /submissions              (submit, or preview with score_first)
//   - GET  /votes/{category}/pair    (two submissions of the voting day)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/services"
)

// SubmitRequest is the JSON payload for submitting a phrase.
type SubmitRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required" example:"0b6f7a7e-4f0c-4c59-9d0e-3a2c1f7d9b11"`
	Phrase      string `json:"phrase"       binding:"required" example:"The last leaf let go, and the tree finally slept."`
	// ScoreFirst previews the score without storing the submission.
	ScoreFirst bool `json:"score_first" example:"false"`
}

// VotingPairResponse carries the submissions a player may vote on.
type VotingPairResponse struct {
	Category    domain.Category     `json:"category"   example:"tiny_story"`
	VotingDay   string              `json:"voting_day" example:"2025-03-09"`
	Submissions []domain.Submission `json:"submissions"`
}

// Submit godoc
// @ID          submitPhrase
// @Summary     Submit a phrase
// @Description Scores the phrase and stores it as the player's final submission for today's challenge.
// @Description With score_first the score is only previewed (200) and a marker is kept; the next
// @Description submit of the same phrase is flagged scored_first.
// @Tags        Submissions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       X-User-ID  header  string  false "User ID (dev header)"  example(user123)
// @Param       body       body    handlers.SubmitRequest  true  "Submission payload"
//
// @Success     201  {object}  services.SubmissionResult  "Stored"
// @Success     200  {object}  services.SubmissionResult  "Preview only"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid phrase or challenge"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     409  {object}  handlers.ErrorResponse  "Already submitted, challenge closed or preview used"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     503  {object}  handlers.ErrorResponse  "Scoring unavailable"
// @Router      /submissions [post]
func (h *Handlers) Submit(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "challenge_id and phrase are required")
		return
	}

	res, err := h.svc.Submissions.Submit(c.Request.Context(), services.SubmitInput{
		UserID:      uid,
		ChallengeID: strings.TrimSpace(req.ChallengeID),
		Phrase:      req.Phrase,
		ScoreFirst:  req.ScoreFirst,
	}, h.today())
	if err != nil {
		failService(c, err)
		return
	}
	status := http.StatusCreated
	if res.Preview {
		status = http.StatusOK
	}
	ok(c, status, res)
}

// GetVotingPair godoc
// @ID          getVotingPair
// @Summary     Submissions to vote on
// @Description Returns two random submissions of yesterday's challenge in a category, excluding the caller's own.
// @Tags        Votes
// @Produce     json
// @Security    BearerAuth
//
// @Param       X-User-ID  header  string  false "User ID (dev header)"  example(user123)
// @Param       category   path    string  true  "Category"              example(tiny_story)
//
// @Success     200  {object}  handlers.VotingPairResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown category"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Not enough submissions"
// @Router      /votes/{category}/pair [get]
func (h *Handlers) GetVotingPair(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	cat, valid := categoryParam(c)
	if !valid {
		return
	}
	today := h.today()
	subs, err := h.svc.Submissions.VotingPair(c.Request.Context(), cat, uid, today)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, VotingPairResponse{
		Category:    cat,
		VotingDay:   clock.AddDays(today, -1),
		Submissions: subs,
	})
}
