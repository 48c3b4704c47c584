// Challenge HTTP handlers.
//
// This file exposes the read side of the daily challenge:
//   - GET /categories                (list)
//   - GET /challenges/{category}     (today's prompt, generated on first use)
//   - GET /previews/{challenge_id}   (score-first preview status)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// CategoryView is a category with its display name.
type CategoryView struct {
	ID   domain.Category `json:"id"   example:"tiny_story"`
	Name string          `json:"name" example:"Tiny Story"`
}

// ListCategoriesResponse lists every category in display order.
type ListCategoriesResponse struct {
	Categories []CategoryView `json:"categories"`
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List categories
// @Description Returns the nine challenge categories in display order.
// @Tags        Challenges
// @Produce     json
// @Success     200  {object}  handlers.ListCategoriesResponse
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	out := make([]CategoryView, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		out = append(out, CategoryView{ID: cat, Name: cat.DisplayName()})
	}
	ok(c, http.StatusOK, ListCategoriesResponse{Categories: out})
}

// GetChallenge godoc
// @ID          getChallenge
// @Summary     Today's challenge
// @Description Returns today's prompt for a category. The first request of the day generates it.
// @Tags        Challenges
// @Produce     json
// @Security    BearerAuth
//
// @Param       X-User-ID  header  string  false "User ID (dev header)"  example(user123)
// @Param       category   path    string  true  "Category"              example(tiny_story)
//
// @Success     200  {object}  domain.Challenge
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown category"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     503  {object}  handlers.ErrorResponse  "Prompt generation unavailable"
// @Router      /challenges/{category} [get]
func (h *Handlers) GetChallenge(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	cat, valid := categoryParam(c)
	if !valid {
		return
	}
	ch, err := h.svc.Challenges.GetOrCreate(c.Request.Context(), cat, h.today())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ch)
}

// GetPreviewStatus godoc
// @ID          getPreviewStatus
// @Summary     Score preview status
// @Description Reports whether the player already used the score-first preview on a challenge, and its result.
// @Tags        Submissions
// @Produce     json
// @Security    BearerAuth
//
// @Param       X-User-ID     header  string  false "User ID (dev header)"  example(user123)
// @Param       challenge_id  path    string  true  "Challenge ID (UUID)"   format(uuid)
//
// @Success     200  {object}  services.PreviewStatus
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown challenge"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /previews/{challenge_id} [get]
func (h *Handlers) GetPreviewStatus(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	chID := strings.TrimSpace(c.Param("challenge_id"))
	st, err := h.svc.Submissions.PreviewStatus(c.Request.Context(), uid, chID)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}
