// Player HTTP handlers.
//
// This file exposes the caller's profile and the admin user operations:
//   - GET  /me                              (profile and streaks)
//   - POST /me/checkin                      (record today's login)
//   - PUT  /me/name                         (choose or change display name)
//   - GET  /me/name/suggestions             (random unused names to pick from)
//   - POST /admin/users                     (create)
//   - POST /admin/users/{id}/backfill-names (rewrite submission usernames)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RenameRequest is the JSON payload for choosing a display name.
type RenameRequest struct {
	Name string `json:"name" binding:"required" example:"ada_l"`
}

// NameSuggestionsResponse lists display names the player may pick.
type NameSuggestionsResponse struct {
	Names []string `json:"names" example:"Adventurous Banana,Bold Penguin,Jolly Comet"`
}

// CreateUserRequest is the JSON payload for the admin create-user endpoint.
type CreateUserRequest struct {
	Email string `json:"email" binding:"required" example:"ada@example.com"`
	// Name is optional; players can pick one later.
	Name  string `json:"name"  example:"ada_l"`
	Admin bool   `json:"admin" example:"false"`
}

// BackfillResponse reports how many submissions were relabeled.
type BackfillResponse struct {
	Updated int64 `json:"updated" example:"3"`
}

// GetMe godoc
// @ID          getMe
// @Summary     Current player
// @Tags        Players
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header  string  false "User ID (dev header)"  example(user123)
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /me [get]
func (h *Handlers) GetMe(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	u, err := h.svc.Users.Get(c.Request.Context(), uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// CheckIn godoc
// @ID          checkIn
// @Summary     Daily check-in
// @Description Records today's login and returns the updated login streak. Repeating it on the same day is a no-op.
// @Tags        Players
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header  string  false "User ID (dev header)"  example(user123)
// @Success     200  {object}  services.CheckInResult
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /me/checkin [post]
func (h *Handlers) CheckIn(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	res, err := h.svc.Users.CheckIn(c.Request.Context(), uid, h.today())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// Rename godoc
// @ID          renameMe
// @Summary     Choose display name
// @Description Sets the caller's public name. Past submissions keep the name they were written under.
// @Tags        Players
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       X-User-ID  header  string  false "User ID (dev header)"  example(user123)
// @Param       body       body    handlers.RenameRequest  true  "New name"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid name"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     409  {object}  handlers.ErrorResponse  "Name taken"
// @Router      /me/name [put]
func (h *Handlers) Rename(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name is required")
		return
	}
	u, err := h.svc.Users.Rename(c.Request.Context(), uid, req.Name)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// SuggestNames godoc
// @ID          suggestNames
// @Summary     Suggest display names
// @Description Returns up to three random "Adjective Noun" names that no player uses yet. Pick one with PUT /me/name.
// @Tags        Players
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header  string  false "User ID (dev header)"  example(user123)
// @Success     200  {object}  handlers.NameSuggestionsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /me/name/suggestions [get]
func (h *Handlers) SuggestNames(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	names, err := h.svc.Users.SuggestNames(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, NameSuggestionsResponse{Names: names})
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a player
// @Description Registers a player. Regular sign-up happens in the external auth flow. Admin only.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateUserRequest  true  "New player"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid email or name"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an admin"
// @Failure     409  {object}  handlers.ErrorResponse  "Email or name taken"
// @Router      /admin/users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email is required")
		return
	}
	u, err := h.svc.Users.Create(c.Request.Context(), req.Email, req.Name, req.Admin)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// BackfillNames godoc
// @ID          backfillNames
// @Summary     Relabel a player's submissions
// @Description Rewrites the username snapshot of every submission of a player to their current name. Admin only.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.BackfillResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Player has no name"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an admin"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /admin/users/{id}/backfill-names [post]
func (h *Handlers) BackfillNames(c *gin.Context) {
	n, err := h.svc.Users.BackfillSubmissionNames(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, BackfillResponse{Updated: n})
}
