// Leaderboard HTTP handlers.
//
//   - GET  /leaderboards/{category}?timeframe=              (ranked, ETag support)
//   - POST /admin/leaderboards/{category}/refresh?date=     (re-aggregate a day)
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/services"
)

// RefreshLeaderboardResponse acknowledges a completed aggregation.
type RefreshLeaderboardResponse struct {
	Category domain.Category `json:"category" example:"tiny_story"`
	Date     string          `json:"date"     example:"2025-03-09"`
}

// GetLeaderboard godoc
// @ID          getLeaderboard
// @Summary     Leaderboard
// @Description Ranks players by summed score (initial score plus votes) over a timeframe ending yesterday.
// @Description Supports weak ETag via If-None-Match and may return 304. The ETag changes when entries
// @Description are re-aggregated or a ranked player renames.
// @Tags        Leaderboards
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"lb:tiny_story:2025-03-03:2025-03-09:12:1741564800000000000\")
// @Param       category       path    string  true  "Category"                     example(tiny_story)
// @Param       timeframe      query   string  false "daily, weekly, monthly or all_time"  default(daily)
//
// @Success     200  {object}  services.Leaderboard
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown category or timeframe"
// @Router      /leaderboards/{category} [get]
func (h *Handlers) GetLeaderboard(c *gin.Context) {
	ctx := c.Request.Context()
	cat, valid := categoryParam(c)
	if !valid {
		return
	}
	tf := strings.TrimSpace(c.DefaultQuery("timeframe", services.TimeframeDaily))
	today := h.today()

	// ETag pre-check (best effort).
	if h.stats != nil {
		if start, end, err := h.svc.Leaderboards.Window(tf, today); err == nil {
			if count, maxTS, err := h.stats(ctx, cat, start, end); err == nil {
				var ts int64
				if maxTS != nil {
					ts = maxTS.UnixNano()
				}
				etag := fmt.Sprintf(`W/"lb:%s:%s:%s:%d:%d"`, cat, start, end, count, ts)
				c.Header("ETag", etag)
				if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
					c.Status(http.StatusNotModified)
					return
				}
			}
		}
	}

	lb, err := h.svc.Leaderboards.Query(ctx, cat, tf, today)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, lb)
}

// RefreshLeaderboard godoc
// @ID          refreshLeaderboard
// @Summary     Re-aggregate a leaderboard day
// @Description Recomputes the daily entries of a category. Defaults to yesterday. Admin only.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
//
// @Param       category  path   string  true   "Category"    example(tiny_story)
// @Param       date      query  string  false  "YYYY-MM-DD"  example(2025-03-09)
//
// @Success     200  {object}  handlers.RefreshLeaderboardResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown category or bad date"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an admin"
// @Router      /admin/leaderboards/{category}/refresh [post]
func (h *Handlers) RefreshLeaderboard(c *gin.Context) {
	cat, valid := categoryParam(c)
	if !valid {
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = h.clock.Yesterday()
	}
	if err := h.svc.Leaderboards.UpdateDaily(c.Request.Context(), cat, date); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, RefreshLeaderboardResponse{Category: cat, Date: date})
}
