package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizzedin/rizzedin-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// ListMatches handles GET /matches
// @Summary List my matches
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {array} match.MatchView
// @Failure 401 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	views, err := h.matchUseCase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetMatch handles GET /matches/:match_id
// @Summary Get one match
// @Tags match
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Success 200 {object} match.MatchView
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.matchUseCase.Get(c.Request.Context(), c.Param("match_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ApproveMatch handles POST /matches/:match_id/approve
// @Summary Approve a match
// @Description Record the caller's approval; contact unlocks when both sides approve
// @Tags match
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Success 200 {object} domain.Match
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id}/approve [post]
func (h *MatchHandler) ApproveMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	m, err := h.matchUseCase.Approve(c.Request.Context(), c.Param("match_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
