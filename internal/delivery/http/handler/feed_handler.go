package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rizzedin/rizzedin-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// GetRecommendations handles GET /feed/recommendations
// @Summary Get feed recommendations
// @Description Ranked candidate profiles for the current user
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max candidates" default(20)
// @Success 200 {array} domain.UserProfile
// @Failure 401 {object} ErrorResponse
// @Router /feed/recommendations [get]
func (h *FeedHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	candidates, err := h.feedUseCase.GetRecommendations(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// GetLeaderboard handles GET /feed/leaderboard
// @Summary Get the ELO leaderboard
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Success 200 {array} feed.LeaderboardEntry
// @Failure 401 {object} ErrorResponse
// @Router /feed/leaderboard [get]
func (h *FeedHandler) GetLeaderboard(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	entries, err := h.feedUseCase.Leaderboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
