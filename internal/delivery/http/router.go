package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rizzedin/rizzedin-backend/internal/delivery/http/handler"
	"github.com/rizzedin/rizzedin-backend/internal/delivery/http/middleware"
)

type Router struct {
	profileHandler *handler.ProfileHandler
	feedHandler    *handler.FeedHandler
	swipeHandler   *handler.SwipeHandler
	chatHandler    *handler.ChatHandler
	matchHandler   *handler.MatchHandler
	personaHandler *handler.PersonaHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	chatHandler *handler.ChatHandler,
	matchHandler *handler.MatchHandler,
	personaHandler *handler.PersonaHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		profileHandler: profileHandler,
		feedHandler:    feedHandler,
		swipeHandler:   swipeHandler,
		chatHandler:    chatHandler,
		matchHandler:   matchHandler,
		personaHandler: personaHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.POST("/complete-onboarding", r.profileHandler.CompleteOnboarding)
				profile.POST("/refresh", r.profileHandler.RefreshEnrichment)
				profile.PUT("/persona-prompt", r.profileHandler.SetPersonaPrompt)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("/recommendations", r.feedHandler.GetRecommendations)
				feed.GET("/leaderboard", r.feedHandler.GetLeaderboard)
			}

			// Swipe routes
			protected.POST("/swipe", r.swipeHandler.CreateSwipe)

			// Chat routes
			chats := protected.Group("/chats")
			{
				chats.GET("", r.chatHandler.ListChats)
				chats.GET("/with/:user_id", r.chatHandler.GetChatWithUser)
				chats.POST("/with/:user_id/messages", r.chatHandler.SendToUser)
				chats.GET("/:chat_id", r.chatHandler.GetChat)
				chats.POST("/:chat_id/messages", r.chatHandler.SendToChat)
				chats.POST("/sessions", r.chatHandler.NewPracticeSession)
			}

			// Match routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.ListMatches)
				matches.GET("/:match_id", r.matchHandler.GetMatch)
				matches.POST("/:match_id/approve", r.matchHandler.ApproveMatch)
			}

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(r.authMiddleware.RequireAdmin())
			{
				admin.POST("/personas", r.personaHandler.ImportPersona)
				admin.GET("/personas", r.personaHandler.ListPersonas)
				admin.DELETE("/personas/:persona_id", r.personaHandler.DeletePersona)
			}
		}
	}

	return router
}
