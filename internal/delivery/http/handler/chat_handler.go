package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizzedin/rizzedin-backend/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// ListChats handles GET /chats
// @Summary List my conversations
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Success 200 {array} chat.ChatSummary
// @Failure 401 {object} ErrorResponse
// @Router /chats [get]
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.chatUseCase.ListChats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetChatWithUser handles GET /chats/with/:user_id
// @Summary Open the conversation with a user's persona
// @Description Returns the canonical chat for the pair, creating it on first open
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "Swiped user ID"
// @Success 200 {object} domain.Chat
// @Failure 401 {object} ErrorResponse
// @Router /chats/with/{user_id} [get]
func (h *ChatHandler) GetChatWithUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conv, err := h.chatUseCase.GetOrCreate(c.Request.Context(), userID, c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// SendToUser handles POST /chats/with/:user_id/messages
// @Summary Send a message to a user's persona
// @Description Appends the message and returns the AI reply, or the verdict on the 10th message
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user_id path string true "Swiped user ID"
// @Param request body sendMessageRequest true "Message"
// @Success 200 {object} chat.SendResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /chats/with/{user_id}/messages [post]
func (h *ChatHandler) SendToUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.chatUseCase.SendMessage(c.Request.Context(), userID, c.Param("user_id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetChat handles GET /chats/:chat_id
// @Summary Get a conversation by id
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param chat_id path string true "Chat ID"
// @Success 200 {object} domain.Chat
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /chats/{chat_id} [get]
func (h *ChatHandler) GetChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conv, err := h.chatUseCase.GetChat(c.Request.Context(), c.Param("chat_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// SendToChat handles POST /chats/:chat_id/messages
// @Summary Send a message in a specific session
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param chat_id path string true "Chat ID"
// @Param request body sendMessageRequest true "Message"
// @Success 200 {object} chat.SendResult
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /chats/{chat_id}/messages [post]
func (h *ChatHandler) SendToChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.chatUseCase.SendToSession(c.Request.Context(), c.Param("chat_id"), userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type newSessionRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// NewPracticeSession handles POST /chats/sessions
// @Summary Open a practice session (admin)
// @Description Starts an extra conversation with the same persona
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body newSessionRequest true "Target user"
// @Success 201 {object} domain.Chat
// @Failure 403 {object} ErrorResponse
// @Router /chats/sessions [post]
func (h *ChatHandler) NewPracticeSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req newSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	conv, err := h.chatUseCase.NewPracticeSession(c.Request.Context(), userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}
