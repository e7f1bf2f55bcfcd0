package repository

import (
	"context"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) error
	GetByID(ctx context.Context, id string) (*domain.Chat, error)
	GetByPair(ctx context.Context, swiperID, swipedID string, session int) (*domain.Chat, error)
	ListBySwiper(ctx context.Context, swiperID string) ([]*domain.Chat, error)
	CountSessions(ctx context.Context, swiperID, swipedID string) (int, error)

	// AppendMessage appends to the message log and moves the chat to the
	// given state/count. Callers hold the per-chat lock.
	AppendMessage(ctx context.Context, chatID string, msg domain.Message, messageCount int, state domain.ChatState) error
	// SetDecision records the evaluation verdict and freezes the chat.
	SetDecision(ctx context.Context, chatID, decision, reasoning string, rubric domain.Rubric) error
}
