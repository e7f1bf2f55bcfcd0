package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
)

const chatColumns = `
	id, swiper_id, swiped_id, session, messages, message_count, state,
	ai_decision, ai_reasoning, ai_rubric, created_at`

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	query := `
		INSERT INTO ai_chats (id, swiper_id, swiped_id, session, messages, message_count, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		chat.ID, chat.SwiperID, chat.SwipedID, chat.Session,
		chat.Messages, chat.MessageCount, chat.State,
	).Scan(&chat.CreatedAt)
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*domain.Chat, error) {
	var chat domain.Chat
	query := `SELECT ` + chatColumns + ` FROM ai_chats WHERE id = $1`
	if err := r.db.GetContext(ctx, &chat, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetByPair(ctx context.Context, swiperID, swipedID string, session int) (*domain.Chat, error) {
	var chat domain.Chat
	query := `
		SELECT ` + chatColumns + `
		FROM ai_chats
		WHERE swiper_id = $1 AND swiped_id = $2 AND session = $3
	`
	if err := r.db.GetContext(ctx, &chat, query, swiperID, swipedID, session); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) ListBySwiper(ctx context.Context, swiperID string) ([]*domain.Chat, error) {
	var chats []*domain.Chat
	query := `
		SELECT ` + chatColumns + `
		FROM ai_chats
		WHERE swiper_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &chats, query, swiperID)
	return chats, err
}

func (r *chatRepository) CountSessions(ctx context.Context, swiperID, swipedID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM ai_chats WHERE swiper_id = $1 AND swiped_id = $2`
	err := r.db.GetContext(ctx, &count, query, swiperID, swipedID)
	return count, err
}

func (r *chatRepository) AppendMessage(ctx context.Context, chatID string, msg domain.Message, messageCount int, state domain.ChatState) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	query := `
		UPDATE ai_chats
		SET messages = messages || $2::jsonb,
		    message_count = $3,
		    state = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, chatID, payload, messageCount, state)
	if err != nil {
		return err
	}
	return expectRow(result, domain.ErrChatNotFound)
}

func (r *chatRepository) SetDecision(ctx context.Context, chatID, decision, reasoning string, rubric domain.Rubric) error {
	query := `
		UPDATE ai_chats
		SET ai_decision = $2, ai_reasoning = $3, ai_rubric = $4, state = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, chatID, decision, reasoning, rubric, domain.ChatStateTerminal)
	if err != nil {
		return err
	}
	return expectRow(result, domain.ErrChatNotFound)
}

func expectRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
