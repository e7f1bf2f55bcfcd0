package repository

import (
	"context"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Match, error)
	UpdateApproval(ctx context.Context, match *domain.Match) error
}
