package repository

import (
	"context"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

// ConversationOutcome carries the per-user stats written after a completed
// conversation. The values are derived from the row the repository locks,
// so concurrent evaluations for the same user cannot clobber each other.
type ConversationOutcome struct {
	EloDelta          int
	Approved          bool
	AvgRubric         domain.Rubric
	ConversationsDone int
	ProfileScore      float64
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.UserProfile) error
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetAll(ctx context.Context) ([]*domain.UserProfile, error)
	GetByRole(ctx context.Context, role int) ([]*domain.UserProfile, error)
	TopByElo(ctx context.Context, limit int) ([]*domain.UserProfile, error)
	ExistsByLinkedinURL(ctx context.Context, url string) (bool, error)

	UpdateOnboarding(ctx context.Context, user *domain.UserProfile) error
	UpdateEnrichment(ctx context.Context, user *domain.UserProfile) error
	UpdateVector(ctx context.Context, id string, vector []float64) error
	UpdatePersonaPrompt(ctx context.Context, id string, prompt string) error

	// ApplySwipeOutcome atomically bumps the swiped user's counters and ELO.
	// Left swipes floor the rating at domain.MinEloScore.
	ApplySwipeOutcome(ctx context.Context, id string, eloDelta int, direction string) error
	// ApplyConversationOutcome locks the user's row, lets apply compute the
	// post-evaluation stats from the current values and persists them in the
	// same transaction.
	ApplyConversationOutcome(ctx context.Context, id string, apply func(*domain.UserProfile) ConversationOutcome) error
	IncrementMatchCount(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
}
