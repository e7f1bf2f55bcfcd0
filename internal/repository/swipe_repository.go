package repository

import (
	"context"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

type SwipeRepository interface {
	// Upsert inserts the swipe or, when the pair was swiped before,
	// overwrites direction and timestamp. Returns true when the row is new.
	Upsert(ctx context.Context, swipe *domain.Swipe) (bool, error)
	SwipedIDs(ctx context.Context, swiperID string) ([]string, error)
}
