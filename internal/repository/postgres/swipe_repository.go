package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

// Upsert keeps one live row per (swiper, swiped) pair; a repeat swipe only
// refreshes direction and timestamp. xmax = 0 distinguishes insert from
// conflict-update.
func (r *swipeRepository) Upsert(ctx context.Context, swipe *domain.Swipe) (bool, error) {
	query := `
		INSERT INTO swipes (swiper_id, swiped_id, direction)
		VALUES ($1, $2, $3)
		ON CONFLICT (swiper_id, swiped_id)
		DO UPDATE SET direction = EXCLUDED.direction, created_at = NOW()
		RETURNING created_at, (xmax = 0) AS inserted
	`
	var inserted bool
	err := r.db.QueryRowContext(ctx, query, swipe.SwiperID, swipe.SwipedID, swipe.Direction).
		Scan(&swipe.CreatedAt, &inserted)
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (r *swipeRepository) SwipedIDs(ctx context.Context, swiperID string) ([]string, error) {
	var ids []string
	query := `SELECT swiped_id FROM swipes WHERE swiper_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, swiperID)
	return ids, err
}
