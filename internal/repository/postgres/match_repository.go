package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	match.User1ID, match.User2ID = domain.NormalizePair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (id, user1_id, user2_id, user1_approved, user2_approved, both_approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		match.ID, match.User1ID, match.User2ID,
		match.User1Approved, match.User2Approved, match.BothApproved,
	).Scan(&match.CreatedAt)
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE id = $1`
	if err := r.db.GetContext(ctx, &match, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error) {
	user1ID, user2ID = domain.NormalizePair(user1ID, user2ID)

	var match domain.Match
	query := `SELECT * FROM matches WHERE user1_id = $1 AND user2_id = $2`
	if err := r.db.GetContext(ctx, &match, query, user1ID, user2ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *matchRepository) UpdateApproval(ctx context.Context, match *domain.Match) error {
	query := `
		UPDATE matches
		SET user1_approved = $2, user2_approved = $3,
		    both_approved = $2 AND $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, match.ID, match.User1Approved, match.User2Approved)
	if err != nil {
		return err
	}
	match.BothApproved = match.User1Approved && match.User2Approved
	return expectRow(result, domain.ErrMatchNotFound)
}
