package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
)

const userColumns = `
	id, linkedin_url, age, gender, dating_preference, onboarding_completed,
	name, image, bio, about, experience, education, persona_prompt, role,
	elo_score, profile_score, profile_vector,
	total_right_swipes, total_left_swipes,
	conversations_completed, ai_approvals_received, ai_rejections_received,
	avg_rubric, match_count, created_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.UserProfile) error {
	query := `
		INSERT INTO users (
			id, linkedin_url, age, gender, dating_preference, onboarding_completed,
			name, image, bio, about, experience, education, persona_prompt, role,
			elo_score, profile_vector, avg_rubric
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		user.ID, user.LinkedinURL, user.Age, user.Gender, user.DatingPreference,
		user.OnboardingCompleted, user.Name, user.Image, user.Bio, user.About,
		user.Experience, user.Education, user.PersonaPrompt, user.Role,
		user.EloScore, user.ProfileVector, user.AvgRubric,
	).Scan(&user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*domain.UserProfile, error) {
	var users []*domain.UserProfile
	query := `SELECT ` + userColumns + ` FROM users`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

func (r *userRepository) GetByRole(ctx context.Context, role int) ([]*domain.UserProfile, error) {
	var users []*domain.UserProfile
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &users, query, role)
	return users, err
}

func (r *userRepository) TopByElo(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	var users []*domain.UserProfile
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE onboarding_completed = true AND name IS NOT NULL
		ORDER BY elo_score DESC
		LIMIT $1
	`
	err := r.db.SelectContext(ctx, &users, query, limit)
	return users, err
}

func (r *userRepository) ExistsByLinkedinURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE linkedin_url = $1)`
	err := r.db.GetContext(ctx, &exists, query, url)
	return exists, err
}

func (r *userRepository) UpdateOnboarding(ctx context.Context, user *domain.UserProfile) error {
	query := `
		UPDATE users
		SET linkedin_url = $1, age = $2, gender = $3, dating_preference = $4,
		    onboarding_completed = $5
		WHERE id = $6
	`
	return r.execExpectingRow(ctx, query,
		user.LinkedinURL, user.Age, user.Gender, user.DatingPreference,
		user.OnboardingCompleted, user.ID)
}

func (r *userRepository) UpdateEnrichment(ctx context.Context, user *domain.UserProfile) error {
	query := `
		UPDATE users
		SET name = $1, image = $2, bio = $3, about = $4,
		    experience = $5, education = $6
		WHERE id = $7
	`
	return r.execExpectingRow(ctx, query,
		user.Name, user.Image, user.Bio, user.About,
		user.Experience, user.Education, user.ID)
}

func (r *userRepository) UpdateVector(ctx context.Context, id string, vector []float64) error {
	query := `UPDATE users SET profile_vector = $1 WHERE id = $2`
	return r.execExpectingRow(ctx, query, pq.Float64Array(vector), id)
}

func (r *userRepository) UpdatePersonaPrompt(ctx context.Context, id string, prompt string) error {
	query := `UPDATE users SET persona_prompt = $1 WHERE id = $2`
	return r.execExpectingRow(ctx, query, prompt, id)
}

// ApplySwipeOutcome is a single-statement update so concurrent swipes on the
// same target cannot lose increments. Only left swipes floor the rating.
func (r *userRepository) ApplySwipeOutcome(ctx context.Context, id string, eloDelta int, direction string) error {
	var query string
	if direction == domain.SwipeRight {
		query = `
			UPDATE users
			SET elo_score = elo_score + $1,
			    total_right_swipes = total_right_swipes + 1
			WHERE id = $2
		`
	} else {
		query = `
			UPDATE users
			SET elo_score = GREATEST($3, elo_score + $1),
			    total_left_swipes = total_left_swipes + 1
			WHERE id = $2
		`
		return r.execExpectingRow(ctx, query, eloDelta, id, domain.MinEloScore)
	}
	return r.execExpectingRow(ctx, query, eloDelta, id)
}

// ApplyConversationOutcome recomputes the user's stats against a locked row.
// Evaluations finishing at the same time in different chats serialize here
// instead of overwriting each other's running averages.
func (r *userRepository) ApplyConversationOutcome(ctx context.Context, id string, apply func(*domain.UserProfile) repository.ConversationOutcome) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var user domain.UserProfile
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}

	outcome := apply(&user)
	approvals, rejections := 0, 1
	if outcome.Approved {
		approvals, rejections = 1, 0
	}
	update := `
		UPDATE users
		SET elo_score = elo_score + $1,
		    conversations_completed = $2,
		    ai_approvals_received = ai_approvals_received + $3,
		    ai_rejections_received = ai_rejections_received + $4,
		    avg_rubric = $5,
		    profile_score = $6
		WHERE id = $7
	`
	if _, err := tx.ExecContext(ctx, update,
		outcome.EloDelta, outcome.ConversationsDone, approvals, rejections,
		outcome.AvgRubric, outcome.ProfileScore, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *userRepository) IncrementMatchCount(ctx context.Context, id string) error {
	query := `UPDATE users SET match_count = match_count + 1 WHERE id = $1`
	return r.execExpectingRow(ctx, query, id)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	return r.execExpectingRow(ctx, query, id)
}

func (r *userRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
