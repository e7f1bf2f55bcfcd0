package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "linkedin_url", "age", "gender", "dating_preference", "onboarding_completed",
		"name", "image", "bio", "about", "experience", "education", "persona_prompt", "role",
		"elo_score", "profile_score", "profile_vector",
		"total_right_swipes", "total_left_swipes",
		"conversations_completed", "ai_approvals_received", "ai_rejections_received",
		"avg_rubric", "match_count", "created_at",
	})
}

func TestUserGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM users WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnRows(userRows().AddRow(
			"user-1", "https://linkedin.com/in/u1", 28, "female", "men", true,
			"Dana", nil, "Engineer", nil, `[]`, `[]`, nil, domain.RoleUser,
			1032.0, nil, "{0.12,1,0,0}",
			5, 2, 1, 1, 0,
			`{"engagement":7,"depth":6,"authenticity":8,"respectfulness":9,"compatibility":7,"overall":7}`,
			1, time.Now(),
		))

	user, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", *user.Name)
	assert.Equal(t, 1032.0, user.EloScore)
	assert.Equal(t, 7.0, user.AvgRubric.Overall)
	assert.Equal(t, []float64{0.12, 1, 0, 0}, []float64(user.ProfileVector))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM users WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnRows(userRows())

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySwipeOutcomeRight(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users\s+SET elo_score = elo_score \+ \$1,\s+total_right_swipes = total_right_swipes \+ 1`).
		WithArgs(16, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplySwipeOutcome(context.Background(), "user-1", 16, domain.SwipeRight)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySwipeOutcomeLeftFloorsRating(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users\s+SET elo_score = GREATEST\(\$3, elo_score \+ \$1\)`).
		WithArgs(-8, "user-1", domain.MinEloScore).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplySwipeOutcome(context.Background(), "user-1", -8, domain.SwipeLeft)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyConversationOutcomeApproved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	outcome := repository.ConversationOutcome{
		EloDelta:          13,
		Approved:          true,
		AvgRubric:         domain.NeutralRubric(),
		ConversationsDone: 3,
		ProfileScore:      1180.5,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT .+ FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs("user-1").
		WillReturnRows(userRows().AddRow(
			"user-1", nil, 28, "female", "men", true,
			"Dana", nil, nil, nil, `[]`, `[]`, nil, domain.RoleUser,
			1032.0, nil, nil,
			5, 2, 2, 1, 1,
			`{"engagement":7,"depth":6,"authenticity":8,"respectfulness":9,"compatibility":7,"overall":7}`,
			1, time.Now(),
		))
	mock.ExpectExec(`(?s)UPDATE users\s+SET elo_score = elo_score \+ \$1,\s+conversations_completed = \$2`).
		WithArgs(13, 3, 1, 0, outcome.AvgRubric, 1180.5, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ApplyConversationOutcome(context.Background(), "user-1",
		func(u *domain.UserProfile) repository.ConversationOutcome {
			// The callback sees the locked row, not a caller-side read.
			assert.Equal(t, 2, u.ConversationsDone)
			assert.Equal(t, 1032.0, u.EloScore)
			return outcome
		})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyConversationOutcomeMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT .+ FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs("ghost").
		WillReturnRows(userRows())
	mock.ExpectRollback()

	err := repo.ApplyConversationOutcome(context.Background(), "ghost",
		func(*domain.UserProfile) repository.ConversationOutcome {
			t.Fatal("callback ran for a missing user")
			return repository.ConversationOutcome{}
		})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementMatchCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users SET match_count = match_count \+ 1 WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementMatchCount(context.Background(), "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByLinkedinURL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("https://linkedin.com/in/dana").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByLinkedinURL(context.Background(), "https://linkedin.com/in/dana")
	require.NoError(t, err)
	assert.True(t, exists)
}
