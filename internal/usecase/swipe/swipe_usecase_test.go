package swipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
)

type fakeSwipeRepo struct {
	created bool
	last    *domain.Swipe
}

func (r *fakeSwipeRepo) Upsert(_ context.Context, swipe *domain.Swipe) (bool, error) {
	r.last = swipe
	return r.created, nil
}

func (r *fakeSwipeRepo) SwipedIDs(context.Context, string) ([]string, error) { return nil, nil }

type fakeUserRepo struct {
	users map[string]*domain.UserProfile

	outcomeID    string
	outcomeDelta int
	outcomeDir   string
	outcomeCalls int
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ApplySwipeOutcome(_ context.Context, id string, eloDelta int, direction string) error {
	r.outcomeID = id
	r.outcomeDelta = eloDelta
	r.outcomeDir = direction
	r.outcomeCalls++
	return nil
}

func (r *fakeUserRepo) Create(context.Context, *domain.UserProfile) error     { return nil }
func (r *fakeUserRepo) GetAll(context.Context) ([]*domain.UserProfile, error) { return nil, nil }
func (r *fakeUserRepo) GetByRole(context.Context, int) ([]*domain.UserProfile, error) {
	return nil, nil
}
func (r *fakeUserRepo) TopByElo(context.Context, int) ([]*domain.UserProfile, error) { return nil, nil }
func (r *fakeUserRepo) ExistsByLinkedinURL(context.Context, string) (bool, error)    { return false, nil }
func (r *fakeUserRepo) UpdateOnboarding(context.Context, *domain.UserProfile) error  { return nil }
func (r *fakeUserRepo) UpdateEnrichment(context.Context, *domain.UserProfile) error  { return nil }
func (r *fakeUserRepo) UpdateVector(context.Context, string, []float64) error        { return nil }
func (r *fakeUserRepo) UpdatePersonaPrompt(context.Context, string, string) error    { return nil }
func (r *fakeUserRepo) ApplyConversationOutcome(context.Context, string, func(*domain.UserProfile) repository.ConversationOutcome) error {
	return nil
}
func (r *fakeUserRepo) IncrementMatchCount(context.Context, string) error { return nil }
func (r *fakeUserRepo) Delete(context.Context, string) error              { return nil }

func newTestUC(created bool) (*SwipeUseCase, *fakeSwipeRepo, *fakeUserRepo) {
	swipes := &fakeSwipeRepo{created: created}
	users := &fakeUserRepo{users: map[string]*domain.UserProfile{
		"swiper": {ID: "swiper", EloScore: 1000},
		"target": {ID: "target", EloScore: 1000},
	}}
	return NewSwipeUseCase(swipes, users, zap.NewNop()), swipes, users
}

func TestRecordRightSwipe(t *testing.T) {
	uc, _, users := newTestUC(true)

	resp, err := uc.Record(context.Background(), "swiper", &SwipeRequest{
		SwipedUserID: "target",
		Direction:    domain.SwipeRight,
	})
	require.NoError(t, err)
	assert.False(t, resp.Repeated)

	assert.Equal(t, "target", users.outcomeID)
	assert.Equal(t, domain.SwipeRight, users.outcomeDir)
	// Equal ratings, win: 32 * (1 - 0.5).
	assert.Equal(t, 16, users.outcomeDelta)
}

func TestRecordLeftSwipeUsesLowerWeight(t *testing.T) {
	uc, _, users := newTestUC(true)

	_, err := uc.Record(context.Background(), "swiper", &SwipeRequest{
		SwipedUserID: "target",
		Direction:    domain.SwipeLeft,
	})
	require.NoError(t, err)

	// Equal ratings, loss: 16 * (0 - 0.5).
	assert.Equal(t, -8, users.outcomeDelta)
	assert.Equal(t, domain.SwipeLeft, users.outcomeDir)
}

func TestRecordRepeatSkipsRating(t *testing.T) {
	uc, _, users := newTestUC(false)

	resp, err := uc.Record(context.Background(), "swiper", &SwipeRequest{
		SwipedUserID: "target",
		Direction:    domain.SwipeRight,
	})
	require.NoError(t, err)
	assert.True(t, resp.Repeated)
	assert.Equal(t, 0, users.outcomeCalls)
}

func TestRecordRejectsSelfSwipe(t *testing.T) {
	uc, _, _ := newTestUC(true)

	_, err := uc.Record(context.Background(), "swiper", &SwipeRequest{
		SwipedUserID: "swiper",
		Direction:    domain.SwipeRight,
	})
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)
}

func TestRecordUnknownTarget(t *testing.T) {
	uc, _, _ := newTestUC(true)

	_, err := uc.Record(context.Background(), "swiper", &SwipeRequest{
		SwipedUserID: "ghost",
		Direction:    domain.SwipeRight,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
