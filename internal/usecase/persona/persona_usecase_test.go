package persona

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/scraper"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
	"github.com/rizzedin/rizzedin-backend/internal/scoring"
)

type fakeUserRepo struct {
	exists   bool
	created  *domain.UserProfile
	vectorID string
	vector   []float64
	deleted  []string
	byID     map[string]*domain.UserProfile
}

func (r *fakeUserRepo) ExistsByLinkedinURL(context.Context, string) (bool, error) {
	return r.exists, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.UserProfile) error {
	r.created = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateVector(_ context.Context, id string, vector []float64) error {
	r.vectorID = id
	r.vector = vector
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeUserRepo) GetAll(context.Context) ([]*domain.UserProfile, error) { return nil, nil }
func (r *fakeUserRepo) GetByRole(context.Context, int) ([]*domain.UserProfile, error) {
	return nil, nil
}
func (r *fakeUserRepo) TopByElo(context.Context, int) ([]*domain.UserProfile, error) { return nil, nil }
func (r *fakeUserRepo) UpdateOnboarding(context.Context, *domain.UserProfile) error  { return nil }
func (r *fakeUserRepo) UpdateEnrichment(context.Context, *domain.UserProfile) error  { return nil }
func (r *fakeUserRepo) UpdatePersonaPrompt(context.Context, string, string) error    { return nil }
func (r *fakeUserRepo) ApplySwipeOutcome(context.Context, string, int, string) error { return nil }
func (r *fakeUserRepo) ApplyConversationOutcome(context.Context, string, func(*domain.UserProfile) repository.ConversationOutcome) error {
	return nil
}
func (r *fakeUserRepo) IncrementMatchCount(context.Context, string) error { return nil }

type fakeFetcher struct {
	result *scraper.Result
	err    error
}

func (f *fakeFetcher) FetchProfile(context.Context, string) (*scraper.Result, error) {
	return f.result, f.err
}

type fakeModel struct {
	response string
	err      error
}

func (m *fakeModel) Generate(context.Context, string, float32) (string, error) {
	return m.response, m.err
}

type fakeAvatars struct {
	err error
}

func (fakeAvatars) ImageURL(name string) string {
	return "https://avatars.example/?name=" + name
}

func (a fakeAvatars) Generate(context.Context, string) ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	return []byte("png"), nil
}

const profileDoc = `# Dana Doe
Staff engineer

## About me
Distributed systems person.

## Work Experience
- ### Staff Engineer at [Initech](https://initech.example)
Jan 2020 - Present · 4 yrs
`

func fetchedProfile() *scraper.Result {
	return &scraper.Result{
		URL:    "https://linkedin.com/in/dana-doe",
		Text:   profileDoc,
		Author: "Dana Doe",
	}
}

func newUC(users *fakeUserRepo, fetcher *fakeFetcher, model *fakeModel) *PersonaUseCase {
	return NewPersonaUseCase(users, fetcher, model, fakeAvatars{}, zap.NewNop())
}

func TestImportCreatesOnboardedPersona(t *testing.T) {
	users := &fakeUserRepo{}
	model := &fakeModel{response: `{"estimated_age": 31, "gender": "female", "dating_preference": "men"}`}
	uc := newUC(users, &fakeFetcher{result: fetchedProfile()}, model)

	created, err := uc.Import(context.Background(), &ImportRequest{
		LinkedinURL: "https://linkedin.com/in/dana-doe",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.ID, "persona_dana-doe_"))
	assert.Equal(t, domain.RolePersona, created.Role)
	assert.True(t, created.OnboardingCompleted)
	assert.Equal(t, 31, created.Age)
	assert.Equal(t, domain.GenderFemale, created.Gender)
	assert.Equal(t, domain.PreferenceMen, created.DatingPreference)
	assert.Equal(t, domain.DefaultEloScore, created.EloScore)
	require.NotNil(t, created.Name)
	assert.Equal(t, "Dana Doe", *created.Name)

	// No scraped image, so the generated avatar fills in.
	require.NotNil(t, created.Image)
	assert.Contains(t, *created.Image, "avatars.example")

	assert.Equal(t, created.ID, users.vectorID)
	assert.Len(t, users.vector, scoring.VectorDimensions)
}

func TestImportAvatarFailureLeavesNoImage(t *testing.T) {
	users := &fakeUserRepo{}
	model := &fakeModel{response: `{"estimated_age": 31, "gender": "female", "dating_preference": "men"}`}
	avatars := fakeAvatars{err: errors.New("render 500")}
	uc := NewPersonaUseCase(users, &fakeFetcher{result: fetchedProfile()}, model, avatars, zap.NewNop())

	created, err := uc.Import(context.Background(), &ImportRequest{
		LinkedinURL: "https://linkedin.com/in/dana-doe",
	})
	require.NoError(t, err)

	// The import still succeeds; the persona just has no avatar.
	assert.Nil(t, created.Image)
}

func TestImportDuplicateURL(t *testing.T) {
	uc := newUC(&fakeUserRepo{exists: true}, &fakeFetcher{result: fetchedProfile()}, &fakeModel{})

	_, err := uc.Import(context.Background(), &ImportRequest{LinkedinURL: "https://linkedin.com/in/dana-doe"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePersona)
}

func TestImportDemographicsFallback(t *testing.T) {
	users := &fakeUserRepo{}
	model := &fakeModel{err: errors.New("model down")}
	uc := newUC(users, &fakeFetcher{result: fetchedProfile()}, model)

	created, err := uc.Import(context.Background(), &ImportRequest{
		LinkedinURL: "https://linkedin.com/in/dana-doe",
	})
	require.NoError(t, err)

	// Randomized but plausible defaults.
	assert.GreaterOrEqual(t, created.Age, 24)
	assert.LessOrEqual(t, created.Age, 40)
	assert.Contains(t, []string{domain.GenderMale, domain.GenderFemale}, created.Gender)
	assert.Equal(t, domain.PreferenceBoth, created.DatingPreference)
}

func TestImportRejectsOutOfRangeDemographics(t *testing.T) {
	users := &fakeUserRepo{}
	model := &fakeModel{response: `{"estimated_age": 250, "gender": "robot", "dating_preference": "men"}`}
	uc := newUC(users, &fakeFetcher{result: fetchedProfile()}, model)

	created, err := uc.Import(context.Background(), &ImportRequest{
		LinkedinURL: "https://linkedin.com/in/dana-doe",
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, created.Age, 18)
	assert.LessOrEqual(t, created.Age, 100)
	assert.Contains(t, []string{domain.GenderMale, domain.GenderFemale}, created.Gender)
	assert.Equal(t, domain.PreferenceMen, created.DatingPreference)
}

func TestImportScrapeFailure(t *testing.T) {
	uc := newUC(&fakeUserRepo{}, &fakeFetcher{err: errors.New("scraper 503")}, &fakeModel{})

	_, err := uc.Import(context.Background(), &ImportRequest{LinkedinURL: "https://linkedin.com/in/dana-doe"})
	assert.Error(t, err)
}

func TestDeleteGuardsRealUsers(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.UserProfile{
		"real-user": {ID: "real-user", Role: domain.RoleUser},
		"persona-1": {ID: "persona-1", Role: domain.RolePersona},
	}}
	uc := newUC(users, &fakeFetcher{}, &fakeModel{})

	err := uc.Delete(context.Background(), "real-user")
	assert.ErrorIs(t, err, domain.ErrNotPersona)
	assert.Empty(t, users.deleted)

	require.NoError(t, uc.Delete(context.Background(), "persona-1"))
	assert.Equal(t, []string{"persona-1"}, users.deleted)
}
