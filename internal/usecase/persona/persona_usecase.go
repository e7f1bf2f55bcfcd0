package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/scraper"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
	"github.com/rizzedin/rizzedin-backend/internal/scoring"
)

// demographicsTemperature runs cold; the answer is a small JSON object and
// creativity only hurts.
const demographicsTemperature float32 = 0.3

type ProfileFetcher interface {
	FetchProfile(ctx context.Context, url string) (*scraper.Result, error)
}

type ModelClient interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

type AvatarClient interface {
	ImageURL(name string) string
	Generate(ctx context.Context, name string) ([]byte, error)
}

// PersonaUseCase imports public profiles as AI persona accounts. Personas
// populate the feed and chat back through the scoring model; nobody logs in
// as one.
type PersonaUseCase struct {
	userRepo repository.UserRepository
	fetcher  ProfileFetcher
	model    ModelClient
	avatars  AvatarClient
	log      *zap.Logger
}

func NewPersonaUseCase(
	userRepo repository.UserRepository,
	fetcher ProfileFetcher,
	model ModelClient,
	avatars AvatarClient,
	log *zap.Logger,
) *PersonaUseCase {
	return &PersonaUseCase{
		userRepo: userRepo,
		fetcher:  fetcher,
		model:    model,
		avatars:  avatars,
		log:      log,
	}
}

// ImportRequest carries one profile to import. PersonaPrompt is optional
// custom behavior for the persona's chat turns.
type ImportRequest struct {
	LinkedinURL   string `json:"linkedin_url" binding:"required,url"`
	PersonaPrompt string `json:"persona_prompt"`
}

// Import scrapes the profile, infers demographics and creates a fully
// onboarded persona account. Importing the same URL twice fails with
// domain.ErrDuplicatePersona.
func (uc *PersonaUseCase) Import(ctx context.Context, req *ImportRequest) (*domain.UserProfile, error) {
	exists, err := uc.userRepo.ExistsByLinkedinURL(ctx, req.LinkedinURL)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicatePersona
	}

	res, err := uc.fetcher.FetchProfile(ctx, req.LinkedinURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	parsed := scraper.ParseProfile(res)

	demo := uc.inferDemographics(ctx, parsed, res.Text)

	user := &domain.UserProfile{
		ID:                  personaID(req.LinkedinURL),
		LinkedinURL:         &req.LinkedinURL,
		Age:                 demo.Age,
		Gender:              demo.Gender,
		DatingPreference:    demo.Preference,
		OnboardingCompleted: true,
		Name:                parsed.Name,
		Image:               parsed.Image,
		Bio:                 parsed.Bio,
		About:               parsed.About,
		Experience:          parsed.Experience,
		Education:           parsed.Education,
		Role:                domain.RolePersona,
		EloScore:            domain.DefaultEloScore,
		AvgRubric:           domain.NeutralRubric(),
	}
	if req.PersonaPrompt != "" {
		user.PersonaPrompt = &req.PersonaPrompt
	}
	if user.Image == nil {
		// Only store the URL once the service has rendered an avatar for
		// this name; a failure leaves the persona without an image.
		if _, err := uc.avatars.Generate(ctx, user.DisplayName()); err != nil {
			uc.log.Warn("avatar generation failed",
				zap.String("user_id", user.ID), zap.Error(err))
		} else {
			avatarURL := uc.avatars.ImageURL(user.DisplayName())
			user.Image = &avatarURL
		}
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create persona: %w", err)
	}

	user.ProfileVector = scoring.ProfileVector(user)
	if err := uc.userRepo.UpdateVector(ctx, user.ID, user.ProfileVector); err != nil {
		uc.log.Warn("storing persona vector failed",
			zap.String("user_id", user.ID), zap.Error(err))
	}

	return user, nil
}

// List returns all persona accounts.
func (uc *PersonaUseCase) List(ctx context.Context) ([]*domain.UserProfile, error) {
	return uc.userRepo.GetByRole(ctx, domain.RolePersona)
}

// Delete removes a persona account. Regular users are never deletable
// through this path.
func (uc *PersonaUseCase) Delete(ctx context.Context, personaID string) error {
	user, err := uc.userRepo.GetByID(ctx, personaID)
	if err != nil {
		return err
	}
	if !user.IsPersona() {
		return domain.ErrNotPersona
	}
	return uc.userRepo.Delete(ctx, personaID)
}

type demographics struct {
	Age        int    `json:"estimated_age"`
	Gender     string `json:"gender"`
	Preference string `json:"dating_preference"`
}

// inferDemographics asks the model to estimate age and gender from the
// profile text. Any failure falls back to randomized plausible defaults so
// a flaky model never blocks an import.
func (uc *PersonaUseCase) inferDemographics(ctx context.Context, parsed *scraper.Profile, text string) demographics {
	fallback := demographics{
		Age:        24 + rand.Intn(17),
		Gender:     []string{domain.GenderMale, domain.GenderFemale}[rand.Intn(2)],
		Preference: domain.PreferenceBoth,
	}

	name := "unknown"
	if parsed.Name != nil {
		name = *parsed.Name
	}
	prompt := fmt.Sprintf(`Based on this professional profile, estimate the person's demographics.

Name: %s

Profile:
%s

Respond with ONLY a JSON object in this exact format:
{"estimated_age": <number between 18 and 100>, "gender": "male" or "female" or "other", "dating_preference": "men" or "women" or "both"}`,
		name, truncate(text, 4000))

	raw, err := uc.model.Generate(ctx, prompt, demographicsTemperature)
	if err != nil {
		uc.log.Warn("demographics inference failed", zap.Error(err))
		return fallback
	}

	start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return fallback
	}

	var demo demographics
	if err := json.Unmarshal([]byte(raw[start:end+1]), &demo); err != nil {
		return fallback
	}
	if demo.Age < 18 || demo.Age > 100 {
		demo.Age = fallback.Age
	}
	switch demo.Gender {
	case domain.GenderMale, domain.GenderFemale, domain.GenderOther:
	default:
		demo.Gender = fallback.Gender
	}
	switch demo.Preference {
	case domain.PreferenceMen, domain.PreferenceWomen, domain.PreferenceBoth:
	default:
		demo.Preference = fallback.Preference
	}
	return demo
}

// personaID derives a stable-looking id from the profile URL's last path
// segment plus a random suffix to keep ids unique across re-imports.
func personaID(profileURL string) string {
	username := "profile"
	if u, err := url.Parse(profileURL); err == nil {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if last := parts[len(parts)-1]; last != "" {
			username = last
		}
	}
	return fmt.Sprintf("persona_%s_%s", username, uuid.NewString()[:8])
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
