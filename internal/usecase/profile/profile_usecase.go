package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/scraper"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
	"github.com/rizzedin/rizzedin-backend/internal/scoring"
)

// ProfileFetcher pulls a public profile document for enrichment.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, url string) (*scraper.Result, error)
}

type ProfileUseCase struct {
	userRepo repository.UserRepository
	fetcher  ProfileFetcher
	log      *zap.Logger
}

func NewProfileUseCase(userRepo repository.UserRepository, fetcher ProfileFetcher, log *zap.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo: userRepo,
		fetcher:  fetcher,
		log:      log,
	}
}

// OnboardingRequest carries the demographics collected at onboarding.
type OnboardingRequest struct {
	LinkedinURL string `json:"linkedin_url" binding:"required,url"`
	Age         int    `json:"age" binding:"required,gte=18,lte=100"`
	Gender      string `json:"gender" binding:"required,oneof=male female other"`
	Preference  string `json:"dating_preference" binding:"required,oneof=men women both"`
}

// GetOrCreate returns the profile, creating an empty record at first
// sign-in. Demographics arrive later through onboarding.
func (uc *ProfileUseCase) GetOrCreate(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = &domain.UserProfile{
		ID:        userID,
		Role:      domain.RoleUser,
		EloScore:  domain.DefaultEloScore,
		AvgRubric: domain.NeutralRubric(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// CompleteOnboarding stores the demographics and kicks off profile
// enrichment in the background; scraping must not block the caller.
func (uc *ProfileUseCase) CompleteOnboarding(ctx context.Context, userID string, req *OnboardingRequest) (*domain.UserProfile, error) {
	user, err := uc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.LinkedinURL = &req.LinkedinURL
	user.Age = req.Age
	user.Gender = req.Gender
	user.DatingPreference = req.Preference
	user.OnboardingCompleted = true

	if err := uc.userRepo.UpdateOnboarding(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	go func() {
		if err := uc.Enrich(context.Background(), userID); err != nil {
			uc.log.Warn("profile enrichment failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}()

	return user, nil
}

// Enrich scrapes the linked profile, applies the parsed fields and
// recomputes the profile vector.
func (uc *ProfileUseCase) Enrich(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.LinkedinURL == nil || *user.LinkedinURL == "" {
		return fmt.Errorf("user %s has no linkedin url", userID)
	}

	res, err := uc.fetcher.FetchProfile(ctx, *user.LinkedinURL)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	parsed := scraper.ParseProfile(res)
	if parsed.Name != nil {
		user.Name = parsed.Name
	}
	if parsed.Image != nil {
		user.Image = parsed.Image
	}
	user.Bio = parsed.Bio
	user.About = parsed.About
	user.Experience = parsed.Experience
	user.Education = parsed.Education

	if err := uc.userRepo.UpdateEnrichment(ctx, user); err != nil {
		return fmt.Errorf("failed to store enrichment: %w", err)
	}

	return uc.RefreshVector(ctx, userID)
}

// RefreshVector recomputes and persists the 11-dimensional profile vector.
func (uc *ProfileUseCase) RefreshVector(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	vector := scoring.ProfileVector(user)
	if err := uc.userRepo.UpdateVector(ctx, userID, vector); err != nil {
		return fmt.Errorf("failed to store profile vector: %w", err)
	}
	return nil
}

// SetPersonaPrompt stores custom instructions for the user's AI persona.
func (uc *ProfileUseCase) SetPersonaPrompt(ctx context.Context, userID, prompt string) error {
	return uc.userRepo.UpdatePersonaPrompt(ctx, userID, prompt)
}
