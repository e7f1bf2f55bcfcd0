package feed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/cache"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
	"github.com/rizzedin/rizzedin-backend/internal/scoring"
)

const (
	DefaultLimit = 20

	leaderboardCacheKey = "feed:leaderboard"
	leaderboardCacheTTL = time.Minute
	leaderboardLimit    = 50
)

type FeedUseCase struct {
	userRepo  repository.UserRepository
	swipeRepo repository.SwipeRepository
	cache     *cache.Cache
	log       *zap.Logger

	// draw supplies the uniform random ranking term; tests pin it.
	draw func() float64
	now  func() time.Time
}

func NewFeedUseCase(
	userRepo repository.UserRepository,
	swipeRepo repository.SwipeRepository,
	c *cache.Cache,
	log *zap.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		userRepo:  userRepo,
		swipeRepo: swipeRepo,
		cache:     c,
		log:       log,
		draw:      rand.Float64,
		now:       time.Now,
	}
}

// GetRecommendations returns candidates ranked for the requesting user.
// Recomputed per call; the random term reshuffles near-equal candidates.
func (uc *FeedUseCase) GetRecommendations(ctx context.Context, userID string, limit int) ([]*domain.UserProfile, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	currentUser, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !currentUser.OnboardingCompleted {
		return nil, nil
	}

	swipedIDs, err := uc.swipeRepo.SwipedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swipe history: %w", err)
	}
	swiped := make(map[string]struct{}, len(swipedIDs))
	for _, id := range swipedIDs {
		swiped[id] = struct{}{}
	}

	candidates, err := uc.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}

	type scoredCandidate struct {
		user  *domain.UserProfile
		score float64
	}

	now := uc.now()
	var scored []scoredCandidate
	for _, candidate := range candidates {
		if candidate.ID == userID {
			continue
		}
		if _, done := swiped[candidate.ID]; done {
			continue
		}
		if !candidate.ProfileComplete() {
			continue
		}
		if !scoring.MutualPreference(currentUser, candidate) {
			continue
		}

		scored = append(scored, scoredCandidate{
			user:  candidate,
			score: scoring.RankScore(currentUser, candidate, now, uc.draw()),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	result := make([]*domain.UserProfile, len(scored))
	for i, s := range scored {
		result[i] = s.user
	}
	return result, nil
}

// LeaderboardEntry is one row of the ELO leaderboard.
type LeaderboardEntry struct {
	UserID     string             `json:"user_id"`
	Name       string             `json:"name"`
	Image      *string            `json:"image,omitempty"`
	Bio        *string            `json:"bio,omitempty"`
	Age        int                `json:"age"`
	Gender     string             `json:"gender"`
	EloScore   float64            `json:"elo_score"`
	Experience *domain.Experience `json:"experience,omitempty"`
}

// Leaderboard returns the top completed profiles by ELO, served from a
// short-lived cache.
func (uc *FeedUseCase) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var cached []LeaderboardEntry
	if uc.cache != nil {
		hit, err := uc.cache.Get(ctx, leaderboardCacheKey, &cached)
		if err != nil {
			uc.log.Warn("leaderboard cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	users, err := uc.userRepo.TopByElo(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		if !u.ProfileComplete() {
			continue
		}
		entry := LeaderboardEntry{
			UserID:   u.ID,
			Name:     u.DisplayName(),
			Image:    u.Image,
			Bio:      u.Bio,
			Age:      u.Age,
			Gender:   u.Gender,
			EloScore: u.EloScore,
		}
		if len(u.Experience) > 0 {
			entry.Experience = &u.Experience[0]
		}
		entries = append(entries, entry)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, leaderboardCacheKey, entries, leaderboardCacheTTL); err != nil {
			uc.log.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}

	return entries, nil
}
