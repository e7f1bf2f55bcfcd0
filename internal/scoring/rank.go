package scoring

import (
	"math"
	"time"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

// Feed ranking weights. The random term intentionally keeps the feed from
// being deterministic for near-equal candidates.
const (
	rankWeightVector     = 0.4
	rankWeightElo        = 0.2
	rankWeightPopularity = 0.2
	rankWeightRecency    = 0.1
	RankWeightRandom     = 0.1

	rankEloSpread   = 1000.0
	rankRecencyDays = 30.0
)

// PreferenceSatisfied reports whether a gender satisfies a dating
// preference. "both" always matches; otherwise an exact match is required.
func PreferenceSatisfied(preference, gender string) bool {
	switch preference {
	case domain.PreferenceBoth:
		return true
	case domain.PreferenceMen:
		return gender == domain.GenderMale
	case domain.PreferenceWomen:
		return gender == domain.GenderFemale
	}
	return false
}

// MutualPreference requires both directions to hold: the candidate's gender
// satisfies the requester's preference and vice versa.
func MutualPreference(requester, candidate *domain.UserProfile) bool {
	return PreferenceSatisfied(requester.DatingPreference, candidate.Gender) &&
		PreferenceSatisfied(candidate.DatingPreference, requester.Gender)
}

// RankScore blends vector similarity, ELO proximity, popularity and recency
// into the candidate's feed score. draw supplies the uniform random term in
// [0,1); callers pass a pinned draw in tests.
func RankScore(requester, candidate *domain.UserProfile, now time.Time, draw float64) float64 {
	score := 0.0

	if len(requester.ProfileVector) > 0 && len(candidate.ProfileVector) > 0 {
		score += rankWeightVector * CosineSimilarity(requester.ProfileVector, candidate.ProfileVector)
	}

	eloDiff := math.Abs(requester.EloScore - candidate.EloScore)
	score += rankWeightElo * math.Max(0, 1-eloDiff/rankEloSpread)

	score += rankWeightPopularity * Popularity(candidate.TotalRightSwipes, candidate.TotalLeftSwipes)

	days := now.Sub(candidate.CreatedAt).Hours() / 24
	score += rankWeightRecency * math.Max(0, 1-days/rankRecencyDays)

	score += RankWeightRandom * draw

	return score
}

// Popularity is the raw right-swipe proportion, 0 when unswiped.
func Popularity(right, left int) float64 {
	total := right + left
	if total == 0 {
		return 0
	}
	return float64(right) / float64(total)
}
