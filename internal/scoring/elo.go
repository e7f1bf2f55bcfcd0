package scoring

import (
	"math"
	"time"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

// K-factors for the three rating paths. Swipes are the legacy low-weight
// signal; completed conversations move ratings hardest.
const (
	KFactorSwipe        = 32
	KFactorLeftSwipe    = 16
	KFactorConversation = 48
)

// EloChange returns the rounded rating delta for a player who scored
// actual in [0,1] against an opponent, using the standard logistic
// expected-score formula.
func EloChange(playerRating, opponentRating, actual float64, kFactor float64) int {
	expected := 1 / (1 + math.Pow(10, (opponentRating-playerRating)/400))
	return int(math.Round(kFactor * (actual - expected)))
}

// NormalizeOverall maps a rubric overall in [1,10] to an ELO actual score
// in [0,1].
func NormalizeOverall(overall float64) float64 {
	n := (overall - 1) / 9
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// wilsonZ is the 95% confidence z-score.
const wilsonZ = 1.96

// WilsonLowerBound estimates a conservative lower bound for the true
// right-swipe proportion given positive successes out of total trials.
// Zero trials yield 0.
func WilsonLowerBound(positive, total int) float64 {
	if total == 0 {
		return 0
	}
	n := float64(total)
	p := float64(positive) / n
	z := wilsonZ
	z2 := z * z

	denom := 1 + z2/n
	center := p + z2/(2*n)
	spread := z * math.Sqrt((p*(1-p)+z2/(4*n))/n)
	return (center - spread) / denom
}

// Composite profile score weights (§ conversation quality dominates, swipe
// appeal is measured conservatively through the Wilson bound).
const (
	profileWeightRubric  = 0.70
	profileWeightWilson  = 0.20
	profileWeightMatches = 0.05
	profileWeightRecency = 0.05

	rubricWeightOverall        = 0.35
	rubricWeightEngagement     = 0.25
	rubricWeightDepth          = 0.20
	rubricWeightAuthenticity   = 0.10
	rubricWeightRespectfulness = 0.10

	profileScoreConfidenceFullAt = 5
	profileScoreRecencyDays      = 60
	profileScoreFloor            = 800
	profileScoreRange            = 1000
)

// ProfileScoreInput carries the counters a composite score is blended from.
type ProfileScoreInput struct {
	AvgRubric         domain.Rubric
	ConversationsDone int
	RightSwipes       int
	LeftSwipes        int
	MatchCount        int
	JoinedAt          time.Time
}

// ProfileScore blends conversation quality, swipe appeal, match rate and
// recency into a single rating on the [800,1800] scale. It is an alternate
// ranking signal and is not folded into the feed's ELO term.
func ProfileScore(in ProfileScoreInput, now time.Time) float64 {
	rubricAvg := rubricWeightOverall*NormalizeOverall(in.AvgRubric.Overall) +
		rubricWeightEngagement*NormalizeOverall(in.AvgRubric.Engagement) +
		rubricWeightDepth*NormalizeOverall(in.AvgRubric.Depth) +
		rubricWeightAuthenticity*NormalizeOverall(in.AvgRubric.Authenticity) +
		rubricWeightRespectfulness*NormalizeOverall(in.AvgRubric.Respectfulness)

	confidence := math.Min(float64(in.ConversationsDone)/profileScoreConfidenceFullAt, 1)

	wilson := WilsonLowerBound(in.RightSwipes, in.RightSwipes+in.LeftSwipes)

	matchRate := 0.0
	if in.ConversationsDone > 0 {
		matchRate = float64(in.MatchCount) / float64(in.ConversationsDone)
		if matchRate > 1 {
			matchRate = 1
		}
	}

	days := now.Sub(in.JoinedAt).Hours() / 24
	recency := math.Max(0, 1-days/profileScoreRecencyDays)

	blend := profileWeightRubric*rubricAvg*confidence +
		profileWeightWilson*wilson +
		profileWeightMatches*matchRate +
		profileWeightRecency*recency

	return profileScoreFloor + blend*profileScoreRange
}
