package scoring

import (
	"math"
	"regexp"
	"strconv"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

// VectorDimensions is the fixed length of every profile vector.
const VectorDimensions = 11

var (
	yearsRe  = regexp.MustCompile(`(\d+)\s*yr`)
	monthsRe = regexp.MustCompile(`(\d+)\s*mo`)
)

// ProfileVector derives the 11-dimensional feature vector from a profile's
// demographic and enrichment attributes. Deterministic and side-effect free;
// re-run whenever enrichment data changes.
//
// Components, each normalized to roughly [0,1]:
//
//	0     age, (age-18)/82
//	1-3   one-hot gender (male, female, other)
//	4     bio length / 200, capped
//	5     about length / 500, capped
//	6     experience count / 5, capped
//	7     avg experience duration in months / 60, capped
//	8     education count / 3, capped
//	9     has any degree
//	10    has any field of study
func ProfileVector(u *domain.UserProfile) []float64 {
	v := make([]float64, 0, VectorDimensions)

	v = append(v, float64(u.Age-18)/82)

	v = append(v, oneHot(u.Gender == domain.GenderMale))
	v = append(v, oneHot(u.Gender == domain.GenderFemale))
	v = append(v, oneHot(u.Gender == domain.GenderOther))

	v = append(v, cappedRatio(textLen(u.Bio), 200))
	v = append(v, cappedRatio(textLen(u.About), 500))

	v = append(v, cappedRatio(float64(len(u.Experience)), 5))
	v = append(v, cappedRatio(avgDurationMonths(u.Experience), 60))

	v = append(v, cappedRatio(float64(len(u.Education)), 3))

	hasDegree, hasField := false, false
	for _, edu := range u.Education {
		if edu.Degree != nil && *edu.Degree != "" {
			hasDegree = true
		}
		if edu.FieldOfStudy != nil && *edu.FieldOfStudy != "" {
			hasField = true
		}
	}
	v = append(v, oneHot(hasDegree))
	v = append(v, oneHot(hasField))

	return v
}

// DurationMonths parses free-text durations like "2 yrs 3 mos" or "6 mos"
// into whole months. Unparsable input yields 0.
func DurationMonths(s string) int {
	months := 0
	if m := yearsRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			months += n * 12
		}
	}
	if m := monthsRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			months += n
		}
	}
	return months
}

// avgDurationMonths averages parsed experience durations, excluding entries
// that parse to zero.
func avgDurationMonths(exps domain.Experiences) float64 {
	sum, count := 0, 0
	for _, exp := range exps {
		if exp.Duration == nil {
			continue
		}
		if months := DurationMonths(*exp.Duration); months > 0 {
			sum += months
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths or zero magnitude yield 0, never an error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	magnitude := math.Sqrt(normA) * math.Sqrt(normB)
	if magnitude == 0 {
		return 0
	}
	return dot / magnitude
}

func oneHot(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func cappedRatio(v, cap float64) float64 {
	return math.Min(v/cap, 1)
}

func textLen(s *string) float64 {
	if s == nil {
		return 0
	}
	return float64(len(*s))
}
