package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestProfileVectorDimensions(t *testing.T) {
	v := ProfileVector(&domain.UserProfile{Age: 30, Gender: domain.GenderFemale})
	require.Len(t, v, VectorDimensions)
}

func TestProfileVectorAgeComponent(t *testing.T) {
	young := ProfileVector(&domain.UserProfile{Age: 18})
	mid := ProfileVector(&domain.UserProfile{Age: 50})
	old := ProfileVector(&domain.UserProfile{Age: 100})

	assert.Equal(t, 0.0, young[0])
	assert.Equal(t, 1.0, old[0])
	assert.Greater(t, mid[0], young[0])
	assert.Less(t, mid[0], old[0])
}

func TestProfileVectorGenderOneHot(t *testing.T) {
	male := ProfileVector(&domain.UserProfile{Age: 25, Gender: domain.GenderMale})
	female := ProfileVector(&domain.UserProfile{Age: 25, Gender: domain.GenderFemale})
	other := ProfileVector(&domain.UserProfile{Age: 25, Gender: domain.GenderOther})

	assert.Equal(t, []float64{1, 0, 0}, male[1:4])
	assert.Equal(t, []float64{0, 1, 0}, female[1:4])
	assert.Equal(t, []float64{0, 0, 1}, other[1:4])
}

func TestProfileVectorTextComponentsCapped(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}
	u := &domain.UserProfile{
		Age:   25,
		Bio:   strPtr(string(long)),
		About: strPtr(string(long)),
	}

	v := ProfileVector(u)
	assert.Equal(t, 1.0, v[4])
	assert.Equal(t, 1.0, v[5])
}

func TestProfileVectorEducationFlags(t *testing.T) {
	u := &domain.UserProfile{
		Age: 25,
		Education: domain.Educations{
			{School: "MIT", Degree: strPtr("BSc"), FieldOfStudy: strPtr("CS")},
		},
	}
	v := ProfileVector(u)
	assert.Equal(t, 1.0, v[9])
	assert.Equal(t, 1.0, v[10])

	none := ProfileVector(&domain.UserProfile{Age: 25})
	assert.Equal(t, 0.0, none[9])
	assert.Equal(t, 0.0, none[10])
}

func TestDurationMonths(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2 yrs 3 mos", 27},
		{"1 yr", 12},
		{"6 mos", 6},
		{"10 yrs", 120},
		{"Present", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationMonths(tt.in), "input %q", tt.in)
	}
}

func TestProfileVectorAvgDurationExcludesUnparsed(t *testing.T) {
	u := &domain.UserProfile{
		Age: 25,
		Experience: domain.Experiences{
			{Title: "Engineer", Company: "A", Duration: strPtr("2 yrs")},
			{Title: "Intern", Company: "B", Duration: strPtr("Present")},
		},
	}
	v := ProfileVector(u)
	// Only the 24-month entry counts toward the average.
	assert.InDelta(t, 24.0/60, v[7], 1e-9)
}

func TestCosineSimilarity(t *testing.T) {
	v := []float64{0.3, 1, 0, 0, 0.5, 0.2, 0.4, 0.1, 0.66, 1, 1}

	assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity(v, v[:5]))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))

	zero := make([]float64, len(v))
	assert.Equal(t, 0.0, CosineSimilarity(v, zero))

	a := []float64{1, 0}
	b := []float64{0, 1}
	assert.Equal(t, 0.0, CosineSimilarity(a, b))
}
