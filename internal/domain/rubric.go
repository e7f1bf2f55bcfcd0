package domain

import (
	"database/sql/driver"
	"encoding/json"
)

// Rubric is the 6-dimension conversation score produced by the evaluation
// model. Every dimension lives in [1,10].
type Rubric struct {
	Engagement     float64 `json:"engagement"`
	Depth          float64 `json:"depth"`
	Authenticity   float64 `json:"authenticity"`
	Respectfulness float64 `json:"respectfulness"`
	Compatibility  float64 `json:"compatibility"`
	Overall        float64 `json:"overall"`
}

// NeutralRubric seeds new profiles and backstops unparseable evaluations.
func NeutralRubric() Rubric {
	return Rubric{
		Engagement:     5,
		Depth:          5,
		Authenticity:   5,
		Respectfulness: 5,
		Compatibility:  5,
		Overall:        5,
	}
}

// Normalize clamps each dimension into [1,10] and replaces absent (zero)
// values with the neutral 5.
func (r Rubric) Normalize() Rubric {
	norm := func(v float64) float64 {
		if v == 0 {
			return 5
		}
		if v < 1 {
			return 1
		}
		if v > 10 {
			return 10
		}
		return v
	}
	return Rubric{
		Engagement:     norm(r.Engagement),
		Depth:          norm(r.Depth),
		Authenticity:   norm(r.Authenticity),
		Respectfulness: norm(r.Respectfulness),
		Compatibility:  norm(r.Compatibility),
		Overall:        norm(r.Overall),
	}
}

// RunningMean folds a new rubric into the running average. n is the
// post-increment conversation count; each dimension updates independently.
func (r Rubric) RunningMean(next Rubric, n int) Rubric {
	if n <= 1 {
		return next
	}
	fold := func(avg, v float64) float64 {
		return (avg*float64(n-1) + v) / float64(n)
	}
	return Rubric{
		Engagement:     fold(r.Engagement, next.Engagement),
		Depth:          fold(r.Depth, next.Depth),
		Authenticity:   fold(r.Authenticity, next.Authenticity),
		Respectfulness: fold(r.Respectfulness, next.Respectfulness),
		Compatibility:  fold(r.Compatibility, next.Compatibility),
		Overall:        fold(r.Overall, next.Overall),
	}
}

func (r Rubric) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *Rubric) Scan(src interface{}) error {
	return scanJSON(src, r)
}
