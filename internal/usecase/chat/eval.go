package chat

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

// Evaluation is the verdict the scoring model returns after the tenth user
// message.
type Evaluation struct {
	Decision  string        `json:"decision"`
	Reasoning string        `json:"reasoning"`
	Rubric    domain.Rubric `json:"rubric"`
}

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseEvaluation extracts the verdict from raw model output. Models wrap
// JSON in markdown fences or pad it with prose more often than not, so it
// tries the fenced block first and then the widest brace-delimited substring.
// The second return value is false when neither yields valid JSON; callers
// get the rejecting fallback in that case so the chat still terminates.
func ParseEvaluation(raw string) (Evaluation, bool) {
	candidates := make([]string, 0, 2)
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		candidates = append(candidates, raw[start:end+1])
	}

	for _, c := range candidates {
		var ev Evaluation
		if err := json.Unmarshal([]byte(strings.TrimSpace(c)), &ev); err != nil {
			continue
		}
		if ev.Decision == "" {
			ev.Decision = domain.DecisionRejected
		}
		if ev.Reasoning == "" {
			ev.Reasoning = "No reasoning provided"
		}
		ev.Rubric = ev.Rubric.Normalize()
		return ev, true
	}
	return FallbackEvaluation(), false
}

// FallbackEvaluation is the verdict used when the model call fails or its
// output is unparseable: rejected, with every rubric dimension neutral.
func FallbackEvaluation() Evaluation {
	return Evaluation{
		Decision:  domain.DecisionRejected,
		Reasoning: "Unable to evaluate the conversation",
		Rubric:    domain.NeutralRubric(),
	}
}
