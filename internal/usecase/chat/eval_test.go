package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

const validVerdict = `{
	"decision": "approved",
	"reasoning": "Great conversation with real depth.",
	"rubric": {"engagement": 8, "depth": 7, "authenticity": 9, "respectfulness": 10, "compatibility": 8, "overall": 8}
}`

func TestParseEvaluationPlainJSON(t *testing.T) {
	ev, ok := ParseEvaluation(validVerdict)
	require.True(t, ok)
	assert.Equal(t, domain.DecisionApproved, ev.Decision)
	assert.Equal(t, "Great conversation with real depth.", ev.Reasoning)
	assert.Equal(t, 8.0, ev.Rubric.Overall)
}

func TestParseEvaluationFencedJSON(t *testing.T) {
	fenced := "Here is my evaluation:\n```json\n" + validVerdict + "\n```\nHope that helps!"
	ev, ok := ParseEvaluation(fenced)
	require.True(t, ok)
	assert.Equal(t, domain.DecisionApproved, ev.Decision)

	plain, _ := ParseEvaluation(validVerdict)
	assert.Equal(t, plain, ev)
}

func TestParseEvaluationBareFence(t *testing.T) {
	fenced := "```\n" + validVerdict + "\n```"
	ev, ok := ParseEvaluation(fenced)
	require.True(t, ok)
	assert.Equal(t, domain.DecisionApproved, ev.Decision)
}

func TestParseEvaluationSurroundingProse(t *testing.T) {
	raw := "Sure! Based on the chat I would say " + validVerdict + " as discussed."
	ev, ok := ParseEvaluation(raw)
	require.True(t, ok)
	assert.Equal(t, domain.DecisionApproved, ev.Decision)
}

func TestParseEvaluationGarbage(t *testing.T) {
	ev, ok := ParseEvaluation("I cannot evaluate this conversation, sorry.")
	assert.False(t, ok)
	assert.Equal(t, domain.DecisionRejected, ev.Decision)
	assert.Equal(t, domain.NeutralRubric(), ev.Rubric)
}

func TestParseEvaluationBrokenJSON(t *testing.T) {
	ev, ok := ParseEvaluation(`{"decision": "approved", "rubric": {`)
	assert.False(t, ok)
	assert.Equal(t, domain.DecisionRejected, ev.Decision)
}

func TestParseEvaluationDefaults(t *testing.T) {
	ev, ok := ParseEvaluation(`{"rubric": {"overall": 12, "depth": 0.2}}`)
	require.True(t, ok)
	assert.Equal(t, domain.DecisionRejected, ev.Decision)
	assert.Equal(t, "No reasoning provided", ev.Reasoning)
	// Out-of-range scores clamp; absent dimensions fall back to neutral.
	assert.Equal(t, 10.0, ev.Rubric.Overall)
	assert.Equal(t, 1.0, ev.Rubric.Depth)
	assert.Equal(t, 5.0, ev.Rubric.Engagement)
}
