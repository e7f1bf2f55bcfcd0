package chat

import (
	"fmt"
	"strings"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

// PersonaPrompt builds the single prompt for one persona turn: the persona
// system section, the running transcript, and the reply instruction. The
// scoring-model contract is a flat prompt string, so history is inlined.
func PersonaPrompt(user *domain.UserProfile, history domain.Messages) string {
	var sb strings.Builder

	name := user.DisplayName()

	fmt.Fprintf(&sb, "You are an AI persona representing %s on a dating app called RizzedIn.\n\n", name)
	sb.WriteString("Your profile details:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", name)
	fmt.Fprintf(&sb, "- Age: %d\n", user.Age)
	fmt.Fprintf(&sb, "- Bio: %s\n", textOr(user.Bio, "No bio available"))
	fmt.Fprintf(&sb, "- About: %s\n", textOr(user.About, "No detailed about section"))

	if len(user.Experience) > 0 {
		sb.WriteString("\nWork Experience:\n")
		for _, exp := range user.Experience[:minInt(2, len(user.Experience))] {
			fmt.Fprintf(&sb, "- %s at %s", exp.Title, exp.Company)
			if exp.Duration != nil {
				fmt.Fprintf(&sb, " (%s)", *exp.Duration)
			}
			sb.WriteString("\n")
		}
	}

	if len(user.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, edu := range user.Education[:minInt(2, len(user.Education))] {
			fmt.Fprintf(&sb, "- %s at %s", textOr(edu.Degree, "Studied"), edu.School)
			if edu.FieldOfStudy != nil {
				fmt.Fprintf(&sb, " (%s)", *edu.FieldOfStudy)
			}
			sb.WriteString("\n")
		}
	}

	if user.PersonaPrompt != nil && *user.PersonaPrompt != "" {
		fmt.Fprintf(&sb, "\nAdditional persona instructions:\n%s\n", *user.PersonaPrompt)
	}

	sb.WriteString(`
Instructions:
1. Respond as this person in a dating context - be friendly, interesting, and authentic
2. Use the profile information to inform your responses
3. Be conversational and engaging, but not overly eager
4. Show personality and humor where appropriate
5. After the 10th user message, you will evaluate if there's potential for a match

`)
	fmt.Fprintf(&sb, "Remember: You're trying to see if this person is a good match while representing %s's personality and interests.\n", name)

	sb.WriteString("\nConversation so far:\n")
	sb.WriteString(Transcript(history))
	sb.WriteString("\nReply with your next message only, without any name prefix.")

	return sb.String()
}

// EvaluationPrompt asks the scoring model for the rubric and the verdict.
// The approval gate lives in these instructions; the parser passes the
// model's decision through without recomputing it.
func EvaluationPrompt(history domain.Messages) string {
	var sb strings.Builder

	sb.WriteString("Based on this conversation, evaluate if this person would be a good match:\n\n")
	sb.WriteString(Transcript(history))
	sb.WriteString(`
Respond with ONLY a JSON object in this exact format:
{
  "decision": "approved" or "rejected",
  "reasoning": "Brief explanation of your decision (1-2 sentences)",
  "rubric": {
    "engagement": <1-10>,
    "depth": <1-10>,
    "authenticity": <1-10>,
    "respectfulness": <1-10>,
    "compatibility": <1-10>,
    "overall": <1-10>
  }
}

Score each rubric dimension from 1 to 10:
- engagement: quality of conversation and effort
- depth: substance beyond small talk
- authenticity: genuine interest and sincerity
- respectfulness: appropriate tone throughout
- compatibility: shared interests and chemistry
- overall: your overall impression

Decide "approved" only if overall is at least 7 AND compatibility is at least 6; otherwise decide "rejected".`)

	return sb.String()
}

// Transcript renders the message log with User/You labels, the way the
// persona saw the conversation.
func Transcript(history domain.Messages) string {
	var sb strings.Builder
	for _, msg := range history {
		label := "You"
		if msg.Role == domain.RoleMessageUser {
			label = "User"
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, msg.Content)
	}
	return sb.String()
}

// Final assistant messages appended after the verdict.
func finalMessage(decision, reasoning string) string {
	if decision == domain.DecisionApproved {
		return fmt.Sprintf("I think we could be a great match!\n\n%s\n\nI'd love to connect on LinkedIn and continue our conversation!", reasoning)
	}
	return fmt.Sprintf("Thank you for the conversation! %s\n\nI don't think we're quite the right match at this time, but I wish you the best!", reasoning)
}

func textOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
