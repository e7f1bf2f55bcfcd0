package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// MaxUserMessages is the hard cap on user turns per chat. Reaching it
// triggers the evaluation and freezes the conversation.
const MaxUserMessages = 10

// ChatState is the explicit lifecycle of a persona conversation.
type ChatState string

const (
	ChatStateEmpty      ChatState = "empty"
	ChatStateActive     ChatState = "active"
	ChatStateEvaluating ChatState = "evaluating"
	ChatStateTerminal   ChatState = "terminal"
)

// Message roles.
const (
	RoleMessageUser      = "user"
	RoleMessageAssistant = "assistant"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Messages []Message

func (m Messages) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(Messages{})
	}
	return json.Marshal(m)
}

func (m *Messages) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// Chat is one conversation between a swiper and the AI persona of the user
// they swiped on. Session 0 is the canonical chat for the pair; higher
// sessions are extra practice runs opened by admins.
type Chat struct {
	ID           string    `json:"id" db:"id"`
	SwiperID     string    `json:"swiper_id" db:"swiper_id"`
	SwipedID     string    `json:"swiped_id" db:"swiped_id"`
	Session      int       `json:"session" db:"session"`
	Messages     Messages  `json:"messages" db:"messages"`
	MessageCount int       `json:"message_count" db:"message_count"`
	State        ChatState `json:"state" db:"state"`
	AIDecision   *string   `json:"ai_decision" db:"ai_decision"`
	AIReasoning  *string   `json:"ai_reasoning" db:"ai_reasoning"`
	AIRubric     *Rubric   `json:"ai_rubric" db:"ai_rubric"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AcceptsUserInput reports whether another user message may be appended.
func (c *Chat) AcceptsUserInput() bool {
	return c.State != ChatStateTerminal && c.State != ChatStateEvaluating &&
		c.MessageCount < MaxUserMessages
}

// Evaluation decisions.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)
