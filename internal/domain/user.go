package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// User roles. Personas are imported practice accounts chatted with through
// their AI stand-in; they never log in themselves.
const (
	RolePersona = 0
	RoleUser    = 1
	RoleAdmin   = 2
)

// Gender values stored on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Dating preference values.
const (
	PreferenceMen   = "men"
	PreferenceWomen = "women"
	PreferenceBoth  = "both"
)

const (
	DefaultEloScore = 1000.0
	MinEloScore     = 100.0
)

type UserProfile struct {
	ID                   string          `json:"id" db:"id"`
	LinkedinURL          *string         `json:"linkedin_url" db:"linkedin_url"`
	Age                  int             `json:"age" db:"age"`
	Gender               string          `json:"gender" db:"gender"`
	DatingPreference     string          `json:"dating_preference" db:"dating_preference"`
	OnboardingCompleted  bool            `json:"onboarding_completed" db:"onboarding_completed"`
	Name                 *string         `json:"name" db:"name"`
	Image                *string         `json:"image" db:"image"`
	Bio                  *string         `json:"bio" db:"bio"`
	About                *string         `json:"about" db:"about"`
	Experience           Experiences     `json:"experience" db:"experience"`
	Education            Educations      `json:"education" db:"education"`
	PersonaPrompt        *string         `json:"persona_prompt" db:"persona_prompt"`
	Role                 int             `json:"role" db:"role"`
	EloScore             float64         `json:"elo_score" db:"elo_score"`
	ProfileScore         *float64        `json:"profile_score" db:"profile_score"`
	ProfileVector        pq.Float64Array `json:"profile_vector" db:"profile_vector"`
	TotalRightSwipes     int             `json:"total_right_swipes" db:"total_right_swipes"`
	TotalLeftSwipes      int             `json:"total_left_swipes" db:"total_left_swipes"`
	ConversationsDone    int             `json:"conversations_completed" db:"conversations_completed"`
	AIApprovalsReceived  int             `json:"ai_approvals_received" db:"ai_approvals_received"`
	AIRejectionsReceived int             `json:"ai_rejections_received" db:"ai_rejections_received"`
	AvgRubric            Rubric          `json:"avg_rubric" db:"avg_rubric"`
	MatchCount           int             `json:"match_count" db:"match_count"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
}

// DisplayName returns the scraped name or a neutral placeholder for profiles
// whose enrichment has not landed yet.
func (u *UserProfile) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return "a professional"
}

func (u *UserProfile) IsPersona() bool {
	return u.Role == RolePersona
}

func (u *UserProfile) IsAdmin() bool {
	return u.Role >= RoleAdmin
}

// ProfileComplete reports whether the profile can appear in feeds. Scraping
// runs asynchronously, so an onboarded user may still be missing a name.
func (u *UserProfile) ProfileComplete() bool {
	return u.OnboardingCompleted && u.Name != nil && *u.Name != ""
}

type Experience struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Duration    *string `json:"duration,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Education struct {
	School       string  `json:"school"`
	Degree       *string `json:"degree,omitempty"`
	FieldOfStudy *string `json:"field_of_study,omitempty"`
}

type Experiences []Experience

func (e Experiences) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal(Experiences{})
	}
	return json.Marshal(e)
}

func (e *Experiences) Scan(src interface{}) error {
	return scanJSON(src, e)
}

type Educations []Education

func (e Educations) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal(Educations{})
	}
	return json.Marshal(e)
}

func (e *Educations) Scan(src interface{}) error {
	return scanJSON(src, e)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported scan source %T", src)
	}
}
