package domain

import "time"

// Match is created exactly once per unordered user pair when a chat's
// evaluation approves. LinkedIn contact is revealed only after both sides
// approve manually.
type Match struct {
	ID            string    `json:"id" db:"id"`
	User1ID       string    `json:"user1_id" db:"user1_id"`
	User2ID       string    `json:"user2_id" db:"user2_id"`
	User1Approved bool      `json:"user1_approved" db:"user1_approved"`
	User2Approved bool      `json:"user2_approved" db:"user2_approved"`
	BothApproved  bool      `json:"both_approved" db:"both_approved"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (m *Match) HasUser(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUser(userID string) (string, bool) {
	switch userID {
	case m.User1ID:
		return m.User2ID, true
	case m.User2ID:
		return m.User1ID, true
	}
	return "", false
}

// ApproveBy sets the caller's side and recomputes BothApproved. Setting a
// side that is already approved is a no-op.
func (m *Match) ApproveBy(userID string) bool {
	if !m.HasUser(userID) {
		return false
	}
	if m.User1ID == userID {
		m.User1Approved = true
	} else {
		m.User2Approved = true
	}
	m.BothApproved = m.User1Approved && m.User2Approved
	return true
}

// NormalizePair orders the two ids so user1_id < user2_id, matching the
// uniqueness constraint on the pair.
func NormalizePair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
