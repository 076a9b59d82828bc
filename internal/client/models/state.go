package models

// Phase is the ballot sequencer state.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseVoting  Phase = "voting"
	PhaseSummary Phase = "summary"
	PhaseEmpty   Phase = "empty"
	PhaseFailed  Phase = "failed"
)

// SelectionMap maps a position to the chosen candidate id.
type SelectionMap map[string]string

// Clone returns an independent copy.
func (m SelectionMap) Clone() SelectionMap {
	out := make(SelectionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SessionState is a serialisable snapshot of an in-progress ballot.
//
// Recorded holds positions whose vote the service accepted during this
// session; AlreadyVoted holds positions the service reported as voted
// before. A position never appears in both.
type SessionState struct {
	Phase        Phase           `json:"phase"`
	Index        int             `json:"index"`
	Furthest     int             `json:"furthest"`
	Total        int             `json:"total"`
	Selections   SelectionMap    `json:"selections"`
	Recorded     map[string]bool `json:"recorded"`
	AlreadyVoted map[string]bool `json:"alreadyVoted"`
	Submitting   bool            `json:"submitting"`
	LastError    string          `json:"lastError,omitempty"`
}

// User is the authenticated student as the client knows them.
type User struct {
	StudentID string
	Name      string
}

// DisplayName returns Name, falling back to the student id.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.StudentID
}
