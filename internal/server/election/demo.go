package election

import (
	"strings"

	"github.com/dmitrijs2005/gophvote/internal/api"
)

// DemoCandidates is the ballot served when no live election is available.
func DemoCandidates() []api.Candidate {
	return []api.Candidate{
		{ID: "1", Name: "John Doe", Department: "Computer Science", Position: "President", Image: "https://randomuser.me/api/portraits/men/1.jpg"},
		{ID: "2", Name: "Aisha Bello", Department: "Business Admin", Position: "President", Image: "https://randomuser.me/api/portraits/women/2.jpg"},
		{ID: "3", Name: "Michael Okoro", Department: "Engineering", Position: "Vice President", Image: "https://randomuser.me/api/portraits/men/3.jpg"},
		{ID: "4", Name: "Chiamaka Uche", Department: "Mass Communication", Position: "Vice President", Image: "https://randomuser.me/api/portraits/women/4.jpg"},
	}
}

// NewDemo returns an open election over DemoCandidates.
func NewDemo() *Store {
	return New(DemoCandidates(), nil)
}

// ParseRoster turns "id" or "id=Name" entries into roster users. Blank
// entries are skipped.
func ParseRoster(entries []string) []api.User {
	out := make([]api.User, 0, len(entries))
	for _, e := range entries {
		id, name, _ := strings.Cut(e, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		out = append(out, api.User{StudentID: id, Name: strings.TrimSpace(name)})
	}
	return out
}
