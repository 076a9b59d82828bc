// Package election is the in-memory election behind the mock service: the
// candidate list, the roster of students allowed to log in, and one vote
// per student and position.
package election

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/api"
	"github.com/oklog/ulid"
)

var (
	ErrUnknownStudent   = errors.New("student not registered")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrInvalidCandidate = errors.New("invalid candidate")
	ErrAlreadyVoted     = errors.New("already voted for this position")
)

// Receipt acknowledges a recorded vote.
type Receipt struct {
	ID       ulid.ULID
	Position string
	CastAt   time.Time
}

type Store struct {
	mu         sync.Mutex
	candidates []api.Candidate
	positions  map[string]struct{}
	roster     map[string]api.User
	votes      map[string]map[string]string
	tallies    map[string]int
	entropy    io.Reader
	now        func() time.Time
}

// New builds a store over candidates. A nil or empty roster lets any
// non-blank student id log in.
func New(candidates []api.Candidate, roster []api.User) *Store {
	s := &Store{
		candidates: append([]api.Candidate(nil), candidates...),
		positions:  make(map[string]struct{}),
		votes:      make(map[string]map[string]string),
		tallies:    make(map[string]int),
		entropy:    ulid.Monotonic(rand.Reader, 0),
		now:        time.Now,
	}
	for _, c := range candidates {
		s.positions[c.Position] = struct{}{}
	}
	if len(roster) > 0 {
		s.roster = make(map[string]api.User, len(roster))
		for _, u := range roster {
			s.roster[u.StudentID] = u
		}
	}
	return s
}

// Login returns the registered student with id.
func (s *Store) Login(studentID string) (api.User, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return api.User{}, ErrUnknownStudent
	}
	if s.roster == nil {
		return api.User{StudentID: studentID}, nil
	}
	u, ok := s.roster[studentID]
	if !ok {
		return api.User{}, ErrUnknownStudent
	}
	return u, nil
}

// Candidates returns the flat candidate list with current tallies.
func (s *Store) Candidates() []api.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Candidate, len(s.candidates))
	for i, c := range s.candidates {
		n := s.tallies[c.ID]
		c.TotalVotes = &n
		out[i] = c
	}
	return out
}

// Vote records studentID's choice for position. A student votes at most
// once per position.
func (s *Store) Vote(studentID, position, candidateID string) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.positions[position]; !ok {
		return Receipt{}, ErrInvalidPosition
	}
	if !s.runsFor(candidateID, position) {
		return Receipt{}, ErrInvalidCandidate
	}

	ballot := s.votes[studentID]
	if _, voted := ballot[position]; voted {
		return Receipt{}, ErrAlreadyVoted
	}

	now := s.now()
	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	if err != nil {
		return Receipt{}, err
	}

	if ballot == nil {
		ballot = make(map[string]string)
		s.votes[studentID] = ballot
	}
	ballot[position] = candidateID
	s.tallies[candidateID]++

	return Receipt{ID: id, Position: position, CastAt: now}, nil
}

func (s *Store) runsFor(candidateID, position string) bool {
	for _, c := range s.candidates {
		if c.ID == candidateID && c.Position == position {
			return true
		}
	}
	return false
}
