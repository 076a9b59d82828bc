package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophvote/internal/api"
	"github.com/dmitrijs2005/gophvote/internal/client/biometric"
	"github.com/dmitrijs2005/gophvote/internal/client/securestore"
)

type fakeClient struct {
	mu sync.Mutex

	LoginResp *api.LoginResponse
	LoginErr  error
	LoginIDs  []string

	CandidatesResp  []api.Candidate
	CandidatesErr   error
	CandidatesToken string

	// VoteErrs is consumed one per call; nil entries mean success.
	VoteErrs  []error
	Votes     []api.VoteRequest
	VoteToken string
	// voteGate, when set, blocks Vote until it is closed.
	voteGate    chan struct{}
	voteStarted chan struct{}
}

func (f *fakeClient) Login(_ context.Context, id string) (*api.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginIDs = append(f.LoginIDs, id)
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginResp, nil
}

func (f *fakeClient) Candidates(_ context.Context, token string) ([]api.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CandidatesToken = token
	if f.CandidatesErr != nil {
		return nil, f.CandidatesErr
	}
	return f.CandidatesResp, nil
}

func (f *fakeClient) Vote(_ context.Context, token string, req api.VoteRequest) (*api.VoteResponse, error) {
	if f.voteStarted != nil {
		f.voteStarted <- struct{}{}
	}
	if f.voteGate != nil {
		<-f.voteGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Votes = append(f.Votes, req)
	f.VoteToken = token
	var err error
	if len(f.VoteErrs) > 0 {
		err, f.VoteErrs = f.VoteErrs[0], f.VoteErrs[1:]
	}
	if err != nil {
		return nil, err
	}
	return &api.VoteResponse{Message: "Vote recorded"}, nil
}

func (f *fakeClient) loginCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.LoginIDs)
}

type fakeAuthenticator struct {
	Hardware     bool
	Enrolled     bool
	Success      bool
	Err          error
	Prompts      []string
	AuthAttempts int
}

func (f *fakeAuthenticator) HasHardware(context.Context) bool { return f.Hardware }
func (f *fakeAuthenticator) IsEnrolled(context.Context) bool  { return f.Enrolled }

func (f *fakeAuthenticator) Authenticate(_ context.Context, prompt string) (biometric.Result, error) {
	f.AuthAttempts++
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return biometric.Result{}, f.Err
	}
	return biometric.Result{Success: f.Success}, nil
}

// brokenStore fails every operation.
type brokenStore struct{}

var errStoreBroken = errors.New("keychain unavailable")

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreBroken }
func (brokenStore) Set(context.Context, string, []byte) error   { return errStoreBroken }
func (brokenStore) Delete(context.Context, string) error        { return errStoreBroken }

var _ securestore.Store = brokenStore{}

// undeletableStore keeps every value it is given.
type undeletableStore struct {
	*securestore.MemoryStore
}

func (undeletableStore) Delete(context.Context, string) error { return errStoreBroken }

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) { return s.token, s.err }

func intPtr(v int) *int { return &v }

// demoCandidates is the flat list as the service returns it.
func demoCandidates() []api.Candidate {
	return []api.Candidate{
		{ID: "1", Name: "John Doe", Department: "Computer Science", Position: "President"},
		{ID: "2", Name: "Aisha Bello", Department: "Business Admin", Position: "President"},
		{ID: "3", Name: "Michael Okoro", Department: "Engineering", Position: "Vice President"},
		{ID: "4", Name: "Chiamaka Uche", Department: "Mass Communication", Position: "Vice President", TotalVotes: intPtr(7)},
	}
}
