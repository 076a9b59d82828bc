package client

import (
	"context"

	"github.com/dmitrijs2005/gophvote/internal/api"
)

type Client interface {
	Login(ctx context.Context, studentID string) (*api.LoginResponse, error)
	Candidates(ctx context.Context, token string) ([]api.Candidate, error)
	Vote(ctx context.Context, token string, req api.VoteRequest) (*api.VoteResponse, error)
}
