// Package common holds wire-level names shared by the voting client and the
// election backend.
package common

// HTTP headers.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)

// API routes.
const (
	LoginPath      = "/api/auth/login"
	CandidatesPath = "/api/candidates"
	VotePath       = "/api/vote"
)

// Error codes carried in the "code" field of an error body. Clients must
// still cope with services that send only a message.
const (
	CodeAlreadyVoted    = "ALREADY_VOTED"
	CodeInvalidPosition = "INVALID_POSITION"
	CodeInvalidCand     = "INVALID_CANDIDATE"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnknownStudent  = "UNKNOWN_STUDENT"
)

// AlreadyVotedText is the phrase older services put in the message when a
// student re-votes for a position.
const AlreadyVotedText = "already voted"
