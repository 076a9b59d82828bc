// Package api defines the JSON bodies exchanged between the voting client
// and the election service.
package api

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	StudentID string `json:"studentId"`
}

// User describes the authenticated student.
type User struct {
	StudentID  string `json:"studentId"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Candidate is one element of GET /api/candidates. The list is flat; every
// record names the position it runs for.
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Image      string `json:"image"`
	Position   string `json:"position"`
	TotalVotes *int   `json:"totalVotes,omitempty"`
}

// VoteRequest is the body of POST /api/vote.
type VoteRequest struct {
	Position    string `json:"position"`
	CandidateID string `json:"candidateId"`
}

// VoteResponse acknowledges a recorded vote.
type VoteResponse struct {
	Message   string `json:"message"`
	ReceiptID string `json:"receiptId,omitempty"`
}

// ErrorResponse is the body of every non-2xx response. Code is optional;
// older services send only Message.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
