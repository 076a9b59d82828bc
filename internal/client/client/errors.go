package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophvote/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrAlreadyVoted = errors.New("already voted")
)

// APIError is a non-2xx response from the election service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error {
	switch {
	case e.duplicate():
		return ErrAlreadyVoted
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

// duplicate prefers the structured code. The message match only applies
// when the service sent no code at all.
func (e *APIError) duplicate() bool {
	if e.Code != "" {
		return e.Code == common.CodeAlreadyVoted
	}
	return strings.Contains(strings.ToLower(e.Message), common.AlreadyVotedText)
}

// Message extracts the server-supplied message from err, falling back to
// err.Error().
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
