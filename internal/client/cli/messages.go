package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophvote/internal/client/client"
	"github.com/dmitrijs2005/gophvote/internal/client/services"
)

// describe turns a handler error into the line shown to the student.
func describe(err error) string {
	switch {
	case errors.Is(err, services.ErrUnavailable):
		return "Fingerprint login is not available on this device. Use 'enroll' to set a device PIN."
	case errors.Is(err, services.ErrAuth):
		if errors.Is(err, client.ErrUnavailable) {
			return "Unable to login. Please try again."
		}
		return "Login failed: " + reason(err, services.ErrAuth)
	case errors.Is(err, services.ErrLoad):
		return "Failed to load candidates: " + reason(err, services.ErrLoad)
	case errors.Is(err, services.ErrVote):
		if errors.Is(err, client.ErrUnavailable) {
			return "Failed to submit vote. Please try again."
		}
		return "Failed to submit vote: " + reason(err, services.ErrVote)
	case errors.Is(err, services.ErrBusy):
		return "Your vote is still being submitted."
	}
	return err.Error()
}

// reason prefers the server-supplied message and otherwise strips the
// sentinel prefix from err.
func reason(err, sentinel error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
