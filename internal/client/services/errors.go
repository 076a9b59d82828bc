package services

import "errors"

var (
	// ErrValidation: a required field is empty or refers to nothing
	// selectable. Recovered locally.
	ErrValidation = errors.New("validation error")
	// ErrAuth: login or device confirmation was rejected.
	ErrAuth = errors.New("authentication failed")
	// ErrUnavailable: no biometric hardware or no enrolled credential.
	ErrUnavailable = errors.New("biometric authentication unavailable")
	// ErrLoad: the candidate list could not be fetched. Terminal for the
	// ballot.
	ErrLoad = errors.New("unable to load candidates")
	// ErrVote: the service rejected a vote for a reason other than a
	// duplicate. State is kept so the vote can be resubmitted.
	ErrVote = errors.New("vote not recorded")
	// ErrNavigation: the move would leave the visited categories.
	ErrNavigation = errors.New("navigation not allowed")
	// ErrBusy: a vote submission is still in flight.
	ErrBusy = errors.New("vote submission in progress")
)
