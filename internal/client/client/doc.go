// Package client talks to the election service.
//
// The Client interface is the contract used by the session and ballot
// services: Login, Candidates and Vote. HTTPClient implements it with JSON
// over net/http, attaching "Authorization: Bearer <token>" and an
// X-Request-ID to every call. The same HTTPClient serves demo mode by
// swapping its transport for HandlerTransport, which runs an in-process
// http.Handler instead of dialling the network.
//
// # Errors
//
// Transport failures map to ErrUnavailable. Non-2xx responses become
// *APIError, which unwraps to ErrUnauthorized for 401/403 and to
// ErrAlreadyVoted when the service reports a duplicate vote, so callers
// can use errors.Is for the kind and errors.As for the server message.
//
// InitDatabase opens the local SQLite database and applies the embedded
// goose migrations.
package client
