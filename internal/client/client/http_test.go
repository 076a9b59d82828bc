package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/api"
	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	auth   string
	reqID  string
	body   []byte
}

func newServer(t *testing.T, status int, respBody string, got *captured) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*got = captured{
			method: r.Method,
			path:   r.URL.Path,
			auth:   r.Header.Get(common.AuthorizationHeader),
			reqID:  r.Header.Get(common.RequestIDHeader),
			body:   b,
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL + "/")
}

func TestLogin_Success(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusOK, `{"token":"T1","user":{"studentId":"s1","name":"Ada"}}`, &got)

	resp, err := c.Login(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "T1", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Ada", resp.User.Name)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, common.LoginPath, got.path)
	assert.Empty(t, got.auth, "login must not send a bearer token")
	assert.JSONEq(t, `{"studentId":"s1"}`, string(got.body))
	_, err = uuid.Parse(got.reqID)
	assert.NoError(t, err, "request id must be a uuid")
}

func TestLogin_ServerMessage(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusUnauthorized, `{"message":"Student not registered"}`, &got)

	_, err := c.Login(context.Background(), "s1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Student not registered", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestCandidates_SendsBearer(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusOK, `[{"id":"1","name":"John Doe","department":"CS","image":"u","position":"President"}]`, &got)

	list, err := c.Candidates(context.Background(), "T1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "President", list[0].Position)
	assert.Nil(t, list[0].TotalVotes)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "Bearer T1", got.auth)
	assert.Empty(t, got.body)
}

func TestCandidates_NullBody(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusOK, `null`, &got)

	list, err := c.Candidates(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Empty(t, got.auth)
}

func TestVote_Success(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusCreated, `{"message":"Vote recorded","receiptId":"r1"}`, &got)

	resp, err := c.Vote(context.Background(), "T1", api.VoteRequest{Position: "President", CandidateID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "r1", resp.ReceiptID)

	var sent api.VoteRequest
	require.NoError(t, json.Unmarshal(got.body, &sent))
	assert.Equal(t, api.VoteRequest{Position: "President", CandidateID: "1"}, sent)
	assert.Equal(t, "Bearer T1", got.auth)
	assert.Equal(t, common.VotePath, got.path)
}

func TestVote_EmptySuccessBody(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusNoContent, ``, &got)

	_, err := c.Vote(context.Background(), "T1", api.VoteRequest{Position: "President", CandidateID: "1"})
	require.NoError(t, err)
}

func TestVote_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		alreadyVoted bool
		message      string
	}{
		{name: "duplicate by code", status: http.StatusConflict, body: `{"message":"Duplicate vote","code":"ALREADY_VOTED"}`, alreadyVoted: true, message: "Duplicate vote"},
		{name: "duplicate by text", status: http.StatusBadRequest, body: `{"message":"You have already voted for President"}`, alreadyVoted: true, message: "You have already voted for President"},
		{name: "plain text body", status: http.StatusBadRequest, body: "Invalid position\n", message: "Invalid position"},
		{name: "json invalid position", status: http.StatusBadRequest, body: `{"message":"Invalid position"}`, message: "Invalid position"},
		{name: "empty body", status: http.StatusInternalServerError, body: "", message: "500 Internal Server Error"},
		{name: "duplicate in foreign json shape", status: http.StatusBadRequest, body: `{"error":"You have already voted for this position"}`, alreadyVoted: true, message: `{"error":"You have already voted for this position"}`},
		{name: "json string body", status: http.StatusBadRequest, body: `"Invalid position"`, message: "Invalid position"},
		{name: "json string duplicate", status: http.StatusBadRequest, body: `"You have already voted"`, alreadyVoted: true, message: "You have already voted"},
		{name: "empty json object", status: http.StatusBadGateway, body: `{}`, message: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got captured
			c := newServer(t, tt.status, tt.body, &got)

			_, err := c.Vote(context.Background(), "T1", api.VoteRequest{Position: "A", CandidateID: "1"})
			require.Error(t, err)
			assert.Equal(t, tt.alreadyVoted, errors.Is(err, ErrAlreadyVoted))
			assert.Equal(t, tt.message, Message(err))
		})
	}
}

func TestDo_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url)
	_, err := c.Login(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Candidates(ctx, "T")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDo_BadJSON(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusOK, `{"token":`, &got)

	_, err := c.Login(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestHandlerTransport(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer T", r.Header.Get(common.AuthorizationHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"1","position":"President"}]`)
	})

	c := NewHTTPClient("http://election.local", WithTransport(HandlerTransport{Handler: h}), WithTimeout(time.Second))
	list, err := c.Candidates(context.Background(), "T")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestHandlerTransport_CanceledContext(t *testing.T) {
	c := NewHTTPClient("http://election.local", WithTransport(HandlerTransport{Handler: http.NotFoundHandler()}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Candidates(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}
