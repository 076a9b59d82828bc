package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/api"
	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/dmitrijs2005/gophvote/internal/logging"
	"github.com/dmitrijs2005/gophvote/internal/server/auth"
	"github.com/dmitrijs2005/gophvote/internal/server/election"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newTestRouter(store *election.Store) http.Handler {
	return NewRouter(NewHandler(store, testSecret, time.Hour, logging.Nop()))
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var e api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func tokenFor(t *testing.T, id string) string {
	t.Helper()
	tok, err := auth.GenerateToken(api.User{StudentID: id}, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestLogin(t *testing.T) {
	h := newTestRouter(election.New(election.DemoCandidates(), election.ParseRoster([]string{"S1=Ada"})))

	rec := doJSON(t, h, http.MethodPost, common.LoginPath, "", api.LoginRequest{StudentID: "S1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(common.RequestIDHeader))

	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "Ada", resp.User.Name)

	id, err := auth.StudentIDFromToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "S1", id)
}

func TestLogin_Errors(t *testing.T) {
	h := newTestRouter(election.New(election.DemoCandidates(), election.ParseRoster([]string{"S1"})))

	rec := doJSON(t, h, http.MethodPost, common.LoginPath, "", api.LoginRequest{StudentID: "S9"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.ErrorResponse{Message: "Student not registered", Code: common.CodeUnknownStudent}, decodeError(t, rec))

	rec = doJSON(t, h, http.MethodPost, common.LoginPath, "", api.LoginRequest{StudentID: " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, common.LoginPath, bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCandidates(t *testing.T) {
	h := newTestRouter(election.NewDemo())

	rec := doJSON(t, h, http.MethodGet, common.CandidatesPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []api.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 4)
	assert.Equal(t, "President", list[0].Position)
	require.NotNil(t, list[0].TotalVotes)
	assert.Zero(t, *list[0].TotalVotes)
}

func TestVote(t *testing.T) {
	h := newTestRouter(election.NewDemo())
	tok := tokenFor(t, "S1")

	rec := doJSON(t, h, http.MethodPost, common.VotePath, tok, api.VoteRequest{Position: "President", CandidateID: "1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp api.VoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ReceiptID)

	tests := []struct {
		name   string
		token  string
		req    api.VoteRequest
		status int
		code   string
	}{
		{name: "duplicate", token: tok, req: api.VoteRequest{Position: "President", CandidateID: "2"}, status: http.StatusBadRequest, code: common.CodeAlreadyVoted},
		{name: "invalid position", token: tok, req: api.VoteRequest{Position: "Treasurer", CandidateID: "1"}, status: http.StatusBadRequest, code: common.CodeInvalidPosition},
		{name: "invalid candidate", token: tok, req: api.VoteRequest{Position: "Vice President", CandidateID: "1"}, status: http.StatusBadRequest, code: common.CodeInvalidCand},
		{name: "no token", req: api.VoteRequest{Position: "President", CandidateID: "1"}, status: http.StatusUnauthorized, code: common.CodeUnauthorized},
		{name: "bad token", token: "garbage", req: api.VoteRequest{Position: "President", CandidateID: "1"}, status: http.StatusUnauthorized, code: common.CodeUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, common.VotePath, tt.token, tt.req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestVote_ExpiredToken(t *testing.T) {
	h := newTestRouter(election.NewDemo())
	tok, err := auth.GenerateToken(api.User{StudentID: "S1"}, testSecret, -time.Minute)
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPost, common.VotePath, tok, api.VoteRequest{Position: "President", CandidateID: "1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Session expired, please log in again", decodeError(t, rec).Message)
}

func TestVote_TamperedToken(t *testing.T) {
	h := newTestRouter(election.NewDemo())
	tok, err := auth.GenerateToken(api.User{StudentID: "S1"}, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPost, common.VotePath, tok, api.VoteRequest{Position: "President", CandidateID: "1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeError(t, rec).Message)
}

func TestRouting(t *testing.T) {
	h := newTestRouter(election.NewDemo())

	rec := doJSON(t, h, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, common.CandidatesPath, "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newTestRouter(election.NewDemo())

	req := httptest.NewRequest(http.MethodGet, common.CandidatesPath, nil)
	req.Header.Set(common.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(common.RequestIDHeader))
}

func TestRequestIDIsLogged(t *testing.T) {
	var buf bytes.Buffer
	h := NewRouter(NewHandler(election.NewDemo(), testSecret, time.Hour, logging.New(logging.FormatText, "info", &buf)))

	req := httptest.NewRequest(http.MethodPost, common.LoginPath, strings.NewReader(`{"studentId":"S1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `msg="student logged in"`)
	assert.Contains(t, out, `msg="request completed"`)
	assert.Equal(t, 2, strings.Count(out, "request_id=req-7"))
}
