package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/api"
	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/dmitrijs2005/gophvote/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

type Option func(*HTTPClient)

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l.With("module", "api_client") }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Login(ctx context.Context, studentID string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.do(ctx, http.MethodPost, common.LoginPath, "", api.LoginRequest{StudentID: studentID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Candidates(ctx context.Context, token string) ([]api.Candidate, error) {
	var resp []api.Candidate
	if err := c.do(ctx, http.MethodGet, common.CandidatesPath, token, nil, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []api.Candidate{}
	}
	return resp, nil
}

func (c *HTTPClient) Vote(ctx context.Context, token string, req api.VoteRequest) (*api.VoteResponse, error) {
	var resp api.VoteResponse
	if err := c.do(ctx, http.MethodPost, common.VotePath, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	ctx = logging.WithRequestID(ctx, requestID)
	log := c.logger.With("method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapError turns a non-2xx response into *APIError. The body may be a JSON
// object ({"message": ..., "code": ...}), a JSON string or plain text. Any
// other JSON shape keeps the raw body as the message.
func mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{Status: resp.StatusCode}

	var body api.ErrorResponse
	var text string
	switch {
	case json.Unmarshal(raw, &body) == nil && (body.Message != "" || body.Code != ""):
		apiErr.Message = body.Message
		apiErr.Code = body.Code
	case json.Unmarshal(raw, &text) == nil:
		apiErr.Message = strings.TrimSpace(text)
	default:
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
