// Package services holds the client-side controllers behind the voting
// screens: the session (login/logout and the bearer token), the ballot
// sequencer and the summary presenter.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/client/biometric"
	"github.com/dmitrijs2005/gophvote/internal/client/client"
	"github.com/dmitrijs2005/gophvote/internal/client/models"
	"github.com/dmitrijs2005/gophvote/internal/client/securestore"
	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/dmitrijs2005/gophvote/internal/logging"
)

const (
	// TokenKey is the secure-store key holding the bearer token.
	TokenKey        = "jwt_token"
	biometricPrompt = "Authenticate to access voting system"
)

// SessionController owns the authenticated session.
//
//   - LoginManual: exchange a student id for a token.
//   - LoginBiometric: confirm on the device first, then as LoginManual.
//   - Logout: forget the token everywhere; never fails.
//   - Restore: re-adopt a stored, unexpired token.
//   - Token: the bearer token for authenticated calls.
type SessionController interface {
	LoginManual(ctx context.Context, studentID string) (*models.User, error)
	LoginBiometric(ctx context.Context, studentID string) (*models.User, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) bool
	Token(ctx context.Context) (string, error)
	User() *models.User
	Authenticated() bool
	OnChange(fn func(authenticated bool))
}

type sessionController struct {
	client client.Client
	store  securestore.Store
	device biometric.Authenticator
	logger logging.Logger
	now    func() time.Time

	mu    sync.Mutex
	token string
	user  *models.User
	// loggedOut stops Token from reading a stored token that Logout
	// failed to delete.
	loggedOut bool
	listeners []func(bool)
}

func NewSessionController(c client.Client, store securestore.Store, device biometric.Authenticator, logger logging.Logger) SessionController {
	return &sessionController{
		client: c,
		store:  store,
		device: device,
		logger: logger.With("module", "session"),
		now:    time.Now,
	}
}

func (s *sessionController) LoginManual(ctx context.Context, studentID string) (*models.User, error) {
	if common.IsBlank(studentID) {
		return nil, fmt.Errorf("%w: student id is required", ErrValidation)
	}
	return s.login(ctx, strings.TrimSpace(studentID))
}

func (s *sessionController) LoginBiometric(ctx context.Context, studentID string) (*models.User, error) {
	if common.IsBlank(studentID) {
		return nil, fmt.Errorf("%w: student id is required", ErrValidation)
	}
	if !s.device.HasHardware(ctx) || !s.device.IsEnrolled(ctx) {
		return nil, ErrUnavailable
	}

	res, err := s.device.Authenticate(ctx, biometricPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuth, err)
	}
	if !res.Success {
		return nil, fmt.Errorf("%w: device credential did not match", ErrAuth)
	}
	return s.login(ctx, strings.TrimSpace(studentID))
}

func (s *sessionController) login(ctx context.Context, studentID string) (*models.User, error) {
	resp, err := s.client.Login(ctx, studentID)
	if err != nil {
		s.logger.Warn(ctx, "login rejected", "student", studentID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrAuth, err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: no token in response", ErrAuth)
	}

	user := &models.User{StudentID: studentID}
	if resp.User != nil {
		user.Name = resp.User.Name
	}

	if err := s.store.Set(ctx, TokenKey, []byte(resp.Token)); err != nil {
		s.logger.Error(ctx, "saving token", "error", err)
	}

	s.adopt(resp.Token, user)
	s.logger.Info(ctx, "logged in", "student", studentID)
	return user, nil
}

func (s *sessionController) Logout(ctx context.Context) {
	if err := s.store.Delete(ctx, TokenKey); err != nil {
		s.logger.Error(ctx, "deleting token", "error", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.loggedOut = true
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(false)
	}
	s.logger.Info(ctx, "logged out")
}

func (s *sessionController) Restore(ctx context.Context) bool {
	raw, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, securestore.ErrNotFound) {
			s.logger.Error(ctx, "retrieving token", "error", err)
		}
		return false
	}
	token := string(raw)
	user := &models.User{}

	if claims, ok := inspectToken(token); ok {
		if expired(claims, s.now()) {
			s.logger.Info(ctx, "stored token expired")
			if err := s.store.Delete(ctx, TokenKey); err != nil {
				s.logger.Error(ctx, "deleting token", "error", err)
			}
			return false
		}
		user.StudentID = claims.StudentID
		if user.StudentID == "" {
			user.StudentID = claims.Subject
		}
		user.Name = claims.Name
	}

	s.adopt(token, user)
	s.logger.Info(ctx, "session restored", "student", user.StudentID)
	return true
}

func (s *sessionController) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	token, loggedOut := s.token, s.loggedOut
	s.mu.Unlock()
	if token != "" {
		return token, nil
	}
	if loggedOut {
		return "", client.ErrUnauthorized
	}

	raw, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, securestore.ErrNotFound) {
			s.logger.Error(ctx, "retrieving token", "error", err)
		}
		return "", client.ErrUnauthorized
	}
	return string(raw), nil
}

func (s *sessionController) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *sessionController) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

func (s *sessionController) OnChange(fn func(bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *sessionController) adopt(token string, user *models.User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.loggedOut = false
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(true)
	}
}
