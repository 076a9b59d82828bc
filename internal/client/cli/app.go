package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/client/biometric"
	"github.com/dmitrijs2005/gophvote/internal/client/client"
	"github.com/dmitrijs2005/gophvote/internal/client/config"
	"github.com/dmitrijs2005/gophvote/internal/client/models"
	"github.com/dmitrijs2005/gophvote/internal/client/securestore"
	"github.com/dmitrijs2005/gophvote/internal/client/services"
	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/dmitrijs2005/gophvote/internal/filex"
	"github.com/dmitrijs2005/gophvote/internal/logging"
	"github.com/dmitrijs2005/gophvote/internal/server/election"
	"github.com/dmitrijs2005/gophvote/internal/server/handlers"
)

const (
	demoBaseURL       = "http://demo.local"
	demoTokenValidity = time.Hour
)

type ballotService interface {
	Load(ctx context.Context) error
	Current() (models.Category, bool)
	SelectCandidate(position, candidateID string) error
	SubmitCurrentVote(ctx context.Context) (services.Outcome, error)
	Previous() error
	Next() error
	Snapshot() models.SessionState
	Progress() string
	IsLast() bool
	Reset()
}

type summaryService interface {
	Render(w io.Writer) error
	FinalizeAndLogout(ctx context.Context)
}

type enroller interface {
	Enroll(ctx context.Context, pin []byte) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	session services.SessionController
	ballot  ballotService
	summary summaryService
	device  enroller
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp wires the client for cfg. Live mode keeps the token in the sealed
// on-disk store; demo mode serves the built-in election in-process and
// keeps everything in memory.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	opts := []client.Option{client.WithTimeout(cfg.RequestTimeout), client.WithLogger(logger)}
	baseURL := cfg.APIBaseURL

	var (
		db    *sql.DB
		store securestore.Store
	)

	if cfg.Demo() {
		h := handlers.NewHandler(election.NewDemo(), common.GenerateRandByteArray(32), demoTokenValidity, logger)
		opts = append(opts, client.WithTransport(client.HandlerTransport{Handler: handlers.NewRouter(h)}))
		baseURL = demoBaseURL
		store = securestore.NewMemoryStore()
	} else {
		if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
			return nil, err
		}

		var err error
		db, err = client.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		store, err = securestore.Open(ctx, db, cfg.KeyFile)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error opening secure store: %w", err)
		}
	}

	apiClient := client.NewHTTPClient(baseURL, opts...)
	device := biometric.NewDeviceAuthenticator(store, os.Stdout)

	app := newApp(cfg, logger, apiClient, store, device, device, bufio.NewReader(os.Stdin), os.Stdout)
	app.db = db
	return app, nil
}

func newApp(cfg *config.Config, logger logging.Logger, c client.Client, store securestore.Store,
	auth biometric.Authenticator, device enroller, reader *bufio.Reader, out io.Writer) *App {

	session := services.NewSessionController(c, store, auth, logger)
	ballot := services.NewBallotSequencer(c, session, logger)
	session.OnChange(func(authenticated bool) {
		if !authenticated {
			ballot.Reset()
		}
	})

	return &App{
		config:  cfg,
		logger:  logger,
		session: session,
		ballot:  ballot,
		summary: services.NewSummaryPresenter(ballot, session),
		device:  device,
		reader:  reader,
		out:     out,
	}
}

// Run restores a previous session when possible and starts the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Student Election (type 'help' for commands)")
	if a.config.Demo() {
		fmt.Fprintln(a.out, "Demo mode: votes are kept in memory only.")
	}

	if !a.config.Demo() && a.session.Restore(ctx) {
		a.welcome(a.session.User())
		a.loadBallot(ctx)
	}

	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) status() string {
	s := "logged out"
	if u := a.session.User(); u != nil && a.isLoggedIn() {
		s = u.DisplayName()
		if a.ballot.Snapshot().Phase == models.PhaseVoting {
			s += ", " + a.ballot.Progress()
		}
	}
	if a.config.Demo() {
		s += ", demo"
	}
	return s
}
