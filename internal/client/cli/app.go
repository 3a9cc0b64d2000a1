package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/cpguide/internal/client/client"
	"github.com/dmitrijs2005/cpguide/internal/client/config"
	"github.com/dmitrijs2005/cpguide/internal/client/models"
	"github.com/dmitrijs2005/cpguide/internal/client/services"
	"github.com/dmitrijs2005/cpguide/internal/client/store"
	"github.com/dmitrijs2005/cpguide/internal/client/validation"
	"github.com/dmitrijs2005/cpguide/internal/logging"
)

// sessionReader is the read side of the credential store used for display.
type sessionReader interface {
	ProgressMap(ctx context.Context) (models.ProgressMap, error)
	SolvedIndex(ctx context.Context) (models.SolvedIndex, error)
	SolvedProblems(ctx context.Context, topicID string) ([]string, error)
	Identity(ctx context.Context) (models.Identity, bool, error)
}

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	authService     services.AuthService
	sessionService  services.SessionService
	progressService services.ProgressService
	prefService     services.PreferenceService
	session         sessionReader
	validator       *validation.Validator

	reader   *bufio.Reader
	printer  *Printer
	identity models.Identity
}

// NewApp opens the session database and wires the API client and services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	return newApp(ctx, c, log, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	st := store.NewCredentialStore(db, c.IsProduction(), log.With("component", "store"))
	if _, err := st.ReconcileCookies(ctx); err != nil {
		log.Warn(ctx, "failed to update cookie attributes", "error", err)
	}

	api, err := client.NewHTTPClient(ctx, c.ServerBaseURL,
		client.WithTokenStore(st),
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "api")),
	)
	if err != nil {
		db.Close()
		return nil, err
	}
	st.AttachHeaderCache(api)

	a := &App{
		config:    c,
		log:       log,
		db:        db,
		session:   st,
		validator: validation.New(),
		reader:    bufio.NewReader(in),
		printer:   NewPrinter(out, models.ColorModeLight),
	}
	a.authService = services.NewAuthService(api, st, a, log)
	a.sessionService = services.NewSessionService(st, log)
	a.progressService = services.NewProgressService(api, st, log)
	a.prefService = services.NewPreferenceService(st, log)
	return a, nil
}

// Run restores the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.restore(ctx); err != nil {
		a.printer.Error("Could not restore session: %v", err)
	}
	a.printer.Print("Welcome to cpguide CLI (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
}

func (a *App) Close() error {
	return a.db.Close()
}

// restore evaluates the stored session once and loads display state.
func (a *App) restore(ctx context.Context) error {
	ok, err := a.sessionService.Init(ctx)
	if err != nil {
		return err
	}

	mode, err := a.prefService.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to load color mode", "error", err)
	}
	a.printer.SetMode(mode)

	a.identity = models.Identity{}
	if ok {
		id, _, err := a.session.Identity(ctx)
		if err != nil {
			return err
		}
		a.identity = id
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.sessionService.IsAuthenticated()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(guest)"
	}
	if name := a.identity.FullName(); name != "" {
		return fmt.Sprintf("(%s)", name)
	}
	return "(logged in)"
}

func (a *App) prompt() {
	a.printer.Prompt(a.getStatus())
}

// Navigate implements services.Navigator. The only surface is the login
// prompt, so navigating re-evaluates the session and tells the user.
func (a *App) Navigate(ctx context.Context, path string) {
	if err := a.restore(ctx); err != nil {
		a.log.Warn(ctx, "failed to re-evaluate session", "error", err)
	}
	if path == services.LoginPath {
		a.printer.Info("Type 'login' to sign in or 'signup' to create an account.")
	}
}
