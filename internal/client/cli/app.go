// Package cli implements the interactive terminal views of the Arena
// client: feed, search, article detail, editor, and profile, driven by a
// read–eval–print loop.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"github.com/virtual-arena/arena-cli/internal/client/api"
	"github.com/virtual-arena/arena-cli/internal/client/config"
	"github.com/virtual-arena/arena-cli/internal/client/services"
	"github.com/virtual-arena/arena-cli/internal/client/session"
	"github.com/virtual-arena/arena-cli/internal/logging"
)

// App wires the views to the services and owns per-process state: the
// session database, the terminal reader/writer, and the pending navigation
// signals the redirect callbacks raise.
type App struct {
	config         *config.Config
	db             *sql.DB
	store          session.Store
	authService    services.AuthService
	articleService services.ArticleService
	commentService services.CommentService
	log            logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// signInRequested is raised by the sign-in redirect: the current guarded
	// view unwinds and the REPL lands on the login prompt, the terminal
	// equivalent of navigating to /auth/sign-in.
	signInRequested bool

	// backRequested is raised by the navigate-back side effect of a
	// successful article deletion; the detail view unwinds to its caller.
	backRequested bool
}

// NewApp opens the session database, builds the API client and services,
// and returns a ready-to-run App.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := session.OpenDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	log := logging.NewTextLogger(os.Stderr, level)

	store := session.NewSQLiteStore(db)

	httpClient := &http.Client{Timeout: c.HTTPTimeout}
	apiClient := api.NewHTTPClient(c.BaseURL, httpClient, store, log)

	a := &App{
		config: c,
		db:     db,
		store:  store,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	a.authService = services.NewAuthService(apiClient, store, a.requestSignIn, log)
	a.articleService = services.NewArticleService(apiClient, store, a.requestSignIn, a.requestBack, c.PageLimit, log)
	a.commentService = services.NewCommentService(apiClient)

	return a, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) requestSignIn() {
	a.signInRequested = true
}

func (a *App) requestBack() {
	a.backRequested = true
}

// consumeSignIn reports and clears a pending sign-in redirect.
func (a *App) consumeSignIn() bool {
	r := a.signInRequested
	a.signInRequested = false
	return r
}

// consumeBack reports and clears a pending navigate-back.
func (a *App) consumeBack() bool {
	r := a.backRequested
	a.backRequested = false
	return r
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsAuthenticated(ctx)
}
