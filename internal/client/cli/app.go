package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/skillclip/internal/client/client"
	"github.com/dmitrijs2005/skillclip/internal/client/config"
	"github.com/dmitrijs2005/skillclip/internal/client/guard"
	"github.com/dmitrijs2005/skillclip/internal/client/models"
	"github.com/dmitrijs2005/skillclip/internal/client/repositories/session"
	"github.com/dmitrijs2005/skillclip/internal/client/services"
	"github.com/dmitrijs2005/skillclip/internal/logging"
)

// wizard is the onboarding state the App drives.
type wizard interface {
	Next(in services.StepInput) error
	Back() error
	Reset()
	Step() models.OnboardingStep
	Progress() (current, total int)
	Completed() bool
}

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	authService services.AuthService
	onboarding  wizard
	guard       *guard.Guard
	routes      guard.Routes
	reader      *bufio.Reader
	out         io.Writer

	// location is the last path the guard allowed.
	location string
	// returnTo is where a successful login continues.
	returnTo string
}

// NewApp opens the local database and wires the gateway, the session store,
// the onboarding wizard and the auth service.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath, log)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	gateway := client.NewHTTPGateway(c.GatewayURL, c.RequestTimeout, nil)
	store := session.NewSQLiteStore(db, log)
	onboarding := services.NewOnboardingWizard()

	as := services.NewAuthService(gateway, store,
		services.WithLogger(log.With("component", "auth")),
		services.WithResendCooldown(c.ResendCooldown),
		services.WithOnboarding(onboarding),
	)

	return &App{
		config:      c,
		log:         log,
		db:          db,
		authService: as,
		onboarding:  onboarding,
		guard:       guard.New(guard.DefaultRoutes),
		routes:      guard.DefaultRoutes,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores the session, opens the dashboard and starts the REPL. It
// blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated()
}
