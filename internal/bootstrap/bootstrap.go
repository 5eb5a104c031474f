package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	dashinadapter "edura/internal/modules/dashboard/adapter/in"
	dashoutadapter "edura/internal/modules/dashboard/adapter/out"
	dashservice "edura/internal/modules/dashboard/service"
	dashusecase "edura/internal/modules/dashboard/usecase"
	navinadapter "edura/internal/modules/navigation/adapter/in"
	navoutadapter "edura/internal/modules/navigation/adapter/out"
	navservice "edura/internal/modules/navigation/service"
	navusecase "edura/internal/modules/navigation/usecase"
	routinginadapter "edura/internal/modules/routing/adapter/in"
	routingdto "edura/internal/modules/routing/dto"
	routingusecase "edura/internal/modules/routing/usecase"
	sessioninadapter "edura/internal/modules/session/adapter/in"
	sessionoutadapter "edura/internal/modules/session/adapter/out"
	sessionservice "edura/internal/modules/session/service"
	sessionusecase "edura/internal/modules/session/usecase"
	"edura/internal/platform/clock"
	"edura/internal/platform/config"
	"edura/internal/platform/id"
	"edura/internal/platform/kvstore"
	"edura/internal/platform/logging"
	"edura/internal/platform/restclient"
	uiapp "edura/internal/ui/app"
	"edura/internal/ui/theme"
)

type App struct {
	Config        config.Config
	Logger        hclog.Logger
	SessionCLI    sessioninadapter.CLIHandler
	NavigationTUI navinadapter.TUIHandler
	RoutingCLI    routinginadapter.CLIHandler
	DashboardCLI  dashinadapter.CLIHandler
	Browser       *navoutadapter.MemoryHistory

	kv kvstore.Store
}

// New wires every module. startURL seeds the in-memory browser history and
// the navigation controller.
func New(cfg config.Config, logger hclog.Logger, startURL string) (*App, error) {
	logger = logging.OrNull(logger)
	if startURL == "" {
		startURL = "/"
	}

	kv, err := kvstore.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	client := restclient.New(restclient.Options{
		BaseURL:    cfg.APIURL,
		AppName:    cfg.AppName,
		AppVersion: cfg.AppVersion,
		Timeout:    cfg.RequestTimeout,
		IDs:        id.UUID{},
		Logger:     logger,
	})

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewStore(
		sessionoutadapter.NewRESTAuthGateway(client),
		sessionoutadapter.NewKVCredentialStore(kv),
		sessionoutadapter.NewJWTTokenInspector(clock.System{}),
		logger,
	))

	browser := navoutadapter.NewMemoryHistory(startURL)
	navUC := navusecase.NewInteractor(navservice.NewController(browser, startURL, logger), browser)

	routingUC := routingusecase.NewInteractor(navUC, sessionUC)

	dashUC := dashusecase.NewInteractor(dashservice.NewService(
		dashoutadapter.NewRESTGateway(client),
		dashoutadapter.NewSessionBridge(sessionUC),
		logger,
	))

	return &App{
		Config:        cfg,
		Logger:        logger,
		SessionCLI:    sessioninadapter.NewCLIHandler(sessionUC),
		NavigationTUI: navinadapter.NewTUIHandler(navUC),
		RoutingCLI:    routinginadapter.NewCLIHandler(routingUC),
		DashboardCLI:  dashinadapter.NewCLIHandler(dashUC),
		Browser:       browser,
		kv:            kv,
	}, nil
}

func (a *App) Close() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

// RunTUI restores the stored session and runs the interactive client until
// the user quits.
func RunTUI(app *App, themeName string) error {
	ctx := context.Background()
	restored := app.SessionCLI.Rehydrate(ctx)
	app.Logger.Info("starting tui", "authenticated", restored.Authenticated, "url", app.Browser.URL())

	stop := app.RoutingCLI.Subscribe(func(v routingdto.ViewOutput) {
		app.Logger.Debug("view changed", "view", v.View, "requested", v.Requested, "rule", v.Rule)
	})
	defer stop()

	model := uiapp.NewModel(app.SessionCLI, app.NavigationTUI, app.RoutingCLI, app.DashboardCLI, theme.ByName(themeName))
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
