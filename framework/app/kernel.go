package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/providers"
	"github.com/km-arc/go-inject/framework/routing"
)

// Application wires the container to the process: it registers the core
// providers, loads the bindings file and serves HTTP.
//
// The container builds a fresh instance on every Get, so the application
// resolves its config, logger and router exactly once and keeps them.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	config *config.Config
	logger *zap.Logger
	router *routing.Router
}

// New bootstraps an application around the process-wide container.
func New(envFiles ...string) (*Application, error) {
	return NewWithContainer(container.Default(), envFiles...)
}

// NewWithContainer bootstraps an application around c.
func NewWithContainer(c *container.Container, envFiles ...string) (*Application, error) {
	registry := container.NewProviderRegistry(c)
	registry.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	registry.Register(&providers.LoggingServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})

	a := &Application{Container: c, Providers: registry}

	var err error
	if a.config, err = container.Resolve[*config.Config](c, "config"); err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}
	if a.logger, err = container.Resolve[*zap.Logger](c, "logger"); err != nil {
		return nil, fmt.Errorf("resolve logger: %w", err)
	}
	c.UseLogger(a.logger)

	if a.router, err = container.Resolve[*routing.Router](c, "router"); err != nil {
		return nil, fmt.Errorf("resolve router: %w", err)
	}

	if err := a.loadBindings(); err != nil {
		return nil, err
	}

	if a.config.App.Debug && !a.IsProduction() {
		a.router.Prefix("/_container", a.mountInspector)
	}

	return a, nil
}

func (a *Application) loadBindings() error {
	path := a.config.Container.Bindings
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !a.config.Container.Required {
		a.logger.Debug("no bindings file", zap.String("path", path))
		return nil
	}
	return a.LoadFile(path)
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

func (a *Application) Config() *config.Config  { return a.config }
func (a *Application) Logger() *zap.Logger     { return a.logger }
func (a *Application) Router() *routing.Router { return a.router }

// Run boots the application (if needed) and starts the HTTP server.
func (a *Application) Run() error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	defer a.logger.Sync() //nolint:errcheck

	addr := ":" + a.config.App.Port
	a.logger.Info("listening",
		zap.String("addr", addr),
		zap.String("env", a.config.App.Env),
		zap.String("version", a.Version()),
		zap.Int("bindings", len(a.Bindings())),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: time.Duration(a.config.App.ReadTimeout) * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
func (a *Application) Version() string     { return "0.1.0" }
