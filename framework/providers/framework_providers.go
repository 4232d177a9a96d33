package providers

import (
	"context"
	"fmt"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/logging"
	"github.com/km-arc/go-inject/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Bound identifiers:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	app.Instance("config", config.Load(p.EnvFiles...))
	app.Set("configuration", container.Factory(func(ctx context.Context, c *container.Container, _ []any) (any, error) {
		return c.GetContext(ctx, "config")
	}))
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger from the "config" binding.
//
// Bound identifiers:
//   - "logger"  → *zap.Logger (a new logger per Get; resolve it once)
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	app.Set("logger", container.Factory(func(ctx context.Context, c *container.Container, _ []any) (any, error) {
		v, err := c.GetContext(ctx, "config")
		if err != nil {
			return nil, err
		}
		cfg, ok := v.(*config.Config)
		if !ok {
			return nil, fmt.Errorf("config resolved to %T", v)
		}
		return logging.New(cfg.App, cfg.Log)
	}))
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router target. Its *zap.Logger
// parameter is wired to the "logger" binding.
//
// Bound identifiers:
//   - "router"  → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.MustRegister(routing.New,
		container.WithName("router"),
		container.WithParamNames("logger"),
		container.WithDependency(0, "logger"),
	)
}

