package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/routing"
)

// Clock reports the current time.
type Clock struct{}

func (c *Clock) Now() time.Time { return time.Now() }

// Greeter builds greetings; repeat comes from the bindings file.
type Greeter struct {
	clock  *Clock
	repeat int
}

func NewGreeter(clock *Clock, repeat int) *Greeter {
	return &Greeter{clock: clock, repeat: repeat}
}

func (g *Greeter) Greet(name string) string {
	msg := fmt.Sprintf("Hello, %s! It is %s.", name, g.clock.Now().Format(time.Kitchen))
	return strings.TrimSpace(strings.Repeat(msg+" ", max(g.repeat, 1)))
}

func main() {
	application, err := app.New() // loads .env and bindings.yaml
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	setup(application)

	if err := application.Run(); err != nil {
		application.Logger().Fatal("server stopped", zap.Error(err))
	}
}

// setup registers the demo targets and routes.
func setup(application *app.Application) {
	// ── Targets ──────────────────────────────────────────────────────────────

	container.RegisterStruct[Clock](application.Container, container.WithName("clock")) //nolint:errcheck
	application.Container.MustRegister(NewGreeter,
		container.WithName("greeter"),
		container.WithParamNames("clock", "repeat"),
		container.WithDependency(0, "clock"),
		container.WithDependency(1, "greeter.repeat"),
	)

	// ── Routes ───────────────────────────────────────────────────────────────

	r := application.Router()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		greet(w, application, "world")
	})

	r.Prefix("/api/v1", func(api *routing.Router) {
		// GET /api/v1/hello/{name}
		api.Get("/hello/{name}", func(w http.ResponseWriter, req *http.Request) {
			greet(w, application, routing.Param(req, "name"))
		})
	})
}

func greet(w http.ResponseWriter, application *app.Application, name string) {
	res := gohttp.NewResponse(w)

	// "welcome" is bound in bindings.yaml; every request gets a fresh Greeter.
	greeter, err := container.Resolve[*Greeter](application.Container, "welcome")
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Success(map[string]any{"message": greeter.Greet(name)})
}
