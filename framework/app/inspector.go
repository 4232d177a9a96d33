package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/routing"
)

// paramView is the JSON shape of a container.Param.
type paramView struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Builtin    bool   `json:"builtin"`
	Dependency string `json:"dependency,omitempty"`
	HasDefault bool   `json:"has_default"`
	Default    any    `json:"default,omitempty"`
}

// mountInspector exposes read-only views of the container:
//
//	GET /bindings        registered identifiers in insertion order
//	GET /targets/{name}  parameter table of a target
//	GET /make/*          resolves an identifier and reports the produced type
func (a *Application) mountInspector(r *routing.Router) {
	r.Get("/bindings", a.listBindings)
	r.Get("/targets/{name}", a.describeTarget)
	r.Get("/make/*", a.makeInstance)
}

func (a *Application) listBindings(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(a.Bindings())
}

func (a *Application) describeTarget(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	name := routing.Param(req, "name")

	params, err := a.Describe(name)
	if err != nil {
		res.NotFound(err.Error())
		return
	}

	views := make([]paramView, len(params))
	for i, p := range params {
		views[i] = paramView{
			Index:      p.Index,
			Name:       p.Name,
			Type:       p.TypeName,
			Builtin:    p.Builtin,
			Dependency: p.Dependency,
			HasDefault: p.HasDefault,
			Default:    p.Default,
		}
	}
	res.Success(map[string]any{"target": name, "params": views})
}

func (a *Application) makeInstance(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	id := routing.Param(req, "*")

	// Get would auto-register any identifier taken from the URL.
	if !a.Bound(id) && !a.Constructible(id) {
		res.NotFound(fmt.Sprintf("no binding or target named %q", id))
		return
	}

	instance, err := a.GetContext(req.Context(), id)
	switch {
	case err == nil:
		res.Success(map[string]any{"id": id, "type": fmt.Sprintf("%T", instance)})
	case container.IsNotInstantiable(err):
		res.NotFound(err.Error())
	case container.IsUnresolvableParameter(err), container.IsCyclicDependency(err):
		res.Unprocessable(err.Error())
	default:
		a.logger.Error("make failed", zap.String("id", id), zap.Error(err))
		res.ServerError(err.Error())
	}
}
