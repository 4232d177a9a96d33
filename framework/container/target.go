package container

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Target is a constructible entry in the container's catalog: a constructor
// function, or a plain type built with new(T), together with the static
// parameter table computed when it was registered.
type Target struct {
	name     string
	typ      reflect.Type
	ctor     reflect.Value
	hasError bool
	abstract bool
	params   []Param
}

// Name returns the identifier the target is registered under.
func (t *Target) Name() string { return t.name }

// Type returns the Go type the target produces.
func (t *Target) Type() reflect.Type { return t.typ }

// ── Registration options ──────────────────────────────────────────────────────

type targetConfig struct {
	name     string
	names    []string
	defaults map[int]any
	deps     map[int]string
}

// TargetOption customizes the static parameter table of a registered target.
type TargetOption func(*targetConfig)

// WithName registers the target under name instead of its TypeKey.
func WithName(name string) TargetOption {
	return func(cfg *targetConfig) { cfg.name = name }
}

// WithParamNames names constructor parameters positionally. Go reflection does
// not expose parameter names; unnamed parameters are reported as argN.
func WithParamNames(names ...string) TargetOption {
	return func(cfg *targetConfig) { cfg.names = names }
}

// WithDefault declares a default for the builtin parameter at index.
//
//	c.Register(NewPool, container.WithDefault(0, 10)) // func NewPool(size int) *Pool
func WithDefault(index int, value any) TargetOption {
	return func(cfg *targetConfig) {
		if cfg.defaults == nil {
			cfg.defaults = make(map[int]any)
		}
		cfg.defaults[index] = value
	}
}

// WithDependency makes the parameter at index resolve through Get(id) instead
// of its type key. A builtin parameter marked this way becomes a dependency,
// which is how literal bindings (e.g. a DSN loaded from YAML) reach
// constructors.
func WithDependency(index int, id string) TargetOption {
	return func(cfg *targetConfig) {
		if cfg.deps == nil {
			cfg.deps = make(map[int]string)
		}
		cfg.deps[index] = id
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds a constructor to the catalog. ctor must be a non-variadic
// function returning T or (T, error). The target is named after TypeKey of T
// unless WithName is given.
//
//	c.Register(NewUserService) // func NewUserService(repo *UserRepo, pageSize int) *UserService
//	svc, err := c.Get(container.TypeKey((*UserService)(nil)))
func (c *Container) Register(ctor any, opts ...TargetOption) error {
	cfg := applyTargetOptions(opts)

	if ctor == nil {
		return errInvalidTarget(cfg.name, "constructor is nil")
	}
	fn := reflect.ValueOf(ctor)
	ft := fn.Type()
	if ft.Kind() != reflect.Func {
		return errInvalidTarget(cfg.name, fmt.Sprintf("constructor must be a function, got %s", ft))
	}
	if ft.IsVariadic() {
		return errInvalidTarget(cfg.name, fmt.Sprintf("variadic constructor %s is not supported", ft))
	}

	hasError := false
	switch ft.NumOut() {
	case 1:
	case 2:
		if !ft.Out(1).Implements(errorType) {
			return errInvalidTarget(cfg.name, fmt.Sprintf("second return value of %s must be error", ft))
		}
		hasError = true
	default:
		return errInvalidTarget(cfg.name, fmt.Sprintf("constructor %s must return T or (T, error)", ft))
	}

	t := &Target{
		name:     cfg.name,
		typ:      ft.Out(0),
		ctor:     fn,
		hasError: hasError,
	}
	if t.name == "" {
		t.name = TypeKeyOf(t.typ)
	}

	params, err := describeFunc(t.name, ft, cfg)
	if err != nil {
		return err
	}
	t.params = params

	c.addTarget(t)
	return nil
}

// MustRegister is like Register but panics on an invalid constructor.
func (c *Container) MustRegister(ctor any, opts ...TargetOption) {
	if err := c.Register(ctor, opts...); err != nil {
		panic(err)
	}
}

// RegisterStruct adds a target that has no constructor: it is built as new(T)
// with no arguments. An interface T registers an abstract target.
//
//	container.RegisterStruct[Clock](c) // Get(TypeKey of Clock) → *Clock
func RegisterStruct[T any](c *Container, opts ...TargetOption) error {
	cfg := applyTargetOptions(opts)
	typ := reflect.TypeOf((*T)(nil)).Elem()

	t := &Target{name: cfg.name, typ: typ}
	if t.name == "" {
		t.name = TypeKeyOf(typ)
	}
	if len(cfg.names) > 0 || len(cfg.defaults) > 0 || len(cfg.deps) > 0 {
		return errInvalidTarget(t.name, "struct targets take no parameters")
	}
	if typ.Kind() == reflect.Interface {
		t.abstract = true
	}

	c.addTarget(t)
	return nil
}

// Abstract declares name as a known but non-constructible target (an
// interface or abstract base). Resolving it fails with NOT_INSTANTIABLE until
// a binding points the identifier at something concrete.
func (c *Container) Abstract(name string) {
	c.addTarget(&Target{name: name, abstract: true})
}

func (c *Container) addTarget(t *Target) {
	c.mu.Lock()
	c.targets[t.name] = t
	c.mu.Unlock()

	c.log().Debug("target registered",
		zap.String("target", t.name),
		zap.Int("params", len(t.params)),
		zap.Bool("abstract", t.abstract),
	)
}

// Constructible reports whether name is a registered, non-abstract target.
func (c *Container) Constructible(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.targets[name]
	return ok && !t.abstract
}

func applyTargetOptions(opts []TargetOption) *targetConfig {
	cfg := &targetConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
