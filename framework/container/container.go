package container

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps string identifiers to bindings and builds instances on
// demand by satisfying constructor parameters recursively.
//
// It holds:
//   - the Binding Table (identifier → direct / target / factory / literal)
//   - the target catalog (constructors and struct types, with parameter tables)
//   - contextual overrides (when A needs B, give it C)
//   - after-resolving callbacks
//
// Resolved instances are never cached: every Get constructs afresh.
type Container struct {
	mu sync.RWMutex

	// identifier → binding
	bindings map[string]*binding

	// identifiers in first-registration order
	order []string

	// target name → constructible target
	targets map[string]*Target

	// contextual: when[target][dependency] = factory
	contextual map[string]map[string]Factory

	// resolved callbacks: []func(id, instance)
	afterResolving []func(string, any)

	logger *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for registration and resolution debug logs.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// UseLogger swaps the logger after construction, e.g. once the application
// logger has itself been resolved from the container.
func (c *Container) UseLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}
	c.mu.Lock()
	c.logger = logger
	c.mu.Unlock()
}

func (c *Container) log() *zap.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logger
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		bindings:   make(map[string]*binding),
		targets:    make(map[string]*Target),
		contextual: make(map[string]map[string]Factory),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// The container resolves to itself.
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Set registers id. What concrete means depends on its type:
//
//	c.Set("Clock", nil)            // direct: id names its own target
//	c.Set("Mailer", "SmtpMailer")  // target reference: build SmtpMailer instead
//	c.Set("db", container.Factory(func(ctx context.Context, c *container.Container, overrides []any) (any, error) {
//	    return sql.Open("postgres", dsn)
//	}))
//	c.Set("limits", map[string]any{"rps": 10}) // anything else: a literal value
//
// Re-registering an identifier replaces the previous binding. Nothing is
// validated until the identifier is resolved.
func (c *Container) Set(id string, concrete any) {
	c.setBinding(id, newBinding(id, concrete))
}

// Instance binds id to v as a literal, including string values that Set
// would otherwise treat as a target reference.
//
//	c.Instance("app.name", "inventory")
func (c *Container) Instance(id string, v any) {
	c.setBinding(id, &binding{kind: bindLiteral, value: v})
}

// Alias makes alias resolve by constructing target.
//
//	c.Alias("SmtpMailer", "mailer")
func (c *Container) Alias(target, alias string) {
	if target == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", target))
	}
	c.Set(alias, target)
}

func (c *Container) setBinding(id string, b *binding) {
	c.mu.Lock()
	if _, exists := c.bindings[id]; !exists {
		c.order = append(c.order, id)
	}
	c.bindings[id] = b
	c.mu.Unlock()

	c.log().Debug("binding registered",
		zap.String("id", id),
		zap.Stringer("kind", b.kind),
	)
}

// lookup returns the binding for id, registering id as a direct binding
// first when it has never been seen.
func (c *Container) lookup(id string) *binding {
	c.mu.RLock()
	b, ok := c.bindings[id]
	c.mu.RUnlock()
	if ok {
		return b
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have registered it between the two locks.
	if b, ok := c.bindings[id]; ok {
		return b
	}
	b = &binding{kind: bindDirect, target: id}
	c.bindings[id] = b
	c.order = append(c.order, id)
	return b
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if id has a binding, explicit or auto-registered.
func (c *Container) Bound(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[id]
	return ok
}

// Forget removes the binding for id. Its target stays in the catalog.
func (c *Container) Forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.bindings[id]; !ok {
		return
	}
	delete(c.bindings, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
}

// Flush resets the entire container: bindings, targets, contextual
// bindings and callbacks.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]*binding)
	c.order = nil
	c.targets = make(map[string]*Target)
	c.contextual = make(map[string]map[string]Factory)
	c.afterResolving = nil
}

// Bindings returns the bound identifiers in registration order.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after every successful Get.
func (c *Container) AfterResolving(cb func(id string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(id string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(id, instance)
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Get and type-asserts the result.
//
//	// Instead of: v, err := c.Get("mailer"); m := v.(*Mailer)
//	// Write:      m, err := container.Resolve[*Mailer](c, "mailer")
func Resolve[T any](c *Container, id string, overrides ...any) (T, error) {
	var zero T
	instance, err := c.Get(id, overrides...)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%T]: [%s] resolved to %T", zero, id, instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](c *Container, id string, overrides ...any) T {
	typed, err := Resolve[T](c, id, overrides...)
	if err != nil {
		panic(err)
	}
	return typed
}
