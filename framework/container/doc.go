// Package container provides a small string-keyed dependency-injection
// container: a Binding Table of identifiers, a catalog of constructible
// targets, and a resolver that builds instances by satisfying constructor
// parameters recursively.
//
// # Overview
//
// Identifiers are plain strings. A binding says what an identifier resolves
// to: its own target (direct), another target (reference), a factory, or a
// literal value. Targets are Go constructors registered once, together with a
// static parameter table (names, defaults, dependency identifiers). Nothing is
// cached: every Get builds a fresh instance.
//
// # Targets
//
//	// func NewUserService(repo *UserRepo, pageSize int) *UserService
//	c := container.New()
//	c.MustRegister(NewUserRepo)
//	c.MustRegister(NewUserService,
//	    container.WithName("users"),
//	    container.WithParamNames("repo", "pageSize"),
//	    container.WithDefault(1, 25),
//	)
//
//	// Struct with no constructor: built as new(Clock)
//	container.RegisterStruct[Clock](c)
//
// # Bindings
//
//	c.Set("Clock", nil)              // direct
//	c.Set("mailer", "SmtpMailer")    // target reference
//	c.Set("db", container.Factory(openDB))
//	c.Instance("app.name", "billing") // literal
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Get("users")
//
//	// Positional overrides: pageSize=50, repo still resolved
//	raw, err = c.Get("users", nil, 50)
//
//	// Generic
//	users, err := container.Resolve[*UserService](c, "users")
//
// Parameters are satisfied in order: a non-nil override at the same position,
// then (for struct and interface types) a contextual give or Get of the
// dependency identifier, then (for builtin types) the declared default.
// Anything else fails with UNRESOLVABLE_PARAMETER; unknown or abstract targets
// fail with NOT_INSTANTIABLE; a dependency chain that loops back on itself
// fails with CYCLIC_DEPENDENCY.
//
// # Loading bindings
//
//	# bindings.yaml
//	mailer: SmtpMailer
//	clock: ~
//	limits: {rps: 10}
//
//	if err := c.LoadFile("bindings.yaml"); err != nil { ... }
//
// # Process-wide container
//
//	container.Default().Set("Clock", nil)
//	container.Initialize("bindings.yaml")
//
// # Contextual Binding
//
//	c.When("users").
//	    Needs(container.TypeKey((*UserRepo)(nil))).
//	    GiveValue(&UserRepo{readOnly: true})
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.MustRegister(NewMailer, container.WithName("mailer"))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
