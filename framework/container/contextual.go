package container

import "context"

// ContextualBuilder implements the fluent contextual binding API.
//
//	c.When("PhotoController").Needs(container.TypeKey((*Filesystem)(nil))).Give(func(ctx context.Context, c *container.Container, _ []any) (any, error) {
//	    return filesystem.NewS3(...), nil
//	})
type ContextualBuilder struct {
	container *Container
	concrete  string
	needs     string
}

// When starts a contextual binding chain for the target named concrete.
func (c *Container) When(concrete string) *ContextualBuilder {
	return &ContextualBuilder{container: c, concrete: concrete}
}

// Needs specifies which dependency identifier of the target is replaced.
func (b *ContextualBuilder) Needs(dependency string) *ContextualBuilder {
	b.needs = dependency
	return b
}

// Give provides the factory used when the target resolves the dependency.
// Caller overrides still take precedence over it.
func (b *ContextualBuilder) Give(factory Factory) {
	b.container.mu.Lock()
	defer b.container.mu.Unlock()

	if _, ok := b.container.contextual[b.concrete]; !ok {
		b.container.contextual[b.concrete] = make(map[string]Factory)
	}
	b.container.contextual[b.concrete][b.needs] = factory
}

// GiveValue is a shorthand for Give when the value is pre-built.
//
//	c.When("PhotoController").Needs("storagePath").GiveValue("/tmp/photos")
func (b *ContextualBuilder) GiveValue(value any) {
	b.Give(func(_ context.Context, _ *Container, _ []any) (any, error) { return value, nil })
}

// getContextual returns the contextual factory for (concrete, dependency), or nil.
func (c *Container) getContextual(concrete, dependency string) Factory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if m, ok := c.contextual[concrete]; ok {
		if f, ok := m[dependency]; ok {
			return f
		}
	}
	return nil
}
