package container

import "context"

// Factory builds an instance directly, bypassing constructor inspection.
// It receives the container and the caller's override list unchanged.
//
//	c.Set("mailer", container.Factory(func(ctx context.Context, c *container.Container, overrides []any) (any, error) {
//	    return NewMailer("smtp"), nil
//	}))
//
// Factories that resolve other identifiers should call c.GetContext(ctx, ...)
// so cycle detection sees the whole chain.
type Factory func(ctx context.Context, c *Container, overrides []any) (any, error)

type bindingKind uint8

const (
	bindDirect bindingKind = iota
	bindTarget
	bindFactory
	bindLiteral
)

func (k bindingKind) String() string {
	switch k {
	case bindDirect:
		return "direct"
	case bindTarget:
		return "target"
	case bindFactory:
		return "factory"
	case bindLiteral:
		return "literal"
	}
	return "unknown"
}

// binding is one Binding Table entry. Only the field matching kind is set.
type binding struct {
	kind    bindingKind
	target  string
	factory Factory
	value   any
}

// newBinding classifies concrete the way Set documents it.
func newBinding(id string, concrete any) *binding {
	switch v := concrete.(type) {
	case nil:
		return &binding{kind: bindDirect, target: id}
	case Factory:
		if v == nil {
			return &binding{kind: bindDirect, target: id}
		}
		return &binding{kind: bindFactory, factory: v}
	case func(context.Context, *Container, []any) (any, error):
		if v == nil {
			return &binding{kind: bindDirect, target: id}
		}
		return &binding{kind: bindFactory, factory: v}
	case string:
		if v == id {
			return &binding{kind: bindDirect, target: id}
		}
		return &binding{kind: bindTarget, target: v}
	default:
		return &binding{kind: bindLiteral, value: concrete}
	}
}
