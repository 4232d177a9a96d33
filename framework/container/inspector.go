package container

import (
	"fmt"
	"reflect"
)

// Param describes one constructor parameter of a target.
type Param struct {
	Index int
	Name  string
	Type  reflect.Type

	// TypeName is the declared type, or empty for an untyped (any) parameter.
	TypeName string

	// Builtin is true for value types (strings, numbers, bools, slices, maps,
	// funcs, ...) that are never resolved through the container.
	Builtin bool

	HasDefault bool
	Default    any

	// Dependency is the identifier a non-builtin parameter is resolved with.
	Dependency string
}

// Describe returns the parameter table of the named target, in constructor
// order. A target without a constructor yields an empty table. Unknown and
// abstract targets fail with NOT_INSTANTIABLE.
func (c *Container) Describe(name string) ([]Param, error) {
	t, err := c.target(name)
	if err != nil {
		return nil, err
	}
	out := make([]Param, len(t.params))
	copy(out, t.params)
	return out, nil
}

func (c *Container) target(name string) (*Target, error) {
	c.mu.RLock()
	t, ok := c.targets[name]
	c.mu.RUnlock()

	if !ok {
		return nil, errNotInstantiable(name, "no such target")
	}
	if t.abstract {
		return nil, errNotInstantiable(name, "target is abstract")
	}
	return t, nil
}

// describeFunc builds the static parameter table for a constructor type.
func describeFunc(name string, ft reflect.Type, cfg *targetConfig) ([]Param, error) {
	n := ft.NumIn()
	if len(cfg.names) > n {
		return nil, errInvalidTarget(name, fmt.Sprintf("%d parameter names given for %d parameters", len(cfg.names), n))
	}
	for i := range cfg.defaults {
		if i < 0 || i >= n {
			return nil, errInvalidTarget(name, fmt.Sprintf("default for parameter #%d out of range", i))
		}
	}
	for i := range cfg.deps {
		if i < 0 || i >= n {
			return nil, errInvalidTarget(name, fmt.Sprintf("dependency for parameter #%d out of range", i))
		}
	}

	params := make([]Param, n)
	for i := 0; i < n; i++ {
		pt := ft.In(i)
		p := Param{
			Index: i,
			Name:  fmt.Sprintf("arg%d", i),
			Type:  pt,
		}
		if i < len(cfg.names) && cfg.names[i] != "" {
			p.Name = cfg.names[i]
		}

		p.Builtin, p.TypeName = classify(pt)

		if id, ok := cfg.deps[i]; ok {
			p.Builtin = false
			p.Dependency = id
		} else if !p.Builtin {
			p.Dependency = p.TypeName
		}

		if v, ok := cfg.defaults[i]; ok {
			if !p.Builtin {
				return nil, errInvalidTarget(name, fmt.Sprintf("default declared for dependency parameter %s", p.Name))
			}
			p.HasDefault = true
			p.Default = v
		}

		params[i] = p
	}
	return params, nil
}

// classify reports whether t is a builtin type and the name it is declared
// with. Structs, pointers to structs and interfaces with methods are
// dependencies named by their TypeKey; the empty interface is untyped.
func classify(t reflect.Type) (builtin bool, typeName string) {
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return true, ""
		}
		return false, TypeKeyOf(t)
	case reflect.Struct:
		return false, TypeKeyOf(t)
	case reflect.Ptr:
		e := t.Elem()
		if e.Kind() == reflect.Struct || (e.Kind() == reflect.Interface && e.NumMethod() > 0) {
			return false, TypeKeyOf(t)
		}
		return true, t.String()
	default:
		return true, t.String()
	}
}

// TypeKey returns the package-qualified type name of v, the identifier a
// dependency of that type is resolved with. Pointers are stripped, so *Foo
// and Foo share a key.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "example.com/app.UserRepository"
//	c.Set(key, "PostgresUserRepository")
func TypeKey(v any) string {
	return TypeKeyOf(reflect.TypeOf(v))
}

// TypeKeyOf is TypeKey for a reflect.Type. Use it for interface types:
//
//	container.TypeKeyOf(reflect.TypeOf((*Mailer)(nil)).Elem())
func TypeKeyOf(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}
