package container

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves id into a freshly built instance.
//
// overrides are matched to constructor parameters by position and win over
// both nested resolution and declared defaults. A nil entry counts as not
// supplied. Overrides are handed to factories unchanged but are never
// forwarded to nested dependencies.
//
//	// func NewReport(pageSize int, repo *Repo) *Report
//	r, err := c.Get("Report", 50) // pageSize=50, repo resolved via TypeKey of Repo
func (c *Container) Get(id string, overrides ...any) (any, error) {
	return c.GetContext(context.Background(), id, overrides...)
}

// GetContext is Get with a context carrying the chain of identifiers being
// resolved. Factories that resolve further identifiers pass their ctx here
// so cycles through them are detected too.
func (c *Container) GetContext(ctx context.Context, id string, overrides ...any) (any, error) {
	chain := chainFrom(ctx)
	if slices.Contains(chain, id) {
		return nil, errCyclicDependency(append(slices.Clone(chain), id))
	}
	ctx = withChain(ctx, append(slices.Clone(chain), id))

	b := c.lookup(id)

	c.log().Debug("resolving",
		zap.String("id", id),
		zap.Stringer("kind", b.kind),
		zap.Int("overrides", len(overrides)),
		zap.Int("depth", len(chain)),
	)

	instance, err := c.resolve(ctx, id, b, overrides)
	if err != nil {
		return nil, err
	}

	c.fireAfterResolving(id, instance)
	return instance, nil
}

// resolve produces an instance for an already looked-up binding.
func (c *Container) resolve(ctx context.Context, id string, b *binding, overrides []any) (any, error) {
	switch b.kind {
	case bindFactory:
		instance, err := b.factory(ctx, c, overrides)
		if err != nil {
			return nil, errFactoryFailed(id, err)
		}
		return instance, nil
	case bindLiteral:
		return b.value, nil
	}

	t, err := c.target(b.target)
	if err != nil {
		return nil, err
	}

	if len(t.params) == 0 {
		return t.construct(nil)
	}

	args, err := c.buildArguments(ctx, t, overrides)
	if err != nil {
		return nil, err
	}
	return t.construct(args)
}

// buildArguments satisfies t's parameters in order: an override always wins;
// dependencies are then given contextually or resolved by identifier;
// builtins fall back to their declared default.
func (c *Container) buildArguments(ctx context.Context, t *Target, overrides []any) ([]any, error) {
	args := make([]any, 0, len(t.params))

	for _, p := range t.params {
		if v, ok := override(overrides, p.Index); ok {
			args = append(args, v)
			continue
		}

		if !p.Builtin {
			v, err := c.resolveDependency(ctx, t.name, p.Dependency)
			if err != nil {
				return nil, errUnresolvableParameter(t.name, p, err)
			}
			args = append(args, v)
			continue
		}

		if p.HasDefault {
			args = append(args, p.Default)
			continue
		}

		return nil, errUnresolvableParameter(t.name, p, nil)
	}

	return args, nil
}

func (c *Container) resolveDependency(ctx context.Context, target, dependency string) (any, error) {
	if give := c.getContextual(target, dependency); give != nil {
		return give(ctx, c, nil)
	}
	return c.GetContext(ctx, dependency)
}

func override(overrides []any, i int) (any, bool) {
	if i >= len(overrides) || overrides[i] == nil {
		return nil, false
	}
	return overrides[i], true
}

// ── Construction ──────────────────────────────────────────────────────────────

func (t *Target) construct(args []any) (any, error) {
	if !t.ctor.IsValid() {
		typ := t.typ
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		return reflect.New(typ).Interface(), nil
	}

	ft := t.ctor.Type()
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		v, err := adapt(a, ft.In(i))
		if err != nil {
			return nil, errConstructionFailed(
				t.name,
				fmt.Sprintf("argument %s (#%d) does not fit %s", t.params[i].Name, i, ft.In(i)),
				err,
			)
		}
		in[i] = v
	}

	out := t.ctor.Call(in)
	if t.hasError && !out[1].IsNil() {
		return nil, errConstructionFailed(t.name, "constructor returned error", out[1].Interface().(error))
	}
	return out[0].Interface(), nil
}

// adapt turns v into a value assignable to want. Beyond plain assignment it
// handles nil, pointer/value mismatches, numeric and same-kind conversions,
// and element-wise conversion of slices and maps decoded from documents.
func adapt(v any, want reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(want), nil
	}

	rv := reflect.ValueOf(v)
	return adaptValue(rv, want)
}

func adaptValue(rv reflect.Value, want reflect.Type) (reflect.Value, error) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Zero(want), nil
		}
		rv = rv.Elem()
	}

	have := rv.Type()
	switch {
	case have.AssignableTo(want):
		return rv, nil
	case have.Kind() == reflect.Ptr && !rv.IsNil() && have.Elem().AssignableTo(want):
		return rv.Elem(), nil
	case want.Kind() == reflect.Ptr && have.AssignableTo(want.Elem()):
		p := reflect.New(want.Elem())
		p.Elem().Set(rv)
		return p, nil
	case isNumeric(have.Kind()) && isNumeric(want.Kind()):
		return convertNumber(rv, want)
	case have.Kind() == want.Kind() && have.ConvertibleTo(want) && want.Kind() != reflect.Slice && want.Kind() != reflect.Map:
		return rv.Convert(want), nil
	case have.Kind() == reflect.Slice && want.Kind() == reflect.Slice:
		out := reflect.MakeSlice(want, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := adaptValue(rv.Index(i), want.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case have.Kind() == reflect.Map && want.Kind() == reflect.Map:
		out := reflect.MakeMapWithSize(want, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			kv, err := adaptValue(iter.Key(), want.Key())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
			}
			ev, err := adaptValue(iter.Value(), want.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("value for %v: %w", iter.Key(), err)
			}
			out.SetMapIndex(kv, ev)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", have, want)
}

// convertNumber converts between numeric kinds, failing instead of wrapping
// on overflow or silently dropping a fractional part.
func convertNumber(rv reflect.Value, want reflect.Type) (reflect.Value, error) {
	out := reflect.New(want).Elem()
	fail := func() (reflect.Value, error) {
		return reflect.Value{}, fmt.Errorf("%v does not fit %s", rv.Interface(), want)
	}

	switch kindClass(rv.Kind()) {
	case 'i':
		i := rv.Int()
		switch kindClass(want.Kind()) {
		case 'i':
			if out.OverflowInt(i) {
				return fail()
			}
			out.SetInt(i)
		case 'u':
			if i < 0 || out.OverflowUint(uint64(i)) {
				return fail()
			}
			out.SetUint(uint64(i))
		default:
			out.SetFloat(float64(i))
		}
	case 'u':
		u := rv.Uint()
		switch kindClass(want.Kind()) {
		case 'i':
			if u > math.MaxInt64 || out.OverflowInt(int64(u)) {
				return fail()
			}
			out.SetInt(int64(u))
		case 'u':
			if out.OverflowUint(u) {
				return fail()
			}
			out.SetUint(u)
		default:
			out.SetFloat(float64(u))
		}
	default:
		f := rv.Float()
		switch kindClass(want.Kind()) {
		case 'i':
			if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || out.OverflowInt(int64(f)) {
				return fail()
			}
			out.SetInt(int64(f))
		case 'u':
			if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || out.OverflowUint(uint64(f)) {
				return fail()
			}
			out.SetUint(uint64(f))
		default:
			if !math.IsInf(f, 0) && !math.IsNaN(f) && out.OverflowFloat(f) {
				return fail()
			}
			out.SetFloat(f)
		}
	}
	return out, nil
}

// kindClass groups numeric kinds: 'i' signed, 'u' unsigned, 'f' float.
func kindClass(k reflect.Kind) byte {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 'i'
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 'u'
	}
	return 'f'
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// ── Resolution chain ──────────────────────────────────────────────────────────

type chainKey struct{}

func chainFrom(ctx context.Context) []string {
	chain, _ := ctx.Value(chainKey{}).([]string)
	return chain
}

func withChain(ctx context.Context, chain []string) context.Context {
	return context.WithValue(ctx, chainKey{}, chain)
}
