package behavior

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFactory = errors.New("unknown node factory")
	ErrBadParam       = errors.New("bad node parameter")
)

// Params are the free-form settings a config attaches to a node.
type Params map[string]any

// String returns the string at key, or def when the key is absent.
func (p Params) String(key, def string) (string, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrBadParam, key, v)
	}
	return s, nil
}

// Float returns the number at key, or def when the key is absent.
func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("%w: %q must be a number, got %T", ErrBadParam, key, v)
	}
	return f, nil
}

// RequireString is String without a default.
func (p Params) RequireString(key string) (string, error) {
	s, err := p.String(key, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%w: %q is required", ErrBadParam, key)
	}
	return s, nil
}

type (
	Factory          func(name string, params Params) (Node, error)
	DecoratorFactory func(name string, params Params, child Node) (Node, error)
)

// Registry maps the names used in configs to node factories.
type Registry struct {
	actions    map[string]Factory
	conditions map[string]Factory
	decorators map[string]DecoratorFactory
}

// NewRegistry returns a registry preloaded with the built-in nodes.
func NewRegistry() *Registry {
	r := &Registry{
		actions:    make(map[string]Factory),
		conditions: make(map[string]Factory),
		decorators: make(map[string]DecoratorFactory),
	}
	registerBuiltins(r)
	return r
}

func (r *Registry) RegisterAction(name string, f Factory)    { r.actions[name] = f }
func (r *Registry) RegisterCondition(name string, f Factory) { r.conditions[name] = f }
func (r *Registry) RegisterDecorator(name string, f DecoratorFactory) {
	r.decorators[name] = f
}

func (r *Registry) newAction(kind, name string, params Params) (Node, error) {
	f, ok := r.actions[kind]
	if !ok {
		return nil, fmt.Errorf("%w: action %q", ErrUnknownFactory, kind)
	}
	return f(name, params)
}

func (r *Registry) newCondition(kind, name string, params Params) (Node, error) {
	f, ok := r.conditions[kind]
	if !ok {
		return nil, fmt.Errorf("%w: condition %q", ErrUnknownFactory, kind)
	}
	return f(name, params)
}

func (r *Registry) newDecorator(kind, name string, params Params, child Node) (Node, error) {
	f, ok := r.decorators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: decorator %q", ErrUnknownFactory, kind)
	}
	return f(name, params, child)
}

func registerBuiltins(r *Registry) {
	r.RegisterCondition("IsTrue", func(name string, p Params) (Node, error) {
		key, err := p.RequireString("key")
		if err != nil {
			return nil, err
		}
		return NewCondition(name, func(t Context) (bool, error) {
			return t.BB.Bool(key), nil
		}), nil
	})
	r.RegisterCondition("Compare", newCompare)

	r.RegisterAction("Noop", func(name string, _ Params) (Node, error) {
		return NewAction(name, func(Context) (Status, error) { return StatusSuccess, nil }), nil
	})
	r.RegisterAction("SetBool", func(name string, p Params) (Node, error) {
		key, err := p.RequireString("key")
		if err != nil {
			return nil, err
		}
		val, _ := p["value"].(bool)
		return NewAction(name, func(t Context) (Status, error) {
			t.BB.Set(key, val)
			return StatusSuccess, nil
		}), nil
	})

	r.RegisterDecorator("Invert", func(name string, _ Params, child Node) (Node, error) {
		return NewInvert(name, child), nil
	})
	r.RegisterDecorator("Cooldown", func(name string, p Params, child Node) (Node, error) {
		secs, err := p.Float("seconds", 0)
		if err != nil {
			return nil, err
		}
		if secs < 0 {
			return nil, fmt.Errorf("%w: seconds must be >= 0", ErrBadParam)
		}
		key, err := p.String("key", name)
		if err != nil {
			return nil, err
		}
		return NewCooldown(name, key, secs, child), nil
	})
}

// newCompare builds a condition testing a numeric blackboard value against a
// constant. A missing value fails the comparison.
func newCompare(name string, p Params) (Node, error) {
	key, err := p.RequireString("key")
	if err != nil {
		return nil, err
	}
	op, err := p.String("op", "<")
	if err != nil {
		return nil, err
	}
	want, err := p.Float("value", 0)
	if err != nil {
		return nil, err
	}
	var cmp func(a, b float64) bool
	switch op {
	case "<":
		cmp = func(a, b float64) bool { return a < b }
	case "<=":
		cmp = func(a, b float64) bool { return a <= b }
	case ">":
		cmp = func(a, b float64) bool { return a > b }
	case ">=":
		cmp = func(a, b float64) bool { return a >= b }
	case "==":
		cmp = func(a, b float64) bool { return a == b }
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrBadParam, op)
	}
	return NewCondition(name, func(t Context) (bool, error) {
		got, ok := t.BB.Float(key)
		return ok && cmp(got, want), nil
	}), nil
}
