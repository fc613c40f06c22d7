package behavior

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTree = errors.New("invalid behavior tree")

// Config describes a tree as a flat table of named nodes. Composites and
// decorators refer to their children by name.
type Config struct {
	Root  string                `yaml:"root"`
	Nodes map[string]NodeConfig `yaml:"nodes"`
}

type NodeConfig struct {
	Type      string   `yaml:"type"`
	Children  []string `yaml:"children,omitempty"`
	Child     string   `yaml:"child,omitempty"`
	Action    string   `yaml:"action,omitempty"`
	Condition string   `yaml:"condition,omitempty"`
	Decorator string   `yaml:"decorator,omitempty"`
	Params    Params   `yaml:"params,omitempty"`
}

// LoadYAML decodes a tree config. Unknown fields are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode behavior tree: %w", err)
	}
	return &c, nil
}

// Build instantiates the tree against reg. A node referenced from several
// parents is built once and shared; a node that reaches itself is an error.
func (c *Config) Build(reg *Registry) (*Tree, error) {
	if c.Root == "" {
		return nil, fmt.Errorf("%w: root is required", ErrInvalidTree)
	}
	b := builder{cfg: c, reg: reg, built: make(map[string]Node), open: make(map[string]bool)}
	root, err := b.node(c.Root)
	if err != nil {
		return nil, err
	}
	return NewTree(root), nil
}

type builder struct {
	cfg   *Config
	reg   *Registry
	built map[string]Node
	open  map[string]bool
}

func (b *builder) node(name string) (Node, error) {
	if n, ok := b.built[name]; ok {
		return n, nil
	}
	if b.open[name] {
		return nil, fmt.Errorf("%w: cycle through %q", ErrInvalidTree, name)
	}
	nc, ok := b.cfg.Nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown node %q", ErrInvalidTree, name)
	}
	b.open[name] = true
	defer delete(b.open, name)

	n, err := b.make(name, nc)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", name, err)
	}
	b.built[name] = n
	return n, nil
}

func (b *builder) make(name string, nc NodeConfig) (Node, error) {
	switch strings.ToLower(nc.Type) {
	case "sequence", "selector":
		if len(nc.Children) == 0 {
			return nil, fmt.Errorf("%w: %s needs children", ErrInvalidTree, nc.Type)
		}
		children := make([]Node, 0, len(nc.Children))
		for _, ch := range nc.Children {
			n, err := b.node(ch)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		}
		if strings.EqualFold(nc.Type, "sequence") {
			return NewSequence(name, children...), nil
		}
		return NewSelector(name, children...), nil
	case "decorator":
		if nc.Child == "" {
			return nil, fmt.Errorf("%w: decorator needs a child", ErrInvalidTree)
		}
		child, err := b.node(nc.Child)
		if err != nil {
			return nil, err
		}
		return b.reg.newDecorator(nc.Decorator, name, nc.Params, child)
	case "action":
		return b.reg.newAction(nc.Action, name, nc.Params)
	case "condition":
		return b.reg.newCondition(nc.Condition, name, nc.Params)
	default:
		return nil, fmt.Errorf("%w: unsupported node type %q", ErrInvalidTree, nc.Type)
	}
}
