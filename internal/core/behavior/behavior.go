// Package behavior is a small behavior-tree engine. Trees are assembled from
// a Registry of named actions, conditions and decorators, usually through a
// YAML Config, and ticked by an Agent once per simulation step.
package behavior

import "fmt"

// Status is the result of ticking a node.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusRunning:
		return "running"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Context is handed to every node on a tick. Now is agent time in seconds.
type Context struct {
	BB  *Blackboard
	Now float64
	DT  float64
}

// Node is one vertex of a tree. Nodes keep per-agent state in the blackboard,
// never in themselves, so a built tree can be shared.
type Node interface {
	Tick(t Context) (Status, error)
	Name() string
}

type baseNode struct{ name string }

func (b baseNode) Name() string { return b.name }

// ActionFunc adapts a function to a Node.
type ActionFunc struct {
	baseNode
	Fn func(t Context) (Status, error)
}

func NewAction(name string, fn func(t Context) (Status, error)) ActionFunc {
	return ActionFunc{baseNode: baseNode{name: name}, Fn: fn}
}

func (a ActionFunc) Tick(t Context) (Status, error) { return a.Fn(t) }

// ConditionFunc succeeds when Fn reports true.
type ConditionFunc struct {
	baseNode
	Fn func(t Context) (bool, error)
}

func NewCondition(name string, fn func(t Context) (bool, error)) ConditionFunc {
	return ConditionFunc{baseNode: baseNode{name: name}, Fn: fn}
}

func (c ConditionFunc) Tick(t Context) (Status, error) {
	ok, err := c.Fn(t)
	if err != nil {
		return StatusFailure, err
	}
	if ok {
		return StatusSuccess, nil
	}
	return StatusFailure, nil
}

// Sequence ticks children in order and stops at the first one that does not
// succeed.
type Sequence struct {
	baseNode
	children []Node
}

func NewSequence(name string, children ...Node) *Sequence {
	return &Sequence{baseNode: baseNode{name: name}, children: children}
}

func (s *Sequence) Tick(t Context) (Status, error) {
	for _, ch := range s.children {
		st, err := ch.Tick(t)
		if err != nil {
			return StatusFailure, fmt.Errorf("%s: %w", s.name, err)
		}
		if st != StatusSuccess {
			return st, nil
		}
	}
	return StatusSuccess, nil
}

// Selector ticks children in order and stops at the first one that does not
// fail.
type Selector struct {
	baseNode
	children []Node
}

func NewSelector(name string, children ...Node) *Selector {
	return &Selector{baseNode: baseNode{name: name}, children: children}
}

func (s *Selector) Tick(t Context) (Status, error) {
	for _, ch := range s.children {
		st, err := ch.Tick(t)
		if err != nil {
			return StatusFailure, fmt.Errorf("%s: %w", s.name, err)
		}
		if st != StatusFailure {
			return st, nil
		}
	}
	return StatusFailure, nil
}

// Invert swaps success and failure. Running passes through.
type Invert struct {
	baseNode
	child Node
}

func NewInvert(name string, child Node) *Invert {
	return &Invert{baseNode: baseNode{name: name}, child: child}
}

func (n *Invert) Tick(t Context) (Status, error) {
	st, err := n.child.Tick(t)
	if err != nil {
		return StatusFailure, err
	}
	switch st {
	case StatusSuccess:
		return StatusFailure, nil
	case StatusFailure:
		return StatusSuccess, nil
	}
	return st, nil
}

// Cooldown fails without ticking its child until Seconds of agent time have
// passed since the child last succeeded. Cooldowns sharing a Key share the
// timer.
type Cooldown struct {
	baseNode
	child   Node
	Key     string
	Seconds float64
}

func NewCooldown(name, key string, seconds float64, child Node) *Cooldown {
	if key == "" {
		key = name
	}
	return &Cooldown{baseNode: baseNode{name: name}, child: child, Key: key, Seconds: seconds}
}

func (n *Cooldown) stateKey() string { return "cooldown." + n.Key }

func (n *Cooldown) Tick(t Context) (Status, error) {
	if readyAt, ok := t.BB.Float(n.stateKey()); ok && t.Now < readyAt {
		return StatusFailure, nil
	}
	st, err := n.child.Tick(t)
	if err != nil {
		return StatusFailure, err
	}
	if st == StatusSuccess {
		t.BB.Set(n.stateKey(), t.Now+n.Seconds)
	}
	return st, nil
}

// Tree wraps the root node.
type Tree struct {
	root Node
}

func NewTree(root Node) *Tree { return &Tree{root: root} }

func (t *Tree) Root() Node { return t.root }

func (t *Tree) Tick(c Context) (Status, error) {
	if t == nil || t.root == nil {
		return StatusFailure, nil
	}
	return t.root.Tick(c)
}
