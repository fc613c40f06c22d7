package behavior

import "sort"

// Blackboard is the per-agent key/value store sensors write and nodes read.
// It is owned by one agent and not safe for concurrent use.
type Blackboard struct {
	data map[string]any
}

func NewBlackboard() *Blackboard {
	return &Blackboard{data: make(map[string]any)}
}

func (b *Blackboard) Get(key string) (any, bool) {
	v, ok := b.data[key]
	return v, ok
}

func (b *Blackboard) Set(key string, value any) { b.data[key] = value }

func (b *Blackboard) Delete(key string) { delete(b.data, key) }

func (b *Blackboard) Clear() { clear(b.data) }

// Keys returns the stored keys in sorted order.
func (b *Blackboard) Keys() []string {
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bool reports the value at key when it is a bool; anything else reads as
// false.
func (b *Blackboard) Bool(key string) bool {
	v, _ := b.data[key].(bool)
	return v
}

// Float reads a numeric value at key. Ints are widened.
func (b *Blackboard) Float(key string) (float64, bool) {
	return toFloat(b.data[key])
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
