package skipindex

import "sync/atomic"

const (
	// MaxLevel is the highest level index a node can participate in.
	MaxLevel = 32
	// P is the promotion probability between adjacent levels.
	P = 1.0 / 2.0
)

// node holds a key/value pair and one forward link per level it occupies.
// A node at level l is linked at every level 0..l, so len(forwards) == l+1.
type node[K, V any] struct {
	key K
	// val is swapped atomically so that an overwrite is visible to
	// lock-free readers as a single publish.
	val      atomic.Pointer[V]
	level    int
	forwards []atomic.Pointer[node[K, V]]
}

func newNode[K, V any](key K, val V, level int) *node[K, V] {
	n := &node[K, V]{
		key:      key,
		level:    level,
		forwards: make([]atomic.Pointer[node[K, V]], level+1),
	}
	n.val.Store(&val)
	return n
}

// newHead returns the sentinel. It never carries a key and is linked at
// every level up to MaxLevel.
func newHead[K, V any]() *node[K, V] {
	return &node[K, V]{
		level:    MaxLevel,
		forwards: make([]atomic.Pointer[node[K, V]], MaxLevel+1),
	}
}

func (n *node[K, V]) next(level int) *node[K, V] {
	return n.forwards[level].Load()
}

func (n *node[K, V]) value() V {
	return *n.val.Load()
}
