package skipindex

import (
	"errors"
	"fmt"
)

// ErrCorrupt is returned by Check when the linked structure violates one of
// the index invariants.
var ErrCorrupt = errors.New("skipindex: corrupt index")

// Check walks every level and verifies the structural invariants: strictly
// increasing keys per level, level membership forming a contiguous range
// from 0, empty head links above the current level, the current level
// matching the tallest node and the element count matching level 0.
func (idx *Index[K, V]) Check() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	top := idx.Level()
	for i := top + 1; i <= MaxLevel; i++ {
		if idx.head.next(i) != nil {
			return fmt.Errorf("%w: head linked at level %d above current level %d", ErrCorrupt, i, top)
		}
	}

	// Nodes seen at level 0, with the level each one was found to reach.
	seen := make(map[*node[K, V]]int)
	count, tallest := 0, 0
	var prev *node[K, V]
	for n := idx.head.next(0); n != nil; n = n.next(0) {
		if prev != nil && idx.compare(prev.key, n.key) >= 0 {
			return fmt.Errorf("%w: level 0 keys out of order at %v", ErrCorrupt, n.key)
		}
		if len(n.forwards) != n.level+1 {
			return fmt.Errorf("%w: node %v has %d forwards for level %d", ErrCorrupt, n.key, len(n.forwards), n.level)
		}
		seen[n] = 0
		tallest = max(tallest, n.level)
		count++
		prev = n
	}

	for i := 1; i <= top; i++ {
		prev = nil
		for n := idx.head.next(i); n != nil; n = n.next(i) {
			reached, ok := seen[n]
			if !ok {
				return fmt.Errorf("%w: node %v linked at level %d but not at level 0", ErrCorrupt, n.key, i)
			}
			if reached != i-1 {
				return fmt.Errorf("%w: node %v linked at level %d but not at level %d", ErrCorrupt, n.key, i, i-1)
			}
			if prev != nil && idx.compare(prev.key, n.key) >= 0 {
				return fmt.Errorf("%w: level %d keys out of order at %v", ErrCorrupt, i, n.key)
			}
			seen[n] = i
			prev = n
		}
	}

	for n, reached := range seen {
		if reached != n.level {
			return fmt.Errorf("%w: node %v has level %d but is linked up to %d", ErrCorrupt, n.key, n.level, reached)
		}
	}
	if tallest != top {
		return fmt.Errorf("%w: current level %d but tallest node has level %d", ErrCorrupt, top, tallest)
	}
	if count != idx.Len() {
		return fmt.Errorf("%w: count %d but %d nodes linked at level 0", ErrCorrupt, idx.Len(), count)
	}
	return nil
}
