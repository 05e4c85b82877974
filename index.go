package skipindex

import (
	"cmp"
	"sync"
	"sync/atomic"
)

// Compare returns a negative number when a < b, zero when a == b and a
// positive number when a > b. It must define a total order.
type Compare[K any] func(a, b K) int

// Index is an ordered key/value index backed by a skip list.
//
// Insert and Delete always serialize on an internal mutex. Readers share a
// read lock by default; with WithLockFreeReads they take no lock at all.
type Index[K, V any] struct {
	mu       sync.RWMutex
	compare  Compare[K]
	head     *node[K, V]
	curLevel atomic.Int32
	count    atomic.Int64
	levels   levelGenerator
	lockFree bool
	metrics  *metrics
}

// New returns an empty Index ordered by cmp.Compare.
func New[K cmp.Ordered, V any](opts ...Option) *Index[K, V] {
	return NewWithCompare[K, V](cmp.Compare[K], opts...)
}

// NewWithCompare returns an empty Index ordered by compare.
func NewWithCompare[K, V any](compare Compare[K], opts ...Option) *Index[K, V] {
	if compare == nil {
		panic("skipindex: nil compare function")
	}
	cfg := newConfig(opts)
	return &Index[K, V]{
		compare:  compare,
		head:     newHead[K, V](),
		levels:   levelGenerator{src: cfg.source},
		lockFree: cfg.lockFreeReads,
		metrics:  newMetrics(NewRNG()),
	}
}

func (idx *Index[K, V]) rlock() {
	if !idx.lockFree {
		idx.mu.RLock()
	}
}

func (idx *Index[K, V]) runlock() {
	if !idx.lockFree {
		idx.mu.RUnlock()
	}
}

// findPreds descends from the top level and records in preds the last node
// whose key is less than key at every level 0..curLevel. It returns the
// level-0 successor of that position, which is the only node that can hold
// key. Callers must hold the write lock.
func (idx *Index[K, V]) findPreds(key K, preds *[MaxLevel + 1]*node[K, V]) *node[K, V] {
	x := idx.head
	for i := idx.Level(); i >= 0; i-- {
		x = idx.advance(x, i, key)
		preds[i] = x
	}
	return x.next(0)
}

// advance moves right from x along level while the next key is below key.
func (idx *Index[K, V]) advance(x *node[K, V], level int, key K) *node[K, V] {
	for next := x.next(level); next != nil && idx.compare(next.key, key) < 0; next = x.next(level) {
		x = next
	}
	return x
}

// seekGE returns the first node whose key is >= key. It only follows
// published links, so lock-free readers may call it.
func (idx *Index[K, V]) seekGE(key K) *node[K, V] {
	x := idx.head
	for i := idx.Level(); i >= 0; i-- {
		x = idx.advance(x, i, key)
	}
	return x.next(0)
}

func (idx *Index[K, V]) find(key K) *node[K, V] {
	n := idx.seekGE(key)
	if n != nil && idx.compare(n.key, key) == 0 {
		return n
	}
	return nil
}

// Insert stores value under key. An existing key has its value replaced in
// place; otherwise a new node is linked in at a freshly drawn level.
// Insert always succeeds and reports true.
func (idx *Index[K, V]) Insert(key K, value V) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var preds [MaxLevel + 1]*node[K, V]
	succ := idx.findPreds(key, &preds)
	if succ != nil && idx.compare(succ.key, key) == 0 {
		succ.val.Store(&value)
		idx.metrics.recordInsert(true)
		return true
	}

	level := idx.levels.next()
	top := idx.Level()
	for i := top + 1; i <= level; i++ {
		preds[i] = idx.head
	}

	n := newNode(key, value, level)
	for i := 0; i <= level; i++ {
		n.forwards[i].Store(preds[i].next(i))
	}
	// Publish bottom-up: by the time n is reachable at level i it is
	// already reachable at every level below i.
	for i := 0; i <= level; i++ {
		preds[i].forwards[i].Store(n)
		if spliceHook != nil {
			spliceHook(i)
		}
	}
	if level > top {
		idx.curLevel.Store(int32(level))
	}
	idx.count.Add(1)
	idx.metrics.recordInsert(false)
	return true
}

// Get returns the value stored under key.
func (idx *Index[K, V]) Get(key K) (V, bool) {
	idx.rlock()
	n := idx.find(key)
	var v V
	if n != nil {
		v = n.value()
	}
	idx.runlock()

	idx.metrics.recordLookup(n != nil)
	return v, n != nil
}

// Contains reports whether key is present.
func (idx *Index[K, V]) Contains(key K) bool {
	idx.rlock()
	found := idx.find(key) != nil
	idx.runlock()

	idx.metrics.recordLookup(found)
	return found
}

// Delete removes key and reports whether it was present. Deleting an
// absent key leaves the index untouched.
func (idx *Index[K, V]) Delete(key K) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var preds [MaxLevel + 1]*node[K, V]
	target := idx.findPreds(key, &preds)
	if target == nil || idx.compare(target.key, key) != 0 {
		idx.metrics.recordDelete(false)
		return false
	}

	// Unlink top-down so the node never stays reachable at a level whose
	// lower levels already skip it. Its own forwards are left intact for
	// readers that are currently standing on it.
	for i := target.level; i >= 0; i-- {
		if preds[i].next(i) != target {
			continue
		}
		preds[i].forwards[i].Store(target.next(i))
		if spliceHook != nil {
			spliceHook(i)
		}
	}

	top := idx.Level()
	for top > 0 && idx.head.next(top) == nil {
		top--
	}
	idx.curLevel.Store(int32(top))
	idx.count.Add(-1)
	idx.metrics.recordDelete(true)
	return true
}

// Len returns the number of keys in the index.
func (idx *Index[K, V]) Len() int {
	return int(idx.count.Load())
}

// Level returns the highest level currently occupied by any node, or 0 when
// the index is empty.
func (idx *Index[K, V]) Level() int {
	return int(idx.curLevel.Load())
}

// Range calls fn for every entry in ascending key order until fn returns
// false. Writers are blocked for the duration of the walk, so the entries
// form a consistent snapshot. fn must not call Insert or Delete.
func (idx *Index[K, V]) Range(fn func(key K, value V) bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for n := idx.head.next(0); n != nil; n = n.next(0) {
		if !fn(n.key, n.value()) {
			return
		}
	}
}

// Stats returns cumulative operation counters.
func (idx *Index[K, V]) Stats() Stats {
	return idx.metrics.snapshot()
}
