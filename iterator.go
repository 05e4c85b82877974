package skipindex

// Iterator provides a forward-only view over the index in ascending key
// order. It does not hold the index lock between steps. An iterator left
// on a node that is later deleted resumes from the successor that node had
// when it was unlinked.
type Iterator[K, V any] struct {
	idx     *Index[K, V]
	current *node[K, V]
	key     K
	value   V
	valid   bool
}

// Iterator returns a new iterator positioned before the first element.
func (idx *Index[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{idx: idx}
}

// SeekGE returns an iterator positioned at the first element whose key is
// greater than or equal to key. The returned iterator is valid if and only
// if such an element exists.
func (idx *Index[K, V]) SeekGE(key K) *Iterator[K, V] {
	it := idx.Iterator()
	it.SeekGE(key)
	return it
}

// Valid reports whether the iterator currently points at an element.
func (it *Iterator[K, V]) Valid() bool {
	if it == nil {
		return false
	}
	return it.valid
}

// Key returns the key at the iterator's current position.
// It should only be called when Valid reports true.
func (it *Iterator[K, V]) Key() K {
	var zero K
	if it == nil || !it.valid {
		return zero
	}
	return it.key
}

// Value returns the value at the iterator's current position.
// It should only be called when Valid reports true.
func (it *Iterator[K, V]) Value() V {
	var zero V
	if it == nil || !it.valid {
		return zero
	}
	return it.value
}

// SeekGE positions the iterator at the first element whose key is
// greater than or equal to key. It returns true if such an element exists.
func (it *Iterator[K, V]) SeekGE(key K) bool {
	if it == nil || it.idx == nil {
		return false
	}

	it.idx.rlock()
	n := it.idx.seekGE(key)
	it.load(n)
	it.idx.runlock()
	return it.valid
}

// Next advances the iterator to the next element and reports whether it
// successfully moved forward. If the iterator was not valid prior to the
// call, it advances to the first element.
func (it *Iterator[K, V]) Next() bool {
	if it == nil || it.idx == nil {
		return false
	}

	start := it.current
	if !it.valid {
		start = it.idx.head
	}

	it.idx.rlock()
	it.load(start.next(0))
	it.idx.runlock()
	return it.valid
}

func (it *Iterator[K, V]) load(n *node[K, V]) {
	if n == nil {
		it.invalidate()
		return
	}
	it.current = n
	it.key = n.key
	it.value = n.value()
	it.valid = true
}

func (it *Iterator[K, V]) invalidate() {
	it.current = nil
	it.valid = false
	var zeroK K
	var zeroV V
	it.key = zeroK
	it.value = zeroV
}
