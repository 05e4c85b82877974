// Package skipindex implements an in-memory ordered key/value index on top
// of a skip list.
//
// Every node is linked at levels 0 through its own level, drawn once at
// insertion with P(level = k) = 2^-k and capped at MaxLevel. Writers
// serialize on a mutex. Readers either share a read lock (the default) or,
// with WithLockFreeReads, traverse without locking: each forward link is
// published with one atomic store, so a reader sees every level either
// before or after a concurrent splice.
//
// The persist subpackage writes and reads the index as "key:value;" lines.
package skipindex
