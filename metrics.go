package skipindex

import (
	"math/bits"
	"runtime"
	"sync/atomic"
)

type metricShard struct {
	inserts      atomic.Int64
	updates      atomic.Int64
	deletes      atomic.Int64
	deleteMisses atomic.Int64
	lookups      atomic.Int64
	lookupMisses atomic.Int64
	// Pad to cache line size to prevent false sharing.
	_ [16]byte
}

// metrics spreads counters over GOMAXPROCS shards so lock-free readers do
// not contend on a single cache line.
type metrics struct {
	shards []metricShard
	mask   uint32
	rng    *RNG
}

// Stats is a point-in-time view of operation counters.
type Stats struct {
	Inserts      int64
	Updates      int64
	Deletes      int64
	DeleteMisses int64
	Lookups      int64
	LookupMisses int64
}

func newMetrics(rng *RNG) *metrics {
	shardCount := 1
	if rng != nil {
		shardCount = runtime.GOMAXPROCS(0)
		if shardCount < 1 {
			shardCount = 1
		}
		shardCount = nextPowerOfTwo(shardCount)
	}
	return &metrics{
		shards: make([]metricShard, shardCount),
		mask:   uint32(shardCount - 1),
		rng:    rng,
	}
}

func nextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(v-1))
}

func (m *metrics) shard() *metricShard {
	if len(m.shards) == 1 || m.rng == nil {
		return &m.shards[0]
	}
	idx := uint32(m.rng.Uint64()) & m.mask
	return &m.shards[idx]
}

func (m *metrics) recordInsert(updated bool) {
	if updated {
		m.shard().updates.Add(1)
		return
	}
	m.shard().inserts.Add(1)
}

func (m *metrics) recordDelete(found bool) {
	if found {
		m.shard().deletes.Add(1)
		return
	}
	m.shard().deleteMisses.Add(1)
}

func (m *metrics) recordLookup(found bool) {
	s := m.shard()
	s.lookups.Add(1)
	if !found {
		s.lookupMisses.Add(1)
	}
}

func (m *metrics) snapshot() Stats {
	var st Stats
	for i := range m.shards {
		s := &m.shards[i]
		st.Inserts += s.inserts.Load()
		st.Updates += s.updates.Load()
		st.Deletes += s.deletes.Load()
		st.DeleteMisses += s.deleteMisses.Load()
		st.Lookups += s.lookups.Load()
		st.LookupMisses += s.lookupMisses.Load()
	}
	return st
}
