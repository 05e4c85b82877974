package skipindex

// Test hooks (kept separate so instrumentation doesn't clutter logic).
// They must not mutate the index.
var (
	// spliceHook runs after each per-level link change made by Insert or
	// Delete while the writer still holds the lock.
	spliceHook func(level int)
)
