package skipindex

import "math/rand/v2"

// Config holds construction-time settings for an Index.
type Config struct {
	// source feeds the level generator.
	source rand.Source

	// lockFreeReads lets Get, Contains and iterators run without taking
	// the index lock. Writers always serialize.
	lockFreeReads bool
}

// Option mutates a Config.
type Option func(*Config)

func newConfig(opts []Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	if c.source == nil {
		c.source = NewRNG()
	}
	return c
}

// WithRandSource sets the random source used to draw node levels. Supplying
// a seeded source makes level assignment reproducible.
func WithRandSource(src rand.Source) Option {
	return func(c *Config) { c.source = src }
}

// WithSeed is shorthand for WithRandSource(NewRNGWithSeed(seed)).
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.source = NewRNGWithSeed(seed) }
}

// WithLockFreeReads lets readers traverse the list without the index lock.
// Each forward link is published with a single atomic store, so a reader
// observes every level either before or after a concurrent splice.
func WithLockFreeReads(enabled bool) Option {
	return func(c *Config) { c.lockFreeReads = enabled }
}
