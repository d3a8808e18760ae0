package dict

import (
	"log/slog"
	"math/bits"
)

// defaultMaxSlots bounds the number of buckets a single table may have.
const defaultMaxSlots = 1 << (bits.UintSize/2 + 8)

// Config defines configurable Dict options.
type Config struct {
	sizeHint      int
	privData      any
	runtime       *Runtime
	logger        *slog.Logger
	maxSlots      uint64
	shrinkEnabled bool
}

// WithPresize configures a new Dict with a table large enough to hold
// sizeHint entries at a 1:1 load factor. If sizeHint is zero or negative,
// the value is ignored.
func WithPresize(sizeHint int) func(*Config) {
	return func(c *Config) {
		c.sizeHint = sizeHint
	}
}

// WithPrivData attaches opaque caller data to the dictionary. It is
// returned by PrivData and passed to the Empty callback.
func WithPrivData(privData any) func(*Config) {
	return func(c *Config) {
		c.privData = privData
	}
}

// WithRuntime binds the dictionary to r instead of DefaultRuntime.
func WithRuntime(r *Runtime) func(*Config) {
	return func(c *Config) {
		c.runtime = r
	}
}

// WithLogger sets the logger used for resize and rehash events.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) func(*Config) {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxSlots limits the number of buckets of a single table. Growth
// beyond the limit fails with ErrAllocationFailure. Values below the
// initial table size are raised to it.
func WithMaxSlots(maxSlots int) func(*Config) {
	return func(c *Config) {
		c.maxSlots = uint64(max(maxSlots, initialSize))
	}
}

// WithShrinkEnabled makes Delete shrink the table once it is less than
// 10% full. Disabled by default; callers usually shrink from a periodic
// maintenance task with NeedsResize and Resize.
func WithShrinkEnabled() func(*Config) {
	return func(c *Config) {
		c.shrinkEnabled = true
	}
}
