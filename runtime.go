package dict

import "sync/atomic"

const (
	// defaultHashSeed is the seed used until SetHashSeed is called.
	defaultHashSeed = 5381
	// forceResizeRatio is the used/size ratio above which a table grows
	// even when resizing is disabled.
	forceResizeRatio = 5
)

// Runtime holds the settings that are shared by every dictionary bound to
// it: whether opportunistic resizing is allowed and the hash seed.
//
// A process normally uses the single DefaultRuntime. The seed is expected
// to be set once at startup, before any dictionary is created; a dictionary
// captures the seed at construction time. The resize flag may be toggled at
// any time by one controlling goroutine, for example around a snapshot that
// relies on copy-on-write memory staying untouched.
type Runtime struct {
	resizeDisabled atomic.Bool
	seed           atomic.Uint64
}

var defaultRuntime = NewRuntime(defaultHashSeed)

// NewRuntime creates a Runtime with resizing enabled and the given seed.
func NewRuntime(seed uint64) *Runtime {
	r := &Runtime{}
	r.seed.Store(seed)
	return r
}

// DefaultRuntime returns the process-wide Runtime used by dictionaries
// created without WithRuntime.
func DefaultRuntime() *Runtime {
	return defaultRuntime
}

// EnableResize allows dictionaries to grow as soon as they reach a 1:1
// load factor.
func (r *Runtime) EnableResize() {
	r.resizeDisabled.Store(false)
}

// DisableResize suppresses opportunistic growth. Tables still grow once
// the load factor exceeds forceResizeRatio, bounding chain length.
func (r *Runtime) DisableResize() {
	r.resizeDisabled.Store(true)
}

// ResizeEnabled reports whether opportunistic resizing is allowed.
func (r *Runtime) ResizeEnabled() bool {
	return !r.resizeDisabled.Load()
}

// SetHashSeed sets the seed handed to Type.Hash by dictionaries created
// afterwards.
func (r *Runtime) SetHashSeed(seed uint64) {
	r.seed.Store(seed)
}

// HashSeed returns the current seed.
func (r *Runtime) HashSeed() uint64 {
	return r.seed.Load()
}

// EnableResize enables resizing on the DefaultRuntime.
func EnableResize() { defaultRuntime.EnableResize() }

// DisableResize disables resizing on the DefaultRuntime.
func DisableResize() { defaultRuntime.DisableResize() }

// ResizeEnabled reports the DefaultRuntime resize flag.
func ResizeEnabled() bool { return defaultRuntime.ResizeEnabled() }

// SetHashSeed sets the DefaultRuntime hash seed.
func SetHashSeed(seed uint64) { defaultRuntime.SetHashSeed(seed) }

// HashSeed returns the DefaultRuntime hash seed.
func HashSeed() uint64 { return defaultRuntime.HashSeed() }
