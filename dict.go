package dict

import (
	"fmt"
	"log/slog"
	"unsafe"
)

const (
	// initialSize is the number of buckets of a freshly created table and
	// the lower bound of every table size.
	initialSize = 4
	// emptyVisitsPerStep bounds how many empty buckets a single rehash step
	// may skip before giving control back to the caller.
	emptyVisitsPerStep = 10
	// rehashBatch is the number of buckets migrated between two deadline
	// checks of RehashFor.
	rehashBatch = 100
	// clearCallbackEvery is the bucket interval at which Empty invokes its
	// callback.
	clearCallbackEvery = 65536
)

// Entry is a key-value pair stored in a Dict. Entries are owned by the
// dictionary; callers may read them and set values through Dict.SetVal but
// must not keep them past a Delete of the same key.
type Entry[K, V any] struct {
	key  K
	val  V
	next *Entry[K, V] // next entry in the same bucket
}

// Key returns the stored key.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Val returns the stored value.
func (e *Entry[K, V]) Val() V {
	return e.val
}

// hashTable is a power of two sized array of chain heads.
type hashTable[K, V any] struct {
	buckets []*Entry[K, V]
	size    uint64
	mask    uint64
	used    uint64
}

func newHashTable[K, V any](size uint64) hashTable[K, V] {
	return hashTable[K, V]{
		buckets: make([]*Entry[K, V], size),
		size:    size,
		mask:    size - 1,
	}
}

// Dict is a chained hash table that grows by incremental rehashing: when
// a table fills up a second, larger table is allocated and buckets are
// moved over a few at a time, piggybacking on ordinary lookups and
// updates, so no single call pays for the whole migration.
//
// While rehashing, new entries are written to the new table only and
// lookups consult both tables. Iteration is available in two flavours
// (see Iterator and SafeIterator), and Scan provides a stateless cursor
// that survives resizes between calls.
//
// A Dict is not safe for concurrent use. A Dict must not be copied after
// first use.
type Dict[K, V any] struct {
	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(struct {
		typ           any
		ht            [2]struct{ buckets []unsafe.Pointer; size, mask, used uint64 }
		rehashIdx     int64
		iterators     int64
		emptied       uint64
		privData      any
		seed          uint64
		rt            *Runtime
		logger        *slog.Logger
		maxSlots      uint64
		shrinkEnabled bool
	}{})%CacheLineSize) % CacheLineSize]byte

	typ           Type[K, V]
	ht            [2]hashTable[K, V]
	rehashIdx     int64  // -1 when not rehashing
	iterators     int64  // number of safe iterators currently bound
	emptied       uint64 // bumped by Empty, ends bound iterators
	privData      any
	seed          uint64
	rt            *Runtime
	logger        *slog.Logger
	maxSlots      uint64 // WithMaxSlots
	shrinkEnabled bool   // WithShrinkEnabled
}

// New creates an empty dictionary using typ for hashing, comparison and
// ownership of keys and values. No table is allocated until the first
// insertion unless WithPresize is given.
//
// Parameters:
//   - typ: the key/value capability set, must not be nil
//   - WithPresize, WithPrivData, WithRuntime, WithLogger, WithMaxSlots,
//     WithShrinkEnabled options
func New[K, V any](typ Type[K, V], options ...func(*Config)) *Dict[K, V] {
	if typ == nil {
		panic("dict: nil Type")
	}
	var cfg Config
	for _, opt := range options {
		opt(&cfg)
	}

	d := &Dict[K, V]{
		typ:           typ,
		rehashIdx:     -1,
		privData:      cfg.privData,
		rt:            cfg.runtime,
		logger:        cfg.logger,
		maxSlots:      cfg.maxSlots,
		shrinkEnabled: cfg.shrinkEnabled,
	}
	if d.rt == nil {
		d.rt = defaultRuntime
	}
	if d.logger == nil {
		d.logger = noopLogger
	}
	if d.maxSlots == 0 {
		d.maxSlots = defaultMaxSlots
	}
	d.seed = d.rt.HashSeed()

	if cfg.sizeHint > 0 {
		if err := d.Expand(cfg.sizeHint); err != nil {
			d.logger.Warn("dict presize ignored", "size", cfg.sizeHint, "error", err)
		}
	}
	return d
}

// Type returns the type descriptor the dictionary was created with.
func (d *Dict[K, V]) Type() Type[K, V] {
	return d.typ
}

// PrivData returns the data attached with WithPrivData.
func (d *Dict[K, V]) PrivData() any {
	return d.privData
}

// Len returns the number of entries across both tables.
func (d *Dict[K, V]) Len() int {
	return int(d.ht[0].used + d.ht[1].used)
}

// Slots returns the number of buckets across both tables.
func (d *Dict[K, V]) Slots() int {
	return int(d.ht[0].size + d.ht[1].size)
}

// IsRehashing reports whether entries are being migrated to a new table.
func (d *Dict[K, V]) IsRehashing() bool {
	return d.rehashIdx != -1
}

func (d *Dict[K, V]) hashKey(key K) uint64 {
	return d.typ.Hash(key, d.seed)
}

// Add inserts key with val. It returns ErrDuplicateKey, leaving the
// dictionary untouched, when key is already present.
func (d *Dict[K, V]) Add(key K, val V) error {
	e, err := d.AddRaw(key)
	if err != nil {
		return err
	}
	d.SetVal(e, val)
	return nil
}

// AddRaw inserts key without a value and returns the new entry so the
// caller can fill in the value with SetVal, typically when the value has
// to be built in place:
//
//	e, err := d.AddRaw(key)
//	if err == nil {
//		d.SetVal(e, newCounter())
//	}
//
// It returns ErrDuplicateKey if key already exists.
func (d *Dict[K, V]) AddRaw(key K) (*Entry[K, V], error) {
	if d.IsRehashing() {
		d.rehashStep()
	}

	idx, err := d.keyIndex(key)
	if err != nil {
		return nil, err
	}

	// Recently added entries are assumed to be accessed more frequently,
	// so they go to the head of the chain.
	ht := &d.ht[0]
	if d.IsRehashing() {
		ht = &d.ht[1]
	}
	e := &Entry[K, V]{
		key:  d.typ.KeyDup(key),
		next: ht.buckets[idx],
	}
	ht.buckets[idx] = e
	ht.used++
	return e, nil
}

// SetVal stores val in e, applying the type's ValDup. It does not release
// the previous value.
func (d *Dict[K, V]) SetVal(e *Entry[K, V], val V) {
	e.val = d.typ.ValDup(val)
}

// Replace sets key to val, adding the entry if needed. It reports whether
// the key was newly added. The old value of an existing key is released
// after the new one is stored, so a value may be replaced by itself even
// when ValDup/ValFree maintain a reference count.
func (d *Dict[K, V]) Replace(key K, val V) (added bool, err error) {
	err = d.Add(key, val)
	if err == nil {
		return true, nil
	}

	// Updating an existing key needs no allocation, whatever Add failed on.
	e := d.Find(key)
	if e == nil {
		return false, err
	}
	old := e.val
	d.SetVal(e, val)
	d.typ.ValFree(old)
	return false, nil
}

// ReplaceRaw returns the entry of key, adding an empty one if the key is
// not present. See AddRaw.
func (d *Dict[K, V]) ReplaceRaw(key K) (*Entry[K, V], error) {
	if e := d.Find(key); e != nil {
		return e, nil
	}
	return d.AddRaw(key)
}

// Find returns the entry of key, or nil if the key is not present.
func (d *Dict[K, V]) Find(key K) *Entry[K, V] {
	if d.Len() == 0 {
		return nil
	}
	if d.IsRehashing() {
		d.rehashStep()
	}

	h := d.hashKey(key)
	for table := 0; table <= 1; table++ {
		ht := &d.ht[table]
		for e := ht.buckets[h&ht.mask]; e != nil; e = e.next {
			if d.typ.KeyEqual(key, e.key) {
				return e
			}
		}
		if !d.IsRehashing() {
			return nil
		}
	}
	return nil
}

// Fetch returns the value of key, or ErrKeyNotFound.
func (d *Dict[K, V]) Fetch(key K) (V, error) {
	if e := d.Find(key); e != nil {
		return e.val, nil
	}
	var zero V
	return zero, ErrKeyNotFound
}

// genericDelete unlinks the entry of key and, if free is set, releases its
// key and value.
func (d *Dict[K, V]) genericDelete(key K, free bool) (*Entry[K, V], error) {
	if d.ht[0].size == 0 {
		return nil, ErrKeyNotFound
	}
	if d.IsRehashing() {
		d.rehashStep()
	}

	h := d.hashKey(key)
	for table := 0; table <= 1; table++ {
		ht := &d.ht[table]
		idx := h & ht.mask
		var prev *Entry[K, V]
		for e := ht.buckets[idx]; e != nil; prev, e = e, e.next {
			if !d.typ.KeyEqual(key, e.key) {
				continue
			}
			if prev != nil {
				prev.next = e.next
			} else {
				ht.buckets[idx] = e.next
			}
			ht.used--
			if free {
				d.freeEntry(e)
			}
			return e, nil
		}
		if !d.IsRehashing() {
			break
		}
	}
	return nil, ErrKeyNotFound
}

// Delete removes key, releasing its key and value through the type's
// free callbacks. It returns ErrKeyNotFound on a miss.
func (d *Dict[K, V]) Delete(key K) error {
	if _, err := d.genericDelete(key, true); err != nil {
		return err
	}
	d.shrinkIfNeeded()
	return nil
}

// DeleteNoFree removes key without calling the free callbacks, for
// callers that moved ownership of the key or value elsewhere.
func (d *Dict[K, V]) DeleteNoFree(key K) error {
	if _, err := d.genericDelete(key, false); err != nil {
		return err
	}
	d.shrinkIfNeeded()
	return nil
}

// Unlink removes key and returns its entry without releasing it. The
// caller may use the entry and then pass it to FreeUnlinkedEntry, which
// saves a second lookup compared to Find followed by Delete.
func (d *Dict[K, V]) Unlink(key K) (*Entry[K, V], error) {
	e, err := d.genericDelete(key, false)
	if err != nil {
		return nil, err
	}
	d.shrinkIfNeeded()
	return e, nil
}

// FreeUnlinkedEntry releases the key and value of an entry returned by
// Unlink. A nil entry is ignored.
func (d *Dict[K, V]) FreeUnlinkedEntry(e *Entry[K, V]) {
	if e == nil {
		return
	}
	d.freeEntry(e)
}

// freeEntry releases key and value. The next pointer is left intact: a
// safe iterator may already have cached it.
func (d *Dict[K, V]) freeEntry(e *Entry[K, V]) {
	d.typ.KeyFree(e.key)
	d.typ.ValFree(e.val)
	var (
		zeroK K
		zeroV V
	)
	e.key, e.val = zeroK, zeroV
}

// clearTable releases every entry of table idx and drops its storage.
func (d *Dict[K, V]) clearTable(idx int, callback func(privData any)) {
	ht := &d.ht[idx]
	for i := uint64(0); i < ht.size && ht.used > 0; i++ {
		if callback != nil && i&(clearCallbackEvery-1) == 0 {
			callback(d.privData)
		}
		for e := ht.buckets[i]; e != nil; {
			next := e.next
			d.freeEntry(e)
			ht.used--
			e = next
		}
	}
	*ht = hashTable[K, V]{}
}

// Empty releases every entry and all table storage, leaving an empty
// dictionary that can be reused. For large dictionaries callback, if not
// nil, is invoked with the private data every 65536 buckets so the caller
// can keep serving other work. Bound safe iterators stay registered until
// released; their next call to Next returns nil.
func (d *Dict[K, V]) Empty(callback func(privData any)) {
	d.clearTable(0, callback)
	d.clearTable(1, callback)
	d.rehashIdx = -1
	d.emptied++
}

// Release frees every entry through the type's free callbacks. The
// dictionary is empty afterwards.
func (d *Dict[K, V]) Release() {
	d.Empty(nil)
}

// String implements fmt.Stringer.
func (d *Dict[K, V]) String() string {
	return fmt.Sprintf("dict.Dict{len: %d, slots: %d, rehashing: %t}",
		d.Len(), d.Slots(), d.IsRehashing())
}
