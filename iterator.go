package dict

import (
	"fmt"
	"unsafe"
)

// Iterator walks every entry of a Dict, first through the main table and
// then, if a rehash is in progress, through the rehash target.
//
// A safe iterator (Dict.SafeIterator) suspends the per-call rehash steps of
// its dictionary while it is bound, so the caller may add, find and delete
// keys during the iteration; in particular the entry just returned by Next
// may be deleted. An unsafe iterator (Dict.Iterator) only allows Next to be
// called: it records a fingerprint of the dictionary on the first Next and
// Release panics if the fingerprint changed, since any lookup or update in
// between may have moved entries under it.
//
// An Iterator binds to the dictionary on the first call to Next and must be
// released with Release afterwards.
type Iterator[K, V any] struct {
	d           *Dict[K, V]
	index       int64
	table       int
	safe        bool
	done        bool
	entry       *Entry[K, V]
	nextEntry   *Entry[K, V]
	fingerprint uint64
	emptied     uint64 // Dict.emptied when bound
}

// Iterator returns an unsafe iterator over d.
func (d *Dict[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{
		d:     d,
		index: -1,
	}
}

// SafeIterator returns a safe iterator over d.
func (d *Dict[K, V]) SafeIterator() *Iterator[K, V] {
	it := d.Iterator()
	it.safe = true
	return it
}

func (it *Iterator[K, V]) bound() bool {
	return !(it.index == -1 && it.table == 0)
}

// Next returns the next entry, or nil once every entry has been visited.
func (it *Iterator[K, V]) Next() *Entry[K, V] {
	if it.done {
		return nil
	}
	if it.bound() && it.emptied != it.d.emptied {
		// The cached chain was released by Empty.
		it.done = true
		it.entry, it.nextEntry = nil, nil
		return nil
	}
	for {
		if it.entry == nil {
			ht := &it.d.ht[it.table]
			if !it.bound() {
				if it.safe {
					it.d.iterators++
				} else {
					it.fingerprint = it.d.fingerprint()
				}
				it.emptied = it.d.emptied
			}
			it.index++
			if it.index >= int64(ht.size) {
				if it.d.IsRehashing() && it.table == 0 {
					it.table++
					it.index = 0
					ht = &it.d.ht[1]
				} else {
					it.done = true
					return nil
				}
			}
			it.entry = ht.buckets[it.index]
		} else {
			it.entry = it.nextEntry
		}
		if it.entry != nil {
			// The caller may delete the entry we return, so remember
			// the next one now.
			it.nextEntry = it.entry.next
			return it.entry
		}
	}
}

// Release unbinds the iterator. For an unsafe iterator it verifies that
// the dictionary was not modified since the first Next and panics if it
// was: that is a programming error, not a recoverable condition.
// Releasing an iterator twice is a no-op.
func (it *Iterator[K, V]) Release() {
	if it.bound() {
		if it.safe {
			it.d.iterators--
		} else if fp := it.d.fingerprint(); fp != it.fingerprint {
			it.d.logFingerprintMismatch(it.fingerprint, fp)
			panic(fmt.Sprintf("dict: fingerprint mismatch %#x != %#x: dictionary modified during unsafe iteration",
				it.fingerprint, fp))
		}
	}
	it.index = -1
	it.table = 0
	it.done = false
	it.entry = nil
	it.nextEntry = nil
}

// fingerprint folds the identity, size and fill of both tables into a
// 64-bit value: Result = hash(hash(hash(int1)+int2)+int3)..., so the same
// integers in a different order (likely) give a different result.
func (d *Dict[K, V]) fingerprint() uint64 {
	integers := [6]uint64{
		uint64(uintptr(unsafe.Pointer(unsafe.SliceData(d.ht[0].buckets)))),
		d.ht[0].size,
		d.ht[0].used,
		uint64(uintptr(unsafe.Pointer(unsafe.SliceData(d.ht[1].buckets)))),
		d.ht[1].size,
		d.ht[1].used,
	}
	var hash uint64
	for _, n := range integers {
		hash = IntHash64(hash + n)
	}
	return hash
}

// RangeEntry calls yield for every entry using a safe iterator, stopping
// early if yield returns false. yield may delete the entry it was given.
func (d *Dict[K, V]) RangeEntry(yield func(e *Entry[K, V]) bool) {
	it := d.SafeIterator()
	defer it.Release()
	for e := it.Next(); e != nil; e = it.Next() {
		if !yield(e) {
			return
		}
	}
}

// Range calls yield for every key-value pair. See RangeEntry.
func (d *Dict[K, V]) Range(yield func(key K, val V) bool) {
	d.RangeEntry(func(e *Entry[K, V]) bool {
		return yield(e.key, e.val)
	})
}

// All is the iterator version of Range.
func (d *Dict[K, V]) All() func(yield func(K, V) bool) {
	return d.Range
}

// Keys is the iterator version for iterating over all keys.
func (d *Dict[K, V]) Keys() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		d.RangeEntry(func(e *Entry[K, V]) bool {
			return yield(e.key)
		})
	}
}

// Values is the iterator version for iterating over all values.
func (d *Dict[K, V]) Values() func(yield func(V) bool) {
	return func(yield func(V) bool) {
		d.RangeEntry(func(e *Entry[K, V]) bool {
			return yield(e.val)
		})
	}
}
