package dict

import (
	"fmt"
	"math/bits"
	"time"
)

// minFillPercent is the fill below which NeedsResize suggests shrinking.
const minFillPercent = 10

// nextPower returns the smallest power of two >= size, never less than
// initialSize, or 0 if that does not fit in 64 bits.
func nextPower(size uint64) uint64 {
	if size <= initialSize {
		return initialSize
	}
	if size > 1<<63 {
		return 0
	}
	return 1 << bits.Len64(size-1)
}

// Expand creates a table with room for at least size entries. If the
// dictionary has no table yet the new table is used right away; otherwise
// it becomes the rehash target and entries migrate incrementally.
//
// It returns ErrInvalidResize if a rehash is in progress, if size is
// smaller than the number of stored entries or if the table size would
// not change, and ErrAllocationFailure if the table would exceed the slot
// limit.
func (d *Dict[K, V]) Expand(size int) error {
	if size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidResize, size)
	}
	return d.expand(uint64(size))
}

func (d *Dict[K, V]) expand(size uint64) error {
	if d.IsRehashing() {
		return fmt.Errorf("%w: rehashing in progress", ErrInvalidResize)
	}
	if size < d.ht[0].used {
		return fmt.Errorf("%w: size %d is below %d stored entries",
			ErrInvalidResize, size, d.ht[0].used)
	}

	realSize := nextPower(size)
	if realSize == 0 || realSize > d.maxSlots {
		return fmt.Errorf("%w: %d slots requested, limit is %d",
			ErrAllocationFailure, size, d.maxSlots)
	}
	if realSize == d.ht[0].size {
		return fmt.Errorf("%w: table already has %d slots", ErrInvalidResize, realSize)
	}

	n := newHashTable[K, V](realSize)
	if d.ht[0].size == 0 {
		d.ht[0] = n
		d.logTableCreated(realSize)
		return nil
	}

	d.ht[1] = n
	d.rehashIdx = 0
	d.logRehashStarted(d.ht[0].size, realSize)
	return nil
}

// expandIfNeeded grows the table once it reaches a 1:1 load factor, or
// regardless of the resize flag once the ratio exceeds forceResizeRatio.
func (d *Dict[K, V]) expandIfNeeded() error {
	if d.IsRehashing() {
		return nil
	}
	if d.ht[0].size == 0 {
		return d.expand(initialSize)
	}

	used, size := d.ht[0].used, d.ht[0].size
	if used < size {
		return nil
	}
	if d.rt.ResizeEnabled() {
		return d.expand(used * 2)
	}
	if used/size > forceResizeRatio {
		d.logForcedGrowth(used, size)
		return d.expand(used * 2)
	}
	return nil
}

// keyIndex returns the bucket a new entry for key goes to, in the rehash
// target if a rehash is in progress. Duplicates are reported before the
// table is grown, so an existing key never fails with ErrAllocationFailure.
func (d *Dict[K, V]) keyIndex(key K) (uint64, error) {
	h := d.hashKey(key)
	if d.ht[0].size != 0 {
		for table := 0; table <= 1; table++ {
			ht := &d.ht[table]
			for e := ht.buckets[h&ht.mask]; e != nil; e = e.next {
				if d.typ.KeyEqual(key, e.key) {
					return 0, ErrDuplicateKey
				}
			}
			if !d.IsRehashing() {
				break
			}
		}
	}

	if err := d.expandIfNeeded(); err != nil {
		return 0, err
	}
	if d.IsRehashing() {
		return h & d.ht[1].mask, nil
	}
	return h & d.ht[0].mask, nil
}

// Rehash performs n steps of incremental rehashing and reports whether
// entries remain to be moved.
//
// A step moves one bucket, with its whole chain, to the new table. Since
// part of the old table may be empty, at most n*10 empty buckets are
// skipped in total; a call may therefore return without moving anything,
// but it never runs for long.
func (d *Dict[K, V]) Rehash(n int) bool {
	if !d.IsRehashing() {
		return false
	}

	emptyVisits := n * emptyVisitsPerStep
	t0, t1 := &d.ht[0], &d.ht[1]
	for ; n > 0 && t0.used != 0; n-- {
		// rehashIdx can't overflow: t0.used != 0 means more entries ahead.
		for t0.buckets[d.rehashIdx] == nil {
			d.rehashIdx++
			emptyVisits--
			if emptyVisits == 0 {
				return true
			}
		}

		for e := t0.buckets[d.rehashIdx]; e != nil; {
			next := e.next
			idx := d.hashKey(e.key) & t1.mask
			e.next = t1.buckets[idx]
			t1.buckets[idx] = e
			t0.used--
			t1.used++
			e = next
		}
		t0.buckets[d.rehashIdx] = nil
		d.rehashIdx++
	}

	if t0.used == 0 {
		d.ht[0] = d.ht[1]
		d.ht[1] = hashTable[K, V]{}
		d.rehashIdx = -1
		d.logRehashCompleted()
		return false
	}
	return true
}

// rehashStep performs a single step of rehashing, unless safe iterators
// are bound: those rely on entries not moving between tables.
func (d *Dict[K, V]) rehashStep() {
	if d.iterators == 0 {
		d.Rehash(1)
	}
}

// RehashFor rehashes in batches of 100 buckets until the rehash is done or
// the duration has elapsed, and returns the number of buckets requested.
// At least one batch runs when a rehash is pending, so repeated calls
// always make progress. Nothing happens while safe iterators are bound.
func (d *Dict[K, V]) RehashFor(duration time.Duration) int {
	if d.iterators > 0 {
		return 0
	}

	start := time.Now()
	rehashes := 0
	for d.IsRehashing() {
		d.Rehash(rehashBatch)
		rehashes += rehashBatch
		if time.Since(start) > duration {
			break
		}
	}
	if rehashes > 0 {
		d.logTimedRehash(rehashes, time.Since(start))
	}
	return rehashes
}

// RehashMilliseconds is RehashFor expressed in milliseconds.
func (d *Dict[K, V]) RehashMilliseconds(ms int) int {
	return d.RehashFor(time.Duration(ms) * time.Millisecond)
}

// Resize sizes the table to the smallest power of two holding all entries
// at a load factor near 1. It returns ErrInvalidResize if resizing is
// disabled or a rehash is in progress.
func (d *Dict[K, V]) Resize() error {
	if !d.rt.ResizeEnabled() {
		return fmt.Errorf("%w: resizing disabled", ErrInvalidResize)
	}
	if d.IsRehashing() {
		return fmt.Errorf("%w: rehashing in progress", ErrInvalidResize)
	}
	return d.expand(max(d.ht[0].used, initialSize))
}

// NeedsResize reports whether the table is larger than the initial size
// and less than 10% full, i.e. worth shrinking with Resize.
func (d *Dict[K, V]) NeedsResize() bool {
	size, used := d.ht[0].size, d.ht[0].used
	return size > initialSize && used*100/size < minFillPercent
}

func (d *Dict[K, V]) shrinkIfNeeded() {
	if !d.shrinkEnabled || d.iterators > 0 || d.IsRehashing() || !d.NeedsResize() {
		return
	}
	_ = d.Resize()
}
