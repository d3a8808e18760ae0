package dict

import "math/bits"

// Scan visits the entries of one bucket position and returns the cursor
// for the next call. Start with cursor 0; a returned cursor of 0 means the
// cycle is complete. Caller state travels in the fn closure.
//
// Every entry present in the dictionary from the start to the end of a
// cycle is visited at least once, even if the table is resized between
// calls. Entries may be visited more than once, mostly around a resize.
// fn must not modify the dictionary.
//
// # How it works
//
// Tables are powers of two and an entry lives in bucket hash&mask, so the
// bucket is given by the low bits of the hash. Instead of incrementing the
// cursor normally, the cursor bits are reversed, incremented and reversed
// back: the high bits of the index are explored first.
//
// If the table grows from 16 to 64 buckets after bucket 1100 was visited,
// the keys of 1100 now live in ??1100, and the reversed increment will
// never produce a cursor ending in 1100 again, nor any other low 4-bit
// combination already explored. If the table shrinks from 16 to 8, a
// combination of the low three bits is only revisited when both 0xxx and
// 1xxx were not yet done, so nothing is skipped.
//
// While rehashing there are two tables. The smaller one is visited at the
// cursor, then every expansion of the cursor in the larger one: with a
// cursor of 101 and a larger table of 16 buckets, 0101 and 1101 are also
// visited. That reduces the problem back to a single table.
func (d *Dict[K, V]) Scan(cursor uint64, fn func(e *Entry[K, V])) uint64 {
	if d.Len() == 0 {
		return 0
	}

	v := cursor
	var m0 uint64
	if !d.IsRehashing() {
		t0 := &d.ht[0]
		m0 = t0.mask
		emitBucket(t0.buckets[v&m0], fn)
	} else {
		t0, t1 := &d.ht[0], &d.ht[1]
		// t0 is the smaller table, t1 the larger one.
		if t0.size > t1.size {
			t0, t1 = t1, t0
		}
		m0 = t0.mask
		m1 := t1.mask

		emitBucket(t0.buckets[v&m0], fn)

		// Visit the indices of the larger table that expand the index
		// the cursor points to in the smaller one.
		for {
			emitBucket(t1.buckets[v&m1], fn)

			// Increment the bits not covered by the smaller mask.
			v = (((v | m0) + 1) &^ m0) | (v & m0)

			// Continue while bits covered by the mask difference are non-zero.
			if v&(m0^m1) == 0 {
				break
			}
		}
	}

	// Set the unmasked bits so incrementing the reversed cursor operates
	// on the masked bits of the smaller table.
	v |= ^m0

	v = bits.Reverse64(v)
	v++
	v = bits.Reverse64(v)
	return v
}

func emitBucket[K, V any](e *Entry[K, V], fn func(e *Entry[K, V])) {
	for e != nil {
		next := e.next
		fn(e)
		e = next
	}
}
