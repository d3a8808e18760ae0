package dict

import "math/rand/v2"

// RandomEntry returns a random entry, or nil if the dictionary is empty.
// The distribution is not uniform: entries in short chains are more
// likely to be picked than entries sharing a bucket.
func (d *Dict[K, V]) RandomEntry() *Entry[K, V] {
	if d.Len() == 0 {
		return nil
	}
	if d.IsRehashing() {
		d.rehashStep()
	}

	var e *Entry[K, V]
	if d.IsRehashing() {
		// Buckets 0 to rehashIdx-1 of the main table are already empty.
		s0 := d.ht[0].size
		span := s0 + d.ht[1].size - uint64(d.rehashIdx)
		for e == nil {
			h := uint64(d.rehashIdx) + rand.Uint64N(span)
			if h >= s0 {
				e = d.ht[1].buckets[h-s0]
			} else {
				e = d.ht[0].buckets[h]
			}
		}
	} else {
		m := d.ht[0].mask
		for e == nil {
			e = d.ht[0].buckets[rand.Uint64()&m]
		}
	}

	// A non-empty bucket was found; pick a random element of its chain.
	n := 0
	for x := e; x != nil; x = x.next {
		n++
	}
	for i := rand.IntN(n); i > 0; i-- {
		e = e.next
	}
	return e
}

// SomeEntries samples up to count entries from random locations. It is
// much faster than calling RandomEntry count times, but it makes no
// promise about the distribution: it returns runs of adjacent entries,
// may return fewer than count entries when too many empty buckets are
// met, and may return duplicates. Use it for sampling-based algorithms
// and statistics, not where fairness matters.
func (d *Dict[K, V]) SomeEntries(count int) []*Entry[K, V] {
	if size := d.Len(); size < count {
		count = size
	}
	if count <= 0 {
		return nil
	}
	maxSteps := count * 10

	// Do rehashing work proportional to count.
	for j := 0; j < count && d.IsRehashing(); j++ {
		d.rehashStep()
	}

	tables := 1
	maxMask := d.ht[0].mask
	if d.IsRehashing() {
		tables = 2
		maxMask = max(maxMask, d.ht[1].mask)
	}

	out := make([]*Entry[K, V], 0, count)
	i := rand.Uint64() & maxMask
	emptyLen := 0 // continuous empty buckets so far
	for ; len(out) < count && maxSteps > 0; maxSteps-- {
		for j := 0; j < tables; j++ {
			// Main table buckets below rehashIdx are empty during a rehash.
			if tables == 2 && j == 0 && i < uint64(d.rehashIdx) {
				if i < d.ht[1].size {
					continue
				}
				// Out of range for the rehash target as well (shrinking):
				// both tables are empty up to rehashIdx, jump there.
				i = uint64(d.rehashIdx)
			}
			ht := &d.ht[j]
			if i >= ht.size {
				continue
			}
			e := ht.buckets[i]
			if e == nil {
				// Jump elsewhere after a long run of empty buckets.
				emptyLen++
				if emptyLen >= 5 && emptyLen > count {
					i = rand.Uint64() & maxMask
					emptyLen = 0
				}
				continue
			}
			emptyLen = 0
			for ; e != nil; e = e.next {
				out = append(out, e)
				if len(out) == count {
					return out
				}
			}
		}
		i = (i + 1) & maxMask
	}
	return out
}
