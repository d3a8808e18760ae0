/*
Package dict provides the in-memory hash table at the core of a
single-threaded key-value database.

Dict is a chained hash table whose size is always a power of two. When it
fills up it does not stop to rehash everything at once: a second table is
allocated and buckets migrate a few at a time, one step per lookup or
update, or in time-boxed batches driven by a maintenance loop through
RehashFor. No call ever pays for an unbounded amount of work.

Basic usage:

	d := dict.New(dict.StringType[int]())
	if err := d.Add("answer", 42); err != nil {
		// dict.ErrDuplicateKey
	}
	v, err := d.Fetch("answer")

	// background maintenance, e.g. from a 100ms timer
	if d.IsRehashing() {
		d.RehashMilliseconds(1)
	}

Ownership of keys and values is delegated to a Type, a capability set
of hash, comparison, duplicate and free functions. A Type that copies keys
(BytesType), borrows them (StringType) or maintains reference counts
through its ValDup/ValFree pair can be chosen per dictionary.

Traversal comes in three forms:

  - SafeIterator: rehash steps are suspended while it is bound, and the
    caller may modify the dictionary, including deleting the current entry.
  - Iterator: lighter, but the dictionary must not be touched until Release,
    which panics on a detected modification.
  - Scan: a stateless cursor that survives resizes between calls and visits
    every entry present for the whole cycle at least once.

Resizing can be disabled process wide (DisableResize), for example while a
forked child is writing a snapshot and pages should not be dirtied. Tables
still grow once they hold more than five entries per bucket.

Dictionaries are not safe for concurrent use.
*/
package dict
