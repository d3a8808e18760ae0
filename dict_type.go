package dict

import "bytes"

// Type is the capability set a dictionary uses to hash and compare keys
// and to manage key and value ownership. Each dictionary holds its own
// Type, so one process can mix copying, borrowing and reference-counted
// dictionaries without the container knowing which is which.
//
// KeyDup and ValDup are applied when a key or value is stored; KeyFree and
// ValFree when an entry is released by Delete, Empty or Release, or when
// Replace drops an old value.
type Type[K, V any] interface {
	Hash(key K, seed uint64) uint64
	KeyEqual(a, b K) bool
	KeyDup(key K) K
	KeyFree(key K)
	ValDup(val V) V
	ValFree(val V)
}

// TypeFuncs builds a Type from plain functions. Every field except
// HashFunc is optional:
//   - KeyEqualFunc: nil compares keys with ==, which panics for keys
//     whose dynamic type is not comparable
//   - KeyDupFunc, ValDupFunc: nil stores the argument as is
//   - KeyFreeFunc, ValFreeFunc: nil does nothing
type TypeFuncs[K, V any] struct {
	HashFunc     func(key K, seed uint64) uint64
	KeyEqualFunc func(a, b K) bool
	KeyDupFunc   func(key K) K
	KeyFreeFunc  func(key K)
	ValDupFunc   func(val V) V
	ValFreeFunc  func(val V)
}

// Hash calls HashFunc.
func (t *TypeFuncs[K, V]) Hash(key K, seed uint64) uint64 {
	return t.HashFunc(key, seed)
}

// KeyEqual calls KeyEqualFunc, or compares the keys with == if it is nil.
func (t *TypeFuncs[K, V]) KeyEqual(a, b K) bool {
	if t.KeyEqualFunc == nil {
		return any(a) == any(b)
	}
	return t.KeyEqualFunc(a, b)
}

// KeyDup calls KeyDupFunc, or returns key as is if it is nil.
func (t *TypeFuncs[K, V]) KeyDup(key K) K {
	if t.KeyDupFunc == nil {
		return key
	}
	return t.KeyDupFunc(key)
}

// KeyFree calls KeyFreeFunc if it is set.
func (t *TypeFuncs[K, V]) KeyFree(key K) {
	if t.KeyFreeFunc != nil {
		t.KeyFreeFunc(key)
	}
}

// ValDup calls ValDupFunc, or returns val as is if it is nil.
func (t *TypeFuncs[K, V]) ValDup(val V) V {
	if t.ValDupFunc == nil {
		return val
	}
	return t.ValDupFunc(val)
}

// ValFree calls ValFreeFunc if it is set.
func (t *TypeFuncs[K, V]) ValFree(val V) {
	if t.ValFreeFunc != nil {
		t.ValFreeFunc(val)
	}
}

// StringType returns a Type for string keys hashed with xxHash.
func StringType[V any]() *TypeFuncs[string, V] {
	return &TypeFuncs[string, V]{
		HashFunc: StringHash,
		KeyEqualFunc: func(a, b string) bool {
			return a == b
		},
	}
}

// CaseInsensitiveStringType returns a Type for string keys that compare
// equal regardless of ASCII letter case. Keys are hashed with GenCaseHash,
// whose 32-bit digest uses only the low 32 bits of the seed and leaves the
// high 32 bits of the hash zero: tables above 2^32 buckets do not spread
// these keys any further.
func CaseInsensitiveStringType[V any]() *TypeFuncs[string, V] {
	return &TypeFuncs[string, V]{
		HashFunc: func(key string, seed uint64) uint64 {
			return uint64(genCaseHash(key, uint32(seed)))
		},
		KeyEqualFunc: equalFoldASCII,
	}
}

// BytesType returns a Type for byte slice keys. Keys are copied on
// insertion, so callers may reuse their buffers.
func BytesType[V any]() *TypeFuncs[[]byte, V] {
	return &TypeFuncs[[]byte, V]{
		HashFunc:     BytesHash,
		KeyEqualFunc: bytes.Equal,
		KeyDupFunc:   bytes.Clone,
	}
}

// Int64Type returns a Type for int64 keys.
func Int64Type[V any]() *TypeFuncs[int64, V] {
	return &TypeFuncs[int64, V]{
		HashFunc: func(key int64, seed uint64) uint64 {
			return SeededIntHash(uint64(key), seed)
		},
		KeyEqualFunc: func(a, b int64) bool {
			return a == b
		},
	}
}

// Uint64Type returns a Type for uint64 keys.
func Uint64Type[V any]() *TypeFuncs[uint64, V] {
	return &TypeFuncs[uint64, V]{
		HashFunc: SeededIntHash,
		KeyEqualFunc: func(a, b uint64) bool {
			return a == b
		},
	}
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if toLower(a[i]) != toLower(b[i]) {
			return false
		}
	}
	return true
}
