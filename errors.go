package dict

import "errors"

var (
	// ErrDuplicateKey is returned by Add and AddRaw when the key is already
	// present in one of the live tables.
	ErrDuplicateKey = errors.New("dict: key already exists")
	// ErrKeyNotFound is returned by lookups and deletes that miss.
	ErrKeyNotFound = errors.New("dict: key not found")
	// ErrInvalidResize is returned by Expand and Resize when the request
	// cannot be honored: a rehash is already in progress, the size is
	// below the number of stored entries, the size would not change, or
	// resizing is disabled.
	ErrInvalidResize = errors.New("dict: invalid resize")
	// ErrAllocationFailure is returned when a table would exceed the
	// configured slot limit. The dictionary is left unchanged.
	ErrAllocationFailure = errors.New("dict: allocation failure")
)
