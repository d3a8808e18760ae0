//go:build !dict_opt_cachelinesize_32 && !dict_opt_cachelinesize_64 && !dict_opt_cachelinesize_128 && !dict_opt_cachelinesize_256

package dict

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is used to pad the Dict header so that dictionaries
// allocated next to each other (one per database, one per aggregate key)
// do not share a cache line. Detected through `golang.org/x/sys/cpu`;
// override with the dict_opt_cachelinesize_* build tags.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
