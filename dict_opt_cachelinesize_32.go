//go:build dict_opt_cachelinesize_32

package dict

// CacheLineSize is fixed to 32 bytes by the dict_opt_cachelinesize_32 build tag.
const CacheLineSize = 32
