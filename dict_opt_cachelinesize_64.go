//go:build dict_opt_cachelinesize_64

package dict

// CacheLineSize is fixed to 64 bytes by the dict_opt_cachelinesize_64 build tag.
const CacheLineSize = 64
