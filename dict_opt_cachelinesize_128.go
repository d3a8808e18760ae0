//go:build dict_opt_cachelinesize_128

package dict

// CacheLineSize is fixed to 128 bytes by the dict_opt_cachelinesize_128 build tag.
const CacheLineSize = 128
