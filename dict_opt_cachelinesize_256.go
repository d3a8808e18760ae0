//go:build dict_opt_cachelinesize_256

package dict

// CacheLineSize is fixed to 256 bytes by the dict_opt_cachelinesize_256 build tag.
const CacheLineSize = 256
