package dict

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// IntHash is Thomas Wang's 32 bit mix function.
func IntHash(key uint32) uint32 {
	key += ^(key << 15)
	key ^= key >> 10
	key += key << 3
	key ^= key >> 6
	key += ^(key << 11)
	key ^= key >> 16
	return key
}

// IntHash64 is Thomas Wang's 64 bit integer hash. It is also the folding
// step of the dictionary fingerprint.
func IntHash64(key uint64) uint64 {
	key = (^key) + (key << 21) // key = (key << 21) - key - 1
	key ^= key >> 24
	key = (key + (key << 3)) + (key << 8) // key * 265
	key ^= key >> 14
	key = (key + (key << 2)) + (key << 4) // key * 21
	key ^= key >> 28
	key += key << 31
	return key
}

// SeededIntHash mixes an integer key with seed so that two processes with
// different seeds lay out the same keys differently.
func SeededIntHash(key, seed uint64) uint64 {
	return IntHash64(key ^ (seed * goldenRatio64))
}

// goldenRatio64 is the 64-bit Golden Ratio mixing constant.
const goldenRatio64 = 0x9E3779B97F4A7C15

// GenHash is MurmurHash2 by Austin Appleby over data, seeded with seed.
// Blocks are read little-endian so results do not depend on the host.
func GenHash(data []byte, seed uint32) uint32 {
	const (
		m = 0x5bd1e995
		r = 24
	)
	h := seed ^ uint32(len(data))

	for len(data) >= 4 {
		k := binary.LittleEndian.Uint32(data)
		k *= m
		k ^= k >> r
		k *= m

		h *= m
		h ^= k
		data = data[4:]
	}

	switch len(data) {
	case 3:
		h ^= uint32(data[2]) << 16
		fallthrough
	case 2:
		h ^= uint32(data[1]) << 8
		fallthrough
	case 1:
		h ^= uint32(data[0])
		h *= m
	}

	h ^= h >> 13
	h *= m
	h ^= h >> 15
	return h
}

// GenCaseHash is a case insensitive djb hash: data that differs only in
// ASCII letter case hashes to the same value.
func GenCaseHash(data []byte, seed uint32) uint32 {
	return genCaseHash(data, seed)
}

func genCaseHash[T string | []byte](data T, seed uint32) uint32 {
	h := seed
	for i := 0; i < len(data); i++ {
		h = (h << 5) + h + uint32(toLower(data[i])) // h * 33 + c
	}
	return h
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// StringHash returns the 64-bit xxHash digest of s seeded with seed.
func StringHash(s string, seed uint64) uint64 {
	if seed == 0 {
		return xxhash.Sum64String(s)
	}
	var d xxhash.Digest
	d.ResetWithSeed(seed)
	_, _ = d.WriteString(s)
	return d.Sum64()
}

// BytesHash returns the 64-bit xxHash digest of b seeded with seed.
func BytesHash(b []byte, seed uint64) uint64 {
	if seed == 0 {
		return xxhash.Sum64(b)
	}
	var d xxhash.Digest
	d.ResetWithSeed(seed)
	_, _ = d.Write(b)
	return d.Sum64()
}
