package dict

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntHash(t *testing.T) {
	seen := make(map[uint32]uint32)
	for i := uint32(0); i < 10000; i++ {
		h := IntHash(i)
		require.Equal(t, h, IntHash(i))
		if prev, ok := seen[h]; ok {
			t.Fatalf("IntHash(%d) == IntHash(%d)", i, prev)
		}
		seen[h] = i
	}
}

func TestIntHash64(t *testing.T) {
	seen := make(map[uint64]uint64)
	for i := uint64(0); i < 10000; i++ {
		h := IntHash64(i)
		require.Equal(t, h, IntHash64(i))
		if prev, ok := seen[h]; ok {
			t.Fatalf("IntHash64(%d) == IntHash64(%d)", i, prev)
		}
		seen[h] = i
	}
}

func TestSeededIntHash(t *testing.T) {
	assert.Equal(t, IntHash64(42), SeededIntHash(42, 0))
	assert.NotEqual(t, SeededIntHash(42, 1), SeededIntHash(42, 2))
	assert.Equal(t, SeededIntHash(42, 7), SeededIntHash(42, 7))
}

func TestSeededIntHash_Distribution(t *testing.T) {
	const buckets = 1024
	var counts [buckets]int
	for i := uint64(0); i < 10*buckets; i++ {
		counts[SeededIntHash(i, defaultHashSeed)&(buckets-1)]++
	}
	longest := 0
	for _, n := range counts {
		longest = max(longest, n)
	}
	t.Logf("longest chain: %d", longest)
	require.Less(t, longest, 64)
}

func TestGenHash(t *testing.T) {
	require.Zero(t, GenHash(nil, 0))

	// Exercise every tail length.
	seen := make(map[uint32]string)
	for n := 0; n <= 9; n++ {
		data := []byte("abcdefghij"[:n])
		h := GenHash(data, 5381)
		require.Equal(t, h, GenHash(data, 5381))
		if prev, ok := seen[h]; ok {
			t.Fatalf("GenHash(%q) == GenHash(%q)", data, prev)
		}
		seen[h] = string(data)
	}

	require.NotEqual(t, GenHash([]byte("key"), 1), GenHash([]byte("key"), 2))
	require.NotEqual(t, GenHash([]byte("key"), 1), GenHash([]byte("kez"), 1))
}

func TestGenCaseHash(t *testing.T) {
	require.Equal(t, uint32(5381), GenCaseHash(nil, 5381))
	require.Equal(t, uint32('a'), GenCaseHash([]byte("a"), 0))
	require.Equal(t, GenCaseHash([]byte("Hello World"), 5381), GenCaseHash([]byte("hELLO wORLD"), 5381))
	require.NotEqual(t, GenCaseHash([]byte("hello"), 5381), GenCaseHash([]byte("hellp"), 5381))
	require.Equal(t, GenCaseHash([]byte("MiXeD"), 9), genCaseHash("mixed", 9))

	typ := CaseInsensitiveStringType[int]()
	require.Equal(t, uint64(GenCaseHash([]byte("Key"), 7)), typ.Hash("kEY", 7))
	require.Zero(t, typ.Hash("some key", 1<<40|7)>>32, "32-bit digest")
}

func TestStringHash(t *testing.T) {
	for i, s := range testData {
		require.Equal(t, xxhash.Sum64String(s), StringHash(s, 0))
		require.Equal(t, StringHash(s, uint64(i)), BytesHash([]byte(s), uint64(i)))
	}
	require.NotEqual(t, StringHash("key", 1), StringHash("key", 2))
	require.Equal(t, StringHash("key", 3), StringHash("key", 3))
}

func TestEqualFoldASCII(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"", "", true},
		{"abc", "ABC", true},
		{"aBc", "AbC", true},
		{"abc", "abd", false},
		{"abc", "ab", false},
		{"[", "{", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.a, tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, equalFoldASCII(tt.a, tt.b))
		})
	}
}
