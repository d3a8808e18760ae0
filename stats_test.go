package dict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Empty(t *testing.T) {
	d := New(StringType[int]())
	stats := d.Stats()
	require.Nil(t, stats.Rehashing)
	require.EqualValues(t, -1, stats.RehashIndex)
	require.Equal(t, "No stats available for empty dictionaries\n", stats.ToString())
}

func TestStats_Counts(t *testing.T) {
	d := New(StringType[int]())
	for i, k := range testDataLarge[:10000] {
		require.NoError(t, d.Add(k, i))
	}
	finishRehash(d)

	stats := d.Stats()
	require.Nil(t, stats.Rehashing)
	main := stats.Main
	assert.Equal(t, 0, main.TableID)
	assert.EqualValues(t, d.Len(), main.Used)
	assert.EqualValues(t, d.Slots(), main.Size)
	assert.Equal(t, main.Used, main.TotalChainLen)
	assert.Equal(t, main.Size-main.ChainLenDistribution[0], main.Slots)
	assert.GreaterOrEqual(t, main.MaxChainLen, uint64(1))

	var buckets, entries uint64
	for i, n := range main.ChainLenDistribution {
		buckets += n
		entries += uint64(i) * n
	}
	assert.Equal(t, main.Size, buckets)
	assert.Equal(t, main.Used, entries)

	s := stats.ToString()
	t.Log(s)
	assert.True(t, strings.HasPrefix(s, "Hash table 0 stats (main hash table):\n"))
	assert.Contains(t, s, " table size: 16384\n")
	assert.Contains(t, s, " number of elements: 10000\n")
	assert.Contains(t, s, " Chain length distribution:\n")
	assert.Contains(t, s, "   0: ")
	assert.Equal(t, s, main.ToString())
}

func TestStats_Rehashing(t *testing.T) {
	d := New(Int64Type[int]())
	for i := int64(0); i < 1000; i++ {
		require.NoError(t, d.Add(i, 0))
	}
	finishRehash(d)
	require.NoError(t, d.Expand(4096))
	d.Rehash(100)

	stats := d.Stats()
	require.NotNil(t, stats.Rehashing)
	require.Equal(t, 1, stats.Rehashing.TableID)
	require.Equal(t, d.rehashIdx, stats.RehashIndex)
	require.EqualValues(t, 1000, stats.Main.Used+stats.Rehashing.Used)
	require.EqualValues(t, 4096, stats.Rehashing.Size)

	s := stats.ToString()
	require.Contains(t, s, "Hash table 0 stats (main hash table):\n")
	require.Contains(t, s, "Hash table 1 stats (rehashing target):\n")
}

func TestStats_LongChainsInLastSlot(t *testing.T) {
	// Every key hashes to the same bucket.
	d := New[int, int](&TypeFuncs[int, int]{
		HashFunc: func(int, uint64) uint64 { return 0 },
	}, WithRuntime(NewRuntime(0)))
	d.rt.DisableResize()
	require.NoError(t, d.Expand(4))
	for i := 0; i < 20; i++ {
		require.NoError(t, d.Add(i, i))
	}
	require.False(t, d.IsRehashing())

	stats := d.Stats().Main
	require.EqualValues(t, 20, stats.MaxChainLen)
	require.EqualValues(t, 1, stats.Slots)
	require.EqualValues(t, 1, stats.ChainLenDistribution[20])
	require.EqualValues(t, 3, stats.ChainLenDistribution[0])

	for i := 20; i < 80; i++ {
		require.NoError(t, d.Add(i, i))
		finishRehash(d)
	}
	stats = d.Stats().Main
	require.EqualValues(t, 80, stats.MaxChainLen)
	require.EqualValues(t, 1, stats.ChainLenDistribution[statsVectLen-1])
	require.Contains(t, stats.ToString(), "   >= 49: 1 (")
}
