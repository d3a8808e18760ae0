package dict

import (
	"fmt"
	"strings"
)

// statsVectLen is the number of chain length histogram slots; the last
// slot counts every chain of statsVectLen-1 entries or more.
const statsVectLen = 50

// TableStats describes the chain length distribution of one table.
type TableStats struct {
	// TableID is 0 for the main table and 1 for the rehash target.
	TableID int
	// Size is the number of buckets.
	Size uint64
	// Used is the number of entries.
	Used uint64
	// Slots is the number of non-empty buckets.
	Slots uint64
	// MaxChainLen is the length of the longest chain.
	MaxChainLen uint64
	// TotalChainLen is the sum of all chain lengths, counted by walking
	// the chains. It equals Used unless the table is corrupt.
	TotalChainLen uint64
	// ChainLenDistribution[i] is the number of buckets holding exactly i
	// entries; the last slot holds the buckets with statsVectLen-1 or more.
	ChainLenDistribution [statsVectLen]uint64
}

// DictStats is Dict statistics.
//
// Warning: dictionary statistics are intended to be used for diagnostic
// purposes, not for production code. Stats is an O(N) operation.
type DictStats struct {
	// Main describes the main table.
	Main TableStats
	// Rehashing describes the rehash target, nil when no rehash is in
	// progress.
	Rehashing *TableStats
	// RehashIndex is the next main table bucket to migrate, or -1.
	RehashIndex int64
	// SafeIterators is the number of safe iterators currently bound.
	SafeIterators int64
}

// Stats returns the chain length statistics of both live tables.
func (d *Dict[K, V]) Stats() *DictStats {
	stats := &DictStats{
		Main:          d.tableStats(0),
		RehashIndex:   d.rehashIdx,
		SafeIterators: d.iterators,
	}
	if d.IsRehashing() {
		ts := d.tableStats(1)
		stats.Rehashing = &ts
	}
	return stats
}

func (d *Dict[K, V]) tableStats(table int) TableStats {
	ht := &d.ht[table]
	ts := TableStats{
		TableID: table,
		Size:    ht.size,
		Used:    ht.used,
	}
	if ht.used == 0 {
		return ts
	}
	for _, e := range ht.buckets {
		if e == nil {
			ts.ChainLenDistribution[0]++
			continue
		}
		ts.Slots++
		var chainLen uint64
		for ; e != nil; e = e.next {
			chainLen++
		}
		ts.ChainLenDistribution[min(chainLen, statsVectLen-1)]++
		ts.MaxChainLen = max(ts.MaxChainLen, chainLen)
		ts.TotalChainLen += chainLen
	}
	return ts
}

// ToString returns the human readable statistics of the main table and,
// while rehashing, of the rehash target.
func (s *DictStats) ToString() string {
	var sb strings.Builder
	s.Main.writeTo(&sb)
	if s.Rehashing != nil {
		s.Rehashing.writeTo(&sb)
	}
	return sb.String()
}

// ToString returns the human readable statistics of one table.
func (ts *TableStats) ToString() string {
	var sb strings.Builder
	ts.writeTo(&sb)
	return sb.String()
}

func (ts *TableStats) writeTo(sb *strings.Builder) {
	if ts.Used == 0 {
		sb.WriteString("No stats available for empty dictionaries\n")
		return
	}
	name := "main hash table"
	if ts.TableID != 0 {
		name = "rehashing target"
	}
	sb.WriteString(fmt.Sprintf("Hash table %d stats (%s):\n", ts.TableID, name))
	sb.WriteString(fmt.Sprintf(" table size: %d\n", ts.Size))
	sb.WriteString(fmt.Sprintf(" number of elements: %d\n", ts.Used))
	sb.WriteString(fmt.Sprintf(" different slots: %d\n", ts.Slots))
	sb.WriteString(fmt.Sprintf(" max chain length: %d\n", ts.MaxChainLen))
	sb.WriteString(fmt.Sprintf(" avg chain length (counted): %.02f\n",
		float64(ts.TotalChainLen)/float64(ts.Slots)))
	sb.WriteString(fmt.Sprintf(" avg chain length (computed): %.02f\n",
		float64(ts.Used)/float64(ts.Slots)))
	sb.WriteString(" Chain length distribution:\n")
	for i, n := range ts.ChainLenDistribution {
		if n == 0 {
			continue
		}
		prefix := ""
		if i == statsVectLen-1 {
			prefix = ">= "
		}
		sb.WriteString(fmt.Sprintf("   %s%d: %d (%.02f%%)\n",
			prefix, i, n, float64(n)/float64(ts.Size)*100))
	}
}
