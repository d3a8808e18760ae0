package dict

import (
	"testing"
)

func BenchmarkDictFindSmall(b *testing.B) {
	benchmarkDictFind(b, testDataSmall[:])
}

func BenchmarkDictFind(b *testing.B) {
	benchmarkDictFind(b, testData[:])
}

func BenchmarkDictFindLarge(b *testing.B) {
	benchmarkDictFind(b, testDataLarge[:])
}

func benchmarkDictFind(b *testing.B, data []string) {
	b.ReportAllocs()
	d := New(StringType[int]())
	for i := range data {
		_ = d.Add(data[i], i)
	}
	for d.Rehash(100) {
	}
	b.ResetTimer()
	i := 0
	for n := 0; n < b.N; n++ {
		_ = d.Find(data[i])
		i++
		if i >= len(data) {
			i = 0
		}
	}
}

func BenchmarkDictReplace(b *testing.B) {
	benchmarkDictReplace(b, testData[:])
}

func BenchmarkDictReplaceLarge(b *testing.B) {
	benchmarkDictReplace(b, testDataLarge[:])
}

func benchmarkDictReplace(b *testing.B, data []string) {
	b.ReportAllocs()
	d := New(StringType[int]())
	b.ResetTimer()
	i := 0
	for n := 0; n < b.N; n++ {
		_, _ = d.Replace(data[i], n)
		i++
		if i >= len(data) {
			i = 0
		}
	}
}

func BenchmarkDictAddDelete(b *testing.B) {
	b.ReportAllocs()
	d := New(Int64Type[int]())
	for i := int64(0); i < 1024; i++ {
		_ = d.Add(i, 0)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		k := int64(1024 + n%1024)
		_ = d.Add(k, n)
		_ = d.Delete(k)
	}
}

func BenchmarkDictScan(b *testing.B) {
	b.ReportAllocs()
	d := New(StringType[int]())
	for i := range testDataLarge {
		_ = d.Add(testDataLarge[i], i)
	}
	b.ResetTimer()
	var cursor uint64
	visited := 0
	for n := 0; n < b.N; n++ {
		cursor = d.Scan(cursor, func(*Entry[string, int]) {
			visited++
		})
	}
	_ = visited
}

func BenchmarkDictRange(b *testing.B) {
	b.ReportAllocs()
	d := New(StringType[int]())
	for i := range testData {
		_ = d.Add(testData[i], i)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		d.Range(func(string, int) bool {
			return true
		})
	}
}

func BenchmarkDictRandomEntry(b *testing.B) {
	b.ReportAllocs()
	d := New(StringType[int]())
	for i := range testDataLarge {
		_ = d.Add(testDataLarge[i], i)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_ = d.RandomEntry()
	}
}

func BenchmarkDictRehash(b *testing.B) {
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		d := New(Int64Type[int]())
		for i := int64(0); i < 1<<14; i++ {
			_ = d.Add(i, 0)
		}
		for d.Rehash(100) {
		}
		_ = d.Expand(1 << 16)
		b.StartTimer()
		for d.Rehash(100) {
		}
	}
}
