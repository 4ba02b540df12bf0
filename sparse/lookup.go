package sparse

import (
	"github.com/geosparse/newt/section"
)

// BuildLookupTable computes the per-region (cumulative offset, count) pairs
// for the given region point lists, in region-index order.
//
// The table satisfies offset[i] == Σ count[j] for j < i, with offset[0] == 0.
// It is fully derived from the region entries and must be recomputed whenever
// they are rebuilt; the two are never stored inconsistently in memory.
func BuildLookupTable(regions [][]section.GridPoint) []section.LookupEntry {
	table := make([]section.LookupEntry, 0, len(regions))

	var runningTotal uint64
	for _, points := range regions {
		count := uint64(len(points))
		table = append(table, section.LookupEntry{Offset: runningTotal, Count: count})
		runningTotal += count
	}

	return table
}

// TotalPoints returns the number of points covered by the lookup table,
// i.e. the sum of all entry counts.
func TotalPoints(table []section.LookupEntry) uint64 {
	var total uint64
	for i := range table {
		total += table[i].Count
	}

	return total
}
