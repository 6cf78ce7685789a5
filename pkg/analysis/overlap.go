package analysis

import (
	"sort"

	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// Overlap is a pair of offset-adjacent partitions that share flash
type Overlap struct {
	First  partition.Entry `json:"first" yaml:"first"`
	Second partition.Entry `json:"second" yaml:"second"`
}

// Bytes returns the size of the shared region
func (o Overlap) Bytes() uint64 {
	end := o.First.End()
	if o.Second.End() < end {
		end = o.Second.End()
	}
	return end - o.Second.Offset
}

// SortByOffset returns a copy of entries in ascending offset order.
// Entries with equal offsets keep their table order.
func SortByOffset(entries []partition.Entry) []partition.Entry {
	sorted := make([]partition.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// FindOverlaps reports every adjacent pair, in offset order, where the earlier
// partition ends past the start of the next one.
func FindOverlaps(entries []partition.Entry) []Overlap {
	sorted := SortByOffset(entries)

	var overlaps []Overlap
	for i := 0; i+1 < len(sorted); i++ {
		current, next := sorted[i], sorted[i+1]
		if current.End() > next.Offset {
			overlaps = append(overlaps, Overlap{First: current, Second: next})
		}
	}
	return overlaps
}
