package analysis

import (
	"math"

	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// SpaceReport summarizes flash usage
type SpaceReport struct {
	Total       uint64  `json:"total" yaml:"total"`
	Reserved    uint64  `json:"reserved" yaml:"reserved"`
	Available   uint64  `json:"available" yaml:"available"`
	Used        uint64  `json:"used" yaml:"used"`
	Remaining   int64   `json:"remaining" yaml:"remaining"`
	Utilization float64 `json:"utilization" yaml:"utilization"`
}

// AnalyzeSpace sums entry sizes against the profile's usable flash.
// Remaining goes negative when the table asks for more than is available.
// Used saturates at math.MaxUint64 and Remaining is clamped to the int64 range.
func AnalyzeSpace(entries []partition.Entry, profile FlashProfile) SpaceReport {
	var used uint64
	for _, e := range entries {
		used = partition.SaturatingAdd(used, e.Size)
	}

	available := profile.Available()
	report := SpaceReport{
		Total:     profile.FlashSize,
		Reserved:  profile.ReservedSize,
		Available: available,
		Used:      used,
		Remaining: remaining(available, used),
	}
	if available > 0 {
		report.Utilization = float64(used) * 100 / float64(available)
	}
	return report
}

func remaining(available, used uint64) int64 {
	if used > available {
		over := used - available
		if over > math.MaxInt64 {
			return math.MinInt64
		}
		return -int64(over)
	}
	left := available - used
	if left > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(left)
}
