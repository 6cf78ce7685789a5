package analysis

import (
	"strings"

	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// OTAReport lists the application slots usable for over-the-air updates
type OTAReport struct {
	Slots      []partition.Entry `json:"slots" yaml:"slots"`
	Required   int               `json:"required" yaml:"required"`
	Sufficient bool              `json:"sufficient" yaml:"sufficient"`
}

// Count returns the number of OTA slots found
func (r OTAReport) Count() int {
	return len(r.Slots)
}

// CheckOTA collects app partitions whose subtype mentions "ota"
func CheckOTA(entries []partition.Entry, profile FlashProfile) OTAReport {
	report := OTAReport{Required: profile.MinOTASlots}
	for _, e := range entries {
		if e.IsApp() && strings.Contains(e.SubType, partition.SubTypeOTAPrefix) {
			report.Slots = append(report.Slots, e)
		}
	}
	report.Sufficient = len(report.Slots) >= profile.MinOTASlots
	return report
}
