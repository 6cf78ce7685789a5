package analysis

import (
	"fmt"

	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// Advise produces sizing recommendations. The results are informational and
// never change the outcome of a run.
func Advise(entries []partition.Entry, space SpaceReport, ota OTAReport, profile FlashProfile) []Diagnostic {
	var advice []Diagnostic

	if ota.Sufficient && len(ota.Slots) > 0 {
		advice = append(advice, adviseAppSize(ota.Slots[0], profile))
	}

	for _, e := range entries {
		if e.SubType == partition.SubTypeSPIFFS {
			advice = append(advice, adviseSPIFFSSize(e, profile))
			break
		}
	}

	advice = append(advice, adviseUtilization(space, profile))
	return advice
}

func adviseAppSize(slot partition.Entry, profile FlashProfile) Diagnostic {
	d := Diagnostic{Check: CheckAppSize, Partitions: []string{slot.Name}}
	switch {
	case slot.Size >= profile.AppAmpleSize:
		d.Severity = SeverityOK
		d.Message = fmt.Sprintf("APP partition size is ample (>=%s)", partition.FormatSize(profile.AppAmpleSize))
	case slot.Size >= profile.AppModerateSize:
		d.Severity = SeverityWarning
		d.Message = fmt.Sprintf("APP partition size is moderate (%s-%s)",
			partition.FormatSize(profile.AppModerateSize), partition.FormatSize(profile.AppAmpleSize))
	default:
		d.Severity = SeverityError
		d.Message = fmt.Sprintf("APP partition may be too small (<%s)", partition.FormatSize(profile.AppModerateSize))
	}
	return d
}

func adviseSPIFFSSize(e partition.Entry, profile FlashProfile) Diagnostic {
	d := Diagnostic{Check: CheckSPIFFSSize, Partitions: []string{e.Name}}
	if e.Size >= profile.SPIFFSAmpleSize {
		d.Severity = SeverityOK
		d.Message = fmt.Sprintf("SPIFFS space is ample (>=%s)", partition.FormatSize(profile.SPIFFSAmpleSize))
	} else {
		d.Severity = SeverityWarning
		d.Message = fmt.Sprintf("SPIFFS space is small (<%s)", partition.FormatSize(profile.SPIFFSAmpleSize))
	}
	return d
}

// UtilizationTier names the band a utilization percentage falls in
type UtilizationTier string

const (
	TierHigh UtilizationTier = "high"
	TierGood UtilizationTier = "good"
	TierLow  UtilizationTier = "low"
)

// Tier classifies a utilization percentage against the profile thresholds
func (p FlashProfile) Tier(utilization float64) UtilizationTier {
	switch {
	case utilization >= p.HighUtilization:
		return TierHigh
	case utilization >= p.GoodUtilization:
		return TierGood
	default:
		return TierLow
	}
}

func adviseUtilization(space SpaceReport, profile FlashProfile) Diagnostic {
	d := Diagnostic{Check: CheckUtilization}
	switch profile.Tier(space.Utilization) {
	case TierHigh:
		d.Severity = SeverityOK
		d.Message = fmt.Sprintf("Flash utilization is very high (>=%.0f%%)", profile.HighUtilization)
	case TierGood:
		d.Severity = SeverityOK
		d.Message = fmt.Sprintf("Flash utilization is good (>=%.0f%%)", profile.GoodUtilization)
	default:
		d.Severity = SeverityWarning
		d.Message = "Flash utilization is low, the layout can be optimized further"
	}
	return d
}
