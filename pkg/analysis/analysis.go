package analysis

import (
	"fmt"

	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// Result bundles every check run over one table
type Result struct {
	Space       SpaceReport  `json:"space" yaml:"space"`
	OTA         OTAReport    `json:"ota" yaml:"ota"`
	Overlaps    []Overlap    `json:"overlaps" yaml:"overlaps"`
	Advice      []Diagnostic `json:"advice" yaml:"advice"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// Run performs the space, OTA, overlap and sizing checks
func Run(table *partition.Table, profile FlashProfile) *Result {
	entries := table.Entries

	space := AnalyzeSpace(entries, profile)
	ota := CheckOTA(entries, profile)
	overlaps := FindOverlaps(entries)
	advice := Advise(entries, space, ota, profile)

	result := &Result{
		Space:    space,
		OTA:      ota,
		Overlaps: overlaps,
		Advice:   advice,
	}

	for _, le := range table.LineErrors {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Check:    CheckParse,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("line %d parse error: %s", le.Line, le.Reason),
		})
	}
	result.Diagnostics = append(result.Diagnostics, spaceDiagnostic(space))
	result.Diagnostics = append(result.Diagnostics, otaDiagnostic(ota))
	result.Diagnostics = append(result.Diagnostics, overlapDiagnostics(overlaps)...)
	result.Diagnostics = append(result.Diagnostics, advice...)

	return result
}

// Counts returns the number of diagnostics per severity
func (r *Result) Counts() map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range r.Diagnostics {
		counts[d.Severity]++
	}
	return counts
}

func spaceDiagnostic(space SpaceReport) Diagnostic {
	if space.Remaining < 0 {
		return Diagnostic{
			Check:    CheckSpace,
			Severity: SeverityError,
			Message:  fmt.Sprintf("partitions exceed available flash by %s", partition.FormatSize(uint64(-space.Remaining))),
		}
	}
	return Diagnostic{
		Check:    CheckSpace,
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("%s of %s used (%.1f%%)", partition.FormatSize(space.Used), partition.FormatSize(space.Available), space.Utilization),
	}
}

func otaDiagnostic(ota OTAReport) Diagnostic {
	d := Diagnostic{Check: CheckOTASlots}
	for _, slot := range ota.Slots {
		d.Partitions = append(d.Partitions, slot.Name)
	}
	if ota.Sufficient {
		d.Severity = SeverityOK
		d.Message = fmt.Sprintf("OTA partitions configured correctly (%d slots)", ota.Count())
	} else {
		d.Severity = SeverityError
		d.Message = fmt.Sprintf("insufficient OTA partitions (need at least %d app partitions, found %d)", ota.Required, ota.Count())
	}
	return d
}

func overlapDiagnostics(overlaps []Overlap) []Diagnostic {
	if len(overlaps) == 0 {
		return []Diagnostic{{Check: CheckOverlap, Severity: SeverityOK, Message: "no partition overlaps"}}
	}
	diags := make([]Diagnostic, 0, len(overlaps))
	for _, o := range overlaps {
		diags = append(diags, Diagnostic{
			Check:      CheckOverlap,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("overlap detected: %s and %s", o.First.Name, o.Second.Name),
			Partitions: []string{o.First.Name, o.Second.Name},
		})
	}
	return diags
}
