package check

import (
	"time"

	"github.com/deploymenttheory/go-partcheck/pkg/analysis"
	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// Request represents a partition table check request
type Request struct {
	Path string
}

// Response represents the outcome of a check run
type Response struct {
	ReportID   string                `json:"report_id" yaml:"report_id"`
	Source     string                `json:"source" yaml:"source"`
	CheckedAt  time.Time             `json:"checked_at" yaml:"checked_at"`
	Duration   time.Duration         `json:"duration" yaml:"duration"`
	Profile    analysis.FlashProfile `json:"profile" yaml:"profile"`
	Entries    []partition.Entry     `json:"entries" yaml:"entries"`
	LineErrors []partition.LineError `json:"line_errors,omitempty" yaml:"line_errors,omitempty"`
	Result     *analysis.Result      `json:"result,omitempty" yaml:"result,omitempty"`
}

// Valid reports whether at least one partition was parsed
func (r *Response) Valid() bool {
	return len(r.Entries) > 0
}
