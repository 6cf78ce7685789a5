package analysis

// Severity grades a diagnostic
type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Check names
const (
	CheckParse       = "parse"
	CheckSpace       = "space"
	CheckOTASlots    = "ota"
	CheckOverlap     = "overlap"
	CheckAppSize     = "app_size"
	CheckSPIFFSSize  = "spiffs_size"
	CheckUtilization = "utilization"
)

// Diagnostic is a single advisory finding
type Diagnostic struct {
	Check      string   `json:"check" yaml:"check"`
	Severity   Severity `json:"severity" yaml:"severity"`
	Message    string   `json:"message" yaml:"message"`
	Partitions []string `json:"partitions,omitempty" yaml:"partitions,omitempty"`
}
