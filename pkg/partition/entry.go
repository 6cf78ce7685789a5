package partition

import "fmt"

// Entry is a single row of a partition table
type Entry struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	SubType string `json:"subtype" yaml:"subtype"`
	Offset  uint64 `json:"offset" yaml:"offset"`
	Size    uint64 `json:"size" yaml:"size"`
	Flags   string `json:"flags,omitempty" yaml:"flags,omitempty"`

	// Line is the 1-based line number the entry was parsed from
	Line int `json:"line" yaml:"line"`
}

// End returns the first address past the partition.
// It saturates at math.MaxUint64 rather than wrapping.
func (e Entry) End() uint64 {
	return SaturatingAdd(e.Offset, e.Size)
}

// IsApp reports whether the entry is an application partition
func (e Entry) IsApp() bool {
	return e.Type == TypeApp
}

// String returns a short description of the entry
func (e Entry) String() string {
	return fmt.Sprintf("%s (0x%08x-0x%08x)", e.Name, e.Offset, e.End())
}

// Common type and subtype names
const (
	TypeApp = "app"

	SubTypeOTAPrefix = "ota"
	SubTypeSPIFFS    = "spiffs"
)

// Table is the result of parsing a partition table file
type Table struct {
	Source     string      `json:"source" yaml:"source"`
	Entries    []Entry     `json:"entries" yaml:"entries"`
	LineErrors []LineError `json:"line_errors,omitempty" yaml:"line_errors,omitempty"`
}

// TotalSize returns the sum of all entry sizes
func (t *Table) TotalSize() uint64 {
	var total uint64
	for _, e := range t.Entries {
		total = SaturatingAdd(total, e.Size)
	}
	return total
}
