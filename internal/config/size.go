package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

var sizeMultipliers = map[string]uint64{
	"B":   1,
	"K":   1024,
	"KB":  1024,
	"KIB": 1024,
	"M":   1024 * 1024,
	"MB":  1024 * 1024,
	"MIB": 1024 * 1024,
	"G":   1024 * 1024 * 1024,
	"GB":  1024 * 1024 * 1024,
	"GIB": 1024 * 1024 * 1024,
}

// ParseSize converts "16MB", "4 KB", "0x10000" or "65536" to bytes.
// Units are binary: 1KB is 1024 bytes.
func ParseSize(size string) (uint64, error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(size), " ", ""))
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	if strings.HasPrefix(s, "0X") {
		return partition.ParseNumber(s)
	}

	// Extract numeric part and unit
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	numPart, unit := s[:i], s[i:]

	if numPart == "" {
		return 0, fmt.Errorf("no numeric value found in %q", size)
	}
	if unit == "" {
		unit = "B"
	}

	multiplier, ok := sizeMultipliers[unit]
	if !ok {
		return 0, fmt.Errorf("invalid size unit: %s (valid: B, KB, MB, GB)", unit)
	}

	if !strings.Contains(numPart, ".") {
		value, err := strconv.ParseUint(numPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric value: %s", numPart)
		}
		if value > math.MaxUint64/multiplier {
			return 0, fmt.Errorf("size out of range: %s", size)
		}
		return value * multiplier, nil
	}

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value: %s", numPart)
	}
	total := value * float64(multiplier)
	if total >= math.MaxUint64 {
		return 0, fmt.Errorf("size out of range: %s", size)
	}
	return uint64(total), nil
}
