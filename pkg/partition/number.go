package partition

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size units
const (
	KiB uint64 = 1024
	MiB        = 1024 * KiB
)

// ParseNumber parses an offset or size field.
// Values prefixed with 0x (or 0X) are hexadecimal, anything else is decimal.
func ParseNumber(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidNumber)
	}

	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// SaturatingAdd returns a+b, clamped to math.MaxUint64 instead of wrapping
func SaturatingAdd(a, b uint64) uint64 {
	if b > math.MaxUint64-a {
		return math.MaxUint64
	}
	return a + b
}

// FormatSize renders a byte count as B, KB or MB with one decimal place
func FormatSize(size uint64) string {
	switch {
	case size >= MiB:
		return fmt.Sprintf("%.1fMB", float64(size)/float64(MiB))
	case size >= KiB:
		return fmt.Sprintf("%.1fKB", float64(size)/float64(KiB))
	default:
		return fmt.Sprintf("%dB", size)
	}
}

// FormatSigned is FormatSize for values that may be negative
func FormatSigned(size int64) string {
	if size < 0 {
		return "-" + FormatSize(uint64(-size))
	}
	return FormatSize(uint64(size))
}
