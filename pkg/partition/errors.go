package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the partition table file does not exist
	ErrFileNotFound = errors.New("partition table file not found")

	// ErrNoPartitions is returned when no valid entry could be parsed
	ErrNoPartitions = errors.New("no valid partition entries found")

	// ErrTooFewFields is the cause recorded for rows with fewer than MinFields columns
	ErrTooFewFields = errors.New("too few fields")

	// ErrInvalidNumber is the cause recorded for unparseable offsets and sizes
	ErrInvalidNumber = errors.New("invalid number")

	// ErrAddressOverflow is the cause recorded for rows whose offset+size
	// does not fit in 64 bits
	ErrAddressOverflow = errors.New("partition end address overflows")
)

// LineError describes a line that was skipped during parsing
type LineError struct {
	Line   int    `json:"line" yaml:"line"`
	Text   string `json:"text" yaml:"text"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

func newLineError(line int, text string, err error) LineError {
	return LineError{
		Line:   line,
		Text:   text,
		Reason: err.Error(),
		Err:    err,
	}
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e LineError) Unwrap() error {
	return e.Err
}
