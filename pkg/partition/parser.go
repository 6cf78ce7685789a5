package partition

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"
)

const (
	// MinFields is the number of columns a partition row needs:
	// name, type, subtype, offset, size
	MinFields = 5

	// CommentPrefix marks a comment line
	CommentPrefix = "#"

	// DefaultPath is the table checked when no path is given
	DefaultPath = "partitions.csv"
)

// ParseFile parses the partition table at path.
//
// A missing file yields an error wrapping ErrFileNotFound. When the file can be
// read but contains no valid entry, the table is returned together with an
// error wrapping ErrNoPartitions so skipped lines can still be reported.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	table, err := ParseReader(f)
	if table != nil {
		table.Source = path
	}
	return table, err
}

// ParseReader parses partition rows from any io.Reader.
// Malformed rows are recorded in Table.LineErrors and skipped.
// Lines have no length limit.
func ParseReader(r io.Reader) (*Table, error) {
	table := &Table{}
	reader := bufio.NewReader(r)

	lineNum := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("failed to read partition table: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		lineNum++
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		entry, err := parseRow(line)
		if err != nil {
			table.LineErrors = append(table.LineErrors, newLineError(lineNum, line, err))
			continue
		}
		entry.Line = lineNum
		table.Entries = append(table.Entries, entry)
	}

	if len(table.Entries) == 0 {
		return table, ErrNoPartitions
	}

	return table, nil
}

// parseRow parses a single non-comment row
func parseRow(line string) (Entry, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if len(fields) < MinFields {
		return Entry{}, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewFields, len(fields), MinFields)
	}

	offset, err := ParseNumber(fields[3])
	if err != nil {
		return Entry{}, fmt.Errorf("offset: %w", err)
	}
	size, err := ParseNumber(fields[4])
	if err != nil {
		return Entry{}, fmt.Errorf("size: %w", err)
	}
	if size > math.MaxUint64-offset {
		return Entry{}, fmt.Errorf("%w: offset 0x%x, size 0x%x", ErrAddressOverflow, offset, size)
	}

	entry := Entry{
		Name:    fields[0],
		Type:    fields[1],
		SubType: fields[2],
		Offset:  offset,
		Size:    size,
	}
	if len(fields) > MinFields {
		entry.Flags = fields[MinFields]
	}
	return entry, nil
}
