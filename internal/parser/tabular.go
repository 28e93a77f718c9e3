// Package parser reads whitespace-delimited raw data files into string
// cell matrices. It deliberately knows nothing about comment markers:
// a field whose value is "#" is data like any other field, because
// several raw formats use the comment character as a legitimate label.
package parser

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseOptions controls how a raw text file is interpreted.
type ParseOptions struct {
	// SkipRows holds zero-indexed physical line numbers to discard
	// before parsing. Used to drop count headers and comment lines.
	SkipRows map[int]bool

	// HasLabelColumn extracts the last field of each row as the label;
	// the data matrix keeps everything before it. When false the
	// target vector is filled with "0" so downstream code always has
	// one label per row.
	HasLabelColumn bool
}

// SkipLines builds a SkipRows set from line numbers.
func SkipLines(lines ...int) map[int]bool {
	set := make(map[int]bool, len(lines))
	for _, n := range lines {
		set[n] = true
	}
	return set
}

// Table is the result of parsing one file: a rectangular cell matrix
// and a label vector of the same row count.
type Table struct {
	Data   [][]string
	Target []string
}

// Rows returns the number of parsed data rows.
func (t *Table) Rows() int {
	return len(t.Data)
}

// Columns returns the width of the data matrix, 0 for an empty table.
func (t *Table) Columns() int {
	if len(t.Data) == 0 {
		return 0
	}
	return len(t.Data[0])
}

// MalformedRowError reports a row whose field count differs from the
// first parsed row of the same file.
type MalformedRowError struct {
	Path string
	Line int // zero-indexed physical line number
	Got  int
	Want int
}

// Error implements the error interface.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row in %s at line %d: got %d fields, want %d", e.Path, e.Line, e.Got, e.Want)
}

// ParseSpaceDelimited reads a whitespace-delimited text file into a
// Table. Fields are split on runs of whitespace and kept verbatim as
// strings; no character is treated as a comment marker. Blank lines
// are skipped silently and never counted as data rows. The file is
// opened, read, and closed within this call.
//
// Returns *MalformedRowError when a row's width disagrees with the
// first parsed row.
func ParseSpaceDelimited(path string, opts ParseOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	table := &Table{
		Data:   make([][]string, 0),
		Target: make([]string, 0),
	}

	width := -1
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 0; scanner.Scan(); line++ {
		if opts.SkipRows[line] {
			continue
		}

		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Fields(text)
		if width == -1 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, &MalformedRowError{
				Path: path,
				Line: line,
				Got:  len(fields),
				Want: width,
			}
		}

		if opts.HasLabelColumn {
			table.Target = append(table.Target, fields[len(fields)-1])
			table.Data = append(table.Data, fields[:len(fields)-1])
		} else {
			table.Target = append(table.Target, "0")
			table.Data = append(table.Data, fields)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return table, nil
}
