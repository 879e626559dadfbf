// Package column extracts typed numeric values from delimited rows of text.
//
// Columns are 0-indexed: the first field of a row is column 0. Rows are
// split on a literal delimiter string with no quoting or escaping, so a
// delimiter occurring inside a field is indistinguishable from a field
// separator.
package column

import (
	"fmt"
	"strconv"
	"strings"
)

// Float constrains the numeric types a Parser can produce.
type Float interface {
	float32 | float64
}

// MissingColumnError reports a requested column index past the end of a row.
type MissingColumnError struct {
	Row    string
	Column int
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %d out of bounds in row %q", e.Column, e.Row)
}

// ParseError reports a field that could not be parsed as the target type.
type ParseError struct {
	Token string
	Type  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from %q: %v", e.Type, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser extracts one or more columns from delimited rows. It holds no
// mutable state after construction and is safe to share across
// concurrent readers.
type Parser[T Float] struct {
	columns []int
	delim   string
}

// New returns a Parser for the given 0-indexed columns.
func New[T Float](columns []int, delim string) (*Parser[T], error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns requested")
	}
	if delim == "" {
		return nil, fmt.Errorf("empty delimiter")
	}
	for _, c := range columns {
		if c < 0 {
			return nil, fmt.Errorf("negative column index %d (first column is 0)", c)
		}
	}
	return &Parser[T]{columns: append([]int(nil), columns...), delim: delim}, nil
}

// Single returns a Parser for one column.
func Single[T Float](col int, delim string) (*Parser[T], error) {
	return New[T]([]int{col}, delim)
}

// Columns returns the requested column indices in construction order.
func (p *Parser[T]) Columns() []int {
	return append([]int(nil), p.columns...)
}

// ParseRow splits row on the delimiter and parses every requested
// column. The result maps column index to value; map iteration order is
// unspecified, so callers that care about column order must look values
// up by index. A missing column yields a *MissingColumnError, an
// unparsable field a *ParseError. Either is a verdict on this row only,
// never on the stream.
func (p *Parser[T]) ParseRow(row string) (map[int]T, error) {
	fields := strings.Split(row, p.delim)
	out := make(map[int]T, len(p.columns))
	for _, c := range p.columns {
		if c >= len(fields) {
			return nil, &MissingColumnError{Row: row, Column: c}
		}
		v, err := parse[T](fields[c])
		if err != nil {
			return nil, err
		}
		out[c] = v
	}
	return out, nil
}

// Value is the lenient single-column form of ParseRow: a missing column
// reports ok=false with no error, so streaming callers can skip short
// rows without inspecting error types. A field that is present but
// unparsable still returns the *ParseError. Value requires a
// single-column Parser.
func (p *Parser[T]) Value(row string) (v T, ok bool, err error) {
	if len(p.columns) != 1 {
		return v, false, fmt.Errorf("Value requires a single-column parser, have %d columns", len(p.columns))
	}
	fields := strings.Split(row, p.delim)
	c := p.columns[0]
	if c >= len(fields) {
		return v, false, nil
	}
	v, err = parse[T](fields[c])
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

func parse[T Float](token string) (T, error) {
	bitSize := 64
	name := "float64"
	if _, ok := any(T(0)).(float32); ok {
		bitSize = 32
		name = "float32"
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(token), bitSize)
	if err != nil {
		return 0, &ParseError{Token: token, Type: name, Err: err}
	}
	return T(f), nil
}
