// Package expression compiles arithmetic expressions over column
// placeholders and evaluates them once per row.
//
// A placeholder is a `?` immediately followed by a 0-indexed column
// number, e.g. `?3 / (?0 + ?1)`. The supported grammar is whatever
// expr-lang accepts over float64 operands, which covers `+ - * / ^`
// (and `**`) with standard precedence and parentheses.
package expression

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var placeholderRe = regexp.MustCompile(`\?([0-9]+)`)

// Expr is a compiled expression and its column binding table. It is
// immutable after Compile and safe for concurrent Eval calls.
type Expr struct {
	source  string
	columns []int
	program *vm.Program
}

// Compile scans src for `?N` placeholders, rewrites each into a
// variable identifier, and compiles the result. The distinct referenced
// columns are recorded in order of first appearance. A syntax error or
// an expression with no placeholders is a setup error: there is nothing
// useful to evaluate per row.
func Compile(src string) (*Expr, error) {
	matches := placeholderRe.FindAllStringSubmatch(src, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("expression %q references no columns (use ?N, e.g. ?0)", src)
	}
	seen := make(map[int]bool)
	var columns []int
	for _, m := range matches {
		c, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("bad column reference %q: %w", m[0], err)
		}
		if !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}

	rewritten := placeholderRe.ReplaceAllString(src, "c$1")
	program, err := expr.Compile(rewritten)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", src, err)
	}
	return &Expr{source: src, columns: columns, program: program}, nil
}

// Columns returns the referenced column indices in order of first
// appearance in the expression text.
func (e *Expr) Columns() []int {
	return append([]int(nil), e.columns...)
}

// String returns the original expression text.
func (e *Expr) String() string { return e.source }

// Eval binds each referenced column to its value for one row and
// evaluates the compiled program. A column absent from values, or an
// evaluation that does not produce a finite number, is a per-row error.
func (e *Expr) Eval(values map[int]float64) (float64, error) {
	env := make(map[string]any, len(e.columns))
	for _, c := range e.columns {
		v, ok := values[c]
		if !ok {
			return 0, fmt.Errorf("no value bound for column %d in expression %q", c, e.source)
		}
		env["c"+strconv.Itoa(c)] = v
	}
	out, err := expr.Run(e.program, env)
	if err != nil {
		return 0, fmt.Errorf("evaluate expression %q: %w", e.source, err)
	}
	f, err := toFloat(out)
	if err != nil {
		return 0, fmt.Errorf("expression %q: %w", e.source, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expression %q produced non-finite value %v", e.source, f)
	}
	return f, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("result is %T, not a number", v)
	}
}
