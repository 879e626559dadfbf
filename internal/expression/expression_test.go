package expression_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/binfold/histo/internal/expression"
)

func TestCompileColumns(t *testing.T) {
	e, err := expression.Compile("?3 / (?0 + ?3)")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// Distinct columns, ordered by first appearance.
	if got := e.Columns(); !reflect.DeepEqual(got, []int{3, 0}) {
		t.Fatalf("Columns() = %v, want [3 0]", got)
	}
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		expr   string
		values map[int]float64
		want   float64
	}{
		{"?0 + ?1", map[int]float64{0: 1, 1: 2}, 3},
		{"?0 - ?1", map[int]float64{0: 1, 1: 2}, -1},
		{"?0 * ?1", map[int]float64{0: 3, 1: 2.5}, 7.5},
		{"?0 / ?1", map[int]float64{0: 7, 1: 2}, 3.5},
		{"?0 + ?1 * ?2", map[int]float64{0: 1, 1: 2, 2: 3}, 7},
		{"(?0 + ?1) * ?2", map[int]float64{0: 1, 1: 2, 2: 3}, 9},
		{"?0 ^ 2", map[int]float64{0: 3}, 9},
		{"?0 * ?0", map[int]float64{0: 4}, 16},
	}
	for _, tc := range tests {
		e, err := expression.Compile(tc.expr)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.expr, err)
		}
		got, err := e.Eval(tc.values)
		if err != nil {
			t.Fatalf("eval %q: %v", tc.expr, err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%q = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestCompileSyntaxError(t *testing.T) {
	if _, err := expression.Compile("?0 + ("); err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestCompileNoPlaceholders(t *testing.T) {
	if _, err := expression.Compile("1 + 2"); err == nil {
		t.Fatal("expected error for expression without column references")
	}
}

func TestEvalMissingBinding(t *testing.T) {
	e, err := expression.Compile("?0 + ?5")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := e.Eval(map[int]float64{0: 1}); err == nil {
		t.Fatal("expected error for missing column binding")
	}
}

func TestEvalNonFinite(t *testing.T) {
	e, err := expression.Compile("?0 / ?1")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := e.Eval(map[int]float64{0: 1, 1: 0}); err == nil {
		t.Fatal("expected error for division by zero")
	}
}

func TestEvalIsRepeatable(t *testing.T) {
	e, err := expression.Compile("?1 - ?0")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := e.Eval(map[int]float64{0: 2, 1: 10})
		if err != nil {
			t.Fatalf("eval #%d: %v", i, err)
		}
		if got != 8 {
			t.Fatalf("eval #%d = %v, want 8", i, got)
		}
	}
}
