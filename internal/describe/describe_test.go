package describe_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/binfold/histo/internal/describe"
)

func TestValues(t *testing.T) {
	s := describe.Values([]float64{4, 1, 3, 2, 5})
	if s.Count != 5 {
		t.Fatalf("Count = %d, want 5", s.Count)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Fatalf("Min/Max = %v/%v, want 1/5", s.Min, s.Max)
	}
	if s.Mean != 3 {
		t.Fatalf("Mean = %v, want 3", s.Mean)
	}
	// Sample stddev of 1..5 is sqrt(2.5).
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-12 {
		t.Fatalf("StdDev = %v, want %v", s.StdDev, math.Sqrt(2.5))
	}
	if s.Median != 3 {
		t.Fatalf("Median = %v, want 3", s.Median)
	}
	if s.Q1 > s.Median || s.Median > s.Q3 {
		t.Fatalf("quartiles out of order: q1=%v median=%v q3=%v", s.Q1, s.Median, s.Q3)
	}
}

func TestValuesEmpty(t *testing.T) {
	s := describe.Values(nil)
	if s.Count != 0 {
		t.Fatalf("Count = %d, want 0", s.Count)
	}
}

func TestValuesSingle(t *testing.T) {
	s := describe.Values([]float64{7.5})
	if s.Count != 1 || s.Min != 7.5 || s.Max != 7.5 || s.Mean != 7.5 {
		t.Fatalf("summary = %+v", s)
	}
	if s.StdDev != 0 {
		t.Fatalf("StdDev = %v, want 0 for a single observation", s.StdDev)
	}
}

func TestValuesDoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	describe.Values(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Fatalf("input reordered: %v", in)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := describe.Values([]float64{1, 2, 3}).Render(&buf, 2); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"count: 3", "min: 1.00", "max: 3.00", "mean: 2.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	var empty describe.Summary
	if err := empty.Render(&buf, 2); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "count: 0\n" {
		t.Fatalf("output = %q, want %q", got, "count: 0\n")
	}
}
