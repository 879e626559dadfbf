// Package describe computes summary statistics over an extracted value
// set, the terminal step behind the stats subcommand.
package describe

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds basic order and moment statistics for one value set.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Q1     float64
	Median float64
	Q3     float64
}

// Values summarizes the given value set. An empty set yields a zero
// Summary. The input slice is not modified.
func Values(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := Summary{
		Count:  len(sorted),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Mean:   stat.Mean(sorted, nil),
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	// Sample standard deviation is undefined for a single observation.
	if s.Count > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// Render writes the summary one stat per line at the given precision.
func (s Summary) Render(w io.Writer, precision int) error {
	if s.Count == 0 {
		_, err := fmt.Fprintln(w, "count: 0")
		return err
	}
	_, err := fmt.Fprintf(w,
		"count: %d\nmin: %.*f\nmax: %.*f\nmean: %.*f\nstddev: %.*f\nq1: %.*f\nmedian: %.*f\nq3: %.*f\n",
		s.Count,
		precision, s.Min,
		precision, s.Max,
		precision, s.Mean,
		precision, s.StdDev,
		precision, s.Q1,
		precision, s.Median,
		precision, s.Q3,
	)
	return err
}
