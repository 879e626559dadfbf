// Package pipeline drives rows from an input stream through column
// extraction (or expression evaluation) into a rendered histogram.
package pipeline

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/binfold/histo/internal/column"
	"github.com/binfold/histo/internal/expression"
	"github.com/binfold/histo/internal/histogram"
)

// Options configures one histogram run. Exactly one of Column or Expr
// must be set.
type Options struct {
	// Column is the single 0-indexed column to read, or nil when Expr
	// drives value computation.
	Column *int
	// Expr is an arithmetic expression over ?N column placeholders.
	Expr string
	// Delim separates fields within a row.
	Delim string
	// NumBins is the number of equal-width bins; must be >= 1.
	NumBins int
	// SkipHeader drops the first input line before parsing.
	SkipHeader bool
	// Strict aborts the run on the first per-row error. The default is
	// lenient: bad rows are skipped and counted in the Report.
	Strict bool
	// Precision is the number of decimal places for rendered labels and
	// counts.
	Precision int
	// Header emits a bin_label<delim>bin_value line before the bins.
	Header bool
}

// Report summarizes a completed run.
type Report struct {
	RunID   string
	Rows    int
	Values  int
	Skipped int
	Bins    int
}

// validateExtract checks the fields Collect uses; binning and
// rendering fields are validated by Run, so extraction-only callers
// need not supply them.
func (o Options) validateExtract() error {
	if o.Column == nil && o.Expr == "" {
		return fmt.Errorf("either a column or an expression is required")
	}
	if o.Column != nil && o.Expr != "" {
		return fmt.Errorf("column and expression are mutually exclusive")
	}
	if o.Column != nil && *o.Column < 0 {
		return fmt.Errorf("negative column index %d (first column is 0)", *o.Column)
	}
	if o.Delim == "" {
		return fmt.Errorf("empty delimiter")
	}
	return nil
}

func (o Options) validate() error {
	if err := o.validateExtract(); err != nil {
		return err
	}
	if o.NumBins < 1 {
		return fmt.Errorf("num_bins must be >= 1, got %d", o.NumBins)
	}
	if o.Precision < 0 {
		return fmt.Errorf("negative precision %d", o.Precision)
	}
	return nil
}

// Run streams rows from r, accumulates values per opts, and writes the
// rendered histogram to w. Setup errors fail before any row is read;
// per-row errors follow the strict/lenient policy.
func Run(r io.Reader, w io.Writer, opts Options) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	values, rep, err := Collect(r, opts)
	if err != nil {
		return nil, err
	}

	h := histogram.FromValues(values, opts.NumBins)
	rep.Bins = len(h)
	if err := render(w, h, opts); err != nil {
		return nil, err
	}
	if rep.Skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"run_id":  rep.RunID,
			"rows":    rep.Rows,
			"skipped": rep.Skipped,
		}).Debug("run completed with skipped rows")
	}
	return rep, nil
}

// Collect reads every row from r and returns the extracted value set
// along with a partially filled Report (Bins is set by Run). It is
// exposed so callers that want a different terminal step, like summary
// statistics, can share the extraction path.
func Collect(r io.Reader, opts Options) ([]float64, *Report, error) {
	if err := opts.validateExtract(); err != nil {
		return nil, nil, err
	}

	var ex *expression.Expr
	var parser *column.Parser[float64]
	var err error
	if opts.Expr != "" {
		ex, err = expression.Compile(opts.Expr)
		if err != nil {
			return nil, nil, err
		}
		parser, err = column.New[float64](ex.Columns(), opts.Delim)
	} else {
		parser, err = column.Single[float64](*opts.Column, opts.Delim)
	}
	if err != nil {
		return nil, nil, err
	}

	rep := &Report{RunID: uuid.NewString()}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if opts.SkipHeader && sc.Scan() {
		logrus.WithField("header", sc.Text()).Debug("skipped header row")
	}

	var values []float64
	for sc.Scan() {
		row := sc.Text()
		if row == "" {
			continue
		}
		rep.Rows++

		v, ok, rowErr := extract(parser, ex, opts.Strict, row)
		if rowErr != nil {
			if opts.Strict {
				return nil, nil, fmt.Errorf("row %d: %w", rep.Rows, rowErr)
			}
			rep.Skipped++
			logrus.WithFields(logrus.Fields{"row": rep.Rows, "reason": rowErr}).Debug("skipping row")
			continue
		}
		if !ok {
			rep.Skipped++
			logrus.WithField("row", rep.Rows).Debug("skipping short row")
			continue
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	rep.Values = len(values)
	return values, rep, nil
}

// extract computes one value for one row. Lenient column mode goes
// through the parser's streaming Value form, where a short row is a
// silent skip (ok=false); everywhere else a short row surfaces as a
// *column.MissingColumnError so strict runs can abort on it like any
// other per-row failure.
func extract(parser *column.Parser[float64], ex *expression.Expr, strict bool, row string) (float64, bool, error) {
	if ex != nil {
		vals, err := parser.ParseRow(row)
		if err != nil {
			return 0, false, err
		}
		v, err := ex.Eval(vals)
		if err != nil {
			return 0, false, err
		}
		return v, true, nil
	}
	if strict {
		vals, err := parser.ParseRow(row)
		if err != nil {
			return 0, false, err
		}
		return vals[parser.Columns()[0]], true, nil
	}
	return parser.Value(row)
}

func render(w io.Writer, h histogram.Histogram, opts Options) error {
	bw := bufio.NewWriter(w)
	if opts.Header {
		if _, err := fmt.Fprintf(bw, "bin_label%sbin_value\n", opts.Delim); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, b := range h {
		// Counts are rendered with the same precision as labels for
		// compatibility with the historical output format.
		_, err := fmt.Fprintf(bw, "%.*f%s%.*f\n", opts.Precision, b.Label, opts.Delim, opts.Precision, float64(b.Count))
		if err != nil {
			return fmt.Errorf("write bin: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
