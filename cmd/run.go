package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/binfold/histo/internal/pipeline"
)

var (
	runOutput     string
	runColumn     int
	runExpr       string
	runDelim      string
	runNumBins    int
	runSkipHeader bool
	runStrict     bool
	runPrecision  int
	runHeader     bool
)

var runCmd = &cobra.Command{
	Use:   "run [input]",
	Short: "Build a histogram from delimited input",
	Long: `Build a histogram from a file, or from standard input when no path is
given. Values come from a single column (--column) or from an
arithmetic expression over ?N column placeholders (--expr), e.g.

  histo run data.csv -c 2 -n 20
  cat data.csv | histo run -e "?1 / ?0" -n 5

Columns are 0-indexed. Bad rows are skipped unless --strict is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}

		in, closeIn, err := openInput(args)
		if err != nil {
			return err
		}
		defer closeIn()

		if runOutput == "" {
			rep, err := pipeline.Run(in, os.Stdout, opts)
			if err != nil {
				return err
			}
			logReport(rep)
			return nil
		}

		var buf bytes.Buffer
		rep, err := pipeline.Run(in, &buf, opts)
		if err != nil {
			return err
		}
		if err := pipeline.WriteFileAtomic(runOutput, buf.Bytes()); err != nil {
			return fmt.Errorf("write output %s: %w", runOutput, err)
		}
		logReport(rep)
		return nil
	},
}

// runOptions layers changed flags over the loaded config.
func runOptions(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{
		Delim:      cfg.Delimiter,
		NumBins:    cfg.NumBins,
		SkipHeader: cfg.SkipHeader,
		Strict:     cfg.Strict,
		Precision:  cfg.Precision,
		Header:     cfg.OutputHeader,
	}
	f := cmd.Flags()
	if f.Changed("delim") {
		opts.Delim = runDelim
	}
	if f.Changed("num-bins") {
		opts.NumBins = runNumBins
	}
	if f.Changed("skip-header") {
		opts.SkipHeader = runSkipHeader
	}
	if f.Changed("strict") {
		opts.Strict = runStrict
	}
	if f.Changed("precision") {
		opts.Precision = runPrecision
	}
	if f.Changed("header") {
		opts.Header = runHeader
	}

	switch {
	case f.Changed("column") && runExpr != "":
		return opts, fmt.Errorf("--column and --expr are mutually exclusive")
	case f.Changed("column"):
		c := runColumn
		opts.Column = &c
	case runExpr != "":
		opts.Expr = runExpr
	default:
		return opts, fmt.Errorf("one of --column or --expr is required")
	}
	return opts, nil
}

// openInput returns the input stream: the named file when a path was
// given, standard input otherwise.
func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open input %s: %w", args[0], err)
	}
	return f, func() { _ = f.Close() }, nil
}

func logReport(rep *pipeline.Report) {
	logrus.WithFields(logrus.Fields{
		"run_id":  rep.RunID,
		"rows":    rep.Rows,
		"values":  rep.Values,
		"skipped": rep.Skipped,
		"bins":    rep.Bins,
	}).Debug("run finished")
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write histogram to file instead of stdout")
	runCmd.Flags().IntVarP(&runColumn, "column", "c", 0, "0-indexed column to read")
	runCmd.Flags().StringVarP(&runExpr, "expr", "e", "", "expression over ?N column placeholders, evaluated per row")
	runCmd.Flags().StringVarP(&runDelim, "delim", "d", ",", "field delimiter")
	runCmd.Flags().IntVarP(&runNumBins, "num-bins", "n", 10, "number of histogram bins")
	runCmd.Flags().BoolVarP(&runSkipHeader, "skip-header", "s", false, "skip the first input line")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "abort on the first bad row instead of skipping it")
	runCmd.Flags().IntVar(&runPrecision, "precision", 2, "decimal places in output")
	runCmd.Flags().BoolVar(&runHeader, "header", false, "emit a bin_label/bin_value header line")
	rootCmd.AddCommand(runCmd)
}
