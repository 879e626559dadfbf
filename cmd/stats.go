package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/binfold/histo/internal/describe"
	"github.com/binfold/histo/internal/pipeline"
)

var (
	statsColumn     int
	statsExpr       string
	statsDelim      string
	statsSkipHeader bool
	statsStrict     bool
	statsPrecision  int
)

var statsCmd = &cobra.Command{
	Use:   "stats [input]",
	Short: "Summarize the values a run would bin",
	Long: `Run the same column or expression extraction as "run" but print summary
statistics (count, min, max, mean, stddev, quartiles) instead of a
histogram.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pipeline.Options{
			Delim:      cfg.Delimiter,
			SkipHeader: cfg.SkipHeader,
			Strict:     cfg.Strict,
			Precision:  cfg.Precision,
		}
		f := cmd.Flags()
		if f.Changed("delim") {
			opts.Delim = statsDelim
		}
		if f.Changed("skip-header") {
			opts.SkipHeader = statsSkipHeader
		}
		if f.Changed("strict") {
			opts.Strict = statsStrict
		}
		if f.Changed("precision") {
			opts.Precision = statsPrecision
		}
		switch {
		case f.Changed("column") && statsExpr != "":
			return fmt.Errorf("--column and --expr are mutually exclusive")
		case f.Changed("column"):
			c := statsColumn
			opts.Column = &c
		case statsExpr != "":
			opts.Expr = statsExpr
		default:
			return fmt.Errorf("one of --column or --expr is required")
		}

		in, closeIn, err := openInput(args)
		if err != nil {
			return err
		}
		defer closeIn()

		values, rep, err := pipeline.Collect(in, opts)
		if err != nil {
			return err
		}
		logReport(rep)
		return describe.Values(values).Render(os.Stdout, opts.Precision)
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsColumn, "column", "c", 0, "0-indexed column to read")
	statsCmd.Flags().StringVarP(&statsExpr, "expr", "e", "", "expression over ?N column placeholders, evaluated per row")
	statsCmd.Flags().StringVarP(&statsDelim, "delim", "d", ",", "field delimiter")
	statsCmd.Flags().BoolVarP(&statsSkipHeader, "skip-header", "s", false, "skip the first input line")
	statsCmd.Flags().BoolVar(&statsStrict, "strict", false, "abort on the first bad row instead of skipping it")
	statsCmd.Flags().IntVar(&statsPrecision, "precision", 2, "decimal places in output")
	rootCmd.AddCommand(statsCmd)
}
