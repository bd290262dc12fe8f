package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mvp-joe/jsxtract/internal/config"
	"github.com/mvp-joe/jsxtract/internal/extract"
	"github.com/mvp-joe/jsxtract/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	extractFileFlag   string
	extractRangeFlag  string
	extractDestFlag   string
	extractStyleFlag  string
	extractDryRunFlag bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Move a JSX selection into a new component",
	Long: `Extract moves the selected JSX out of a class component into a new
component named after the destination file, and replaces the selection with a
call site.

The selection is given as LINE:COL-LINE:COL (1-indexed, end exclusive). The
destination is resolved relative to the source file; when --dest is omitted you
are prompted for it, and an empty answer cancels.

Examples:
  # Extract into src/user-card.jsx as a function component
  jsxtract extract --file src/App.jsx --range 12:7-18:13 --dest user-card.jsx

  # Preview a class component without writing files
  jsxtract extract -f src/App.jsx -r 12:7-18:13 -d user-card.jsx --style class --dry-run
`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractFileFlag, "file", "f", "", "Source file containing the selection (required)")
	extractCmd.Flags().StringVarP(&extractRangeFlag, "range", "r", "", "Selection as LINE:COL-LINE:COL (required)")
	extractCmd.Flags().StringVarP(&extractDestFlag, "dest", "d", "", "Destination file (prompted when omitted)")
	extractCmd.Flags().StringVar(&extractStyleFlag, "style", "", "Component style: function or class (default from config)")
	extractCmd.Flags().BoolVar(&extractDryRunFlag, "dry-run", false, "Print the resulting files instead of writing them")
	extractCmd.MarkFlagRequired("file")
	extractCmd.MarkFlagRequired("range")
}

type extractOptions struct {
	File   string
	Range  string
	Dest   string
	Style  string
	DryRun bool
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := extractOptions{
		File:   extractFileFlag,
		Range:  extractRangeFlag,
		Dest:   extractDestFlag,
		Style:  extractStyleFlag,
		DryRun: extractDryRunFlag,
	}

	var picker workflow.DestinationPicker = workflow.StaticPicker(opts.Dest)
	if opts.Dest == "" {
		picker = &workflow.PromptPicker{In: cmd.InOrStdin(), Out: os.Stderr}
	}

	return executeExtract(cmd.Context(), cfg, opts, picker, newLogger(), cmd.OutOrStdout())
}

// executeExtract runs the workflow and prints the outcome to out.
func executeExtract(ctx context.Context, cfg *config.Config, opts extractOptions, picker workflow.DestinationPicker, logger *log.Logger, out io.Writer) error {
	r, err := workflow.ParseRange(opts.Range)
	if err != nil {
		return err
	}

	unit := cfg.UnitOptions()
	if opts.Style != "" {
		unit.Style = extract.Style(strings.ToLower(opts.Style))
		if unit.Style != extract.StyleFunction && unit.Style != extract.StyleClass {
			return fmt.Errorf("invalid style %q: must be function or class", opts.Style)
		}
	}

	w, err := workflow.New(workflow.Config{
		Picker:       picker,
		Logger:       logger,
		Unit:         unit,
		ReactImport:  cfg.Imports.React,
		ReactPath:    cfg.Imports.ReactPath,
		LinkSource:   cfg.Imports.LinkSource,
		Destinations: cfg.Paths.Destinations,
	})
	if err != nil {
		return err
	}

	report, err := w.Run(ctx, workflow.Request{Source: opts.File, Range: r, DryRun: opts.DryRun})
	if workflow.IsSilent(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.DryRun {
		fmt.Fprintf(out, "--- %s\n%s\n", report.Destination, report.DestinationText)
		if report.Destination != report.Source {
			fmt.Fprintf(out, "--- %s\n%s\n", report.Source, report.SourceText)
		}
		return nil
	}

	fmt.Fprintf(out, "✓ Extracted %s into %s\n", report.Name, report.Destination)
	fmt.Fprintf(out, "%s\n", report.SwitchTo)
	return nil
}
