package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mvp-joe/jsxtract/internal/extract"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var classifyFormatFlag string

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify [FILE|-]",
	Short: "Show the names a JSX fragment reads and their provenance",
	Long: `Classify reads one JSX expression from FILE (or stdin when FILE is "-" or
omitted) and prints which names it reads from this.state, this.props, the
component instance, and the enclosing scope, together with the rewrites that
turn it into the body of a standalone component.

Examples:
  echo '<b>{this.props.label}</b>' | jsxtract classify
  jsxtract classify --format yaml fragment.jsx
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyFormatFlag, "format", "json", "Output format: json or yaml")
}

// classifyOutput is the printed form of a classification.
type classifyOutput struct {
	Classification *extract.Classification `json:"classification" yaml:"classification"`
	Rewrites       []extract.Rewrite       `json:"rewrites" yaml:"rewrites"`
	Body           string                  `json:"body" yaml:"body"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open fragment file: %w", err)
		}
		defer f.Close()
		in = f
	}
	return executeClassify(in, cmd.OutOrStdout(), classifyFormatFlag)
}

func executeClassify(in io.Reader, out io.Writer, format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("invalid format %q: must be json or yaml", format)
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read fragment: %w", err)
	}

	result, err := extract.ClassifyText(string(text))
	if err != nil {
		return err
	}
	defer result.Close()

	output := classifyOutput{
		Classification: result.Classification,
		Rewrites:       result.Rewrites,
		Body:           result.Body(),
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(output); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
