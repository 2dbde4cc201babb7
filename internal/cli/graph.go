package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/swiftdeps/pkg/pipeline"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		input    string
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Draw the flattened dependency graph",
		Long: `Graph reads the same dependency tree as convert and draws the flattened
graph as Graphviz DOT or, with --format svg, as an SVG image rendered
in-process. No environment variables are needed.`,
		Example: `  swift package show-dependencies --format json | swiftdeps graph > deps.dot
  swiftdeps graph deps.json --format svg -o deps.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				input = args[0]
			}
			in, err := c.openInput(input)
			if err != nil {
				return err
			}
			defer in.Close()

			res, err := pipeline.Graph(cmd.Context(), in, pipeline.GraphOptions{Format: format, Detailed: detailed})
			if err != nil {
				return err
			}
			if err := c.writeOutput(output, res.Output); err != nil {
				return err
			}

			if output != "" && output != "-" {
				printSuccess(c.Err, "Rendered %s", StyleHighlight.Render(format))
				printStats(c.Err, res.Stats.Packages, res.Stats.Edges)
				printFile(c.Err, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "read the dependency tree from `FILE` instead of stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the drawing to `FILE` instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: "+strings.Join(pipeline.ValidFormats, ", "))
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include package URLs in node labels")
	return cmd
}
