package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/swiftdeps/pkg/pipeline"
)

type convertOptions struct {
	input      string
	output     string
	envFile    string
	configFile string
}

func addConvertFlags(cmd *cobra.Command, opts *convertOptions) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read the dependency tree from `FILE` instead of stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the snapshot to `FILE` instead of stdout")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "dotenv `FILE` filling variables missing from the environment")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "TOML or YAML `FILE` filling variables missing from the environment and --env-file")
}

func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOptions
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a dependency tree into a dependency snapshot",
		Long: `Convert reads the JSON dependency tree printed by
"swift package show-dependencies --format json" and writes the matching
GitHub dependency snapshot.

Every required environment variable is checked before any input is read.`,
		Example: `  swift package show-dependencies --format json | swiftdeps convert > snapshot.json
  swiftdeps convert -i deps.json -o snapshot.json --env-file .env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, opts)
		},
	}
	addConvertFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, opts convertOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(opts.envFile, opts.configFile)
	if err != nil {
		return err
	}
	logger.Debug("loaded run metadata",
		"owner", cfg.Metadata.Owner,
		"repo", cfg.Metadata.Repo,
		"detector", cfg.Metadata.DetectorName)

	in, err := c.openInput(opts.input)
	if err != nil {
		return err
	}
	defer in.Close()

	prog := newProgress(logger)
	res, err := pipeline.Convert(ctx, in, cfg.Metadata)
	if err != nil {
		return err
	}
	if err := c.writeOutput(opts.output, res.Output); err != nil {
		return err
	}

	prog.done("converted dependencies",
		"packages", res.Stats.Packages,
		"dependencies", res.Stats.Edges,
		"read", res.Stats.ReadTime,
		"flatten", res.Stats.FlattenTime,
		"write", res.Stats.WriteTime)
	return nil
}
