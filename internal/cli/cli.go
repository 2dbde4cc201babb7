// Package cli implements the swiftdeps command-line interface.
//
// The default action converts a Swift package dependency tree, as printed by
// `swift package show-dependencies --format json`, into a GitHub dependency
// snapshot on standard output. Further commands submit a snapshot and draw
// the dependency graph.
//
// # Commands
//
//   - convert: tree on stdin → snapshot JSON on stdout (also the root action)
//   - submit: post a snapshot to the GitHub dependency submission API
//   - graph: draw the flattened graph as Graphviz DOT or SVG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. A failing run prints exactly one line: the
// error returned to main.
package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/swiftdeps/pkg/buildinfo"
	"github.com/matzehuels/swiftdeps/pkg/config"
	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/observability"
)

const appName = "swiftdeps"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Env resolves configuration keys. It defaults to the process environment.
	Env config.Source

	In  io.Reader // dependency tree or snapshot when no file is given
	Out io.Writer // command output
	Err io.Writer // status lines

	metricsFile string
	metrics     *observability.Metrics
}

// New creates a CLI bound to the process streams, logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Env:    config.Env(),
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running it without a subcommand performs a conversion.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose bool
		opts    convertOptions
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Convert Swift package dependencies into GitHub dependency snapshots",
		Long: `swiftdeps reads the dependency tree printed by
"swift package show-dependencies --format json" and writes a GitHub
dependency submission snapshot for it.

Run metadata is read from the environment (OWNER, REPO, BRANCH, COMMIT,
CORRELATOR, RUN_ID, GITHUB_ACTION, GITHUB_ACTION_REF,
GITHUB_ACTION_REPOSITORY, GITHUB_SERVER_URL), optionally completed by
--env-file and --config.`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			hooks := logHooks{logger: c.Logger}
			if c.metricsFile == "" {
				observability.SetStageHooks(hooks)
				observability.SetHTTPHooks(hooks)
			} else {
				c.metrics = observability.NewMetrics()
				observability.SetStageHooks(observability.MultiStage(hooks, c.metrics))
				observability.SetHTTPHooks(observability.MultiHTTP(hooks, c.metrics))
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Err)
	root.SetErr(c.Err)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics for this run to `FILE` (textfile collector format)")
	addConvertFlags(root, &opts)

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.submitCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the root command with args, or with os.Args when args is nil,
// and then writes the metrics file if one was requested. Metrics are written
// for failed runs too.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	if args != nil {
		root.SetArgs(args)
	}
	err := root.ExecuteContext(ctx)

	if c.metrics != nil {
		if werr := c.metrics.WriteTextfile(c.metricsFile); werr != nil && err == nil {
			err = errs.Wrap(errs.ErrCodeInternal, werr, "write metrics")
		}
	}
	return err
}

// =============================================================================
// Input / Output
// =============================================================================

// openInput opens path for reading, or returns c.In for "" and "-".
func (c *CLI) openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(c.In), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open input")
	}
	return f, nil
}

// writeOutput writes data to path, or to c.Out for "" and "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := io.Copy(c.Out, bytes.NewReader(data)); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "write output")
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "write output")
	}
	return nil
}

// loadConfig resolves run metadata from c.Env, then the optional dotenv and
// config files, in that priority order.
func (c *CLI) loadConfig(envFile, configFile string) (*config.Config, error) {
	sources := []config.Source{c.Env}
	if envFile != "" {
		src, err := config.DotEnv(envFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if configFile != "" {
		src, err := config.File(configFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return config.Load(config.Chain(sources...))
}
