package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/swiftdeps/pkg/config"
	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/httputil"
	"github.com/matzehuels/swiftdeps/pkg/integrations/github"
	"github.com/matzehuels/swiftdeps/pkg/pipeline"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

func (c *CLI) submitCommand() *cobra.Command {
	var (
		token     string
		serverURL string
		attempts  int
	)

	cmd := &cobra.Command{
		Use:   "submit [file]",
		Short: "Submit a dependency snapshot to GitHub",
		Long: `Submit posts a snapshot produced by convert to the dependency submission
API of the repository it names. The snapshot is read from the file argument
or stdin.

The token comes from --token or GITHUB_TOKEN and needs write access to the
repository's contents. The API host follows --server-url or
GITHUB_SERVER_URL; anything other than github.com is treated as GitHub
Enterprise Server.`,
		Example: `  swiftdeps convert | swiftdeps submit
  GITHUB_TOKEN=... swiftdeps submit snapshot.json --server-url https://ghe.example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if token == "" {
				token, _ = c.Env(config.KeyToken)
			}
			if token == "" {
				return errs.New(errs.ErrCodeConfiguration, "no token: set %s or pass --token", config.KeyToken)
			}
			if serverURL == "" {
				serverURL, _ = c.Env(config.KeyServerURL)
			}

			client, err := github.NewClient(serverURL, token, github.WithRetry(attempts, httputil.DefaultDelay))
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			var (
				doc *submission.Document
				res *github.Result
			)
			if len(args) == 1 && args[0] != "-" {
				doc, res, err = pipeline.SubmitFile(ctx, client, args[0])
			} else {
				doc, res, err = pipeline.Submit(ctx, client, c.In)
			}
			if err != nil {
				return err
			}
			prog.done("submitted snapshot", "id", res.ID, "result", res.Result)

			printSuccess(c.Err, "Submitted snapshot %s", StyleHighlight.Render(fmt.Sprint(res.ID)))
			printKeyValue(c.Err, "repository", doc.Owner+"/"+doc.Repo)
			printKeyValue(c.Err, "sha", doc.Sha)
			printKeyValue(c.Err, "result", res.Result)
			if res.Message != "" {
				printKeyValue(c.Err, "message", StyleDim.Render(res.Message))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default $"+config.KeyToken+")")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "GitHub server URL (default $"+config.KeyServerURL+" or "+github.DefaultServerURL+")")
	cmd.Flags().IntVar(&attempts, "attempts", httputil.DefaultAttempts, "maximum submission attempts on server or network errors")
	return cmd
}
