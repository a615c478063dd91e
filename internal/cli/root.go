package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jaroslavdusek1/metasnap/internal/config"
	imagepkg "github.com/jaroslavdusek1/metasnap/internal/image"
	"github.com/jaroslavdusek1/metasnap/internal/logging"
	"github.com/jaroslavdusek1/metasnap/internal/pipeline"
	"github.com/jaroslavdusek1/metasnap/internal/util"
)

const usage = "Usage: metasnap [image_url]"

const banner = `
                           /$$                /$$$$$$
                          | $$               /$$__  $$
 /$$$$$$/$$$$   /$$$$$$  /$$$$$$    /$$$$$$ | $$  \__/ /$$$$$$$   /$$$$$$   /$$$$$$
| $$_  $$_  $$ /$$__  $$|_  $$_/   |____  $$|  $$$$$$ | $$__  $$ |____  $$ /$$__  $$
| $$ \ $$ \ $$| $$$$$$$$  | $$      /$$$$$$$ \____  $$| $$  \ $$  /$$$$$$$| $$  \ $$
| $$ | $$ | $$| $$_____/  | $$ /$$ /$$__  $$ /$$  \ $$| $$  | $$ /$$__  $$| $$  | $$
| $$ | $$ | $$|  $$$$$$$  |  $$$$/|  $$$$$$$|  $$$$$$/| $$  | $$|  $$$$$$$| $$$$$$$/
|__/ |__/ |__/ \_______/   \___/   \_______/ \______/ |__/  |__/ \_______/| $$____/
                                                                          | $$
                                                                          | $$
                                                                          |__/

`

type usageError struct{}

func (usageError) Error() string { return usage }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metasnap <image_url>",
		Short: "Download an image and print its EXIF metadata",
		Long:  "metasnap downloads the image at the given URL and prints every EXIF tag it carries as key: value lines.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

// Execute runs the CLI with args (without the program name) and returns the
// process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	fmt.Fprint(stdout, banner)

	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	var ue usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ue):
		fmt.Fprintln(stdout, usage)
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func run(ctx context.Context, url string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(stderr, cfg.LogLevel).With().Str("run_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)

	r := &pipeline.Runner{
		Fetcher:  &imagepkg.Fetcher{Client: util.NewHTTPClient(cfg.HTTPTimeout)},
		Out:      stdout,
		Progress: stdout,
	}
	outcome, err := r.Run(ctx, url)
	if err != nil {
		logger.Error().Err(err).Str("url", url).Msg("run failed")
		return err
	}
	logger.Debug().Stringer("outcome", outcome).Msg("run finished")
	return nil
}
