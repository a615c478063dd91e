// Package pipeline runs one fetch, decode, extract and display pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/jaroslavdusek1/metasnap/internal/exif"
	imagepkg "github.com/jaroslavdusek1/metasnap/internal/image"
	"github.com/jaroslavdusek1/metasnap/internal/report"
)

// Outcome tells how a run ended.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeDisplayed
	OutcomeFetchFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDisplayed:
		return "displayed"
	case OutcomeFetchFailed:
		return "fetch_failed"
	default:
		return "failed"
	}
}

// Runner wires the Fetcher, Decoder, Extractor and Presenter together.
// Progress lines go to Progress, which may be nil to drop them; results and
// notices go to Out.
type Runner struct {
	Fetcher  *imagepkg.Fetcher
	Out      io.Writer
	Progress io.Writer
}

// Run processes url once. A non-200 download is not an error: it prints the
// failure lines and returns OutcomeFetchFailed. Transport and decode failures
// are returned as errors.
func (r *Runner) Run(ctx context.Context, url string) (Outcome, error) {
	logger := zerolog.Ctx(ctx)
	progress := r.Progress
	if progress == nil {
		progress = io.Discard
	}

	fmt.Fprintln(progress, "[-] Downloading image...")
	data, err := r.Fetcher.Fetch(ctx, url)
	var se *imagepkg.StatusError
	if errors.As(err, &se) {
		fmt.Fprintln(r.Out, "Failed to download the image.")
		fmt.Fprintln(r.Out, "[-] Failed to download the image or invalid image URL.")
		return OutcomeFetchFailed, nil
	}
	if err != nil {
		return OutcomeFailed, err
	}
	fmt.Fprintln(progress, "[-] Image downloaded successfully.")

	img, err := imagepkg.Decode(ctx, data)
	if err != nil {
		return OutcomeFailed, err
	}

	fmt.Fprintln(progress, "[-] Extracting EXIF data...")
	res := exif.Extract(ctx, img)
	if !res.Supported {
		fmt.Fprintln(r.Out, "[-] Image does not support EXIF data.")
	}

	if err := report.Write(r.Out, progress, res.Metadata); err != nil {
		return OutcomeFailed, fmt.Errorf("writing report: %w", err)
	}

	logger.Info().
		Str("format", img.Format()).
		Int("entries", res.Metadata.Len()).
		Msg("metadata displayed")
	return OutcomeDisplayed, nil
}
