package imagepkg

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// StatusError is returned by Fetch when the server answers with anything
// other than 200.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Fetcher downloads image bytes with a single GET.
type Fetcher struct {
	Client *http.Client
}

// Fetch downloads url and returns the full body. A non-200 answer yields a
// *StatusError; transport failures are returned wrapped.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	logger := zerolog.Ctx(ctx)
	if resp.StatusCode != http.StatusOK {
		logger.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("image download failed")
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	logger.Debug().Str("url", url).Int("bytes", len(body)).Msg("image downloaded")
	return body, nil
}
