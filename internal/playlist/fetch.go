package playlist

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// FeedError reports a failed playlist download, naming the feed so the UI
// can tell the user which source broke.
type FeedError struct {
	Category Category
	Err      error
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("%s feed could not be loaded: %v", e.Category.Badge(), e.Err)
}

func (e *FeedError) Unwrap() error { return e.Err }

// Fetcher downloads and parses remote playlists.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

// Fetch downloads one playlist and parses it. Transport failures and
// non-success statuses come back as a *FeedError; parse problems never do.
func (f *Fetcher) Fetch(ctx context.Context, url string, cat Category) ([]Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FeedError{Category: cat, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FeedError{Category: cat, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FeedError{Category: cat, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FeedError{Category: cat, Err: err}
	}

	channels := Parse(string(body), cat)
	log.Info().Str("feed", string(cat)).Int("channels", len(channels)).Msg("playlist loaded")
	return channels, nil
}

// FetchAll downloads both feeds in parallel and fails as a unit: if either
// feed is unreachable no partial catalog is returned.
func (f *Fetcher) FetchAll(ctx context.Context, tvURL, radioURL string) (tv, radio []Channel, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tv, err = f.Fetch(ctx, tvURL, TV)
		return err
	})
	g.Go(func() error {
		var err error
		radio, err = f.Fetch(ctx, radioURL, Radio)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tv, radio, nil
}
