package download

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/errgroup"

	"github.com/rustavail/rustavail/internal/cache"
	"github.com/rustavail/rustavail/internal/manifest"
)

// Default downloader settings.
const (
	// DefaultBaseURL is the Rust distribution server prefix manifests
	// are published under.
	DefaultBaseURL = "https://static.rust-lang.org/dist"

	// DefaultSkipMissingDays is how many consecutive dates without a
	// published manifest the walk tolerates before giving up. Release
	// gaps of a few days happen around infrastructure incidents; a week
	// of silence means something is wrong enough to stop.
	DefaultSkipMissingDays = 7

	// DefaultConcurrency is the number of manifest fetches in flight at
	// once. The dist server is a CDN; a small window keeps the walk fast
	// without hammering it.
	DefaultConcurrency = 4

	// defaultRetryMax is the per-request retry budget for transient
	// HTTP failures.
	defaultRetryMax = 3

	// maxBodySize caps a manifest read. Channel manifests are a few MB;
	// anything larger is not a manifest.
	maxBodySize = 32 * 1024 * 1024
)

// Downloader fetches a series of daily manifests for one channel.
type Downloader struct {
	client          *retryablehttp.Client
	baseURL         string
	channel         string
	store           cache.Cache
	skipMissingDays int
	concurrency     int
	logger          *slog.Logger
	now             func() time.Time
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithBaseURL overrides the distribution server prefix. Used by tests
// and by mirrors.
func WithBaseURL(url string) Option {
	return func(d *Downloader) { d.baseURL = url }
}

// WithCache sets the manifest cache consulted before the network.
func WithCache(c cache.Cache) Option {
	return func(d *Downloader) {
		if c != nil {
			d.store = c
		}
	}
}

// WithSkipMissingDays sets how many consecutive missing days the walk
// tolerates.
func WithSkipMissingDays(n int) Option {
	return func(d *Downloader) {
		if n >= 0 {
			d.skipMissingDays = n
		}
	}
}

// WithConcurrency sets the number of fetches in flight at once.
func WithConcurrency(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithLogger sets the logger for fetch progress.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Downloader) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithHTTPClient replaces the HTTP client. Tests use this to disable
// retries.
func WithHTTPClient(client *retryablehttp.Client) Option {
	return func(d *Downloader) {
		if client != nil {
			d.client = client
		}
	}
}

// WithNow fixes the walk's notion of "today". Used by tests.
func WithNow(now func() time.Time) Option {
	return func(d *Downloader) {
		if now != nil {
			d.now = now
		}
	}
}

// New creates a Downloader for the given channel ("nightly", "beta",
// "stable", or a version number).
func New(channel string, opts ...Option) *Downloader {
	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.Logger = log.New(io.Discard, "", 0)

	d := &Downloader{
		client:          client,
		baseURL:         DefaultBaseURL,
		channel:         channel,
		store:           cache.Noop{},
		skipMissingDays: DefaultSkipMissingDays,
		concurrency:     DefaultConcurrency,
		logger:          slog.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// fetchResult is one date's outcome inside a concurrent window.
type fetchResult struct {
	manifest *manifest.Manifest
	found    bool
}

// LastManifests walks backwards from today collecting up to `days`
// manifests, newest first. The walk stops early when more than the
// configured number of consecutive dates are missing. Any error other
// than a missing manifest aborts the walk.
func (d *Downloader) LastManifests(ctx context.Context, days int) ([]*manifest.Manifest, error) {
	if days <= 0 {
		return nil, nil
	}

	manifests := make([]*manifest.Manifest, 0, days)
	day := d.now().UTC().Truncate(24 * time.Hour)
	missing := 0

	for len(manifests) < days && missing <= d.skipMissingDays {
		// Fetch the next window of dates concurrently, then consume the
		// results in date order so the consecutive-miss accounting stays
		// exact.
		window := d.concurrency
		if remaining := days - len(manifests); window > remaining+d.skipMissingDays {
			window = remaining + d.skipMissingDays
		}

		results := make([]fetchResult, window)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.concurrency)
		for i := 0; i < window; i++ {
			i := i
			date := day.AddDate(0, 0, -i)
			g.Go(func() error {
				m, found, err := d.fetch(gctx, date)
				if err != nil {
					return err
				}
				results[i] = fetchResult{manifest: m, found: found}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for _, res := range results {
			if !res.found {
				missing++
				if missing > d.skipMissingDays {
					break
				}
				continue
			}
			missing = 0
			if len(manifests) < days {
				manifests = append(manifests, res.manifest)
			}
		}
		day = day.AddDate(0, 0, -window)
	}

	if missing > d.skipMissingDays && len(manifests) < days {
		d.logger.Info("stopping manifest walk",
			"channel", d.channel,
			"consecutiveMissing", missing,
			"collected", len(manifests),
		)
	}
	return manifests, nil
}

// fetch retrieves the manifest for one date, consulting the cache
// first. It reports found=false when the server has no manifest for
// that date.
func (d *Downloader) fetch(ctx context.Context, date time.Time) (*manifest.Manifest, bool, error) {
	key := d.key(date)

	if body, ok := d.store.Get(key); ok {
		m, err := manifest.Parse(body)
		if err == nil {
			d.logger.Debug("manifest served from cache", "key", key)
			return m, true, nil
		}
		// A corrupt cache entry falls through to the network and gets
		// overwritten by the fresh copy.
		d.logger.Warn("ignoring corrupt cache entry", "key", key, "error", err)
	}

	url := fmt.Sprintf("%s/%s", d.baseURL, key)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		d.logger.Debug("no manifest published", "date", date.Format(manifest.DateFormat))
		return nil, false, nil
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", url, err)
	}

	m, err := manifest.Parse(body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse manifest from %s: %w", url, err)
	}

	if err := d.store.Put(key, body); err != nil {
		// A broken cache should not stop the run; the manifest itself
		// is already in hand.
		d.logger.Warn("failed to cache manifest", "key", key, "error", err)
	}
	return m, true, nil
}

// key is the server-relative manifest path for one date.
func (d *Downloader) key(date time.Time) string {
	return fmt.Sprintf("%s/channel-rust-%s.toml", date.Format(manifest.DateFormat), d.channel)
}
