package fetcher

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/outreach-cli/internal/resilience"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// RateLimit bounds requests per second against list hosts. 0 uses
	// the default of 5 rps.
	RateLimit rate.Limit
	// Retry overrides the backoff schedule; zero values fall back to
	// resilience defaults with MaxRetries attempts.
	Retry resilience.RetryConfig
}

// HTTPFetcher implements Fetcher using net/http with retry and rate limiting.
type HTTPFetcher struct {
	client  *http.Client
	opts    HTTPOptions
	limiter *rate.Limiter
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "outreach-cli/1.0"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 5
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:    opts,
		limiter: rate.NewLimiter(opts.RateLimit, int(opts.RateLimit)),
	}
}

// Download fetches the URL and returns the response body. Transient
// statuses (429, 5xx) are retried with backoff.
func (f *HTTPFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	retry := f.opts.Retry
	if retry.MaxAttempts == 0 {
		retry.MaxAttempts = f.opts.MaxRetries
	}
	retry.OnRetry = resilience.RetryLogger("fetcher", "download")

	body, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (io.ReadCloser, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetcher: rate limiter")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: create request")
		}
		req.Header.Set("User-Agent", f.opts.UserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, resilience.NewTransientError(err, 0)
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			err := eris.Errorf("fetcher: unexpected status %d from %s", resp.StatusCode, rawURL)
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(err, resp.StatusCode)
			}
			return nil, err
		}
		return resp.Body, nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Debug("fetcher: downloaded", zap.String("url", rawURL))
	return body, nil
}

// DownloadToFile fetches the URL and writes it to the given path.
func (f *HTTPFetcher) DownloadToFile(ctx context.Context, rawURL string, path string) (int64, error) {
	body, err := f.Download(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer body.Close() //nolint:errcheck

	file, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrap(err, "fetcher: create file")
	}
	defer file.Close() //nolint:errcheck

	n, err := io.Copy(file, body)
	if err != nil {
		return n, eris.Wrap(err, "fetcher: write file")
	}
	return n, nil
}
