package fetch

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/seo-audit/pkg/config"
	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

const maxBodyBytes = 10 << 20

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	FinalURL   string // URL after redirects
}

// OK reports whether the response carried status 200.
func (r *Response) OK() bool { return r.StatusCode == http.StatusOK }

// HTTPFetcher is the fetch capability the audit components depend on.
// Any HTTP status is a successful fetch; only transport failures are errors.
type HTTPFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Response, error)
}

// Fetcher makes GET requests with retry, using an underlying http.Client
type Fetcher struct {
	client *http.Client
	cfg    *config.AppConfig // retry settings and user agent
	log    *logrus.Entry
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(client *http.Client, cfg *config.AppConfig, log *logrus.Entry) *Fetcher {
	return &Fetcher{
		client: client,
		cfg:    cfg,
		log:    log.WithField("component", "fetcher"),
	}
}

// Fetch GETs rawURL and reads the whole body.
// Network errors, 5xx and 429 are retried with exponential backoff and jitter.
// When retries run out on an HTTP status, the last response is returned as-is
// so callers can still record the status. When they run out on a transport
// error, the error wraps utils.ErrRetryFailed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrRequestCreation, err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	reqLog := f.log.WithField("url", rawURL)
	maxRetries := f.cfg.MaxRetries

	var lastErr error
	var lastResp *Response

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.backoff(attempt)
			reqLog.WithFields(logrus.Fields{"attempt": attempt, "max_retries": maxRetries, "delay": delay}).Debug("Retrying request")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				if lastErr != nil {
					return nil, fmt.Errorf("%w during retry delay after error: %w", ctx.Err(), lastErr)
				}
				return nil, ctx.Err()
			}
		}

		resp, err := f.client.Do(req.WithContext(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			reqLog.WithField("attempt", attempt).Debugf("Network error: %v", err)
			lastErr = err
			lastResp = nil
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		resp.Body.Close()
		if readErr != nil {
			reqLog.WithField("attempt", attempt).Debugf("Body read error: %v", readErr)
			lastErr = fmt.Errorf("%w: %w", utils.ErrResponseBodyRead, readErr)
			lastResp = nil
			continue
		}

		current := &Response{
			StatusCode: resp.StatusCode,
			Body:       body,
			FinalURL:   resp.Request.URL.String(),
		}
		resLog := reqLog.WithFields(logrus.Fields{"status_code": resp.StatusCode, "attempt": attempt})

		switch {
		case resp.StatusCode >= 500:
			resLog.Debug("Server error, retrying")
			lastErr = fmt.Errorf("%w: status %d", utils.ErrServerHTTPError, resp.StatusCode)
			lastResp = current
			continue
		case resp.StatusCode == http.StatusTooManyRequests:
			resLog.Debug("Received 429 Too Many Requests, retrying")
			lastErr = fmt.Errorf("%w: status %d", utils.ErrClientHTTPError, resp.StatusCode)
			lastResp = current
			continue
		}

		resLog.Debug("Fetched")
		return current, nil
	}

	if lastResp != nil {
		reqLog.WithField("status_code", lastResp.StatusCode).Warnf("Giving up after %d attempts, keeping last status", maxRetries+1)
		return lastResp, nil
	}
	reqLog.Debugf("All %d fetch attempts failed. Last error: %v", maxRetries+1, lastErr)
	if lastErr == nil {
		return nil, utils.ErrRetryFailed
	}
	return nil, fmt.Errorf("%w: %w", utils.ErrRetryFailed, lastErr)
}

// backoff returns initial*2^(attempt-1) capped by MaxRetryDelay, with +/-10% jitter.
func (f *Fetcher) backoff(attempt int) time.Duration {
	delay := time.Duration(float64(f.cfg.InitialRetryDelay) * math.Pow(2, float64(attempt-1)))
	if delay <= 0 || (f.cfg.MaxRetryDelay > 0 && delay > f.cfg.MaxRetryDelay) {
		delay = f.cfg.MaxRetryDelay
	}
	if delay/5 > 0 {
		delay += time.Duration(rand.Int63n(int64(delay)/5)) - delay/10
	}
	if delay < 0 {
		delay = 0
	}
	return delay
}
