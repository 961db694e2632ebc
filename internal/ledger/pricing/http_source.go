package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang-stock-ledger/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// httpSource holds the plumbing shared by the JSON quote providers.
type httpSource struct {
	name           string
	baseURL        string
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

func newHTTPSource(name, baseURL string, maxRequestPerMinute int, log *logger.Logger) httpSource {
	limit := rate.Inf
	if maxRequestPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(maxRequestPerMinute))
	}
	return httpSource{
		name:           name,
		baseURL:        baseURL,
		log:            log,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		requestLimiter: rate.NewLimiter(limit, 1),
	}
}

// doJSON sends the request and decodes a 200 response into out. The query
// string may carry credentials, so neither logs nor returned errors include it.
func (s *httpSource) doJSON(ctx context.Context, method, rawURL string, payload interface{}, out interface{}) error {
	fields := []zap.Field{
		zap.String("source", s.name),
		zap.String("url", redactURL(rawURL)),
	}

	if err := s.requestLimiter.Wait(ctx); err != nil {
		s.log.ErrorContext(ctx, "Failed to wait for request limit", append(fields, zap.Error(err))...)
		return err
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		err = scrubURLError(err)
		s.log.ErrorContext(ctx, "Failed to create new http request", append(fields, zap.Error(err))...)
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		err = scrubURLError(err)
		s.log.ErrorContext(ctx, "Failed to send price request", append(fields, zap.Error(err))...)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.DebugContext(ctx, "Unexpected price response status", append(fields, zap.Int("status", resp.StatusCode))...)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// redactURL keeps scheme, host and path.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String()
}

// scrubURLError drops the request URL that net/http embeds in its errors.
func scrubURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s %s: %w", urlErr.Op, redactURL(urlErr.URL), urlErr.Err)
	}
	return err
}
