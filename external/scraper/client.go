package scraper

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
	"github.com/riskibarqy/club-fixtures/internal/platform/resilience"
	"github.com/riskibarqy/club-fixtures/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 8 << 20
)

var errScrapeTransient = crerr.New("scrape transient failure")

type ClientConfig struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
	RequestsPerMinute int
	CircuitBreaker    resilience.CircuitBreakerConfig
	Logger            *logging.Logger
}

// Client calls the remote scrape function, which renders a club fixtures
// page and returns the records it found.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	token        string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	breaker      *resilience.CircuitBreaker
	logger       *logging.Logger
	flight       resilience.SingleFlight[[]any]
}

type scrapeRequest struct {
	URL string `json:"url"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), 1)
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("scraper circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     16,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL:      strings.TrimSpace(cfg.BaseURL),
		token:        strings.TrimSpace(cfg.Token),
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		limiter:      limiter,
		breaker:      breaker,
		logger:       logger,
	}
}

// FetchFixtures returns the raw records scraped from sourceURL. Concurrent
// calls for the same source share one request.
func (c *Client) FetchFixtures(ctx context.Context, sourceURL string) ([]any, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, fmt.Errorf("%w: source url is required", usecase.ErrInvalidInput)
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: scraper base url is not configured", usecase.ErrDependencyUnavailable)
	}

	records, err, _ := c.flight.Do(sourceURL, func() ([]any, error) {
		var out []any
		err := c.breaker.Execute(func() error {
			raw, err := c.executeRequest(ctx, sourceURL)
			if err != nil {
				return err
			}
			out, err = decodeRecords(raw)
			return err
		}, isCircuitFailure)
		return out, err
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "scraper circuit breaker rejected request", "source", sourceURL)
			return nil, fmt.Errorf("%w: scraper is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, fmt.Errorf("scrape %s: %w", sourceURL, err)
	}
	return records, nil
}

func (c *Client) executeRequest(ctx context.Context, sourceURL string) ([]byte, error) {
	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	encoded, err := sonic.Marshal(scrapeRequest{URL: sourceURL})
	if err != nil {
		return nil, fmt.Errorf("encode scrape request: %w", err)
	}
	_, _ = body.Write(encoded)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		raw, status, err := c.do(ctx, body.B)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %s", errScrapeTransient, sanitize(err.Error(), c.token))
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: scraper status=%d body=%s", errScrapeTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("scraper status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "scrape request failed", "source", sourceURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, payload []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.SetBody(payload)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	raw := append([]byte(nil), resp.Body()...)
	return raw, resp.StatusCode(), nil
}

// decodeRecords accepts a bare array or an object wrapping one. An object
// carrying "error" is reported as a failure.
func decodeRecords(raw []byte) ([]any, error) {
	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode scrape response: %w", err)
	}

	if obj, ok := decoded.(map[string]any); ok {
		if msg, ok := obj["error"].(string); ok && strings.TrimSpace(msg) != "" {
			return nil, fmt.Errorf("scraper error: %s", strings.TrimSpace(msg))
		}
	}

	records, ok := fixture.UnwrapEnvelope(decoded).([]any)
	if !ok {
		return nil, fmt.Errorf("decode scrape response: expected an array of fixtures")
	}
	return records, nil
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errScrapeTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func sanitize(value, token string) string {
	value = strings.TrimSpace(value)
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return value
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
