package cricketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/cricstack/fantasy-core/internal/platform/logging"
	"github.com/cricstack/fantasy-core/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://api.cricapi.com/v1"
	defaultTimeout = 20 * time.Second

	// The provider throttles aggressive polling; one request per 100ms keeps
	// pagination loops inside its rate budget.
	defaultRequestsPerSecond = 10
)

var errTransient = crerr.New("cricketdata transient failure")

// IsTransient reports whether err came from a retryable provider condition
// (network failure, timeout, 5xx). The caller decides retry policy.
func IsTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client is a thin accessor to the cricket data provider. Each call makes a
// single attempt; pacing is enforced by an internal rate limiter and repeated
// upstream failures trip the circuit breaker.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	limiter        *rate.Limiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		limiter:        rate.NewLimiter(rate.Limit(rps), 1),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Countries fetches one page of country records starting at offset.
func (c *Client) Countries(ctx context.Context, offset int) ([]RawCountry, bool, error) {
	return fetchPage[RawCountry](ctx, c, "/countries", offset)
}

// Series fetches one page of series records starting at offset.
func (c *Client) Series(ctx context.Context, offset int) ([]RawSeries, bool, error) {
	return fetchPage[RawSeries](ctx, c, "/series", offset)
}

// Players fetches one page of player records starting at offset.
func (c *Client) Players(ctx context.Context, offset int) ([]RawPlayer, bool, error) {
	return fetchPage[RawPlayer](ctx, c, "/players", offset)
}

// Matches fetches one page of match records starting at offset.
func (c *Client) Matches(ctx context.Context, offset int) ([]RawMatch, bool, error) {
	return fetchPage[RawMatch](ctx, c, "/matches", offset)
}

// SearchPlayers looks up players by name. The provider returns a single page.
func (c *Client) SearchPlayers(ctx context.Context, term string) ([]RawPlayer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}

	var env envelope[RawPlayer]
	if err := c.doJSON(ctx, "/players", url.Values{"search": []string{term}}, &env); err != nil {
		return nil, fmt.Errorf("search players term=%q: %w", term, err)
	}

	return env.Data, nil
}

func fetchPage[T any](ctx context.Context, c *Client, path string, offset int) ([]T, bool, error) {
	if offset < 0 {
		return nil, false, fmt.Errorf("offset cannot be negative")
	}

	params := url.Values{}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var env envelope[T]
	if err := c.doJSON(ctx, path, params, &env); err != nil {
		return nil, false, fmt.Errorf("fetch page path=%s offset=%d: %w", path, offset, err)
	}

	return env.Data, hasMoreRows(env.Info, offset, len(env.Data)), nil
}

// hasMoreRows prefers the provider's row counters; when they are absent the
// loop keeps paging until an empty page comes back.
func hasMoreRows(info pageInfo, offset, pageLen int) bool {
	if pageLen == 0 {
		return false
	}
	if info.TotalRows > 0 {
		return offset+pageLen < info.TotalRows
	}
	return true
}

func (c *Client) doJSON(ctx context.Context, path string, params url.Values, out any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return crerr.Mark(err, errTransient)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for rate limiter: %w", err)
	}

	endpoint, err := c.buildURL(path, params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return crerr.Mark(fmt.Errorf("call provider: %w", err), errTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		c.recordFailure()
		return crerr.Mark(fmt.Errorf("read provider response: %w", err), errTransient)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.recordFailure()
		c.logger.WarnContext(ctx, "provider call failed", "path", path, "status", resp.StatusCode)
		return crerr.Mark(fmt.Errorf("provider returned status %d", resp.StatusCode), errTransient)
	}
	if resp.StatusCode != http.StatusOK {
		c.recordFailure()
		c.logger.WarnContext(ctx, "provider call rejected", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		c.recordFailure()
		return fmt.Errorf("decode provider response: %w", err)
	}

	c.recordSuccess()
	return nil
}

func (c *Client) buildURL(path string, params url.Values) (string, error) {
	parsed, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("build provider url: %w", err)
	}

	query := parsed.Query()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	if c.token != "" {
		query.Set("apikey", c.token)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}
