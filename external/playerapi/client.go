package playerapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/player-scout/internal/domain/player"
	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"github.com/riskibarqy/player-scout/internal/platform/resilience"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL        = "http://localhost:8000"
	defaultPageSize       = 1000
	defaultListTimeout    = 10 * time.Second
	defaultProfileTimeout = 10 * time.Second
	defaultStatsTimeout   = 15 * time.Second
	maxResponseBodySize   = 32 << 20

	endpointPlayers = "players"
	endpointProfile = "profile"
	endpointStats   = "stats"
)

var (
	errUpstreamTransient = crerr.New("player api transient failure")
	errUpstreamNotFound  = crerr.New("player api resource not found")
	// Set on every non-200 response, as opposed to transport or decode failures.
	errUpstreamStatus = crerr.New("player api status failure")
)

// Observer receives one sample per upstream call.
type Observer interface {
	ObserveUpstream(endpoint, outcome string, took time.Duration)
}

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	PageSize       int
	ListTimeout    time.Duration
	ProfileTimeout time.Duration
	StatsTimeout   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Metrics        Observer
}

// Client talks to the upstream player data API. It never retries and never
// caches; callers that want a snapshot wrap it in the cache decorator.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	pageSize       int
	listTimeout    time.Duration
	profileTimeout time.Duration
	statsTimeout   time.Duration
	logger         *logging.Logger
	breaker        *resilience.Breaker
	metrics        Observer
}

var _ player.Source = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "player-scout",
			MaxResponseBodySize: maxResponseBodySize,
			MaxConnsPerHost:     64,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		pageSize:       positiveOr(cfg.PageSize, defaultPageSize),
		listTimeout:    durationOr(cfg.ListTimeout, defaultListTimeout),
		profileTimeout: durationOr(cfg.ProfileTimeout, defaultProfileTimeout),
		statsTimeout:   durationOr(cfg.StatsTimeout, defaultStatsTimeout),
		logger:         logger,
		breaker:        resilience.NewBreaker("player-api", cfg.CircuitBreaker, isCircuitFailure, logger),
		metrics:        cfg.Metrics,
	}
}

// ListPlayers fetches one page of the roster.
func (c *Client) ListPlayers(ctx context.Context, limit, offset int) ([]player.Player, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	raw, err := c.get(ctx, endpointPlayers, "/players?"+query.Encode(), c.listTimeout)
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, crerr.Wrap(err, "decode players page")
	}

	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, player.FromMap(item))
	}
	return out, nil
}

// LoadAll walks the roster with an offset cursor until an empty or short page.
// A non-200 page ends the walk and the accumulated roster counts as complete.
// Any other failure (transport, decoding, open circuit, cancellation) returns
// the partial roster marked with player.ErrIncompleteRoster.
func (c *Client) LoadAll(ctx context.Context) ([]player.Player, error) {
	all := make([]player.Player, 0, c.pageSize)
	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			c.logger.WarnContext(ctx, "player roster load cancelled", "loaded", len(all), "error", err)
			return all, crerr.Mark(crerr.Wrap(err, "load player roster"), player.ErrIncompleteRoster)
		}

		page, err := c.ListPlayers(ctx, c.pageSize, offset)
		if err != nil {
			if crerr.Is(err, errUpstreamStatus) {
				c.logger.WarnContext(ctx, "player roster page rejected, keeping partial roster",
					"offset", offset,
					"loaded", len(all),
					"error", err,
				)
				break
			}
			c.logger.WarnContext(ctx, "player roster page failed",
				"offset", offset,
				"loaded", len(all),
				"error", err,
			)
			return all, crerr.Mark(crerr.Wrapf(err, "load player roster at offset %d", offset), player.ErrIncompleteRoster)
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
		if len(page) < c.pageSize {
			break
		}
		offset += c.pageSize
	}

	c.logger.InfoContext(ctx, "player roster loaded", "players", len(all))
	return all, nil
}

// GetProfile returns found=false for any upstream failure.
func (c *Client) GetProfile(ctx context.Context, playerID string) (player.Player, bool, error) {
	raw, err := c.get(ctx, endpointProfile, "/players/"+url.PathEscape(playerID)+"/profile", c.profileTimeout)
	if err != nil {
		c.logSoftFailure(ctx, "player profile unavailable", playerID, err)
		return player.Player{}, false, nil
	}

	var doc map[string]any
	if err := sonic.Unmarshal(raw, &doc); err != nil || doc == nil {
		c.logSoftFailure(ctx, "player profile undecodable", playerID, crerr.Wrap(coalesceErr(err), "decode profile"))
		return player.Player{}, false, nil
	}
	return player.FromMap(doc), true, nil
}

// GetStats returns found=false for any upstream failure.
func (c *Client) GetStats(ctx context.Context, playerID string) (player.Stats, bool, error) {
	raw, err := c.get(ctx, endpointStats, "/players/"+url.PathEscape(playerID)+"/stats", c.statsTimeout)
	if err != nil {
		c.logSoftFailure(ctx, "player stats unavailable", playerID, err)
		return nil, false, nil
	}

	var doc map[string]any
	if err := sonic.Unmarshal(raw, &doc); err != nil || doc == nil {
		c.logSoftFailure(ctx, "player stats undecodable", playerID, crerr.Wrap(coalesceErr(err), "decode stats"))
		return nil, false, nil
	}
	return player.Stats(doc), true, nil
}

func (c *Client) get(ctx context.Context, endpoint, pathAndQuery string, timeout time.Duration) ([]byte, error) {
	started := time.Now()
	out, err := c.breaker.Execute(func() (any, error) {
		return c.execute(ctx, c.baseURL+pathAndQuery, timeout)
	})
	c.observe(endpoint, outcomeOf(err), time.Since(started))
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) execute(ctx context.Context, fullURL string, timeout time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "send request %s", fullURL), errUpstreamTransient)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status == http.StatusOK {
		return body, nil
	}

	var statusErr error
	switch {
	case status == http.StatusNotFound:
		statusErr = crerr.Mark(crerr.Newf("upstream status=%d", status), errUpstreamNotFound)
	case status >= http.StatusInternalServerError || status == http.StatusTooManyRequests:
		statusErr = crerr.Mark(crerr.Newf("upstream status=%d body=%s", status, abbreviateBody(body)), errUpstreamTransient)
	default:
		statusErr = crerr.Newf("upstream status=%d body=%s", status, abbreviateBody(body))
	}
	return nil, crerr.Mark(statusErr, errUpstreamStatus)
}

func (c *Client) observe(endpoint, outcome string, took time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveUpstream(endpoint, outcome, took)
}

func (c *Client) logSoftFailure(ctx context.Context, msg, playerID string, err error) {
	if crerr.Is(err, errUpstreamNotFound) {
		c.logger.DebugContext(ctx, msg, "player_id", playerID, "error", err)
		return
	}
	c.logger.WarnContext(ctx, msg, "player_id", playerID, "error", err)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errUpstreamTransient)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case crerr.Is(err, resilience.ErrCircuitOpen):
		return "circuit_open"
	case crerr.Is(err, errUpstreamNotFound):
		return "not_found"
	case crerr.Is(err, errUpstreamTransient):
		return "transient_error"
	case crerr.Is(err, context.Canceled), crerr.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "status_error"
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func coalesceErr(err error) error {
	if err == nil {
		return crerr.New("empty document")
	}
	return err
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
