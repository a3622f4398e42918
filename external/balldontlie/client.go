package balldontlie

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/nbanima/pickslate/internal/platform/logging"
	"github.com/nbanima/pickslate/internal/platform/resilience"
	"github.com/nbanima/pickslate/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.balldontlie.io/v1"
	defaultTimeout   = 20 * time.Second
	defaultPerPage   = 100
	maxResponseBytes = 4 << 20
)

var errBalldontlieTransient = crerr.New("balldontlie transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the balldontlie NBA API. Every list endpoint is cursor
// paginated; the client walks cursors to exhaustion and flattens the pages.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	apiKey         string
	timeout        time.Duration
	maxRetries     int
	retryBackoff   time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		retryBackoff:   time.Second,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ListTeams returns the current NBA franchises. The feed also carries defunct
// franchises with no conference assignment; those are skipped.
func (c *Client) ListTeams(ctx context.Context) ([]usecase.ProviderTeam, error) {
	out := make([]usecase.ProviderTeam, 0, 30)

	err := c.forEachPage(ctx, "/teams", nil, func(raw []byte) (*int64, error) {
		var envelope teamsEnvelope
		if err := sonic.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("decode teams payload: %w", err)
		}
		for _, row := range envelope.Data {
			if row.ID <= 0 || strings.TrimSpace(row.Conference) == "" {
				continue
			}
			out = append(out, usecase.ProviderTeam{
				ProviderTeamID: strconv.FormatInt(row.ID, 10),
				Abbr:           strings.TrimSpace(row.Abbreviation),
				Name:           strings.TrimSpace(row.FullName),
			})
		}
		return envelope.Meta.NextCursor, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	return out, nil
}

// ListActivePlayers returns the active roster for one provider team id.
func (c *Client) ListActivePlayers(ctx context.Context, teamProviderID string) ([]usecase.ProviderPlayer, error) {
	teamProviderID = strings.TrimSpace(teamProviderID)
	if teamProviderID == "" {
		return nil, fmt.Errorf("team provider id must not be empty")
	}

	out := make([]usecase.ProviderPlayer, 0, 18)
	query := map[string]string{"team_ids[]": teamProviderID}

	err := c.forEachPage(ctx, "/players/active", query, func(raw []byte) (*int64, error) {
		var envelope playersEnvelope
		if err := sonic.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("decode players payload: %w", err)
		}
		for _, row := range envelope.Data {
			if row.ID <= 0 {
				continue
			}
			out = append(out, usecase.ProviderPlayer{
				ProviderPlayerID: strconv.FormatInt(row.ID, 10),
				FirstName:        strings.TrimSpace(row.FirstName),
				LastName:         strings.TrimSpace(row.LastName),
				TeamProviderID:   strconv.FormatInt(row.Team.ID, 10),
			})
		}
		return envelope.Meta.NextCursor, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch active players team_id=%s: %w", teamProviderID, err)
	}
	return out, nil
}

// ListGamesByDate returns the schedule for one calendar date. Rows that only
// carry a date collapse to midnight UTC, which downstream code treats as the
// date-only sentinel.
func (c *Client) ListGamesByDate(ctx context.Context, slateDate string) ([]usecase.ProviderGame, error) {
	slateDate = strings.TrimSpace(slateDate)
	if slateDate == "" {
		return nil, fmt.Errorf("slate date must not be empty")
	}

	out := make([]usecase.ProviderGame, 0, 12)
	query := map[string]string{"dates[]": slateDate}

	err := c.forEachPage(ctx, "/games", query, func(raw []byte) (*int64, error) {
		var envelope gamesEnvelope
		if err := sonic.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("decode games payload: %w", err)
		}
		for _, row := range envelope.Data {
			if row.ID <= 0 {
				continue
			}
			startsAt, parseErr := parseGameStart(row)
			if parseErr != nil {
				return nil, fmt.Errorf("parse start for game %d: %w", row.ID, parseErr)
			}
			out = append(out, usecase.ProviderGame{
				ProviderGameID: strconv.FormatInt(row.ID, 10),
				Season:         strconv.Itoa(row.Season),
				Status:         strings.TrimSpace(row.Status),
				StartsAt:       startsAt,
				HomeTeamAbbr:   strings.TrimSpace(row.HomeTeam.Abbreviation),
				AwayTeamAbbr:   strings.TrimSpace(row.VisitorTeam.Abbreviation),
			})
		}
		return envelope.Meta.NextCursor, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch games date=%s: %w", slateDate, err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ProviderGameID < out[j].ProviderGameID
	})
	return out, nil
}

// forEachPage fetches a cursor-paginated endpoint until the provider stops
// returning a next cursor. The page callback decodes its own envelope so each
// endpoint keeps its concrete row type.
func (c *Client) forEachPage(ctx context.Context, path string, query map[string]string, page func(raw []byte) (*int64, error)) error {
	cursor := ""
	for {
		merged := make(map[string]string, len(query)+2)
		for key, value := range query {
			merged[key] = value
		}
		merged["per_page"] = strconv.Itoa(defaultPerPage)
		if cursor != "" {
			merged["cursor"] = cursor
		}

		raw, err := c.doRaw(ctx, path, merged)
		if err != nil {
			return err
		}

		next, err := page(raw)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		cursor = strconv.FormatInt(*next, 10)
	}
}

func (c *Client) doRaw(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "balldontlie circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.buildURL(path, query)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errBalldontlieTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, retryable, err := c.doAttempt(fullURL)
		if err == nil {
			return raw, nil
		}
		if !retryable {
			c.logger.WarnContext(ctx, "balldontlie request failed", "url", fullURL, "error", err)
			return nil, err
		}
		lastErr = err

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "balldontlie request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doAttempt(fullURL string) (raw []byte, retryable bool, err error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.apiKey != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, c.apiKey)
	}

	if doErr := c.httpClient.DoTimeout(req, resp, c.timeout); doErr != nil {
		return nil, true, crerr.Wrapf(errBalldontlieTransient, "send request: %s", sanitizeSensitiveText(doErr.Error(), c.apiKey))
	}

	body := resp.Body()
	if len(body) > maxResponseBytes {
		body = body[:maxResponseBytes]
	}
	// The response buffer is pooled; copy before release.
	raw = append([]byte(nil), body...)

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return raw, false, nil
	case isRetryableStatus(status):
		return nil, true, crerr.Wrapf(errBalldontlieTransient, "provider status=%d body=%s", status, abbreviateBody(raw))
	default:
		return nil, false, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
	}
}

// buildURL keeps query keys sorted so identical requests share one in-flight
// fetch regardless of map iteration order.
func (c *Client) buildURL(path string, query map[string]string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(c.baseURL)
	buf.WriteString(path)     

	if len(query) > 0 {
		keys := make([]string, 0, len(query))
		for key := range query {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for i, key := range keys {
			if i == 0 {
				buf.WriteByte('?')
			} else {
				buf.WriteByte('&')
			}
			buf.WriteString(url.QueryEscape(key))         
			buf.WriteByte('=')                            
			buf.WriteString(url.QueryEscape(query[key]))  
		}
	}
	return buf.String()
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return value
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
