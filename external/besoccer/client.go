package besoccer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/resilience"
	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

const (
	defaultBaseURL     = "https://apiclient.besoccerapps.com/scripts/api/api.php"
	defaultTimeout     = 10 * time.Second
	maxResponseBytes   = 6 << 20
	defaultRecentLimit = 10
)

var apiKeyParamRegex = regexp.MustCompile(`key=[^&\s"']+`)
var errProviderUnavailable = crerr.New("besoccer provider unavailable")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the query-parameter RPC API. Every fetch method returns
// an empty slice on any transport or payload problem: callers cannot tell
// a failed call from a genuinely empty one and are expected to fall back
// to locally stored data.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
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
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// LeaguesByCountry lists the competitions the provider tracks for a country.
func (c *Client) LeaguesByCountry(ctx context.Context, country string) []usecase.ProviderLeague {
	items := c.fetchRecords(ctx, "leagues", map[string]string{"country": strings.TrimSpace(country)})
	out := make([]usecase.ProviderLeague, 0, len(items))
	for _, item := range items {
		mapped := mapLeague(item)
		if mapped.APIRef == "" {
			continue
		}
		if mapped.Country == "" {
			mapped.Country = strings.TrimSpace(country)
		}
		out = append(out, mapped)
	}
	return out
}

// TeamsByLeague lists the clubs registered in one competition.
func (c *Client) TeamsByLeague(ctx context.Context, leagueRef string) []usecase.ProviderTeam {
	items := c.fetchRecords(ctx, "teams", map[string]string{"league": strings.TrimSpace(leagueRef)})
	out := make([]usecase.ProviderTeam, 0, len(items))
	for _, item := range items {
		mapped := mapTeam(item)
		if mapped.APIRef == "" {
			continue
		}
		out = append(out, mapped)
	}
	return out
}

// MatchesByLeague lists fixtures for a competition inside a date window.
func (c *Client) MatchesByLeague(ctx context.Context, leagueRef string, from, to time.Time) []usecase.ProviderMatch {
	params := map[string]string{"league": strings.TrimSpace(leagueRef)}
	if !from.IsZero() {
		params["date_from"] = from.UTC().Format("2006-01-02")
	}
	if !to.IsZero() {
		params["date_to"] = to.UTC().Format("2006-01-02")
	}

	items := c.fetchRecords(ctx, "matchs", params)
	out := make([]usecase.ProviderMatch, 0, len(items))
	for _, item := range items {
		mapped := mapMatch(item)
		if mapped.HomeTeamRef == "" || mapped.AwayTeamRef == "" {
			continue
		}
		out = append(out, mapped)
	}
	return out
}

// RecentMatchesByTeam lists a team's latest fixtures, newest first.
func (c *Client) RecentMatchesByTeam(ctx context.Context, teamRef string, limit int) []usecase.ProviderMatch {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	params := map[string]string{
		"team":  strings.TrimSpace(teamRef),
		"limit": fmt.Sprintf("%d", limit),
	}

	items := c.fetchRecords(ctx, "team_matchs", params)
	out := make([]usecase.ProviderMatch, 0, len(items))
	for _, item := range items {
		mapped := mapMatch(item)
		if mapped.HomeTeamRef == "" || mapped.AwayTeamRef == "" {
			continue
		}
		out = append(out, mapped)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// StandingsByLeague returns the provider's league table in its own order.
func (c *Client) StandingsByLeague(ctx context.Context, leagueRef string) []usecase.ProviderStanding {
	items := c.fetchRecords(ctx, "tables", map[string]string{"league": strings.TrimSpace(leagueRef)})
	out := make([]usecase.ProviderStanding, 0, len(items))
	for _, item := range items {
		mapped := mapStanding(item)
		if mapped.TeamRef == "" && mapped.TeamName == "" {
			continue
		}
		if mapped.Position == 0 {
			mapped.Position = len(out) + 1
		}
		out = append(out, mapped)
	}
	return out
}

// TopScorersByLeague returns the competition's leading goal scorers.
func (c *Client) TopScorersByLeague(ctx context.Context, leagueRef string, limit int) []usecase.ProviderScorer {
	items := c.fetchRecords(ctx, "topscorers", map[string]string{"league": strings.TrimSpace(leagueRef)})
	out := make([]usecase.ProviderScorer, 0, len(items))
	for _, item := range items {
		mapped := mapScorer(item)
		if mapped.PlayerName == "" {
			continue
		}
		out = append(out, mapped)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// PlayersByTeam returns one team's registered squad.
func (c *Client) PlayersByTeam(ctx context.Context, teamRef string) []usecase.ProviderPlayer {
	items := c.fetchRecords(ctx, "players", map[string]string{"team": strings.TrimSpace(teamRef)})
	out := make([]usecase.ProviderPlayer, 0, len(items))
	for _, item := range items {
		mapped := mapPlayer(item)
		if mapped.Name == "" {
			continue
		}
		out = append(out, mapped)
	}
	return out
}

// fetchRecords issues one provider call and flattens the envelope into
// loose records. All failures collapse to an empty slice.
func (c *Client) fetchRecords(ctx context.Context, method string, params map[string]string) []map[string]any {
	raw, err := c.doJSON(ctx, method, params)
	if err != nil {
		c.logger.WarnContext(ctx, "besoccer request failed, returning empty result",
			"method", method,
			"error", sanitizeSensitiveText(err.Error(), c.token),
		)
		return nil
	}
	return extractRecords(raw)
}

func (c *Client) doJSON(ctx context.Context, method string, params map[string]string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "besoccer circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: circuit open", errProviderUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range params {
		if strings.TrimSpace(value) == "" {
			continue
		}
		values.Set(key, value)
	}
	values.Set("req", method)
	values.Set("format", "json")
	values.Set("key", c.token)

	fullURL := c.baseURL + "?" + values.Encode()

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil {
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

// executeRequest performs exactly one attempt. Callers fall back to local
// data instead of retrying.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errProviderUnavailable, sanitizeSensitiveText(err.Error(), c.token))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if readErr != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errProviderUnavailable, readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: provider status=%d body=%s", errProviderUnavailable, resp.StatusCode, abbreviateBody(raw))
	}
	return raw, nil
}

// extractRecords tolerates the envelope shapes the provider emits across
// endpoint generations: a bare array, {"data": [...]}, {"team": [...]},
// {"match": [...]}, {"table": [...]}, or a single object.
func extractRecords(raw []byte) []map[string]any {
	var root any
	if err := sonic.Unmarshal(raw, &root); err != nil {
		return nil
	}

	switch typed := root.(type) {
	case []any:
		return toRecordSlice(typed)
	case map[string]any:
		for _, key := range []string{"data", "leagues", "league", "team", "teams", "match", "matches", "table", "player", "players", "topscorer"} {
			if nested, ok := typed[key]; ok {
				if list, ok := nested.([]any); ok {
					return toRecordSlice(list)
				}
				if obj, ok := nested.(map[string]any); ok {
					return []map[string]any{obj}
				}
			}
		}
		// An error body still decodes as an object; treat it as empty.
		if _, hasErr := typed["error"]; hasErr {
			return nil
		}
		return []map[string]any{typed}
	default:
		return nil
	}
}

func toRecordSlice(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	value = apiKeyParamRegex.ReplaceAllString(value, "key=REDACTED")
	return value
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
