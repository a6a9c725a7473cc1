package nhl

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/propwatch/nhl-hitrate/internal/domain/gamelog"
	"github.com/propwatch/nhl-hitrate/internal/domain/roster"
	"github.com/propwatch/nhl-hitrate/internal/domain/schedule"
	"github.com/propwatch/nhl-hitrate/internal/platform/logging"
	"github.com/propwatch/nhl-hitrate/internal/platform/resilience"
	"github.com/propwatch/nhl-hitrate/internal/usecase"
)

const (
	defaultBaseURL = "https://api-web.nhle.com/v1"

	// gameTypeRegularSeason filters game logs to regular season games only.
	gameTypeRegularSeason = 2

	maxResponseBytes = 6 << 20
)

var errNHLTransient = crerr.New("nhl api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
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
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.ProbeLimit),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchClubs returns all active clubs from the current standings table.
func (c *Client) FetchClubs(ctx context.Context) ([]roster.Club, error) {
	var envelope standingsEnvelope
	if err := c.doJSON(ctx, "/standings/now", &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}

	clubs := mapStandingsToClubs(envelope.Standings)
	if len(clubs) == 0 {
		return nil, fmt.Errorf("standings payload contained no clubs")
	}
	return clubs, nil
}

func (c *Client) FetchRoster(ctx context.Context, clubAbbrev, season string) ([]roster.Player, error) {
	clubAbbrev = strings.ToUpper(strings.TrimSpace(clubAbbrev))
	if clubAbbrev == "" {
		return nil, fmt.Errorf("club abbreviation is required")
	}
	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("season is required")
	}

	path := fmt.Sprintf("/roster/%s/%s", clubAbbrev, season)
	var envelope rosterEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch roster club=%s season=%s: %w", clubAbbrev, season, err)
	}

	return mapRosterToPlayers(envelope, clubAbbrev), nil
}

func (c *Client) FetchGameLog(ctx context.Context, playerID int64, season string) ([]gamelog.GameRecord, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("season is required")
	}

	path := fmt.Sprintf("/player/%d/game-log/%s/%d", playerID, season, gameTypeRegularSeason)
	var envelope gameLogEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch game log player_id=%d season=%s: %w", playerID, season, err)
	}

	return mapGameLogToRecords(envelope.GameLog), nil
}

func (c *Client) FetchClubSchedule(ctx context.Context, clubAbbrev, season string) ([]schedule.Game, error) {
	clubAbbrev = strings.ToUpper(strings.TrimSpace(clubAbbrev))
	if clubAbbrev == "" {
		return nil, fmt.Errorf("club abbreviation is required")
	}
	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("season is required")
	}

	path := fmt.Sprintf("/club-schedule-season/%s/%s", clubAbbrev, season)
	var envelope clubScheduleEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch club schedule club=%s season=%s: %w", clubAbbrev, season, err)
	}

	return mapClubScheduleToGames(envelope.Games), nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhl circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: league data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isNHLCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNHLTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errNHLTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: provider status=404 url=%s", usecase.ErrNotFound, fullURL)
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errNHLTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
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
	c.logger.WarnContext(ctx, "nhl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isNHLCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errNHLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
