package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"leaguelens/internal/config"
	"leaguelens/internal/models"
)

// ErrNotFound is returned when the Sleeper API answers 404 for a resource
// whose identity matters to the caller (league, user, draft).
var ErrNotFound = errors.New("sleeper: not found")

const playersCacheKey = "nfl"

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter

	// The player directory is a ~15MB payload, so it is cached with a TTL.
	// Freshness is the client's concern; analysis code only ever sees an
	// immutable snapshot of it.
	players *expirable.LRU[string, map[string]models.Player]
}

func NewClient(cfg config.SleeperAPI) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		players:    expirable.NewLRU[string, map[string]models.Player](1, nil, cfg.PlayersCacheTTL),
	}
}

func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status code: %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

// getList treats a 404 as an empty result, which is how Sleeper reports
// list resources that simply do not exist yet.
func (c *Client) getList(ctx context.Context, endpoint string, result any) error {
	err := c.get(ctx, endpoint, result)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
