package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"leaguelens/internal/models"
)

func (c *Client) GetUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, fmt.Sprintf("/user/%s", username), &user); err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &user, nil
}

func (c *Client) GetUserLeagues(ctx context.Context, userID string, season int) ([]models.League, error) {
	var leagues []models.League
	endpoint := fmt.Sprintf("/user/%s/leagues/nfl/%d", userID, season)
	if err := c.getList(ctx, endpoint, &leagues); err != nil {
		return nil, fmt.Errorf("fetching user leagues: %w", err)
	}
	return leagues, nil
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	var league models.League
	if err := c.get(ctx, fmt.Sprintf("/league/%s", leagueID), &league); err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}
	return &league, nil
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var rosters []models.Roster
	if err := c.getList(ctx, fmt.Sprintf("/league/%s/rosters", leagueID), &rosters); err != nil {
		return nil, fmt.Errorf("fetching rosters: %w", err)
	}
	return rosters, nil
}

func (c *Client) GetLeagueUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	var users []models.User
	if err := c.getList(ctx, fmt.Sprintf("/league/%s/users", leagueID), &users); err != nil {
		return nil, fmt.Errorf("fetching league users: %w", err)
	}
	return users, nil
}

func (c *Client) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.Matchup, error) {
	var matchups []models.Matchup
	endpoint := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	if err := c.getList(ctx, endpoint, &matchups); err != nil {
		return nil, fmt.Errorf("fetching matchups for week %d: %w", week, err)
	}
	return matchups, nil
}

// GetMatchupsRange fetches matchups for every week in [startWeek, endWeek]
// concurrently. A week that fails to fetch is returned empty rather than
// failing the whole range.
func (c *Client) GetMatchupsRange(ctx context.Context, leagueID string, startWeek, endWeek int) (map[int][]models.Matchup, error) {
	byWeek := make(map[int][]models.Matchup, endWeek-startWeek+1)
	results := make([][]models.Matchup, endWeek-startWeek+1)

	g, gctx := errgroup.WithContext(ctx)
	for week := startWeek; week <= endWeek; week++ {
		week := week
		g.Go(func() error {
			matchups, err := c.GetMatchups(gctx, leagueID, week)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Error("Failed to fetch matchups, treating week as empty", "week", week, "error", err)
				return nil
			}
			results[week-startWeek] = matchups
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for week := startWeek; week <= endWeek; week++ {
		byWeek[week] = results[week-startWeek]
	}
	return byWeek, nil
}

// GetTransactions fetches one week of transactions. Entries that do not
// carry a recognized type and status are skipped, never fatal.
func (c *Client) GetTransactions(ctx context.Context, leagueID string, week int) ([]models.Transaction, error) {
	var raw []json.RawMessage
	endpoint := fmt.Sprintf("/league/%s/transactions/%d", leagueID, week)
	if err := c.getList(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetching transactions for week %d: %w", week, err)
	}

	transactions := make([]models.Transaction, 0, len(raw))
	for _, entry := range raw {
		var txn models.Transaction
		if err := json.Unmarshal(entry, &txn); err != nil {
			continue
		}
		if !validTransactionType(txn.Type) || !validTransactionStatus(txn.Status) {
			continue
		}
		txn.Week = week
		transactions = append(transactions, txn)
	}
	return transactions, nil
}

// GetAllTransactions fetches the full season transaction stream concurrently
// and returns it in deterministic order: week ascending, then creation
// timestamp, then transaction ID. Downstream replay depends on this order.
func (c *Client) GetAllTransactions(ctx context.Context, leagueID string, weeks int) ([]models.Transaction, error) {
	results := make([][]models.Transaction, weeks)

	g, gctx := errgroup.WithContext(ctx)
	for week := 1; week <= weeks; week++ {
		week := week
		g.Go(func() error {
			txns, err := c.GetTransactions(gctx, leagueID, week)
			if err != nil {
				return err
			}
			results[week-1] = txns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.Transaction
	for _, txns := range results {
		all = append(all, txns...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Week != all[j].Week {
			return all[i].Week < all[j].Week
		}
		if all[i].Created != all[j].Created {
			return all[i].Created < all[j].Created
		}
		return all[i].TransactionID < all[j].TransactionID
	})
	return all, nil
}

func (c *Client) GetTradedPicks(ctx context.Context, leagueID string) ([]models.TradedPick, error) {
	var picks []models.TradedPick
	if err := c.getList(ctx, fmt.Sprintf("/league/%s/traded_picks", leagueID), &picks); err != nil {
		return nil, fmt.Errorf("fetching traded picks: %w", err)
	}
	return picks, nil
}

func (c *Client) GetDrafts(ctx context.Context, leagueID string) ([]models.Draft, error) {
	var drafts []models.Draft
	if err := c.getList(ctx, fmt.Sprintf("/league/%s/drafts", leagueID), &drafts); err != nil {
		return nil, fmt.Errorf("fetching drafts: %w", err)
	}
	return drafts, nil
}

func (c *Client) GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftSelection, error) {
	var picks []models.DraftSelection
	if err := c.getList(ctx, fmt.Sprintf("/draft/%s/picks", draftID), &picks); err != nil {
		return nil, fmt.Errorf("fetching draft picks: %w", err)
	}
	return picks, nil
}

// GetAllPlayers returns the NFL player directory, served from the TTL cache
// when fresh. Entries that fail to decode are dropped.
func (c *Client) GetAllPlayers(ctx context.Context) (map[string]models.Player, error) {
	if cached, ok := c.players.Get(playersCacheKey); ok {
		return cached, nil
	}

	var raw map[string]json.RawMessage
	if err := c.getList(ctx, "/players/nfl", &raw); err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}

	players := make(map[string]models.Player, len(raw))
	for playerID, entry := range raw {
		var p models.Player
		if err := json.Unmarshal(entry, &p); err != nil {
			continue
		}
		p.PlayerID = playerID
		players[playerID] = p
	}

	c.players.Add(playersCacheKey, players)
	return players, nil
}

func (c *Client) GetNFLState(ctx context.Context) (*models.NFLState, error) {
	var state models.NFLState
	if err := c.get(ctx, "/state/nfl", &state); err != nil {
		return nil, fmt.Errorf("fetching NFL state: %w", err)
	}
	return &state, nil
}

func validTransactionType(t string) bool {
	switch t {
	case models.TransactionTypeTrade, models.TransactionTypeWaiver,
		models.TransactionTypeFreeAgent, models.TransactionTypeCommissioner:
		return true
	}
	return false
}

func validTransactionStatus(s string) bool {
	switch s {
	case models.TransactionStatusComplete, models.TransactionStatusPending,
		models.TransactionStatusFailed:
		return true
	}
	return false
}
