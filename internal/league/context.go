package league

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"leaguelens/internal/api/sleeper"
	"leaguelens/internal/models"
)

// Context is an immutable snapshot of a league: settings, users, rosters and
// the player directory, fetched once and then shared read-only by every
// computation. Cache freshness lives in the API client, not here.
type Context struct {
	League  models.League
	Users   []models.User
	Rosters []models.Roster
	Players map[string]models.Player

	userByID    map[string]models.User
	rosterByID  map[int]models.Roster
	rosterOwner map[int]string
}

func NewContext(lg models.League, users []models.User, rosters []models.Roster, players map[string]models.Player) *Context {
	ctx := &Context{
		League:      lg,
		Users:       users,
		Rosters:     rosters,
		Players:     players,
		userByID:    make(map[string]models.User, len(users)),
		rosterByID:  make(map[int]models.Roster, len(rosters)),
		rosterOwner: make(map[int]string, len(rosters)),
	}
	for _, u := range users {
		ctx.userByID[u.UserID] = u
	}
	for _, r := range rosters {
		ctx.rosterByID[r.RosterID] = r
		if r.OwnerID != "" {
			ctx.rosterOwner[r.RosterID] = r.OwnerID
		}
	}
	return ctx
}

// Load fetches everything a Context needs in one concurrent pass.
func Load(ctx context.Context, client *sleeper.Client, leagueID string) (*Context, error) {
	var (
		lg      *models.League
		users   []models.User
		rosters []models.Roster
		players map[string]models.Player
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lg, err = client.GetLeague(gctx, leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = client.GetLeagueUsers(gctx, leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		rosters, err = client.GetRosters(gctx, leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = client.GetAllPlayers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading league context: %w", err)
	}

	return NewContext(*lg, users, rosters, players), nil
}

func (c *Context) LeagueID() string {
	return c.League.LeagueID
}

func (c *Context) LeagueName() string {
	return c.League.Name
}

func (c *Context) TeamName(rosterID int) string {
	if userID, ok := c.rosterOwner[rosterID]; ok {
		if user, ok := c.userByID[userID]; ok {
			return user.TeamName()
		}
	}
	return fmt.Sprintf("Team %d", rosterID)
}

func (c *Context) Roster(rosterID int) (models.Roster, bool) {
	r, ok := c.rosterByID[rosterID]
	return r, ok
}

func (c *Context) RosterIDs() []int {
	ids := make([]int, 0, len(c.rosterByID))
	for id := range c.rosterByID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (c *Context) PlayerName(playerID string) string {
	if p, ok := c.Players[playerID]; ok {
		return p.DisplayName()
	}
	return playerID
}

func (c *Context) PlayerPosition(playerID string) string {
	if p, ok := c.Players[playerID]; ok && p.Position != "" {
		return p.Position
	}
	return "Unknown"
}

// FindPlayer resolves a free-form name to a rostered player using Levenshtein
// similarity, the same matching the bot uses for team names.
func (c *Context) FindPlayer(name string) (models.Player, int, bool) {
	const threshold = 0.7

	var bestPlayer models.Player
	bestRoster := 0
	bestScore := -1.0

	for _, roster := range c.Rosters {
		for _, playerID := range roster.Players {
			player, ok := c.Players[playerID]
			if !ok {
				continue
			}
			similarity := nameSimilarity(name, player.DisplayName())
			if similarity > threshold && similarity > bestScore {
				bestScore = similarity
				bestPlayer = player
				bestRoster = roster.RosterID
			}
		}
	}

	return bestPlayer, bestRoster, bestScore >= 0
}

// FindRoster resolves a free-form team name to a roster ID.
func (c *Context) FindRoster(name string) (int, bool) {
	const threshold = 0.6

	bestRoster := 0
	bestScore := -1.0

	for _, roster := range c.Rosters {
		similarity := nameSimilarity(name, c.TeamName(roster.RosterID))
		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			bestRoster = roster.RosterID
		}
	}

	return bestRoster, bestScore >= 0
}

func nameSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}
