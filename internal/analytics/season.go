package analytics

import (
	"sync"

	"leaguelens/internal/league"
	"leaguelens/internal/models"
)

// Season bundles everything one analysis run needs: the league context, the
// per-week matchup snapshots and the deterministically ordered transaction
// stream. It is assembled once by the service layer and read concurrently by
// the analysis functions, which never mutate it.
type Season struct {
	Ctx          *league.Context
	Weeks        int
	Matchups     map[int][]models.Matchup
	Transactions []models.Transaction
	Drafts       []models.Draft
	DraftPicks   []models.DraftSelection

	pointsByPlayer map[string]map[int]float64

	timelinesOnce sync.Once
	timelines     map[string][]models.OwnershipInterval
}

// Timelines returns the reconstructed ownership intervals for every player,
// built once and shared by the attribution reports. Callers must not mutate
// the returned intervals; copy before annotating.
func (s *Season) Timelines() map[string][]models.OwnershipInterval {
	s.timelinesOnce.Do(func() {
		s.timelines = OwnershipTimelines(s)
	})
	return s.timelines
}

func NewSeason(ctx *league.Context, weeks int, matchups map[int][]models.Matchup, transactions []models.Transaction) *Season {
	s := &Season{
		Ctx:            ctx,
		Weeks:          weeks,
		Matchups:       matchups,
		Transactions:   transactions,
		pointsByPlayer: make(map[string]map[int]float64),
	}
	for week, weekMatchups := range matchups {
		for _, m := range weekMatchups {
			for playerID, points := range m.PlayersPoints {
				byWeek, ok := s.pointsByPlayer[playerID]
				if !ok {
					byWeek = make(map[int]float64, weeks)
					s.pointsByPlayer[playerID] = byWeek
				}
				byWeek[week] = points
			}
		}
	}
	return s
}

// TeamWeek returns the matchup snapshot for one roster in one week.
func (s *Season) TeamWeek(rosterID, week int) (models.Matchup, bool) {
	for _, m := range s.Matchups[week] {
		if m.RosterID == rosterID {
			return m, true
		}
	}
	return models.Matchup{}, false
}

// PlayerPoints returns a player's week → points map across the season.
func (s *Season) PlayerPoints(playerID string) map[int]float64 {
	return s.pointsByPlayer[playerID]
}

// PlayerPointsInRange sums a player's points over [startWeek, endWeek].
func (s *Season) PlayerPointsInRange(playerID string, startWeek, endWeek int) float64 {
	total := 0.0
	for week, points := range s.pointsByPlayer[playerID] {
		if week >= startWeek && week <= endWeek {
			total += points
		}
	}
	return total
}

// Pairings groups a week's matchup snapshots into head-to-head pairs.
// Snapshots without a complete pair (bye or median game) are skipped.
func (s *Season) Pairings(week int) [][2]models.Matchup {
	byID := make(map[int][]models.Matchup)
	order := make([]int, 0)
	for _, m := range s.Matchups[week] {
		if m.MatchupID == 0 {
			continue
		}
		if _, seen := byID[m.MatchupID]; !seen {
			order = append(order, m.MatchupID)
		}
		byID[m.MatchupID] = append(byID[m.MatchupID], m)
	}

	pairs := make([][2]models.Matchup, 0, len(order))
	for _, id := range order {
		teams := byID[id]
		if len(teams) == 2 {
			pairs = append(pairs, [2]models.Matchup{teams[0], teams[1]})
		}
	}
	return pairs
}

// Opponent returns the roster's opponent snapshot for a week.
func (s *Season) Opponent(rosterID, week int) (models.Matchup, bool) {
	for _, pair := range s.Pairings(week) {
		if pair[0].RosterID == rosterID {
			return pair[1], true
		}
		if pair[1].RosterID == rosterID {
			return pair[0], true
		}
	}
	return models.Matchup{}, false
}
