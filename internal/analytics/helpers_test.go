package analytics

import (
	"fmt"

	"leaguelens/internal/league"
	"leaguelens/internal/models"
)

var testTeamNames = []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"}

// newTestContext builds a league snapshot with numTeams rosters owned by
// users named from testTeamNames. held maps roster ID to its end-of-season
// player list.
func newTestContext(numTeams int, positions []string, players map[string]models.Player, held map[int][]string) *league.Context {
	lg := models.League{
		LeagueID:        "league-1",
		Name:            "Test League",
		TotalRosters:    numTeams,
		RosterPositions: positions,
		Settings:        models.LeagueSettings{WaiverBudget: 100},
	}

	var users []models.User
	var rosters []models.Roster
	for i := 1; i <= numTeams; i++ {
		userID := fmt.Sprintf("user-%d", i)
		users = append(users, models.User{UserID: userID, DisplayName: testTeamNames[i-1]})
		rosters = append(rosters, models.Roster{
			RosterID: i,
			OwnerID:  userID,
			LeagueID: "league-1",
			Players:  held[i],
		})
	}
	return league.NewContext(lg, users, rosters, players)
}

func testPlayer(id, name, position string) models.Player {
	return models.Player{PlayerID: id, FullName: name, Position: position}
}

// newMatchup derives Points and the combined player list from the starters
// and bench, mirroring what the API returns.
func newMatchup(rosterID, matchupID int, starters, bench []string, points map[string]float64) models.Matchup {
	all := append(append([]string{}, starters...), bench...)
	total := 0.0
	for _, id := range starters {
		total += points[id]
	}
	return models.Matchup{
		RosterID:      rosterID,
		MatchupID:     matchupID,
		Points:        total,
		Starters:      starters,
		Players:       all,
		PlayersPoints: points,
	}
}

// pairedWeek builds one week of head-to-head matchups from per-roster scores,
// pairing rosters (1,2), (3,4), ... in order. Each roster scores through a
// single synthetic starter.
func pairedWeek(scores map[int]float64) []models.Matchup {
	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	// map order is random; pair by roster ID
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}

	matchups := make([]models.Matchup, 0, len(ids))
	for i, rosterID := range ids {
		starter := fmt.Sprintf("starter-%d", rosterID)
		matchups = append(matchups, newMatchup(rosterID, i/2+1,
			[]string{starter}, nil,
			map[string]float64{starter: scores[rosterID]}))
	}
	return matchups
}
