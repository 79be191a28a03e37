package analytics

import (
	"math"
	"sort"

	"leaguelens/internal/models"
)

// slotEligibility maps a roster slot to the player positions allowed to fill
// it. QBs are only playable in QB and SUPER_FLEX slots.
var slotEligibility = map[string][]string{
	"QB":         {"QB"},
	"RB":         {"RB"},
	"WR":         {"WR"},
	"TE":         {"TE"},
	"K":          {"K"},
	"DEF":        {"DEF"},
	"FLEX":       {"RB", "WR", "TE"},
	"SUPER_FLEX": {"QB", "RB", "WR", "TE"},
	"REC_FLEX":   {"WR", "TE"},
}

var defaultRosterPositions = []string{"QB", "RB", "RB", "WR", "WR", "TE", "FLEX", "K", "DEF"}

type scoredPlayer struct {
	playerID string
	name     string
	points   float64
}

// WeeklyEfficiency compares a roster's actual score against its best possible
// lineup for one week. A missing snapshot yields a zero-valued report.
func WeeklyEfficiency(s *Season, rosterID, week int) models.EfficiencyReport {
	report := models.EfficiencyReport{
		Week:                week,
		RosterID:            rosterID,
		TeamName:            s.Ctx.TeamName(rosterID),
		MissedOpportunities: []models.MissedOpportunity{},
	}

	snapshot, ok := s.TeamWeek(rosterID, week)
	if !ok {
		return report
	}

	starterSet := make(map[string]bool, len(snapshot.Starters))
	for _, id := range snapshot.Starters {
		starterSet[id] = true
	}

	benchPoints := 0.0
	for _, playerID := range snapshot.Players {
		if playerID != "" && !starterSet[playerID] {
			benchPoints += snapshot.PlayersPoints[playerID]
		}
	}

	byPosition := groupByPosition(s, snapshot)

	potential := optimalLineupPoints(rosterPositions(s), byPosition)

	efficiency := 0.0
	if potential > 0 {
		efficiency = snapshot.Points / potential * 100
	}

	report.PointsScored = round2(snapshot.Points)
	report.PotentialPoints = round2(potential)
	report.EfficiencyPct = round1(efficiency)
	report.BenchPoints = round2(benchPoints)
	report.MissedOpportunities = missedOpportunities(byPosition, starterSet)
	return report
}

func rosterPositions(s *Season) []string {
	if len(s.Ctx.League.RosterPositions) > 0 {
		return s.Ctx.League.RosterPositions
	}
	return defaultRosterPositions
}

func groupByPosition(s *Season, snapshot models.Matchup) map[string][]scoredPlayer {
	byPosition := make(map[string][]scoredPlayer)
	for _, playerID := range snapshot.Players {
		if playerID == "" {
			continue
		}
		pos := s.Ctx.PlayerPosition(playerID)
		byPosition[pos] = append(byPosition[pos], scoredPlayer{
			playerID: playerID,
			name:     s.Ctx.PlayerName(playerID),
			points:   snapshot.PlayersPoints[playerID],
		})
	}
	for pos := range byPosition {
		players := byPosition[pos]
		sort.SliceStable(players, func(i, j int) bool {
			return players[i].points > players[j].points
		})
	}
	return byPosition
}

// optimalLineupPoints fills the slot template in declared order, greedily
// assigning the highest remaining eligible scorer to each slot. This is a
// deliberate simplification of exact maximum-weight assignment: a rigid slot
// earlier in the template can consume a player a later flex slot needed, so
// the result is a lower bound on the true optimum. It still never falls below
// the actual lineup's score.
func optimalLineupPoints(template []string, byPosition map[string][]scoredPlayer) float64 {
	optimal := 0.0
	used := make(map[string]bool)

	for _, slot := range template {
		if slot == "BN" || slot == "IR" || slot == "TAXI" {
			continue
		}
		eligible, ok := slotEligibility[slot]
		if !ok {
			continue
		}

		var best *scoredPlayer
		for _, pos := range eligible {
			for i := range byPosition[pos] {
				p := &byPosition[pos][i]
				if used[p.playerID] {
					continue
				}
				if best == nil || p.points > best.points {
					best = p
				}
				break
			}
		}
		if best != nil {
			optimal += best.points
			used[best.playerID] = true
		}
	}
	return optimal
}

// missedOpportunities reports positions where the top scorer sat while a
// lower scorer at the same position started, sorted by points lost.
func missedOpportunities(byPosition map[string][]scoredPlayer, starters map[string]bool) []models.MissedOpportunity {
	missed := []models.MissedOpportunity{}

	for pos, players := range byPosition {
		if len(players) < 2 {
			continue
		}
		best := players[0]
		if starters[best.playerID] {
			continue
		}
		for _, started := range players[1:] {
			if !starters[started.playerID] {
				continue
			}
			if started.points < best.points {
				missed = append(missed, models.MissedOpportunity{
					Position:      pos,
					BenchedPlayer: best.name,
					BenchedPoints: round2(best.points),
					StartedPlayer: started.name,
					StartedPoints: round2(started.points),
					PointsLost:    round2(best.points - started.points),
				})
			}
			break
		}
	}

	sort.SliceStable(missed, func(i, j int) bool {
		return missed[i].PointsLost > missed[j].PointsLost
	})
	return missed
}

// SeasonEfficiency aggregates weekly efficiency over the season, skipping
// weeks with no recorded score.
func SeasonEfficiency(s *Season, rosterID int) models.SeasonEfficiency {
	result := models.SeasonEfficiency{
		RosterID: rosterID,
		TeamName: s.Ctx.TeamName(rosterID),
		Weekly:   []models.EfficiencyReport{},
	}

	totalScored := 0.0
	totalPotential := 0.0

	for week := 1; week <= s.Weeks; week++ {
		eff := WeeklyEfficiency(s, rosterID, week)
		if eff.PointsScored <= 0 {
			continue
		}
		result.Weekly = append(result.Weekly, eff)
		totalScored += eff.PointsScored
		totalPotential += eff.PotentialPoints
		result.TotalMissed += len(eff.MissedOpportunities)
	}

	pct := 0.0
	if totalPotential > 0 {
		pct = totalScored / totalPotential * 100
	}

	result.TotalPointsScored = round2(totalScored)
	result.TotalPotentialPoints = round2(totalPotential)
	result.SeasonEfficiencyPct = round1(pct)
	result.PointsLeftOnBench = round2(totalPotential - totalScored)
	return result
}

// LeagueEfficiencyRankings ranks every team by season efficiency percentage.
func LeagueEfficiencyRankings(s *Season) []models.EfficiencyRanking {
	rankings := make([]models.EfficiencyRanking, 0, len(s.Ctx.Rosters))
	for _, rosterID := range s.Ctx.RosterIDs() {
		eff := SeasonEfficiency(s, rosterID)
		rankings = append(rankings, models.EfficiencyRanking{
			RosterID:          eff.RosterID,
			TeamName:          eff.TeamName,
			EfficiencyPct:     eff.SeasonEfficiencyPct,
			PointsScored:      eff.TotalPointsScored,
			PotentialPoints:   eff.TotalPotentialPoints,
			PointsLeftOnBench: eff.PointsLeftOnBench,
			MissedCount:       eff.TotalMissed,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].EfficiencyPct > rankings[j].EfficiencyPct
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// canStart reports whether a position has any startable slot in the league's
// roster template.
func canStart(s *Season, position string) bool {
	for _, slot := range rosterPositions(s) {
		for _, pos := range slotEligibility[slot] {
			if pos == position {
				return true
			}
		}
	}
	return false
}

// TeamBenchwarmers finds the scoring performances a team left on its bench.
func TeamBenchwarmers(s *Season, rosterID int) models.BenchwarmerReport {
	report := models.BenchwarmerReport{
		RosterID:        rosterID,
		TeamName:        s.Ctx.TeamName(rosterID),
		WeeksAnalyzed:   s.Weeks,
		TopBenchwarmers: []models.BenchPerformance{},
	}

	var all []models.BenchPerformance
	for week := 1; week <= s.Weeks; week++ {
		snapshot, ok := s.TeamWeek(rosterID, week)
		if !ok {
			continue
		}
		starterSet := make(map[string]bool, len(snapshot.Starters))
		for _, id := range snapshot.Starters {
			starterSet[id] = true
		}
		for _, playerID := range snapshot.Players {
			if playerID == "" || starterSet[playerID] {
				continue
			}
			points := snapshot.PlayersPoints[playerID]
			if points <= 0 {
				continue
			}
			position := s.Ctx.PlayerPosition(playerID)
			if !canStart(s, position) {
				continue
			}
			report.TotalBenchPoints += points
			all = append(all, models.BenchPerformance{
				Week:       week,
				PlayerID:   playerID,
				PlayerName: s.Ctx.PlayerName(playerID),
				Position:   position,
				Points:     points,
				RosterID:   rosterID,
				TeamName:   report.TeamName,
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Points > all[j].Points
	})
	if len(all) > 10 {
		report.TopBenchwarmers = all[:10]
	} else {
		report.TopBenchwarmers = all
	}
	if len(all) > 0 {
		worst := all[0]
		report.WorstDecision = &worst
	}

	report.TotalBenchPoints = round2(report.TotalBenchPoints)
	if s.Weeks > 0 {
		report.AvgPerWeek = round2(report.TotalBenchPoints / float64(s.Weeks))
	}
	return report
}

// LeagueBenchwarmers rolls the per-team bench reports into a league view.
func LeagueBenchwarmers(s *Season) models.LeagueBenchwarmerReport {
	report := models.LeagueBenchwarmerReport{
		LeagueID:        s.Ctx.LeagueID(),
		LeagueName:      s.Ctx.LeagueName(),
		WeeksAnalyzed:   s.Weeks,
		BiggestMistakes: []models.BenchPerformance{},
	}

	champPoints := math.Inf(-1)
	var all []models.BenchPerformance
	for _, rosterID := range s.Ctx.RosterIDs() {
		team := TeamBenchwarmers(s, rosterID)
		report.Teams = append(report.Teams, team)
		all = append(all, team.TopBenchwarmers...)
		if team.TotalBenchPoints > champPoints {
			champPoints = team.TotalBenchPoints
			report.Champion = team.TeamName
			report.ChampionPoints = team.TotalBenchPoints
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Points > all[j].Points
	})
	if len(all) > 20 {
		all = all[:20]
	}
	report.BiggestMistakes = all
	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
