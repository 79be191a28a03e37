package analytics

import (
	"math"
	"sort"

	"leaguelens/internal/models"
)

// TeamPerformance summarizes a roster's season: record, points, and weekly
// score consistency (population standard deviation).
func TeamPerformance(s *Season, rosterID int) models.TeamPerformance {
	perf := models.TeamPerformance{
		RosterID: rosterID,
		TeamName: s.Ctx.TeamName(rosterID),
		Weekly:   []models.WeeklyResult{},
	}

	var weeklyPoints []float64
	for week := 1; week <= s.Weeks; week++ {
		snapshot, ok := s.TeamWeek(rosterID, week)
		if !ok {
			continue
		}
		opp, ok := s.Opponent(rosterID, week)
		if !ok {
			continue
		}

		result := headToHead(snapshot.Points, opp.Points)
		switch result {
		case "W":
			perf.Wins++
		case "L":
			perf.Losses++
		default:
			perf.Ties++
		}

		perf.PointsFor += snapshot.Points
		perf.PointsAgainst += opp.Points
		weeklyPoints = append(weeklyPoints, snapshot.Points)
		perf.Weekly = append(perf.Weekly, models.WeeklyResult{
			Week:           week,
			Points:         snapshot.Points,
			Opponent:       s.Ctx.TeamName(opp.RosterID),
			OpponentPoints: opp.Points,
			Result:         result,
		})
	}

	games := perf.Wins + perf.Losses + perf.Ties
	if games > 0 {
		perf.AvgPoints = round2(perf.PointsFor / float64(games))
	}
	perf.PointsFor = round2(perf.PointsFor)
	perf.PointsAgainst = round2(perf.PointsAgainst)
	perf.Consistency = round2(stddev(weeklyPoints))
	return perf
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// Standings sorts every team by wins, then points scored.
func Standings(s *Season) []models.Standing {
	performances := make([]models.TeamPerformance, 0, len(s.Ctx.Rosters))
	for _, rosterID := range s.Ctx.RosterIDs() {
		performances = append(performances, TeamPerformance(s, rosterID))
	}

	sort.SliceStable(performances, func(i, j int) bool {
		if performances[i].Wins != performances[j].Wins {
			return performances[i].Wins > performances[j].Wins
		}
		return performances[i].PointsFor > performances[j].PointsFor
	})

	standings := make([]models.Standing, len(performances))
	for i, perf := range performances {
		standings[i] = models.Standing{
			Rank:          i + 1,
			RosterID:      perf.RosterID,
			TeamName:      perf.TeamName,
			Wins:          perf.Wins,
			Losses:        perf.Losses,
			Ties:          perf.Ties,
			PointsFor:     perf.PointsFor,
			PointsAgainst: perf.PointsAgainst,
			AvgPoints:     perf.AvgPoints,
		}
	}
	return standings
}

// DefaultCloseGameThreshold is the margin under which a game counts as close.
const DefaultCloseGameThreshold = 10.0

// CloseGames lists every matchup decided by at most threshold points, sorted
// from tightest to widest margin.
func CloseGames(s *Season, threshold float64) []models.CloseGame {
	games := []models.CloseGame{}
	for week := 1; week <= s.Weeks; week++ {
		for _, pair := range s.Pairings(week) {
			margin := math.Abs(pair[0].Points - pair[1].Points)
			if margin > threshold {
				continue
			}

			winner := "Tie"
			switch {
			case pair[0].Points > pair[1].Points:
				winner = s.Ctx.TeamName(pair[0].RosterID)
			case pair[1].Points > pair[0].Points:
				winner = s.Ctx.TeamName(pair[1].RosterID)
			}
			games = append(games, models.CloseGame{
				Week:        week,
				Team1:       s.Ctx.TeamName(pair[0].RosterID),
				Team1Points: pair[0].Points,
				Team2:       s.Ctx.TeamName(pair[1].RosterID),
				Team2Points: pair[1].Points,
				Margin:      round2(margin),
				Winner:      winner,
			})
		}
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Margin < games[j].Margin
	})
	return games
}

// WeeklyHighLow picks the week's top and bottom scorers.
func WeeklyHighLow(s *Season, week int) (models.WeeklyAward, bool) {
	pairs := s.Pairings(week)
	if len(pairs) == 0 {
		return models.WeeklyAward{}, false
	}

	award := models.WeeklyAward{Week: week}
	high := math.Inf(-1)
	low := math.Inf(1)
	for _, pair := range pairs {
		for _, team := range pair {
			if team.Points > high {
				high = team.Points
				award.HighScorer = s.Ctx.TeamName(team.RosterID)
				award.HighScore = team.Points
			}
			if team.Points < low {
				low = team.Points
				award.LowScorer = s.Ctx.TeamName(team.RosterID)
				award.LowScore = team.Points
			}
		}
	}
	return award, true
}

const weeklyPayout = 5.0

// SeasonAwards tallies weekly high/low awards and the side-pot payouts they
// carry (high scorer collects, low scorer pays).
func SeasonAwards(s *Season) models.SeasonAwards {
	awards := models.SeasonAwards{
		LeagueID:     s.Ctx.LeagueID(),
		LeagueName:   s.Ctx.LeagueName(),
		Weekly:       []models.WeeklyAward{},
		HighCounts:   map[string]int{},
		LowCounts:    map[string]int{},
		PayoutByTeam: map[string]float64{},
	}

	for week := 1; week <= s.Weeks; week++ {
		award, ok := WeeklyHighLow(s, week)
		if !ok {
			continue
		}
		awards.Weekly = append(awards.Weekly, award)
		awards.HighCounts[award.HighScorer]++
		awards.LowCounts[award.LowScorer]++
	}
	awards.WeeksAnalyzed = len(awards.Weekly)

	for team, count := range awards.HighCounts {
		awards.PayoutByTeam[team] += float64(count) * weeklyPayout
	}
	for team, count := range awards.LowCounts {
		awards.PayoutByTeam[team] -= float64(count) * weeklyPayout
	}
	return awards
}
