package analytics

import (
	"math"
	"sort"

	"leaguelens/internal/models"
)

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// WeeklyLuck classifies every team's result for one week against the league
// median and computes its hypothetical round-robin record.
func WeeklyLuck(s *Season, week int) []models.WeeklyLuck {
	pairs := s.Pairings(week)
	if len(pairs) == 0 {
		return nil
	}

	type entry struct {
		rosterID int
		points   float64
		result   string
		oppPts   float64
		oppName  string
	}

	var entries []entry
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		entries = append(entries,
			entry{a.RosterID, a.Points, headToHead(a.Points, b.Points), b.Points, s.Ctx.TeamName(b.RosterID)},
			entry{b.RosterID, b.Points, headToHead(b.Points, a.Points), a.Points, s.Ctx.TeamName(a.RosterID)},
		)
	}

	scores := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = e.points
	}
	weekMedian := median(scores)

	ranked := append([]entry(nil), entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].points > ranked[j].points
	})
	rankOf := make(map[int]int, len(ranked))
	for i, e := range ranked {
		rankOf[e.rosterID] = i + 1
	}

	analyses := make([]models.WeeklyLuck, 0, len(entries))
	for _, e := range entries {
		winsVsAll := 0
		for _, other := range entries {
			if other.rosterID != e.rosterID && e.points > other.points {
				winsVsAll++
			}
		}
		expectedPct := 0.0
		if len(entries) > 1 {
			expectedPct = float64(winsVsAll) / float64(len(entries)-1)
		}

		var luck models.LuckFactor
		switch e.result {
		case "T":
			luck = models.LuckTie
		case "W":
			if e.points < weekMedian {
				luck = models.LuckyWin
			} else {
				luck = models.DeservedWin
			}
		default:
			if e.points > weekMedian {
				luck = models.UnluckyLoss
			} else {
				luck = models.DeservedLoss
			}
		}

		analyses = append(analyses, models.WeeklyLuck{
			Week:           week,
			RosterID:       e.rosterID,
			TeamName:       s.Ctx.TeamName(e.rosterID),
			Result:         e.result,
			Points:         e.points,
			OpponentPoints: e.oppPts,
			OpponentName:   e.oppName,
			LeagueMedian:   weekMedian,
			WeekRank:       rankOf[e.rosterID],
			WinsVsAll:      winsVsAll,
			ExpectedWinPct: round3(expectedPct),
			Luck:           luck,
		})
	}
	return analyses
}

func headToHead(points, opponentPoints float64) string {
	switch {
	case points > opponentPoints:
		return "W"
	case points < opponentPoints:
		return "L"
	}
	return "T"
}

// StrengthOfSchedule averages a team's opponent scores and weekly ranks, and
// reports the three easiest and hardest weeks by opponent score.
func StrengthOfSchedule(s *Season, rosterID int) models.StrengthOfSchedule {
	sos := models.StrengthOfSchedule{
		RosterID:     rosterID,
		TeamName:     s.Ctx.TeamName(rosterID),
		EasiestWeeks: []int{},
		HardestWeeks: []int{},
	}

	type weekOpp struct {
		week   int
		points float64
	}
	var opponents []weekOpp
	totalPts := 0.0
	totalRank := 0

	for week := 1; week <= s.Weeks; week++ {
		pairs := s.Pairings(week)
		if len(pairs) == 0 {
			continue
		}

		type scored struct {
			rosterID int
			points   float64
		}
		var weekScores []scored
		for _, pair := range pairs {
			weekScores = append(weekScores,
				scored{pair[0].RosterID, pair[0].Points},
				scored{pair[1].RosterID, pair[1].Points})
		}
		sort.SliceStable(weekScores, func(i, j int) bool {
			return weekScores[i].points > weekScores[j].points
		})
		rankOf := make(map[int]int, len(weekScores))
		for i, ws := range weekScores {
			rankOf[ws.rosterID] = i + 1
		}

		opp, ok := s.Opponent(rosterID, week)
		if !ok {
			continue
		}
		opponents = append(opponents, weekOpp{week, opp.Points})
		totalPts += opp.Points
		totalRank += rankOf[opp.RosterID]
	}

	if len(opponents) == 0 {
		return sos
	}

	sos.TotalWeeks = len(opponents)
	sos.AvgOpponentPts = round2(totalPts / float64(len(opponents)))
	sos.AvgOpponentRank = round2(float64(totalRank) / float64(len(opponents)))

	sort.SliceStable(opponents, func(i, j int) bool {
		return opponents[i].points < opponents[j].points
	})
	for i := 0; i < len(opponents) && i < 3; i++ {
		sos.EasiestWeeks = append(sos.EasiestWeeks, opponents[i].week)
	}
	for i := len(opponents) - 1; i >= 0 && len(sos.HardestWeeks) < 3; i-- {
		sos.HardestWeeks = append(sos.HardestWeeks, opponents[i].week)
	}
	return sos
}

// TeamLuck builds the full season luck report for one roster. Expected wins
// count the weeks the team scored above the league median; the luck score is
// actual wins minus expected wins.
func TeamLuck(s *Season, rosterID int) models.LuckReport {
	report := models.LuckReport{
		RosterID:      rosterID,
		TeamName:      s.Ctx.TeamName(rosterID),
		LuckyWins:     []models.WeeklyLuck{},
		UnluckyLosses: []models.WeeklyLuck{},
	}

	for week := 1; week <= s.Weeks; week++ {
		for _, analysis := range WeeklyLuck(s, week) {
			if analysis.RosterID != rosterID {
				continue
			}
			switch analysis.Result {
			case "W":
				report.ActualWins++
			case "L":
				report.ActualLosses++
			case "T":
				report.ActualTies++
			}
			if analysis.Points > analysis.LeagueMedian {
				report.ExpectedWins++
			}
			switch analysis.Luck {
			case models.LuckyWin:
				report.LuckyWins = append(report.LuckyWins, analysis)
			case models.UnluckyLoss:
				report.UnluckyLosses = append(report.UnluckyLosses, analysis)
			}
		}
	}

	report.LuckScore = report.ActualWins - report.ExpectedWins
	report.Schedule = StrengthOfSchedule(s, rosterID)
	return report
}

// LeagueLuck ranks schedules by average opponent score (rank 1 = toughest)
// and identifies the luckiest and unluckiest teams.
func LeagueLuck(s *Season) models.LeagueLuckReport {
	report := models.LeagueLuckReport{
		LeagueID:      s.Ctx.LeagueID(),
		LeagueName:    s.Ctx.LeagueName(),
		WeeksAnalyzed: s.Weeks,
	}

	for _, rosterID := range s.Ctx.RosterIDs() {
		report.Teams = append(report.Teams, TeamLuck(s, rosterID))
	}
	if len(report.Teams) == 0 {
		return report
	}

	order := make([]int, len(report.Teams))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return report.Teams[order[a]].Schedule.AvgOpponentPts > report.Teams[order[b]].Schedule.AvgOpponentPts
	})
	for rank, idx := range order {
		report.Teams[idx].Schedule.ScheduleRank = rank + 1
	}

	luckiest := &report.Teams[0]
	unluckiest := &report.Teams[0]
	for i := range report.Teams {
		if report.Teams[i].LuckScore > luckiest.LuckScore {
			luckiest = &report.Teams[i]
		}
		if report.Teams[i].LuckScore < unluckiest.LuckScore {
			unluckiest = &report.Teams[i]
		}
	}
	report.LuckiestTeam = luckiest.TeamName
	report.LuckiestScore = luckiest.LuckScore
	report.UnluckiestTeam = unluckiest.TeamName
	report.UnluckiestScore = unluckiest.LuckScore
	return report
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
