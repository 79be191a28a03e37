package analytics

import (
	"errors"
	"sort"

	"leaguelens/internal/models"
)

// ErrDraftUnavailable distinguishes "this league has no draft data" from an
// empty-but-valid report.
var ErrDraftUnavailable = errors.New("draft data unavailable")

func draftGrade(avgPerPick, leagueAvg float64) string {
	ratio := 1.0
	if leagueAvg > 0 {
		ratio = avgPerPick / leagueAvg
	}
	switch {
	case ratio >= 1.40:
		return "A+"
	case ratio >= 1.25:
		return "A"
	case ratio >= 1.15:
		return "B+"
	case ratio >= 1.05:
		return "B"
	case ratio >= 0.95:
		return "C+"
	case ratio >= 0.85:
		return "C"
	case ratio >= 0.75:
		return "D"
	}
	return "F"
}

// valueRating classifies a pick against its round's average; early rounds are
// held to a higher standard.
func valueRating(points float64, round int, roundAvg float64) string {
	if round <= 4 {
		switch {
		case points >= roundAvg*1.5:
			return "Hit"
		case points >= roundAvg*0.7:
			return "Solid"
		}
		return "Bust"
	}
	switch {
	case points >= roundAvg*1.3:
		return "Hit"
	case points >= roundAvg*0.5:
		return "Solid"
	}
	return "Bust"
}

// AnalyzeDraft grades every pick and team against league-average points per
// pick. Returns ErrDraftUnavailable when the league has no draft or picks.
func AnalyzeDraft(s *Season) (models.DraftReport, error) {
	if len(s.Drafts) == 0 {
		return models.DraftReport{}, ErrDraftUnavailable
	}
	draft := s.Drafts[0]
	if draft.DraftID == "" || len(s.DraftPicks) == 0 {
		return models.DraftReport{}, ErrDraftUnavailable
	}

	var allPicks []models.DraftPickReport
	for _, selection := range s.DraftPicks {
		if selection.RosterID == 0 || selection.PlayerID == "" {
			continue
		}

		pointsByWeek := s.PlayerPoints(selection.PlayerID)
		totalPoints := 0.0
		gamesPlayed := 0
		for _, points := range pointsByWeek {
			totalPoints += points
			if points > 0 {
				gamesPlayed++
			}
		}
		ppg := 0.0
		if gamesPlayed > 0 {
			ppg = totalPoints / float64(gamesPlayed)
		}

		onRoster := false
		if roster, ok := s.Ctx.Roster(selection.RosterID); ok {
			for _, playerID := range roster.Players {
				if playerID == selection.PlayerID {
					onRoster = true
					break
				}
			}
		}

		allPicks = append(allPicks, models.DraftPickReport{
			PickNumber:    selection.PickNo,
			Round:         selection.Round,
			PickInRound:   selection.DraftSlot,
			RosterID:      selection.RosterID,
			TeamName:      s.Ctx.TeamName(selection.RosterID),
			PlayerID:      selection.PlayerID,
			PlayerName:    s.Ctx.PlayerName(selection.PlayerID),
			Position:      s.Ctx.PlayerPosition(selection.PlayerID),
			PointsScored:  round2(totalPoints),
			GamesPlayed:   gamesPlayed,
			PointsPerGame: round2(ppg),
			OnRoster:      onRoster,
		})
	}
	if len(allPicks) == 0 {
		return models.DraftReport{}, ErrDraftUnavailable
	}

	byRound := make(map[int][]int)
	totalRounds := 0
	for i, pick := range allPicks {
		byRound[pick.Round] = append(byRound[pick.Round], i)
		if pick.Round > totalRounds {
			totalRounds = pick.Round
		}
	}

	roundAvg := make(map[int]float64, len(byRound))
	for round, idxs := range byRound {
		sum := 0.0
		for _, i := range idxs {
			sum += allPicks[i].PointsScored
		}
		roundAvg[round] = sum / float64(len(idxs))
	}

	for i := range allPicks {
		allPicks[i].ValueRating = valueRating(allPicks[i].PointsScored, allPicks[i].Round, roundAvg[allPicks[i].Round])
	}

	var rounds []models.RoundSummary
	for round := 1; round <= totalRounds; round++ {
		idxs := byRound[round]
		if len(idxs) == 0 {
			continue
		}
		best, worst := allPicks[idxs[0]], allPicks[idxs[0]]
		hits := 0
		for _, i := range idxs {
			pick := allPicks[i]
			if pick.PointsScored > best.PointsScored {
				best = pick
			}
			if pick.PointsScored < worst.PointsScored {
				worst = pick
			}
			if pick.ValueRating == "Hit" {
				hits++
			}
		}
		rounds = append(rounds, models.RoundSummary{
			Round:      round,
			TotalPicks: len(idxs),
			AvgPoints:  round2(roundAvg[round]),
			BestPick:   best,
			WorstPick:  worst,
			HitRate:    round1(float64(hits) / float64(len(idxs)) * 100),
		})
	}

	byTeam := make(map[int][]models.DraftPickReport)
	for _, pick := range allPicks {
		byTeam[pick.RosterID] = append(byTeam[pick.RosterID], pick)
	}

	leagueTotal := 0.0
	for _, pick := range allPicks {
		leagueTotal += pick.PointsScored
	}
	leagueAvgPerPick := leagueTotal / float64(len(allPicks))

	var grades []models.TeamDraftGrade
	for rosterID, picks := range byTeam {
		sort.SliceStable(picks, func(i, j int) bool {
			return picks[i].PickNumber < picks[j].PickNumber
		})

		total := 0.0
		hits := 0
		best, worst := picks[0], picks[0]
		for _, pick := range picks {
			total += pick.PointsScored
			if pick.PointsScored > best.PointsScored {
				best = pick
			}
			if pick.PointsScored < worst.PointsScored {
				worst = pick
			}
			if pick.OnRoster || pick.ValueRating == "Hit" {
				hits++
			}
		}
		avgPerPick := total / float64(len(picks))

		grades = append(grades, models.TeamDraftGrade{
			RosterID:    rosterID,
			TeamName:    s.Ctx.TeamName(rosterID),
			TotalPicks:  len(picks),
			TotalPoints: round2(total),
			AvgPerPick:  round2(avgPerPick),
			BestPick:    best,
			WorstPick:   worst,
			HitRate:     round1(float64(hits) / float64(len(picks)) * 100),
			Grade:       draftGrade(avgPerPick, leagueAvgPerPick),
			Picks:       picks,
		})
	}

	sort.SliceStable(grades, func(i, j int) bool {
		return grades[i].AvgPerPick > grades[j].AvgPerPick
	})

	bestOverall := allPicks[0]
	for _, pick := range allPicks {
		if pick.PointsScored > bestOverall.PointsScored {
			bestOverall = pick
		}
	}

	var biggestBust *models.DraftPickReport
	for i := range allPicks {
		pick := allPicks[i]
		if pick.Round > 3 {
			continue
		}
		if biggestBust == nil || pick.PointsScored < biggestBust.PointsScored {
			biggestBust = &allPicks[i]
		}
	}

	leagueHits := 0
	for _, pick := range allPicks {
		if pick.ValueRating == "Hit" {
			leagueHits++
		}
	}

	return models.DraftReport{
		LeagueID:      s.Ctx.LeagueID(),
		LeagueName:    s.Ctx.LeagueName(),
		DraftID:       draft.DraftID,
		TotalRounds:   totalRounds,
		TotalPicks:    len(allPicks),
		WeeksAnalyzed: s.Weeks,
		TeamGrades:    grades,
		Rounds:        rounds,
		BestDrafter:   grades[0].TeamName,
		WorstDrafter:  grades[len(grades)-1].TeamName,
		BestPick:      bestOverall,
		BiggestBust:   biggestBust,
		LeagueAvgPick: round2(leagueAvgPerPick),
		LeagueHitRate: round1(float64(leagueHits) / float64(len(allPicks)) * 100),
	}, nil
}
