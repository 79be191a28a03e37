package service

import (
	"fmt"
	"math"
	"strings"

	"leaguelens/internal/models"
)

func FormatStandings(standings []models.Standing) string {
	var sb strings.Builder
	sb.WriteString("🏆 *Current Standings*\n\n")
	for _, team := range standings {
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", team.Rank, team.TeamName))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d-%d\n", team.Wins, team.Losses, team.Ties))
		sb.WriteString(fmt.Sprintf("   Points For: %.2f\n", team.PointsFor))
		sb.WriteString(fmt.Sprintf("   Points Against: %.2f\n\n", team.PointsAgainst))
	}
	return sb.String()
}

func FormatEfficiencyRankings(rankings []models.EfficiencyRanking) string {
	var sb strings.Builder
	sb.WriteString("📊 *Roster Efficiency Rankings*\n\n")
	for _, team := range rankings {
		sb.WriteString(fmt.Sprintf("%d. *%s* — %.1f%%\n", team.Rank, team.TeamName, team.EfficiencyPct))
		sb.WriteString(fmt.Sprintf("   Scored: %.2f / Potential: %.2f\n", team.PointsScored, team.PotentialPoints))
		sb.WriteString(fmt.Sprintf("   Left on bench: %.2f (%d missed starts)\n\n", team.PointsLeftOnBench, team.MissedCount))
	}
	return sb.String()
}

func FormatCloseGames(games []models.CloseGame, threshold float64) string {
	if len(games) == 0 {
		return fmt.Sprintf("😴 No games decided by %.1f points or fewer yet.", threshold)
	}

	var sb strings.Builder
	sb.WriteString("🔥 *Closest Games*\n\n")
	for _, game := range games {
		sb.WriteString(fmt.Sprintf("Week %d: *%s* %.2f — %.2f *%s*\n",
			game.Week, game.Team1, game.Team1Points, game.Team2Points, game.Team2))
		if game.Winner == "Tie" {
			sb.WriteString("   Dead even\n\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("   %s by %.2f\n\n", game.Winner, game.Margin))
	}
	return sb.String()
}

func FormatLeagueLuck(report models.LeagueLuckReport) string {
	var sb strings.Builder
	sb.WriteString("🍀 *Luck Report*\n\n")
	sb.WriteString(fmt.Sprintf("Luckiest: *%s* (%+d)\n", report.LuckiestTeam, report.LuckiestScore))
	sb.WriteString(fmt.Sprintf("Unluckiest: *%s* (%+d)\n\n", report.UnluckiestTeam, report.UnluckiestScore))

	for _, team := range report.Teams {
		sb.WriteString(fmt.Sprintf("*%s*: %d-%d-%d (expected %d wins, luck %+d)\n",
			team.TeamName, team.ActualWins, team.ActualLosses, team.ActualTies,
			team.ExpectedWins, team.LuckScore))
		sb.WriteString(fmt.Sprintf("   SOS rank %d, avg opponent %.2f\n",
			team.Schedule.ScheduleRank, team.Schedule.AvgOpponentPts))
	}
	return sb.String()
}

func FormatLeagueFAAB(report models.LeagueFAABReport) string {
	var sb strings.Builder
	sb.WriteString("💰 *FAAB Report*\n\n")
	sb.WriteString(fmt.Sprintf("Total spent league-wide: $%d\n\n", report.TotalFAABSpent))

	for _, owner := range report.OwnerRankings {
		sb.WriteString(fmt.Sprintf("%d. *%s* — $%d spent, %.2f pts/$ avg\n",
			owner.EfficiencyRank, owner.OwnerName, owner.TotalFAABSpent, owner.AvgROI))
		if owner.BestPickup != nil {
			sb.WriteString(fmt.Sprintf("   Best: %s ($%d → %.2f pts)\n",
				owner.BestPickup.PlayerName, owner.BestPickup.FAABSpent, owner.BestPickup.Points))
		}
	}

	if len(report.BestValuePickups) > 0 {
		best := report.BestValuePickups[0]
		sb.WriteString(fmt.Sprintf("\nSteal of the season: *%s* by %s ($%d → %.2f pts)\n",
			best.PlayerName, best.OwnerName, best.FAABSpent, best.Points))
	}
	return sb.String()
}

func FormatRosterConstruction(report models.LeagueRosterConstruction) string {
	var sb strings.Builder
	sb.WriteString("🏗 *Roster Construction*\n\n")
	sb.WriteString(fmt.Sprintf("Best drafter: *%s* (%.1f%% from draft)\n", report.BestDrafter, report.BestDrafterPct))
	sb.WriteString(fmt.Sprintf("Most active trader: *%s* (%d trades)\n", report.MostActiveTrader, report.MostTradeCount))
	sb.WriteString(fmt.Sprintf("Waiver wire king: *%s* (%.2f pts)\n\n", report.WaiverKing, report.WaiverKingPoints))

	for _, team := range report.Teams {
		draft := team.Breakdown.Method(models.AcquisitionDraft)
		waiver := team.Breakdown.Method(models.AcquisitionWaiver)
		trade := team.Breakdown.Method(models.AcquisitionTrade)
		fa := team.Breakdown.Method(models.AcquisitionFreeAgent)
		sb.WriteString(fmt.Sprintf("*%s* (primary: %s)\n", team.TeamName, team.PrimarySource))
		sb.WriteString(fmt.Sprintf("   Draft %.1f%% | Waiver %.1f%% | Trade %.1f%% | FA %.1f%%\n",
			draft.Percentage, waiver.Percentage, trade.Percentage, fa.Percentage))
	}
	return sb.String()
}

func FormatDraftReport(report models.DraftReport) string {
	var sb strings.Builder
	sb.WriteString("📋 *Draft Report Card*\n\n")
	sb.WriteString(fmt.Sprintf("Best drafter: *%s*\n", report.BestDrafter))
	sb.WriteString(fmt.Sprintf("Best pick: %s (%.2f pts)\n", report.BestPick.PlayerName, report.BestPick.PointsScored))
	if report.BiggestBust != nil {
		sb.WriteString(fmt.Sprintf("Biggest bust: %s (round %d, %.2f pts)\n",
			report.BiggestBust.PlayerName, report.BiggestBust.Round, report.BiggestBust.PointsScored))
	}
	sb.WriteString("\n")
	for _, team := range report.TeamGrades {
		sb.WriteString(fmt.Sprintf("*%s*: %s (%.2f pts/pick)\n", team.TeamName, team.Grade, team.AvgPerPick))
	}
	return sb.String()
}

func FormatWhoHas(result WhoHasResult) string {
	if !result.Found {
		return fmt.Sprintf("🔍 No player found matching '%s'.", result.PlayerName)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s)\n", result.PlayerName, result.Position))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	if result.Lifecycle.CurrentOwner != "" {
		sb.WriteString(fmt.Sprintf("Owned by *%s*\n", result.Lifecycle.CurrentOwner))
	} else {
		sb.WriteString(fmt.Sprintf("Last seen with *%s*\n", result.TeamName))
	}

	for _, interval := range result.Lifecycle.Ownership {
		span := fmt.Sprintf("weeks %d-%d", interval.StartWeek, interval.EndWeek)
		if interval.StillOwned {
			span = fmt.Sprintf("week %d-", interval.StartWeek)
		}
		cost := ""
		if interval.FAABSpent > 0 {
			cost = fmt.Sprintf(" for $%d", interval.FAABSpent)
		}
		roi := ""
		if interval.FAABSpent > 0 && !math.IsInf(interval.ROI, 1) {
			roi = fmt.Sprintf(", %.2f pts/$", interval.ROI)
		}
		sb.WriteString(fmt.Sprintf("  • %s: %s via %s%s (%.2f pts%s)\n",
			interval.OwnerName, span, interval.Method, cost, interval.Points, roi))
	}
	return sb.String()
}

func FormatBenchwarmers(report models.LeagueBenchwarmerReport) string {
	var sb strings.Builder
	sb.WriteString("🪑 *Benchwarmer Report*\n\n")
	sb.WriteString(fmt.Sprintf("Champion: *%s* (%.2f pts left on bench)\n\n", report.Champion, report.ChampionPoints))

	for i, mistake := range report.BiggestMistakes {
		if i >= 10 {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. Week %d: %s benched %s (%.2f pts)\n",
			i+1, mistake.Week, mistake.TeamName, mistake.PlayerName, mistake.Points))
	}
	return sb.String()
}
