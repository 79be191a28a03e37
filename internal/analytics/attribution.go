package analytics

import (
	"math"
	"sort"

	"leaguelens/internal/models"
)

// AttributeInterval fills an interval's points, weeks owned and ROI from the
// season's weekly scoring. ROI is points per FAAB dollar; a free pickup that
// scored is +Inf (excluded from any averaged ROI), a free pickup that never
// scored is 0.
func AttributeInterval(s *Season, interval *models.OwnershipInterval) {
	points := s.PlayerPointsInRange(interval.PlayerID, interval.StartWeek, interval.EndWeek)
	weeksOwned := interval.EndWeek - interval.StartWeek + 1

	interval.Points = round2(points)
	interval.WeeksOwned = weeksOwned
	if weeksOwned > 0 {
		interval.PointsPerWeek = round2(points / float64(weeksOwned))
	}

	switch {
	case interval.FAABSpent > 0:
		interval.ROI = round2(points / float64(interval.FAABSpent))
	case points > 0:
		interval.ROI = math.Inf(1)
	default:
		interval.ROI = 0
	}
}

// PlayerLifecycle tracks a player's complete journey through the league.
func PlayerLifecycle(s *Season, playerID string) models.PlayerLifecycle {
	intervals := PlayerTimeline(s, playerID)

	lifecycle := models.PlayerLifecycle{
		PlayerID:      playerID,
		PlayerName:    s.Ctx.PlayerName(playerID),
		Position:      s.Ctx.PlayerPosition(playerID),
		Ownership:     intervals,
		TimesPickedUp: len(intervals),
	}

	bestROI := math.Inf(-1)
	worstROI := math.Inf(1)
	for _, interval := range intervals {
		lifecycle.TotalFAABSpent += interval.FAABSpent
		if !interval.StillOwned {
			lifecycle.TimesDropped++
		}
		if math.IsInf(interval.ROI, 1) {
			continue
		}
		if interval.ROI > bestROI {
			bestROI = interval.ROI
			lifecycle.BestROIOwner = interval.OwnerName
		}
		if interval.ROI < worstROI {
			worstROI = interval.ROI
			lifecycle.WorstROIOwner = interval.OwnerName
		}
	}

	if n := len(intervals); n > 0 && intervals[n-1].StillOwned {
		lifecycle.CurrentOwner = intervals[n-1].OwnerName
	}
	return lifecycle
}

// OwnerFAABPerformance evaluates every FAAB pickup one roster made.
func OwnerFAABPerformance(s *Season, rosterID int) models.OwnerFAABPerformance {
	perf := models.OwnerFAABPerformance{
		RosterID:     rosterID,
		OwnerName:    s.Ctx.TeamName(rosterID),
		Acquisitions: []models.OwnershipInterval{},
	}

	timelines := s.Timelines()
	for _, intervals := range timelines {
		for i := range intervals {
			interval := intervals[i]
			if interval.RosterID != rosterID || interval.Method != models.AcquisitionWaiver || interval.FAABSpent == 0 {
				continue
			}
			AttributeInterval(s, &interval)
			perf.Acquisitions = append(perf.Acquisitions, interval)
			perf.TotalFAABSpent += interval.FAABSpent
			perf.TotalPointsFromFAAB += interval.Points
		}
	}

	sort.SliceStable(perf.Acquisitions, func(i, j int) bool {
		if perf.Acquisitions[i].StartWeek != perf.Acquisitions[j].StartWeek {
			return perf.Acquisitions[i].StartWeek < perf.Acquisitions[j].StartWeek
		}
		return perf.Acquisitions[i].PlayerID < perf.Acquisitions[j].PlayerID
	})

	budget := s.Ctx.League.Settings.WaiverBudget
	if budget == 0 {
		budget = 100
	}
	perf.FAABRemaining = budget - perf.TotalFAABSpent

	roiSum := 0.0
	roiCount := 0
	for i := range perf.Acquisitions {
		interval := &perf.Acquisitions[i]
		if math.IsInf(interval.ROI, 1) {
			continue
		}
		roiSum += interval.ROI
		roiCount++
		if perf.BestPickup == nil || interval.ROI > perf.BestPickup.ROI {
			perf.BestPickup = interval
		}
		if perf.WorstPickup == nil || interval.ROI < perf.WorstPickup.ROI {
			perf.WorstPickup = interval
		}
	}
	if roiCount > 0 {
		perf.AvgROI = round2(roiSum / float64(roiCount))
	}

	perf.TotalPointsFromFAAB = round2(perf.TotalPointsFromFAAB)
	return perf
}

// LeagueFAAB ranks all owners by average finite ROI and collects the
// best/worst value pickups and the most transacted players.
func LeagueFAAB(s *Season) models.LeagueFAABReport {
	report := models.LeagueFAABReport{
		LeagueID:          s.Ctx.LeagueID(),
		LeagueName:        s.Ctx.LeagueName(),
		WeeksAnalyzed:     s.Weeks,
		BestValuePickups:  []models.OwnershipInterval{},
		WorstValuePickups: []models.OwnershipInterval{},
		MostTransacted:    []models.PlayerLifecycle{},
	}

	var allPickups []models.OwnershipInterval
	for _, rosterID := range s.Ctx.RosterIDs() {
		perf := OwnerFAABPerformance(s, rosterID)
		report.TotalFAABSpent += perf.TotalFAABSpent
		report.OwnerRankings = append(report.OwnerRankings, perf)
		allPickups = append(allPickups, perf.Acquisitions...)
	}

	sort.SliceStable(report.OwnerRankings, func(i, j int) bool {
		return report.OwnerRankings[i].AvgROI > report.OwnerRankings[j].AvgROI
	})
	for i := range report.OwnerRankings {
		report.OwnerRankings[i].EfficiencyRank = i + 1
	}

	finite := allPickups[:0:0]
	for _, pickup := range allPickups {
		if !math.IsInf(pickup.ROI, 1) {
			finite = append(finite, pickup)
		}
	}

	best := append([]models.OwnershipInterval(nil), finite...)
	sort.SliceStable(best, func(i, j int) bool { return best[i].ROI > best[j].ROI })
	if len(best) > 20 {
		best = best[:20]
	}
	report.BestValuePickups = best

	worst := append([]models.OwnershipInterval(nil), finite...)
	sort.SliceStable(worst, func(i, j int) bool { return worst[i].ROI < worst[j].ROI })
	if len(worst) > 10 {
		worst = worst[:10]
	}
	report.WorstValuePickups = worst

	report.MostTransacted = mostTransactedLifecycles(s, 10)
	return report
}

func mostTransactedLifecycles(s *Season, limit int) []models.PlayerLifecycle {
	counts := make(map[string]int)
	for _, txn := range s.Transactions {
		// Losing waiver claims never moved the player; counting them would
		// inflate the rankings relative to the reconstructed timelines.
		if txn.IsWaiver() && waiverFailed(txn) {
			continue
		}
		for playerID := range txn.Adds {
			counts[playerID]++
		}
	}

	type playerCount struct {
		playerID string
		count    int
	}
	ranked := make([]playerCount, 0, len(counts))
	for playerID, count := range counts {
		ranked = append(ranked, playerCount{playerID, count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].playerID < ranked[j].playerID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	lifecycles := make([]models.PlayerLifecycle, 0, len(ranked))
	for _, pc := range ranked {
		lifecycles = append(lifecycles, PlayerLifecycle(s, pc.playerID))
	}
	return lifecycles
}

// TeamRosterConstruction breaks a team's season points down by how each
// contributing player was acquired.
func TeamRosterConstruction(s *Season, rosterID int) models.TeamRosterConstruction {
	result := models.TeamRosterConstruction{
		RosterID:     rosterID,
		TeamName:     s.Ctx.TeamName(rosterID),
		Acquisitions: []models.OwnershipInterval{},
	}

	timelines := s.Timelines()
	for _, intervals := range timelines {
		for i := range intervals {
			interval := intervals[i]
			if interval.RosterID != rosterID {
				continue
			}
			AttributeInterval(s, &interval)
			result.Acquisitions = append(result.Acquisitions, interval)
		}
	}

	sort.SliceStable(result.Acquisitions, func(i, j int) bool {
		if result.Acquisitions[i].StartWeek != result.Acquisitions[j].StartWeek {
			return result.Acquisitions[i].StartWeek < result.Acquisitions[j].StartWeek
		}
		return result.Acquisitions[i].PlayerID < result.Acquisitions[j].PlayerID
	})

	var breakdown models.ConstructionBreakdown
	for _, interval := range result.Acquisitions {
		breakdown.ByMethod[interval.Method].Points += interval.Points
		breakdown.ByMethod[interval.Method].Count++
		breakdown.TotalPoints += interval.Points
	}
	for m := models.AcquisitionMethod(0); m < models.AcquisitionMethodCount; m++ {
		entry := &breakdown.ByMethod[m]
		entry.Points = round2(entry.Points)
		if breakdown.TotalPoints > 0 {
			entry.Percentage = round1(entry.Points / breakdown.TotalPoints * 100)
		}
	}
	breakdown.TotalPoints = round2(breakdown.TotalPoints)
	result.Breakdown = breakdown

	result.PrimarySource = models.AcquisitionDraft
	for m := models.AcquisitionMethod(0); m < models.AcquisitionMethodCount; m++ {
		if breakdown.ByMethod[m].Points > breakdown.ByMethod[result.PrimarySource].Points {
			result.PrimarySource = m
		}
	}

	draftPct := breakdown.ByMethod[models.AcquisitionDraft].Percentage
	switch {
	case draftPct >= 70:
		result.DraftReliance = "High (draft-dependent)"
	case draftPct >= 50:
		result.DraftReliance = "Moderate (balanced)"
	default:
		result.DraftReliance = "Low (active manager)"
	}

	waiverCount := breakdown.ByMethod[models.AcquisitionWaiver].Count
	switch {
	case waiverCount >= 15:
		result.WaiverActivity = "Very High"
	case waiverCount >= 10:
		result.WaiverActivity = "High"
	case waiverCount >= 5:
		result.WaiverActivity = "Moderate"
	default:
		result.WaiverActivity = "Low"
	}

	return result
}

// LeagueRosterConstruction aggregates team construction reports and crowns
// the best drafter, most active trader and waiver-wire king.
func LeagueRosterConstruction(s *Season) models.LeagueRosterConstruction {
	report := models.LeagueRosterConstruction{
		LeagueID:      s.Ctx.LeagueID(),
		LeagueName:    s.Ctx.LeagueName(),
		WeeksAnalyzed: s.Weeks,
	}

	for _, rosterID := range s.Ctx.RosterIDs() {
		report.Teams = append(report.Teams, TeamRosterConstruction(s, rosterID))
	}
	if len(report.Teams) == 0 {
		return report
	}

	n := float64(len(report.Teams))
	for _, team := range report.Teams {
		report.AvgDraftPct += team.Breakdown.ByMethod[models.AcquisitionDraft].Percentage
		report.AvgTradePct += team.Breakdown.ByMethod[models.AcquisitionTrade].Percentage
		report.AvgWaiverPct += team.Breakdown.ByMethod[models.AcquisitionWaiver].Percentage
		report.AvgFreeAgentPct += team.Breakdown.ByMethod[models.AcquisitionFreeAgent].Percentage

		if team.Breakdown.ByMethod[models.AcquisitionDraft].Percentage > report.BestDrafterPct || report.BestDrafter == "" {
			report.BestDrafter = team.TeamName
			report.BestDrafterPct = team.Breakdown.ByMethod[models.AcquisitionDraft].Percentage
		}
		if team.Breakdown.ByMethod[models.AcquisitionTrade].Count > report.MostTradeCount || report.MostActiveTrader == "" {
			report.MostActiveTrader = team.TeamName
			report.MostTradeCount = team.Breakdown.ByMethod[models.AcquisitionTrade].Count
		}
		if team.Breakdown.ByMethod[models.AcquisitionWaiver].Points > report.WaiverKingPoints || report.WaiverKing == "" {
			report.WaiverKing = team.TeamName
			report.WaiverKingPoints = team.Breakdown.ByMethod[models.AcquisitionWaiver].Points
		}
	}
	report.AvgDraftPct = round1(report.AvgDraftPct / n)
	report.AvgTradePct = round1(report.AvgTradePct / n)
	report.AvgWaiverPct = round1(report.AvgWaiverPct / n)
	report.AvgFreeAgentPct = round1(report.AvgFreeAgentPct / n)

	return report
}
