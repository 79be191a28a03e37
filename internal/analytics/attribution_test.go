package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaguelens/internal/models"
)

// weeklyPoints spreads per-week player scores over single-team snapshots so
// the season's scoring index sees them.
func weeklyPoints(points map[int]map[string]float64) map[int][]models.Matchup {
	matchups := make(map[int][]models.Matchup, len(points))
	for week, byPlayer := range points {
		var ids []string
		for id := range byPlayer {
			ids = append(ids, id)
		}
		matchups[week] = []models.Matchup{{RosterID: 1, MatchupID: 0, Players: ids, PlayersPoints: byPlayer}}
	}
	return matchups
}

func TestAttributeIntervalROI(t *testing.T) {
	ctx := newTestContext(2, []string{"QB", "RB"}, map[string]models.Player{
		"px": testPlayer("px", "Paid Pickup", "RB"),
	}, nil)
	s := NewSeason(ctx, 4, weeklyPoints(map[int]map[string]float64{
		1: {"px": 10},
		2: {"px": 15},
		3: {"px": 5},
		4: {"px": 10},
	}), nil)

	paid := models.OwnershipInterval{PlayerID: "px", StartWeek: 1, EndWeek: 4, FAABSpent: 8}
	AttributeInterval(s, &paid)
	assert.Equal(t, 40.0, paid.Points)
	assert.Equal(t, 4, paid.WeeksOwned)
	assert.Equal(t, 10.0, paid.PointsPerWeek)
	assert.Equal(t, 5.0, paid.ROI)

	free := models.OwnershipInterval{PlayerID: "px", StartWeek: 1, EndWeek: 2}
	AttributeInterval(s, &free)
	assert.True(t, math.IsInf(free.ROI, 1), "free pickup that scored must have infinite ROI")

	scoreless := models.OwnershipInterval{PlayerID: "nobody", StartWeek: 1, EndWeek: 2}
	AttributeInterval(s, &scoreless)
	assert.Equal(t, 0.0, scoreless.ROI)
}

func TestOwnerFAABPerformanceAveragesFiniteROIOnly(t *testing.T) {
	ctx := newTestContext(2, []string{"QB", "RB"}, map[string]models.Player{
		"p1": testPlayer("p1", "Big Hit", "RB"),
		"p2": testPlayer("p2", "Small Hit", "WR"),
		"p3": testPlayer("p3", "Free Score", "TE"),
	}, nil)

	txns := []models.Transaction{
		{
			TransactionID: "t1", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"p1": 1}, Settings: map[string]int{"waiver_bid": 10}, Week: 1, Created: 100,
		},
		{
			TransactionID: "t2", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"p2": 1}, Settings: map[string]int{"waiver_bid": 5}, Week: 1, Created: 200,
		},
		// Free-agent add: scores but spends nothing, so it must not drag
		// either the FAAB totals or the ROI average.
		{
			TransactionID: "t3", Type: models.TransactionTypeFreeAgent, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"p3": 1}, Week: 1, Created: 300,
		},
	}

	s := NewSeason(ctx, 2, weeklyPoints(map[int]map[string]float64{
		1: {"p1": 30, "p2": 5, "p3": 50},
		2: {"p1": 20},
	}), txns)

	perf := OwnerFAABPerformance(s, 1)
	assert.Equal(t, 15, perf.TotalFAABSpent)
	assert.Equal(t, 85, perf.FAABRemaining)
	require.Len(t, perf.Acquisitions, 2)
	assert.Equal(t, 55.0, perf.TotalPointsFromFAAB)
	// ROIs: 50/10 = 5.0 and 5/5 = 1.0
	assert.Equal(t, 3.0, perf.AvgROI)
	require.NotNil(t, perf.BestPickup)
	assert.Equal(t, "Big Hit", perf.BestPickup.PlayerName)
	require.NotNil(t, perf.WorstPickup)
	assert.Equal(t, "Small Hit", perf.WorstPickup.PlayerName)
}

func TestPlayerLifecycleOwners(t *testing.T) {
	ctx := newTestContext(3, []string{"QB", "RB"}, map[string]models.Player{
		"px": testPlayer("px", "Shared Back", "RB"),
	}, nil)

	txns := []models.Transaction{
		{
			TransactionID: "t1", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"px": 1}, Settings: map[string]int{"waiver_bid": 10}, Week: 1, Created: 100,
		},
		{
			TransactionID: "t2", Type: models.TransactionTypeFreeAgent, Status: models.TransactionStatusComplete,
			Drops: map[string]int{"px": 1}, Week: 3, Created: 200,
		},
		{
			TransactionID: "t3", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"px": 2}, Settings: map[string]int{"waiver_bid": 10}, Week: 5, Created: 300,
		},
	}

	s := NewSeason(ctx, 6, weeklyPoints(map[int]map[string]float64{
		1: {"px": 10}, 2: {"px": 10}, 3: {"px": 10},
		5: {"px": 40}, 6: {"px": 40},
	}), txns)

	lifecycle := PlayerLifecycle(s, "px")
	assert.Equal(t, 2, lifecycle.TimesPickedUp)
	assert.Equal(t, 1, lifecycle.TimesDropped)
	assert.Equal(t, 20, lifecycle.TotalFAABSpent)
	// Alpha: 30 pts / $10 = 3.0; Bravo: 80 pts / $10 = 8.0
	assert.Equal(t, "Bravo", lifecycle.BestROIOwner)
	assert.Equal(t, "Alpha", lifecycle.WorstROIOwner)
	assert.Equal(t, "Bravo", lifecycle.CurrentOwner)
}

func TestTeamRosterConstructionBreakdown(t *testing.T) {
	ctx := newTestContext(2, []string{"QB", "RB"}, map[string]models.Player{
		"d1": testPlayer("d1", "Draft Pick", "RB"),
		"w1": testPlayer("w1", "Waiver Add", "WR"),
	}, map[int][]string{1: {"d1", "w1"}})

	txns := []models.Transaction{
		{
			TransactionID: "t1", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"w1": 1}, Settings: map[string]int{"waiver_bid": 3}, Week: 1, Created: 100,
		},
	}

	s := NewSeason(ctx, 2, weeklyPoints(map[int]map[string]float64{
		1: {"d1": 30, "w1": 20},
		2: {"d1": 30, "w1": 20},
	}), txns)

	result := TeamRosterConstruction(s, 1)
	draft := result.Breakdown.Method(models.AcquisitionDraft)
	waiver := result.Breakdown.Method(models.AcquisitionWaiver)

	assert.Equal(t, 60.0, draft.Points)
	assert.Equal(t, 40.0, waiver.Points)
	assert.Equal(t, 60.0, draft.Percentage)
	assert.Equal(t, 40.0, waiver.Percentage)
	assert.Equal(t, 100.0, result.Breakdown.TotalPoints)
	assert.Equal(t, models.AcquisitionDraft, result.PrimarySource)
	assert.Equal(t, "Moderate (balanced)", result.DraftReliance)
	assert.Equal(t, "Low", result.WaiverActivity)
}

func TestLeagueFAABRankings(t *testing.T) {
	ctx := newTestContext(2, []string{"QB", "RB"}, map[string]models.Player{
		"p1": testPlayer("p1", "Alpha Add", "RB"),
		"p2": testPlayer("p2", "Bravo Add", "WR"),
	}, nil)

	txns := []models.Transaction{
		{
			TransactionID: "t1", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"p1": 1}, Settings: map[string]int{"waiver_bid": 10}, Week: 1, Created: 100,
		},
		{
			TransactionID: "t2", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"p2": 2}, Settings: map[string]int{"waiver_bid": 10}, Week: 1, Created: 200,
		},
	}

	s := NewSeason(ctx, 1, weeklyPoints(map[int]map[string]float64{
		1: {"p1": 50, "p2": 10},
	}), txns)

	report := LeagueFAAB(s)
	assert.Equal(t, 20, report.TotalFAABSpent)
	require.Len(t, report.OwnerRankings, 2)
	assert.Equal(t, "Alpha", report.OwnerRankings[0].OwnerName)
	assert.Equal(t, 1, report.OwnerRankings[0].EfficiencyRank)
	require.NotEmpty(t, report.BestValuePickups)
	assert.Equal(t, "Alpha Add", report.BestValuePickups[0].PlayerName)
	require.NotEmpty(t, report.WorstValuePickups)
	assert.Equal(t, "Bravo Add", report.WorstValuePickups[0].PlayerName)
}

func TestMostTransactedIgnoresFailedClaims(t *testing.T) {
	// px changes hands once but draws two losing waiver claims; py actually
	// moves twice and must outrank it.
	txns := []models.Transaction{
		{
			TransactionID: "t1", Type: models.TransactionTypeFreeAgent, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"px": 1}, Week: 2, Created: 100,
		},
		{
			TransactionID: "t2", Type: models.TransactionTypeFreeAgent, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"py": 2}, Week: 2, Created: 150,
		},
		{
			TransactionID: "t3", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusFailed,
			Adds: map[string]int{"px": 2}, Settings: map[string]int{"waiver_bid": 9}, Week: 3, Created: 200,
		},
		{
			TransactionID: "t4", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds:     map[string]int{"px": 3},
			Settings: map[string]int{"waiver_bid": 4},
			Metadata: models.TransactionMetadata{Notes: "Claim failed, too many players on the roster"},
			Week:     4, Created: 300,
		},
		{
			TransactionID: "t5", Type: models.TransactionTypeFreeAgent, Status: models.TransactionStatusComplete,
			Drops: map[string]int{"py": 2}, Week: 5, Created: 400,
		},
		{
			TransactionID: "t6", Type: models.TransactionTypeWaiver, Status: models.TransactionStatusComplete,
			Adds: map[string]int{"py": 3}, Settings: map[string]int{"waiver_bid": 6}, Week: 7, Created: 500,
		},
	}
	s := draftedSeason(t, 17, txns, nil, nil)

	report := LeagueFAAB(s)
	require.Len(t, report.MostTransacted, 2)
	assert.Equal(t, "py", report.MostTransacted[0].PlayerID)
	assert.Equal(t, 2, report.MostTransacted[0].TimesPickedUp)
	assert.Equal(t, "px", report.MostTransacted[1].PlayerID)
	assert.Equal(t, 1, report.MostTransacted[1].TimesPickedUp)
}
