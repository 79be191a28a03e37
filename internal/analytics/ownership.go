package analytics

import (
	"sort"
	"strings"

	"leaguelens/internal/models"
)

// Markers in free-form waiver notes that indicate a losing claim. Best-effort:
// Sleeper does not expose a structured failure reason, so misclassification is
// possible and is surfaced as-is rather than corrected.
var failedWaiverMarkers = []string{
	"claimed by another",
	"failed",
	"too many",
}

func waiverFailed(txn models.Transaction) bool {
	if txn.Status == models.TransactionStatusFailed {
		return true
	}
	notes := strings.ToLower(txn.Metadata.Notes)
	for _, marker := range failedWaiverMarkers {
		if strings.Contains(notes, marker) {
			return true
		}
	}
	return false
}

func acquisitionMethod(txn models.Transaction) models.AcquisitionMethod {
	switch {
	case txn.IsTrade():
		return models.AcquisitionTrade
	case txn.IsWaiver():
		return models.AcquisitionWaiver
	default:
		return models.AcquisitionFreeAgent
	}
}

type openInterval struct {
	rosterID  int
	startWeek int
	method    models.AcquisitionMethod
	faabSpent int
}

// OwnershipTimelines replays the season's transaction stream into
// non-overlapping ownership intervals per player. The stream must already be
// in deterministic order (week, created, transaction ID): for duplicate
// events touching the same player in one week, the last event wins.
//
// Players on a held roster that never appear in an add event are seeded as
// drafted from week 1. Intervals still open at season end close at the last
// analyzed week and are marked StillOwned.
func OwnershipTimelines(s *Season) map[string][]models.OwnershipInterval {
	intervals := make(map[string][]models.OwnershipInterval)
	open := make(map[string]openInterval)
	everAdded := make(map[string]bool)

	// Seed draft-day ownership before the replay so a drafted player who is
	// later traded or dropped still gets their opening interval.
	for _, selection := range s.DraftPicks {
		if selection.PlayerID == "" || selection.RosterID == 0 {
			continue
		}
		open[selection.PlayerID] = openInterval{
			rosterID:  selection.RosterID,
			startWeek: 1,
			method:    models.AcquisitionDraft,
		}
	}

	closeInterval := func(playerID string, cur openInterval, endWeek int, stillOwned bool) {
		if endWeek < cur.startWeek {
			endWeek = cur.startWeek
		}
		intervals[playerID] = append(intervals[playerID], models.OwnershipInterval{
			PlayerID:   playerID,
			PlayerName: s.Ctx.PlayerName(playerID),
			Position:   s.Ctx.PlayerPosition(playerID),
			RosterID:   cur.rosterID,
			OwnerName:  s.Ctx.TeamName(cur.rosterID),
			StartWeek:  cur.startWeek,
			EndWeek:    endWeek,
			StillOwned: stillOwned,
			Method:     cur.method,
			FAABSpent:  cur.faabSpent,
		})
	}

	for _, txn := range s.Transactions {
		// A losing waiver claim transfers nothing: neither its add nor its
		// drop side may touch the timeline.
		if txn.IsWaiver() && waiverFailed(txn) {
			continue
		}

		for playerID, newOwner := range txn.Adds {
			everAdded[playerID] = true

			if cur, ok := open[playerID]; ok {
				endWeek := txn.Week - 1
				// An add-and-drop of the same player by the same roster in a
				// single transaction keeps the old interval through the
				// event week.
				if dropOwner, dropped := txn.Drops[playerID]; dropped && dropOwner == newOwner {
					endWeek = txn.Week
				}
				closeInterval(playerID, cur, endWeek, false)
			}

			faab := 0
			if txn.IsWaiver() {
				faab = txn.WaiverBid()
			}
			open[playerID] = openInterval{
				rosterID:  newOwner,
				startWeek: txn.Week,
				method:    acquisitionMethod(txn),
				faabSpent: faab,
			}
		}

		for playerID, droppingOwner := range txn.Drops {
			if _, added := txn.Adds[playerID]; added {
				continue
			}
			if cur, ok := open[playerID]; ok && cur.rosterID == droppingOwner {
				closeInterval(playerID, cur, txn.Week, false)
				delete(open, playerID)
			}
		}
	}

	// Seed drafted players: currently held, never seen in an add event.
	for _, roster := range s.Ctx.Rosters {
		for _, playerID := range roster.Players {
			if playerID == "" || everAdded[playerID] {
				continue
			}
			if _, ok := open[playerID]; ok {
				continue
			}
			open[playerID] = openInterval{
				rosterID:  roster.RosterID,
				startWeek: 1,
				method:    models.AcquisitionDraft,
			}
		}
	}

	for playerID, cur := range open {
		closeInterval(playerID, cur, s.Weeks, true)
	}

	for playerID := range intervals {
		sort.SliceStable(intervals[playerID], func(i, j int) bool {
			return intervals[playerID][i].StartWeek < intervals[playerID][j].StartWeek
		})
	}
	return intervals
}

// PlayerTimeline returns one player's ownership intervals with points and ROI
// attributed.
func PlayerTimeline(s *Season, playerID string) []models.OwnershipInterval {
	intervals := append([]models.OwnershipInterval(nil), s.Timelines()[playerID]...)
	for i := range intervals {
		AttributeInterval(s, &intervals[i])
	}
	return intervals
}
