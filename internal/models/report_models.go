package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// AcquisitionMethod is the closed set of ways a player joins a roster.
// Keeping it as a small integer enum lets per-method totals live in a fixed
// array that is exhaustive by construction.
type AcquisitionMethod int

const (
	AcquisitionDraft AcquisitionMethod = iota
	AcquisitionTrade
	AcquisitionWaiver
	AcquisitionFreeAgent

	AcquisitionMethodCount
)

func (m AcquisitionMethod) String() string {
	switch m {
	case AcquisitionDraft:
		return "draft"
	case AcquisitionTrade:
		return "trade"
	case AcquisitionWaiver:
		return "waiver"
	case AcquisitionFreeAgent:
		return "free_agent"
	}
	return "unknown"
}

func (m AcquisitionMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *AcquisitionMethod) UnmarshalText(text []byte) error {
	switch string(text) {
	case "draft":
		*m = AcquisitionDraft
	case "trade":
		*m = AcquisitionTrade
	case "waiver":
		*m = AcquisitionWaiver
	case "free_agent":
		*m = AcquisitionFreeAgent
	default:
		return fmt.Errorf("unknown acquisition method %q", string(text))
	}
	return nil
}

// OwnershipInterval is a contiguous span of weeks during which one team held
// a player. Intervals for a player never overlap; StillOwned marks the single
// interval left open at the end of the analyzed season (EndWeek is then the
// last analyzed week).
type OwnershipInterval struct {
	PlayerID   string            `json:"player_id"`
	PlayerName string            `json:"player_name"`
	Position   string            `json:"position"`
	RosterID   int               `json:"roster_id"`
	OwnerName  string            `json:"owner_name"`
	StartWeek  int               `json:"start_week"`
	EndWeek    int               `json:"end_week"`
	StillOwned bool              `json:"still_owned"`
	Method     AcquisitionMethod `json:"method"`
	FAABSpent  int               `json:"faab_spent"`

	WeeksOwned    int     `json:"weeks_owned"`
	Points        float64 `json:"points"`
	PointsPerWeek float64 `json:"points_per_week"`
	// ROI is Points/FAABSpent; +Inf when the pickup was free and scored,
	// 0 when free and scoreless. Infinite values are excluded from averages.
	ROI float64 `json:"roi"`
}

// MarshalJSON encodes an infinite ROI as null, since encoding/json rejects
// IEEE infinities. The in-memory value stays math.Inf so the analysis code
// can keep excluding free pickups from averaged ROI.
func (iv OwnershipInterval) MarshalJSON() ([]byte, error) {
	type plain OwnershipInterval
	wire := struct {
		plain
		ROI *float64 `json:"roi"`
	}{plain: plain(iv)}
	if !math.IsInf(iv.ROI, 0) {
		wire.ROI = &iv.ROI
	}
	return json.Marshal(wire)
}

type PlayerLifecycle struct {
	PlayerID       string              `json:"player_id"`
	PlayerName     string              `json:"player_name"`
	Position       string              `json:"position"`
	Ownership      []OwnershipInterval `json:"ownership_history"`
	TotalFAABSpent int                 `json:"total_faab_spent"`
	TimesPickedUp  int                 `json:"times_picked_up"`
	TimesDropped   int                 `json:"times_dropped"`
	CurrentOwner   string              `json:"current_owner,omitempty"`
	BestROIOwner   string              `json:"best_roi_owner,omitempty"`
	WorstROIOwner  string              `json:"worst_roi_owner,omitempty"`
}

type OwnerFAABPerformance struct {
	RosterID            int                 `json:"roster_id"`
	OwnerName           string              `json:"owner_name"`
	TotalFAABSpent      int                 `json:"total_faab_spent"`
	FAABRemaining       int                 `json:"faab_remaining"`
	Acquisitions        []OwnershipInterval `json:"acquisitions"`
	TotalPointsFromFAAB float64             `json:"total_points_from_faab"`
	AvgROI              float64             `json:"avg_roi"`
	BestPickup          *OwnershipInterval  `json:"best_pickup,omitempty"`
	WorstPickup         *OwnershipInterval  `json:"worst_pickup,omitempty"`
	EfficiencyRank      int                 `json:"faab_efficiency_rank"`
}

type LeagueFAABReport struct {
	LeagueID          string                 `json:"league_id"`
	LeagueName        string                 `json:"league_name"`
	WeeksAnalyzed     int                    `json:"weeks_analyzed"`
	TotalFAABSpent    int                    `json:"total_faab_spent"`
	OwnerRankings     []OwnerFAABPerformance `json:"owner_rankings"`
	BestValuePickups  []OwnershipInterval    `json:"best_value_pickups"`
	WorstValuePickups []OwnershipInterval    `json:"worst_value_pickups"`
	MostTransacted    []PlayerLifecycle      `json:"most_transacted_players"`
}

type MissedOpportunity struct {
	Position      string  `json:"position"`
	BenchedPlayer string  `json:"benched_player"`
	BenchedPoints float64 `json:"benched_points"`
	StartedPlayer string  `json:"started_player"`
	StartedPoints float64 `json:"started_points"`
	PointsLost    float64 `json:"points_lost"`
}

type EfficiencyReport struct {
	Week                int                 `json:"week"`
	RosterID            int                 `json:"roster_id"`
	TeamName            string              `json:"team_name"`
	PointsScored        float64             `json:"points_scored"`
	PotentialPoints     float64             `json:"potential_points"`
	EfficiencyPct       float64             `json:"efficiency_pct"`
	BenchPoints         float64             `json:"bench_points"`
	MissedOpportunities []MissedOpportunity `json:"missed_opportunities"`
}

type SeasonEfficiency struct {
	RosterID             int                `json:"roster_id"`
	TeamName             string             `json:"team_name"`
	TotalPointsScored    float64            `json:"total_points_scored"`
	TotalPotentialPoints float64            `json:"total_potential_points"`
	SeasonEfficiencyPct  float64            `json:"season_efficiency_pct"`
	PointsLeftOnBench    float64            `json:"points_left_on_bench"`
	Weekly               []EfficiencyReport `json:"weekly_efficiency"`
	TotalMissed          int                `json:"total_missed_opportunities"`
}

type EfficiencyRanking struct {
	Rank              int     `json:"rank"`
	RosterID          int     `json:"roster_id"`
	TeamName          string  `json:"team_name"`
	EfficiencyPct     float64 `json:"efficiency_pct"`
	PointsScored      float64 `json:"points_scored"`
	PotentialPoints   float64 `json:"potential_points"`
	PointsLeftOnBench float64 `json:"points_left_on_bench"`
	MissedCount       int     `json:"missed_opportunities"`
}

type BenchPerformance struct {
	Week       int     `json:"week"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Position   string  `json:"position"`
	Points     float64 `json:"points"`
	RosterID   int     `json:"roster_id"`
	TeamName   string  `json:"team_name"`
}

type BenchwarmerReport struct {
	RosterID         int                `json:"roster_id"`
	TeamName         string             `json:"team_name"`
	TotalBenchPoints float64            `json:"total_bench_points"`
	WeeksAnalyzed    int                `json:"weeks_analyzed"`
	TopBenchwarmers  []BenchPerformance `json:"top_benchwarmers"`
	WorstDecision    *BenchPerformance  `json:"worst_benching_decision,omitempty"`
	AvgPerWeek       float64            `json:"avg_bench_points_per_week"`
}

type LeagueBenchwarmerReport struct {
	LeagueID        string              `json:"league_id"`
	LeagueName      string              `json:"league_name"`
	WeeksAnalyzed   int                 `json:"weeks_analyzed"`
	Teams           []BenchwarmerReport `json:"all_teams"`
	BiggestMistakes []BenchPerformance  `json:"biggest_benching_mistakes"`
	Champion        string              `json:"benchwarmer_champion"`
	ChampionPoints  float64             `json:"benchwarmer_champion_points"`
}

// LuckFactor classifies a weekly result against the league median.
type LuckFactor string

const (
	LuckyWin     LuckFactor = "lucky_win"
	UnluckyLoss  LuckFactor = "unlucky_loss"
	DeservedWin  LuckFactor = "deserved_win"
	DeservedLoss LuckFactor = "deserved_loss"
	LuckTie      LuckFactor = "tie"
)

type WeeklyLuck struct {
	Week           int        `json:"week"`
	RosterID       int        `json:"roster_id"`
	TeamName       string     `json:"team_name"`
	Result         string     `json:"actual_result"`
	Points         float64    `json:"points_scored"`
	OpponentPoints float64    `json:"opponent_points"`
	OpponentName   string     `json:"opponent_name"`
	LeagueMedian   float64    `json:"league_median"`
	WeekRank       int        `json:"league_rank_this_week"`
	WinsVsAll      int        `json:"wins_vs_all"`
	ExpectedWinPct float64    `json:"expected_win_pct"`
	Luck           LuckFactor `json:"luck_factor"`
}

type StrengthOfSchedule struct {
	RosterID        int     `json:"roster_id"`
	TeamName        string  `json:"team_name"`
	AvgOpponentPts  float64 `json:"avg_opponent_points"`
	AvgOpponentRank float64 `json:"avg_opponent_rank"`
	ScheduleRank    int     `json:"toughest_schedule_rank"`
	EasiestWeeks    []int   `json:"easiest_weeks"`
	HardestWeeks    []int   `json:"hardest_weeks"`
	TotalWeeks      int     `json:"total_weeks"`
}

type LuckReport struct {
	RosterID      int                `json:"roster_id"`
	TeamName      string             `json:"team_name"`
	ActualWins    int                `json:"actual_wins"`
	ActualLosses  int                `json:"actual_losses"`
	ActualTies    int                `json:"actual_ties"`
	ExpectedWins  int                `json:"expected_wins"`
	LuckScore     int                `json:"luck_score"`
	LuckyWins     []WeeklyLuck       `json:"lucky_wins"`
	UnluckyLosses []WeeklyLuck       `json:"unlucky_losses"`
	Schedule      StrengthOfSchedule `json:"strength_of_schedule"`
}

type LeagueLuckReport struct {
	LeagueID        string       `json:"league_id"`
	LeagueName      string       `json:"league_name"`
	WeeksAnalyzed   int          `json:"weeks_analyzed"`
	Teams           []LuckReport `json:"team_reports"`
	LuckiestTeam    string       `json:"luckiest_team"`
	UnluckiestTeam  string       `json:"unluckiest_team"`
	LuckiestScore   int          `json:"luckiest_score"`
	UnluckiestScore int          `json:"unluckiest_score"`
}

type MethodBreakdown struct {
	Points     float64 `json:"points"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// ConstructionBreakdown holds per-method totals indexed by AcquisitionMethod,
// so the breakdown is exhaustive over the closed method set by construction.
type ConstructionBreakdown struct {
	ByMethod    [AcquisitionMethodCount]MethodBreakdown `json:"by_method"`
	TotalPoints float64                                 `json:"total_points"`
}

// Method is a bounds-safe accessor for callers holding a method enum.
func (b ConstructionBreakdown) Method(m AcquisitionMethod) MethodBreakdown {
	if m < 0 || m >= AcquisitionMethodCount {
		return MethodBreakdown{}
	}
	return b.ByMethod[m]
}

type TeamRosterConstruction struct {
	RosterID       int                   `json:"roster_id"`
	TeamName       string                `json:"team_name"`
	Breakdown      ConstructionBreakdown `json:"breakdown"`
	Acquisitions   []OwnershipInterval   `json:"acquisitions"`
	PrimarySource  AcquisitionMethod     `json:"primary_source"`
	DraftReliance  string                `json:"draft_reliance"`
	WaiverActivity string                `json:"waiver_activity"`
}

type LeagueRosterConstruction struct {
	LeagueID          string                   `json:"league_id"`
	LeagueName        string                   `json:"league_name"`
	WeeksAnalyzed     int                      `json:"weeks_analyzed"`
	Teams             []TeamRosterConstruction `json:"all_teams"`
	AvgDraftPct       float64                  `json:"avg_draft_percentage"`
	AvgTradePct       float64                  `json:"avg_trade_percentage"`
	AvgWaiverPct      float64                  `json:"avg_waiver_percentage"`
	AvgFreeAgentPct   float64                  `json:"avg_free_agent_percentage"`
	BestDrafter       string                   `json:"best_drafter"`
	BestDrafterPct    float64                  `json:"best_drafter_pct"`
	MostActiveTrader  string                   `json:"most_active_trader"`
	MostTradeCount    int                      `json:"most_active_trader_count"`
	WaiverKing        string                   `json:"waiver_wire_king"`
	WaiverKingPoints  float64                  `json:"waiver_wire_king_points"`
}

type CloseGame struct {
	Week        int     `json:"week"`
	Team1       string  `json:"team1"`
	Team1Points float64 `json:"team1_points"`
	Team2       string  `json:"team2"`
	Team2Points float64 `json:"team2_points"`
	Margin      float64 `json:"margin"`
	Winner      string  `json:"winner"`
}

type Standing struct {
	Rank          int     `json:"rank"`
	RosterID      int     `json:"roster_id"`
	TeamName      string  `json:"team_name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
	AvgPoints     float64 `json:"avg_points"`
}

type WeeklyResult struct {
	Week           int     `json:"week"`
	Points         float64 `json:"points"`
	Opponent       string  `json:"opponent"`
	OpponentPoints float64 `json:"opponent_points"`
	Result         string  `json:"result"`
}

type TeamPerformance struct {
	RosterID      int            `json:"roster_id"`
	TeamName      string         `json:"team_name"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Ties          int            `json:"ties"`
	PointsFor     float64        `json:"points_for"`
	PointsAgainst float64        `json:"points_against"`
	AvgPoints     float64        `json:"avg_points"`
	Consistency   float64        `json:"consistency"`
	Weekly        []WeeklyResult `json:"weekly_results"`
}

type WeeklyAward struct {
	Week       int     `json:"week"`
	HighScorer string  `json:"high_scorer"`
	HighScore  float64 `json:"high_score"`
	LowScorer  string  `json:"low_scorer"`
	LowScore   float64 `json:"low_score"`
}

type SeasonAwards struct {
	LeagueID      string             `json:"league_id"`
	LeagueName    string             `json:"league_name"`
	WeeksAnalyzed int                `json:"weeks_analyzed"`
	Weekly        []WeeklyAward      `json:"weekly_awards"`
	HighCounts    map[string]int     `json:"high_score_leaders"`
	LowCounts     map[string]int     `json:"low_score_leaders"`
	PayoutByTeam  map[string]float64 `json:"payout_by_team"`
}

type DraftPickReport struct {
	PickNumber    int     `json:"pick_number"`
	Round         int     `json:"round"`
	PickInRound   int     `json:"pick_in_round"`
	RosterID      int     `json:"roster_id"`
	TeamName      string  `json:"team_name"`
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	Position      string  `json:"position"`
	PointsScored  float64 `json:"points_scored"`
	GamesPlayed   int     `json:"games_played"`
	PointsPerGame float64 `json:"points_per_game"`
	OnRoster      bool    `json:"is_on_roster"`
	ValueRating   string  `json:"value_rating"`
}

type RoundSummary struct {
	Round      int             `json:"round_number"`
	TotalPicks int             `json:"total_picks"`
	AvgPoints  float64         `json:"avg_points"`
	BestPick   DraftPickReport `json:"best_pick"`
	WorstPick  DraftPickReport `json:"worst_pick"`
	HitRate    float64         `json:"hit_rate"`
}

type TeamDraftGrade struct {
	RosterID     int               `json:"roster_id"`
	TeamName     string            `json:"team_name"`
	TotalPicks   int               `json:"total_picks"`
	TotalPoints  float64           `json:"total_points"`
	AvgPerPick   float64           `json:"avg_points_per_pick"`
	BestPick     DraftPickReport   `json:"best_pick"`
	WorstPick    DraftPickReport   `json:"worst_pick"`
	HitRate      float64           `json:"hit_rate"`
	Grade        string            `json:"draft_grade"`
	Picks        []DraftPickReport `json:"picks"`
}

type DraftReport struct {
	LeagueID       string           `json:"league_id"`
	LeagueName     string           `json:"league_name"`
	DraftID        string           `json:"draft_id"`
	TotalRounds    int              `json:"total_rounds"`
	TotalPicks     int              `json:"total_picks"`
	WeeksAnalyzed  int              `json:"weeks_analyzed"`
	TeamGrades     []TeamDraftGrade `json:"team_grades"`
	Rounds         []RoundSummary   `json:"round_summaries"`
	BestDrafter    string           `json:"best_drafter"`
	WorstDrafter   string           `json:"worst_drafter"`
	BestPick       DraftPickReport  `json:"best_overall_pick"`
	BiggestBust    *DraftPickReport `json:"biggest_bust,omitempty"`
	LeagueAvgPick  float64          `json:"league_avg_points_per_pick"`
	LeagueHitRate  float64          `json:"league_hit_rate"`
}
