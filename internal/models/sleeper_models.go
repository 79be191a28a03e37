package models

const (
	TransactionTypeTrade        = "trade"
	TransactionTypeWaiver       = "waiver"
	TransactionTypeFreeAgent    = "free_agent"
	TransactionTypeCommissioner = "commissioner"

	TransactionStatusComplete = "complete"
	TransactionStatusPending  = "pending"
	TransactionStatusFailed   = "failed"
)

type League struct {
	LeagueID         string             `json:"league_id"`
	Name             string             `json:"name"`
	Status           string             `json:"status"`
	Sport            string             `json:"sport"`
	Season           string             `json:"season"`
	SeasonType       string             `json:"season_type"`
	TotalRosters     int                `json:"total_rosters"`
	RosterPositions  []string           `json:"roster_positions"`
	ScoringSettings  map[string]float64 `json:"scoring_settings"`
	Settings         LeagueSettings     `json:"settings"`
	DraftID          string             `json:"draft_id"`
	PreviousLeagueID string             `json:"previous_league_id"`
}

type LeagueSettings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	WaiverType       int `json:"waiver_type"`
	WaiverBudget     int `json:"waiver_budget"`
	TradeDeadline    int `json:"trade_deadline"`
	PlayoffTeams     int `json:"playoff_teams"`
}

type User struct {
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	Metadata    map[string]string `json:"metadata"`
	IsOwner     bool              `json:"is_owner"`
}

// TeamName prefers the custom team name set in user metadata.
func (u User) TeamName() string {
	if name, ok := u.Metadata["team_name"]; ok && name != "" {
		return name
	}
	return u.DisplayName
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	LeagueID string         `json:"league_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Reserve  []string       `json:"reserve"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	Fpts               int `json:"fpts"`
	FptsDecimal        int `json:"fpts_decimal"`
	FptsAgainst        int `json:"fpts_against"`
	FptsAgainstDecimal int `json:"fpts_against_decimal"`
	WaiverBudgetUsed   int `json:"waiver_budget_used"`
	TotalMoves         int `json:"total_moves"`
	WaiverPosition     int `json:"waiver_position"`
	Division           int `json:"division"`
}

func (r Roster) PointsFor() float64 {
	return float64(r.Settings.Fpts) + float64(r.Settings.FptsDecimal)/100
}

func (r Roster) PointsAgainst() float64 {
	return float64(r.Settings.FptsAgainst) + float64(r.Settings.FptsAgainstDecimal)/100
}

type Player struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	Status    string `json:"status"`
	Number    int    `json:"number"`
}

// DisplayName falls back to first/last because team defenses have no
// full_name in the Sleeper player directory.
func (p Player) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.FirstName != "" || p.LastName != "" {
		return p.FirstName + " " + p.LastName
	}
	return p.PlayerID
}

type Matchup struct {
	RosterID      int                `json:"roster_id"`
	MatchupID     int                `json:"matchup_id"`
	Points        float64            `json:"points"`
	Starters      []string           `json:"starters"`
	Players       []string           `json:"players"`
	PlayersPoints map[string]float64 `json:"players_points"`
}

type Transaction struct {
	TransactionID string              `json:"transaction_id"`
	Type          string              `json:"type"`
	Status        string              `json:"status"`
	RosterIDs     []int               `json:"roster_ids"`
	Adds          map[string]int      `json:"adds"`
	Drops         map[string]int      `json:"drops"`
	DraftPicks    []TradedPick        `json:"draft_picks"`
	WaiverBudget  []WaiverBudgetMove  `json:"waiver_budget"`
	Settings      map[string]int      `json:"settings"`
	Metadata      TransactionMetadata `json:"metadata"`
	Created       int64               `json:"created"`

	// Week the transaction was fetched for; not part of the API payload.
	Week int `json:"-"`
}

type TransactionMetadata struct {
	Notes string `json:"notes"`
}

func (t Transaction) IsTrade() bool {
	return t.Type == TransactionTypeTrade
}

func (t Transaction) IsWaiver() bool {
	return t.Type == TransactionTypeWaiver
}

// WaiverBid returns the blind bid attached to a waiver claim, 0 when absent.
func (t Transaction) WaiverBid() int {
	return t.Settings["waiver_bid"]
}

type TradedPick struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"`
	PreviousOwnerID int    `json:"previous_owner_id"`
	OwnerID         int    `json:"owner_id"`
}

type WaiverBudgetMove struct {
	Sender   int `json:"sender"`
	Receiver int `json:"receiver"`
	Amount   int `json:"amount"`
}

type Draft struct {
	DraftID  string        `json:"draft_id"`
	Type     string        `json:"type"`
	Status   string        `json:"status"`
	Season   string        `json:"season"`
	Settings DraftSettings `json:"settings"`
}

type DraftSettings struct {
	Rounds int `json:"rounds"`
	Teams  int `json:"teams"`
}

type DraftSelection struct {
	PickNo    int    `json:"pick_no"`
	Round     int    `json:"round"`
	DraftSlot int    `json:"draft_slot"`
	RosterID  int    `json:"roster_id"`
	PlayerID  string `json:"player_id"`
	PickedBy  string `json:"picked_by"`
}

type NFLState struct {
	Week        int    `json:"week"`
	Season      string `json:"season"`
	SeasonType  string `json:"season_type"`
	DisplayWeek int    `json:"display_week"`
	Leg         int    `json:"leg"`
}
