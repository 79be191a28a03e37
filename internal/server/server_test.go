package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaguelens/internal/api/sleeper"
	"leaguelens/internal/config"
	"leaguelens/internal/models"
	"leaguelens/internal/repository/memory"
	"leaguelens/internal/service"
)

// fakeSleeper serves the minimal one-week league the handlers need.
func fakeSleeper(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}

	mux.HandleFunc("/league/l1", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"league_id": "l1", "name": "Test League", "total_rosters": 2,
			"roster_positions": ["QB", "RB"], "settings": {"waiver_budget": 100}}`)
	})
	mux.HandleFunc("/league/l1/users", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[
			{"user_id": "u1", "display_name": "Alpha"},
			{"user_id": "u2", "display_name": "Bravo"}
		]`)
	})
	mux.HandleFunc("/league/l1/rosters", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[
			{"roster_id": 1, "owner_id": "u1", "players": ["qb1", "rb1", "wr1"]},
			{"roster_id": 2, "owner_id": "u2", "players": ["qb2", "rb2"]}
		]`)
	})
	mux.HandleFunc("/players/nfl", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{
			"qb1": {"full_name": "QB One", "position": "QB"},
			"qb2": {"full_name": "QB Two", "position": "QB"},
			"rb1": {"full_name": "RB One", "position": "RB"},
			"rb2": {"full_name": "RB Two", "position": "RB"},
			"wr1": {"full_name": "WR One", "position": "WR"}
		}`)
	})
	mux.HandleFunc("/league/l1/matchups/1", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[
			{"roster_id": 1, "matchup_id": 1, "points": 80,
				"starters": ["qb1", "rb1"], "players": ["qb1", "rb1", "wr1"],
				"players_points": {"qb1": 50, "rb1": 30, "wr1": 10}},
			{"roster_id": 2, "matchup_id": 1, "points": 70,
				"starters": ["qb2", "rb2"], "players": ["qb2", "rb2"],
				"players_points": {"qb2": 40, "rb2": 30}}
		]`)
	})
	mux.HandleFunc("/league/l1/transactions/1", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[
			{"transaction_id": "t1", "type": "waiver", "status": "complete",
				"adds": {"wr1": 1}, "settings": {"waiver_bid": 5}, "created": 100},
			{"transaction_id": "t2", "type": "waiver", "status": "failed",
				"adds": {"wr1": 2}, "settings": {"waiver_bid": 3}, "created": 200}
		]`)
	})
	mux.HandleFunc("/league/l1/drafts", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	api := fakeSleeper(t)

	client := sleeper.NewClient(config.SleeperAPI{
		BaseURL:         api.URL,
		Timeout:         5 * time.Second,
		PlayersCacheTTL: time.Hour,
		RequestsPerSec:  1000,
	})
	svc := service.NewAnalyticsService(client, config.League{LeagueID: "l1", Weeks: 1}, memory.NewRepository())
	return New(":0", svc).httpServer.Handler
}

func TestStandingsEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/standings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var standings []models.Standing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	require.Len(t, standings, 2)
	assert.Equal(t, "Alpha", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Wins)
	assert.Equal(t, "Bravo", standings[1].TeamName)
}

func TestDraftEndpointUnavailable(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/draft", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "draft data unavailable")
}

func TestTeamEfficiencyEndpointValidation(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/efficiency/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLuckEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/luck", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.LeagueLuckReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "Test League", report.LeagueName)
	assert.Len(t, report.Teams, 2)
}

func TestConstructionEndpointsSerializeFreePickups(t *testing.T) {
	handler := newTestServer(t)

	// Draft-seeded intervals score points for zero FAAB; the response must
	// still be valid JSON with their ROI encoded as null.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/construction", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roi":null`)

	var league models.LeagueRosterConstruction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &league))
	assert.Equal(t, "Test League", league.LeagueName)
	require.Len(t, league.Teams, 2)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/construction/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var team models.TeamRosterConstruction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	assert.Equal(t, "Alpha", team.TeamName)
	require.Len(t, team.Acquisitions, 3)
}

func TestLeagueFAABEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/faab", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.LeagueFAABReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 5, report.TotalFAABSpent)
	require.NotEmpty(t, report.OwnerRankings)
	assert.Equal(t, "Alpha", report.OwnerRankings[0].OwnerName)
	assert.Equal(t, 2.0, report.OwnerRankings[0].AvgROI)
	require.NotEmpty(t, report.BestValuePickups)
	assert.Equal(t, "WR One", report.BestValuePickups[0].PlayerName)

	// The losing claim for wr1 must not count as a second pickup.
	require.Len(t, report.MostTransacted, 1)
	assert.Equal(t, "WR One", report.MostTransacted[0].PlayerName)
	assert.Equal(t, 1, report.MostTransacted[0].TimesPickedUp)
}

func TestPlayerLifecycleEndpointSerializesFreeScorer(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players/qb1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roi":null`)

	var lifecycle models.PlayerLifecycle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lifecycle))
	assert.Equal(t, "QB One", lifecycle.PlayerName)
	assert.Equal(t, "Alpha", lifecycle.CurrentOwner)
	require.Len(t, lifecycle.Ownership, 1)
	assert.Equal(t, 50.0, lifecycle.Ownership[0].Points)
	assert.True(t, lifecycle.Ownership[0].StillOwned)
}

func TestWhoHasEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/whohas?name=QB+One", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roi":null`)

	var lifecycle models.PlayerLifecycle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lifecycle))
	assert.Equal(t, "QB One", lifecycle.PlayerName)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/whohas", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCloseGamesEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matchups/close", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var games []models.CloseGame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	require.Len(t, games, 1)
	assert.Equal(t, "Alpha", games[0].Winner)
	assert.Equal(t, 10.0, games[0].Margin)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matchups/close?threshold=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	assert.Empty(t, games)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matchups/close?threshold=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}
