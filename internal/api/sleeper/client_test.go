package sleeper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaguelens/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.SleeperAPI{
		BaseURL:         server.URL,
		Timeout:         5 * time.Second,
		PlayersCacheTTL: time.Hour,
		RequestsPerSec:  1000,
	})
}

func TestGetLeagueNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetLeague(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRostersEmptyOn404(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rosters, err := client.GetRosters(context.Background(), "l1")
	require.NoError(t, err)
	assert.Empty(t, rosters)
}

func TestGetTransactionsSkipsMalformedEntries(t *testing.T) {
	body := `[
		{"transaction_id": "t1", "type": "waiver", "status": "complete", "adds": {"p1": 3}, "settings": {"waiver_bid": 7}},
		{"transaction_id": "t2", "type": "mystery", "status": "complete"},
		{"transaction_id": "t3", "type": "trade", "status": "unknown_status"},
		"not an object"
	]`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))

	txns, err := client.GetTransactions(context.Background(), "l1", 3)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "t1", txns[0].TransactionID)
	assert.Equal(t, 3, txns[0].Week)
	assert.Equal(t, 7, txns[0].WaiverBid())
}

func TestGetAllTransactionsDeterministicOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/league/l1/transactions/1":
			fmt.Fprint(w, `[
				{"transaction_id": "b", "type": "free_agent", "status": "complete", "created": 200},
				{"transaction_id": "a", "type": "free_agent", "status": "complete", "created": 200},
				{"transaction_id": "c", "type": "free_agent", "status": "complete", "created": 100}
			]`)
		case "/league/l1/transactions/2":
			fmt.Fprint(w, `[
				{"transaction_id": "d", "type": "free_agent", "status": "complete", "created": 50}
			]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))

	txns, err := client.GetAllTransactions(context.Background(), "l1", 2)
	require.NoError(t, err)
	require.Len(t, txns, 4)

	var order []string
	for _, txn := range txns {
		order = append(order, txn.TransactionID)
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, order)
}

func TestGetMatchupsRangeDegradesFailedWeeks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/league/l1/matchups/2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `[{"roster_id": 1, "matchup_id": 1, "points": 99.5}]`)
	}))

	byWeek, err := client.GetMatchupsRange(context.Background(), "l1", 1, 3)
	require.NoError(t, err)
	require.Len(t, byWeek, 3)
	assert.Len(t, byWeek[1], 1)
	assert.Empty(t, byWeek[2])
	assert.Equal(t, 99.5, byWeek[3][0].Points)
}

func TestGetAllPlayersCached(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"4034": {"first_name": "Christian", "last_name": "McCaffrey", "full_name": "Christian McCaffrey", "position": "RB"},
			"DET": {"first_name": "Detroit", "last_name": "Lions", "position": "DEF"}
		}`)
	}))

	first, err := client.GetAllPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "4034", first["4034"].PlayerID)
	assert.Equal(t, "Detroit Lions", first["DET"].DisplayName())

	second, err := client.GetAllPlayers(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, int32(1), calls.Load(), "second fetch must come from the cache")
}
