package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipIntervalMarshalsInfiniteROIAsNull(t *testing.T) {
	interval := OwnershipInterval{
		PlayerID:   "p1",
		PlayerName: "Free Scorer",
		Method:     AcquisitionDraft,
		Points:     42.5,
		ROI:        math.Inf(1),
	}

	raw, err := json.Marshal(interval)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"roi":null`)
	assert.Contains(t, string(raw), `"method":"draft"`)
	assert.Contains(t, string(raw), `"points":42.5`)
}

func TestOwnershipIntervalMarshalsFiniteROI(t *testing.T) {
	interval := OwnershipInterval{PlayerID: "p1", FAABSpent: 8, ROI: 5.25}

	raw, err := json.Marshal(interval)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"roi":5.25`)
}

func TestOwnershipIntervalMarshalsInsideLifecycle(t *testing.T) {
	lifecycle := PlayerLifecycle{
		PlayerID: "p1",
		Ownership: []OwnershipInterval{
			{PlayerID: "p1", RosterID: 1, ROI: math.Inf(1)},
			{PlayerID: "p1", RosterID: 2, FAABSpent: 10, ROI: 1.5},
		},
	}

	raw, err := json.Marshal(lifecycle)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	history := decoded["ownership_history"].([]any)
	require.Len(t, history, 2)
	assert.Nil(t, history[0].(map[string]any)["roi"])
	assert.Equal(t, 1.5, history[1].(map[string]any)["roi"])
}
