package services

import (
	"encoding/json"
	"testing"

	"discovery-space/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLogRecordsNewestFirst(t *testing.T) {
	conn := setupTestDB(t)
	scans := NewScanLog(conn)
	game := createGame(t, conn, "Moons", db.ModeChallenge)
	questionID := uint(7)

	require.NoError(t, scans.Record(ctx, ScanLearning, "MISS", game.ID, nil, MatchResult{}))
	require.NoError(t, scans.Record(ctx, ScanChallenge, "MOON", game.ID, &questionID, MatchResult{Valid: true, Name: "Moon"}))

	events, total, err := scans.Page(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, events, 2)
	assert.Equal(t, "MOON", events[0].Tag)
	assert.True(t, events[0].Valid)
	require.NotNil(t, events[0].QuestionID)
	assert.Equal(t, questionID, *events[0].QuestionID)

	var payload MatchResult
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	assert.Equal(t, "Moon", payload.Name)

	assert.False(t, events[1].Valid)
	assert.Nil(t, events[1].QuestionID)

	second, total, err := scans.Page(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, second, 1)
	assert.Equal(t, "MISS", second[0].Tag)
}
