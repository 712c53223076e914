package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFoodCategory(t *testing.T) {
	for _, c := range FoodCategories {
		got, err := ParseFoodCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseFoodCategory("never")
	require.Error(t, err)
	_, err = ParseFoodCategory("notyet")
	require.Error(t, err, "category spelling is case sensitive")
}

func TestParseReportType(t *testing.T) {
	for _, s := range []string{"pattern", "trend", "summary", "recommendations"} {
		got, err := ParseReportType(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(got))
	}
	_, err := ParseReportType("forecast")
	require.Error(t, err)
}

func TestPaths(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	assert.Equal(t, "Emma/1700000000123-apple.png", ImagePath("Emma", "apple.png", at))
	assert.Equal(t, "recordings/recording_magicMoments_1700000000123.webm", RecordingPath("magicMoments", at))
}

func TestFoodItem_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(FoodItem{ID: "f1", Category: FoodCategoryNotYet, ImageURL: "https://x/y.png"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "notYet", m["category"])
	assert.Equal(t, "https://x/y.png", m["imageUrl"])
	assert.NotContains(t, m, "imageFile")
}

func TestPendingRecord_ID(t *testing.T) {
	assert.Equal(t, "j1", PendingRecord{Journal: &JournalEntry{ID: "j1"}}.ID())
	assert.Equal(t, "f1", PendingRecord{Food: &FoodItem{ID: "f1"}}.ID())
	assert.Equal(t, "", PendingRecord{}.ID())
}

func TestJournalEntry_Time(t *testing.T) {
	e := &JournalEntry{Timestamp: 1700000000123}
	assert.Equal(t, int64(1700000000123), e.Time().UnixMilli())
	assert.True(t, TimeOf(0).Equal(time.UnixMilli(0)))
}
