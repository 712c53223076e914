package reportgen

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCannedGenerator_EveryType(t *testing.T) {
	g := NewCannedGenerator()

	headings := map[models.ReportType]string{
		models.ReportTypePattern:         "# Behavioral Pattern Analysis",
		models.ReportTypeTrend:           "# Development Trends Analysis",
		models.ReportTypeSummary:         "# Development Summary",
		models.ReportTypeRecommendations: "# Personalized Recommendations",
	}

	for typ, heading := range headings {
		t.Run(string(typ), func(t *testing.T) {
			out, err := g.Generate(context.Background(), Request{Type: typ, ChildName: common.AllChildren})
			require.NoError(t, err)
			assert.Contains(t, out, heading)
			assert.NotContains(t, out, " for all")
		})
	}
}

func TestCannedGenerator_FillsCounts(t *testing.T) {
	g := NewCannedGenerator()

	out, err := g.Generate(context.Background(), Request{
		Type:      models.ReportTypeSummary,
		ChildName: "Emma",
		JournalEntries: []*models.JournalEntry{
			{ID: "j1"}, {ID: "j2"},
		},
		FoodItems: []*models.FoodItem{
			{ID: "f1", Category: models.FoodCategorySafe},
			{ID: "f2", Category: models.FoodCategoryNew},
			{ID: "f3", Category: models.FoodCategorySafe},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "# Development Summary for Emma")
	assert.Contains(t, out, "2\njournal entries")
	assert.Contains(t, out, "2 of 3 tracked foods")
}

func TestCannedGenerator_UnknownType(t *testing.T) {
	_, err := NewCannedGenerator().Generate(context.Background(), Request{Type: "horoscope"})
	require.ErrorIs(t, err, common.ErrInvalidReportType)
}

func TestCannedGenerator_TestConnection(t *testing.T) {
	require.NoError(t, NewCannedGenerator().TestConnection(context.Background()))
}
