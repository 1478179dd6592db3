package handler

import (
	"testing"

	"earnershub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentPieEmpty(t *testing.T) {
	chart := NewSentimentPie(models.CredibilityReport{Tier: models.TierIndeterminate})
	assert.Empty(t, chart.Slices)
	assert.Equal(t, 220.0, chart.Size)
}

func TestSentimentPieHalves(t *testing.T) {
	chart := NewSentimentPie(models.CredibilityReport{Positive: 1, Negative: 1})
	require.Len(t, chart.Slices, 2)

	pos, neg := chart.Slices[0], chart.Slices[1]
	assert.Equal(t, "green", pos.Color)
	assert.Equal(t, "red", neg.Color)
	assert.Equal(t, 50.0, pos.Percent)
	assert.Equal(t, "M 110.00 110.00 L 110.00 10.00 A 100.00 100.00 0 0 1 110.00 210.00 Z", pos.Path)
	assert.Equal(t, "M 110.00 110.00 L 110.00 210.00 A 100.00 100.00 0 0 1 110.00 10.00 Z", neg.Path)
}

func TestSentimentPieLargeArc(t *testing.T) {
	chart := NewSentimentPie(models.CredibilityReport{Positive: 3, Negative: 1})
	require.Len(t, chart.Slices, 2)

	// Positive spans three quarters, from twelve to nine o'clock.
	assert.Equal(t, "M 110.00 110.00 L 110.00 10.00 A 100.00 100.00 0 1 1 10.00 110.00 Z", chart.Slices[0].Path)
	assert.Equal(t, 75.0, chart.Slices[0].Percent)
	assert.Equal(t, 25.0, chart.Slices[1].Percent)
}

func TestSentimentPieSingleClass(t *testing.T) {
	chart := NewSentimentPie(models.CredibilityReport{Negative: 4})
	require.Len(t, chart.Slices, 1)
	assert.True(t, chart.Slices[0].Full)
	assert.Empty(t, chart.Slices[0].Path)
	assert.Equal(t, "Negative", chart.Slices[0].Label)
	assert.Equal(t, 100.0, chart.Slices[0].Percent)
}
