package handler

import (
	"fmt"
	"math"

	"earnershub/internal/models"
)

const (
	pieRadius = 100.0
	pieCenter = 110.0

	colorPositive = "green"
	colorNegative = "red"
)

// PieSlice is one wedge of the sentiment chart. Path is empty when the slice
// covers the whole circle and Full is set instead.
type PieSlice struct {
	Label   string
	Count   int
	Percent float64
	Color   string
	Path    string
	Full    bool
}

// PieChart is the sentiment distribution drawn on the credibility page
type PieChart struct {
	Size   float64
	Center float64
	Radius float64
	Slices []PieSlice
}

// NewSentimentPie lays out positive and negative counts as SVG wedges,
// starting at twelve o'clock and going clockwise. Empty slices are omitted.
func NewSentimentPie(report models.CredibilityReport) PieChart {
	chart := PieChart{Size: 2 * pieCenter, Center: pieCenter, Radius: pieRadius}
	total := report.Positive + report.Negative
	if total == 0 {
		return chart
	}

	start := 0.0
	for _, s := range []struct {
		label string
		count int
		color string
	}{
		{"Positive", report.Positive, colorPositive},
		{"Negative", report.Negative, colorNegative},
	} {
		if s.count == 0 {
			continue
		}
		fraction := float64(s.count) / float64(total)
		slice := PieSlice{
			Label:   s.label,
			Count:   s.count,
			Percent: math.Round(fraction*1000) / 10,
			Color:   s.color,
		}
		if s.count == total {
			slice.Full = true
		} else {
			slice.Path = wedgePath(start, start+fraction)
		}
		chart.Slices = append(chart.Slices, slice)
		start += fraction
	}
	return chart
}

// wedgePath draws the sector between two fractions of a full turn.
func wedgePath(from, to float64) string {
	x1, y1 := pointAt(from)
	x2, y2 := pointAt(to)
	largeArc := 0
	if to-from > 0.5 {
		largeArc = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		pieCenter, pieCenter, x1, y1, pieRadius, pieRadius, largeArc, x2, y2)
}

func pointAt(fraction float64) (float64, float64) {
	angle := 2*math.Pi*fraction - math.Pi/2
	return pieCenter + pieRadius*math.Cos(angle), pieCenter + pieRadius*math.Sin(angle)
}
