package web

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"vehicle-dashboard/models"
)

// legendPalette mirrors chart.DefaultColors so the HTML legend matches the
// rendered bars.
var legendPalette = []string{"#0074D9", "#00D965", "#D90074", "#00D9D2", "#D96500"}

// categoryMatrix buckets a CategoryPair multiset into first-seen groups ×
// first-seen categories for grouped-bar rendering. Bucketing happens here,
// on the presentation side; the query engine hands over the raw pairs.
type categoryMatrix struct {
	groups     []string
	categories []string
	counts     map[string]map[string]int
}

func buildMatrix(pairs []models.CategoryPair) categoryMatrix {
	m := categoryMatrix{counts: make(map[string]map[string]int)}
	seen := make(map[string]struct{})

	for _, p := range pairs {
		if _, ok := m.counts[p.Group]; !ok {
			m.groups = append(m.groups, p.Group)
			m.counts[p.Group] = make(map[string]int)
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			m.categories = append(m.categories, p.Category)
		}
		m.counts[p.Group][p.Category]++
	}

	return m
}

// categoryOrder returns the first-seen category sequence, the same order
// the chart assigns colors in.
func categoryOrder(pairs []models.CategoryPair) []string {
	seen := make(map[string]struct{})
	var order []string
	for _, p := range pairs {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		order = append(order, p.Category)
	}
	return order
}

func legendFor(categories []string) []legendEntry {
	entries := make([]legendEntry, 0, len(categories))
	for i, c := range categories {
		entries = append(entries, legendEntry{
			Label: c,
			Color: legendPalette[i%len(legendPalette)],
		})
	}
	return entries
}

// renderTopBrandsPie renders the brand ranking as a PNG pie chart.
func renderTopBrandsPie(freq []models.BrandFrequency) ([]byte, error) {
	if len(freq) == 0 {
		return nil, fmt.Errorf("charts: no manufacturers to draw")
	}

	values := make([]chart.Value, 0, len(freq))
	for _, f := range freq {
		values = append(values, chart.Value{
			Value: float64(f.Count),
			Label: fmt.Sprintf("%s (%d)", f.Manufacturer, f.Count),
		})
	}

	pie := chart.PieChart{
		Title:  "Top 10 Manufacturers",
		Width:  720,
		Height: 560,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("charts: render pie: %w", err)
	}
	return buf.Bytes(), nil
}

// renderGroupedBars renders one bar per non-zero (group, category) cell,
// bars clustered by group in first-seen order and colored by category. The
// group label sits under its first bar; the page legend explains the
// category colors.
func renderGroupedBars(title string, m categoryMatrix) ([]byte, error) {
	catIndex := make(map[string]int, len(m.categories))
	for i, c := range m.categories {
		catIndex[c] = i
	}

	var bars []chart.Value
	for _, g := range m.groups {
		first := true
		for _, c := range m.categories {
			count := m.counts[g][c]
			if count == 0 {
				continue
			}
			label := ""
			if first {
				label = g
				first = false
			}
			color := chart.GetDefaultColor(catIndex[c])
			bars = append(bars, chart.Value{
				Value: float64(count),
				Label: label,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
		}
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("charts: no rows to draw for %q", title)
	}

	const barWidth, barSpacing = 26, 12
	width := len(bars)*(barWidth+barSpacing) + 160
	if width < 900 {
		width = 900
	}

	bc := chart.BarChart{
		Title:        title,
		Width:        width,
		Height:       560,
		BarWidth:     barWidth,
		BarSpacing:   barSpacing,
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("charts: render bars %q: %w", title, err)
	}
	return buf.Bytes(), nil
}
