package services

import (
	"sort"
	"strings"

	"vehicle-dashboard/models"
)

// DefaultTopBrands is the top-N cap for the brand ranking view.
const DefaultTopBrands = 10

// SummaryMetrics computes the headline counts: total listings and distinct
// manufacturer/model values. All three are zero on the empty dataset.
func SummaryMetrics(ds *models.Dataset) models.SummaryMetrics {
	manufacturers := make(map[string]struct{})
	modelNames := make(map[string]struct{})

	for _, l := range ds.Listings() {
		manufacturers[l.Manufacturer] = struct{}{}
		modelNames[l.Model] = struct{}{}
	}

	return models.SummaryMetrics{
		TotalListings:       ds.Len(),
		UniqueManufacturers: len(manufacturers),
		UniqueModels:        len(modelNames),
	}
}

// Manufacturers returns the distinct manufacturer values sorted ascending,
// for the selection dropdowns.
func Manufacturers(ds *models.Dataset) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, l := range ds.Listings() {
		if _, ok := seen[l.Manufacturer]; ok {
			continue
		}
		seen[l.Manufacturer] = struct{}{}
		out = append(out, l.Manufacturer)
	}

	sort.Strings(out)
	return out
}

// ModelsForManufacturer filters to the manufacturer (exact, case-sensitive
// match on the stored value), optionally narrows by a case-insensitive
// substring of the model name, then aggregates one ModelSummary per model.
// Groups keep first-seen row order, so repeated calls over the same dataset
// return the same sequence. Every filtered row lands in exactly one group.
func ModelsForManufacturer(ds *models.Dataset, manufacturer, search string) []models.ModelSummary {
	search = strings.ToLower(search)

	var rows []models.Listing
	for _, l := range ds.Listings() {
		if l.Manufacturer != manufacturer {
			continue
		}
		if l.Model == "" {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Model), search) {
			continue
		}
		rows = append(rows, l)
	}

	order, groups := groupByModel(rows)

	summaries := make([]models.ModelSummary, 0, len(order))
	for _, name := range order {
		summaries = append(summaries, summarizeModel(name, groups[name]))
	}
	return summaries
}

// TopManufacturers counts listings per manufacturer and returns the n most
// frequent in descending order. Ties keep first-seen row order (stable sort
// over the first-seen sequence). n <= 0 falls back to DefaultTopBrands.
func TopManufacturers(ds *models.Dataset, n int) []models.BrandFrequency {
	if n <= 0 {
		n = DefaultTopBrands
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, l := range ds.Listings() {
		if _, exists := counts[l.Manufacturer]; !exists {
			order = append(order, l.Manufacturer)
		}
		counts[l.Manufacturer]++
	}

	freq := make([]models.BrandFrequency, 0, len(order))
	for _, m := range order {
		freq = append(freq, models.BrandFrequency{Manufacturer: m, Count: counts[m]})
	}
	sort.SliceStable(freq, func(i, j int) bool {
		return freq[i].Count > freq[j].Count
	})

	if len(freq) > n {
		freq = freq[:n]
	}
	return freq
}

// TransmissionByType returns one (transmission, type) pair per listing with
// both values present. Rows missing either are skipped; the chart buckets
// only fully-labeled pairs.
func TransmissionByType(ds *models.Dataset) []models.CategoryPair {
	var pairs []models.CategoryPair
	for _, l := range ds.Listings() {
		if l.Transmission == "" || l.Type == "" {
			continue
		}
		pairs = append(pairs, models.CategoryPair{Group: l.Transmission, Category: l.Type})
	}
	return pairs
}

// DriveByManufacturer returns one (manufacturer, drive) pair per listing.
// Both fields are load-guaranteed non-null.
func DriveByManufacturer(ds *models.Dataset) []models.CategoryPair {
	pairs := make([]models.CategoryPair, 0, ds.Len())
	for _, l := range ds.Listings() {
		pairs = append(pairs, models.CategoryPair{Group: l.Manufacturer, Category: l.Drive})
	}
	return pairs
}

// BrandHeatPoints collects the coordinates of every listing for the given
// manufacturer, verbatim in row order, with the arithmetic mean as center.
// ok is false when the manufacturer has no rows; the center is undefined
// then and the caller renders its no-data state instead.
func BrandHeatPoints(ds *models.Dataset, manufacturer string) (models.HeatPoints, bool) {
	var (
		points  []models.GeoPoint
		sumLat  float64
		sumLong float64
	)
	for _, l := range ds.Listings() {
		if l.Manufacturer != manufacturer {
			continue
		}
		points = append(points, models.GeoPoint{Lat: l.Lat, Long: l.Long})
		sumLat += l.Lat
		sumLong += l.Long
	}

	if len(points) == 0 {
		return models.HeatPoints{}, false
	}

	return models.HeatPoints{
		CenterLat:  sumLat / float64(len(points)),
		CenterLong: sumLong / float64(len(points)),
		Points:     points,
	}, true
}

// groupByModel buckets rows by exact model name, preserving first-seen
// order.
func groupByModel(rows []models.Listing) ([]string, map[string][]models.Listing) {
	groups := make(map[string][]models.Listing)
	order := make([]string, 0)

	for _, l := range rows {
		if _, exists := groups[l.Model]; !exists {
			order = append(order, l.Model)
		}
		groups[l.Model] = append(groups[l.Model], l)
	}

	return order, groups
}

func summarizeModel(name string, rows []models.Listing) models.ModelSummary {
	var (
		total         float64
		years         []int
		drives        []string
		types         []string
		transmissions []string
		fuels         []string
		cylinders     []string
	)
	for _, l := range rows {
		total += l.Price
		years = append(years, l.Year)
		drives = append(drives, l.Drive)
		types = append(types, l.Type)
		transmissions = append(transmissions, l.Transmission)
		fuels = append(fuels, l.Fuel)
		cylinders = append(cylinders, l.Cylinders)
	}

	return models.ModelSummary{
		Model:        name,
		Count:        len(rows),
		AvgPrice:     round2(total / float64(len(rows))),
		MedianYear:   medianYear(years),
		Drive:        modalValue(drives),
		Type:         modalValue(types),
		Transmission: modalValue(transmissions),
		Fuel:         modalValue(fuels),
		Cylinders:    modalValue(cylinders),
	}
}

// modalValue returns the most frequent non-empty value; ties go to the
// value appearing first in row order. "N/A" when no non-empty values exist.
func modalValue(values []string) string {
	counts := make(map[string]int)
	best := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	if best == 0 {
		return "N/A"
	}
	for _, v := range values {
		if v != "" && counts[v] == best {
			return v
		}
	}
	return "N/A"
}

// medianYear returns the median with integer truncation: an even-sized
// group takes the integer mean of the two middle years.
func medianYear(years []int) int {
	if len(years) == 0 {
		return 0
	}

	sorted := make([]int, len(years))
	copy(sorted, years)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
