package services

import (
	"fmt"
	"reflect"
	"testing"

	"vehicle-dashboard/models"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{Manufacturer: "ford", Model: "f-150", Year: 2018, Price: 25000, Lat: 35, Long: -80, Cylinders: "6 cylinders", Fuel: "gas", Drive: "4wd", Type: "pickup", Transmission: "automatic"},
		{Manufacturer: "chevrolet", Model: "silverado", Year: 2016, Price: 27500, Lat: 39, Long: -77, Cylinders: "8 cylinders", Fuel: "gas", Drive: "4wd", Type: "pickup", Transmission: "automatic"},
		{Manufacturer: "ford", Model: "f-150", Year: 2020, Price: 31000, Lat: 34, Long: -81, Cylinders: "8 cylinders", Fuel: "gas", Drive: "rwd", Type: "pickup", Transmission: "automatic"},
		{Manufacturer: "toyota", Model: "camry", Year: 2019, Price: 21000, Lat: 33, Long: -84, Cylinders: "4 cylinders", Fuel: "gas", Drive: "fwd", Type: "sedan", Transmission: "automatic"},
		{Manufacturer: "ford", Model: "escape", Year: 2017, Price: 15500, Lat: 36, Long: -79, Cylinders: "4 cylinders", Fuel: "gas", Drive: "fwd", Type: "SUV", Transmission: "manual"},
	}
}

func sampleDataset() *models.Dataset {
	return models.NewDataset(sampleListings(), true, true)
}

func TestSummaryMetrics(t *testing.T) {
	m := SummaryMetrics(sampleDataset())
	if m.TotalListings != 5 {
		t.Errorf("TotalListings: got %d, want 5", m.TotalListings)
	}
	if m.UniqueManufacturers != 3 {
		t.Errorf("UniqueManufacturers: got %d, want 3", m.UniqueManufacturers)
	}
	if m.UniqueModels != 4 {
		t.Errorf("UniqueModels: got %d, want 4", m.UniqueModels)
	}
}

func TestSummaryMetricsEmpty(t *testing.T) {
	m := SummaryMetrics(models.EmptyDataset())
	if m.TotalListings != 0 || m.UniqueManufacturers != 0 || m.UniqueModels != 0 {
		t.Errorf("expected all-zero metrics for the empty dataset, got %+v", m)
	}
}

func TestManufacturersSorted(t *testing.T) {
	got := Manufacturers(sampleDataset())
	want := []string{"chevrolet", "ford", "toyota"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Manufacturers: got %v, want %v", got, want)
	}
}

func TestManufacturersEmpty(t *testing.T) {
	got := Manufacturers(models.EmptyDataset())
	if len(got) != 0 {
		t.Errorf("expected no manufacturers for the empty dataset, got %v", got)
	}
}

func TestModelsForManufacturerGrouping(t *testing.T) {
	got := ModelsForManufacturer(sampleDataset(), "ford", "")
	if len(got) != 2 {
		t.Fatalf("ford groups: got %d, want 2", len(got))
	}

	// Groups keep first-seen row order.
	if got[0].Model != "f-150" || got[1].Model != "escape" {
		t.Errorf("group order: got [%s, %s], want [f-150, escape]", got[0].Model, got[1].Model)
	}

	// Every filtered row lands in exactly one group.
	total := 0
	for _, s := range got {
		total += s.Count
	}
	if total != 3 {
		t.Errorf("rows across groups: got %d, want 3", total)
	}

	f150 := got[0]
	if f150.Count != 2 {
		t.Errorf("f-150 count: got %d, want 2", f150.Count)
	}
	if f150.AvgPrice != 28000 {
		t.Errorf("f-150 avg price: got %.2f, want 28000", f150.AvgPrice)
	}
	if f150.MedianYear != 2019 {
		t.Errorf("f-150 median year: got %d, want 2019", f150.MedianYear)
	}
	// 4wd and rwd are tied; the value seen first in row order wins.
	if f150.Drive != "4wd" {
		t.Errorf("f-150 drive: got %q, want %q", f150.Drive, "4wd")
	}
	if f150.Cylinders != "6 cylinders" {
		t.Errorf("f-150 cylinders: got %q, want %q", f150.Cylinders, "6 cylinders")
	}
	if f150.Type != "pickup" || f150.Transmission != "automatic" || f150.Fuel != "gas" {
		t.Errorf("f-150 categoricals: got (%s, %s, %s)", f150.Type, f150.Transmission, f150.Fuel)
	}
}

func TestModelsForManufacturerSearch(t *testing.T) {
	tests := []struct {
		search string
		want   int
	}{
		{"F-1", 1},
		{"f-150", 1},
		{"ESCAPE", 1},
		{"zzz", 0},
		{"", 2},
	}
	for _, tt := range tests {
		got := ModelsForManufacturer(sampleDataset(), "ford", tt.search)
		if len(got) != tt.want {
			t.Errorf("search %q: got %d groups, want %d", tt.search, len(got), tt.want)
		}
	}
}

func TestModelsForManufacturerUnknownBrand(t *testing.T) {
	got := ModelsForManufacturer(sampleDataset(), "bmw", "")
	if len(got) != 0 {
		t.Errorf("unknown manufacturer: got %d groups, want 0", len(got))
	}
}

func TestModelsForManufacturerSkipsEmptyModel(t *testing.T) {
	ds := models.NewDataset([]models.Listing{
		{Manufacturer: "ford", Model: "", Year: 2018, Price: 1000},
		{Manufacturer: "ford", Model: "focus", Year: 2018, Price: 9000},
	}, true, true)

	got := ModelsForManufacturer(ds, "ford", "")
	if len(got) != 1 || got[0].Model != "focus" {
		t.Errorf("expected only the focus group, got %v", got)
	}
}

func TestModelsForManufacturerRepeatable(t *testing.T) {
	ds := sampleDataset()
	first := ModelsForManufacturer(ds, "ford", "")
	second := ModelsForManufacturer(ds, "ford", "")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls diverged:\n first: %v\nsecond: %v", first, second)
	}
}

func TestModalValueFallback(t *testing.T) {
	// No non-empty values for a categorical column renders as N/A.
	ds := models.NewDataset([]models.Listing{
		{Manufacturer: "honda", Model: "civic", Year: 2015, Price: 8000, Fuel: "gas", Drive: "fwd", Cylinders: "4 cylinders"},
		{Manufacturer: "honda", Model: "civic", Year: 2016, Price: 8500, Fuel: "gas", Drive: "fwd", Cylinders: "4 cylinders"},
	}, true, true)

	got := ModelsForManufacturer(ds, "honda", "")
	if len(got) != 1 {
		t.Fatalf("civic groups: got %d, want 1", len(got))
	}
	if got[0].Type != "N/A" {
		t.Errorf("type: got %q, want N/A", got[0].Type)
	}
	if got[0].Transmission != "N/A" {
		t.Errorf("transmission: got %q, want N/A", got[0].Transmission)
	}
}

func TestTopManufacturersOrder(t *testing.T) {
	got := TopManufacturers(sampleDataset(), 2)
	if len(got) != 2 {
		t.Fatalf("n=2: got %d entries, want 2", len(got))
	}
	if got[0].Manufacturer != "ford" || got[0].Count != 3 {
		t.Errorf("first: got %s (%d), want ford (3)", got[0].Manufacturer, got[0].Count)
	}
	// chevrolet and toyota are tied at 1; chevrolet appears first in the data.
	if got[1].Manufacturer != "chevrolet" || got[1].Count != 1 {
		t.Errorf("second: got %s (%d), want chevrolet (1)", got[1].Manufacturer, got[1].Count)
	}
}

func TestTopManufacturersTieKeepsRowOrder(t *testing.T) {
	ds := models.NewDataset([]models.Listing{
		{Manufacturer: "b", Model: "m1"},
		{Manufacturer: "a", Model: "m2"},
		{Manufacturer: "a", Model: "m3"},
		{Manufacturer: "b", Model: "m4"},
		{Manufacturer: "c", Model: "m5"},
	}, true, true)

	got := TopManufacturers(ds, 3)
	want := []models.BrandFrequency{
		{Manufacturer: "b", Count: 2},
		{Manufacturer: "a", Count: 2},
		{Manufacturer: "c", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tie order: got %v, want %v", got, want)
	}
}

func TestTopManufacturersDefaultN(t *testing.T) {
	var rows []models.Listing
	for i := 0; i < 15; i++ {
		rows = append(rows, models.Listing{Manufacturer: fmt.Sprintf("brand-%02d", i), Model: "m"})
	}
	ds := models.NewDataset(rows, true, true)

	if got := TopManufacturers(ds, 0); len(got) != DefaultTopBrands {
		t.Errorf("n=0: got %d entries, want %d", len(got), DefaultTopBrands)
	}
	if got := TopManufacturers(ds, 100); len(got) != 15 {
		t.Errorf("n=100: got %d entries, want all 15", len(got))
	}
}

func TestTransmissionByType(t *testing.T) {
	got := TransmissionByType(sampleDataset())
	if len(got) != 5 {
		t.Fatalf("pairs: got %d, want 5", len(got))
	}
	if got[0].Group != "automatic" || got[0].Category != "pickup" {
		t.Errorf("first pair: got (%s, %s), want (automatic, pickup)", got[0].Group, got[0].Category)
	}
}

func TestTransmissionByTypeSkipsMissing(t *testing.T) {
	ds := models.NewDataset([]models.Listing{
		{Manufacturer: "ford", Model: "a", Transmission: "automatic", Type: "sedan"},
		{Manufacturer: "ford", Model: "b", Transmission: "", Type: "sedan"},
		{Manufacturer: "ford", Model: "c", Transmission: "manual", Type: ""},
	}, true, true)

	got := TransmissionByType(ds)
	if len(got) != 1 {
		t.Errorf("expected 1 pair after dropping null members, got %d", len(got))
	}
}

func TestDriveByManufacturer(t *testing.T) {
	got := DriveByManufacturer(sampleDataset())
	if len(got) != 5 {
		t.Fatalf("pairs: got %d, want 5", len(got))
	}
	if got[0].Group != "ford" || got[0].Category != "4wd" {
		t.Errorf("first pair: got (%s, %s), want (ford, 4wd)", got[0].Group, got[0].Category)
	}
}

func TestBrandHeatPoints(t *testing.T) {
	heat, ok := BrandHeatPoints(sampleDataset(), "ford")
	if !ok {
		t.Fatal("expected ok for ford")
	}

	want := []models.GeoPoint{{Lat: 35, Long: -80}, {Lat: 34, Long: -81}, {Lat: 36, Long: -79}}
	if !reflect.DeepEqual(heat.Points, want) {
		t.Errorf("points: got %v, want %v", heat.Points, want)
	}
	if heat.CenterLat != 35 || heat.CenterLong != -80 {
		t.Errorf("center: got (%v, %v), want (35, -80)", heat.CenterLat, heat.CenterLong)
	}
}

func TestBrandHeatPointsUnknownBrand(t *testing.T) {
	if _, ok := BrandHeatPoints(sampleDataset(), "bmw"); ok {
		t.Error("expected ok=false for a manufacturer with no rows")
	}
}

func TestBrandHeatPointsCenterMean(t *testing.T) {
	ds := models.NewDataset([]models.Listing{
		{Manufacturer: "ford", Model: "a", Lat: 10, Long: 20},
		{Manufacturer: "ford", Model: "b", Lat: 30, Long: 40},
	}, true, true)

	heat, ok := BrandHeatPoints(ds, "ford")
	if !ok {
		t.Fatal("expected ok for ford")
	}
	if heat.CenterLat != 20 || heat.CenterLong != 30 {
		t.Errorf("center: got (%v, %v), want (20, 30)", heat.CenterLat, heat.CenterLong)
	}
}

func TestMedianYear(t *testing.T) {
	tests := []struct {
		years []int
		want  int
	}{
		{[]int{2018}, 2018},
		{[]int{2015, 2018, 2020}, 2018},
		{[]int{2018, 2020}, 2019},
		{[]int{2017, 2018}, 2017},
		{[]int{2020, 2015, 2018, 2011}, 2016},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := medianYear(tt.years); got != tt.want {
			t.Errorf("medianYear(%v) = %d; want %d", tt.years, got, tt.want)
		}
	}
}

func TestMedianYearKeepsInputOrder(t *testing.T) {
	years := []int{2020, 2011, 2015}
	medianYear(years)
	if !reflect.DeepEqual(years, []int{2020, 2011, 2015}) {
		t.Errorf("input slice was reordered: %v", years)
	}
}

func TestModalValue(t *testing.T) {
	tests := []struct {
		values []string
		want   string
	}{
		{[]string{"fwd", "fwd", "rwd"}, "fwd"},
		{[]string{"rwd", "fwd", "fwd"}, "fwd"},
		{[]string{"b", "a", "a", "b"}, "b"},
		{[]string{"", "manual", ""}, "manual"},
		{[]string{"", "", ""}, "N/A"},
		{nil, "N/A"},
	}
	for _, tt := range tests {
		if got := modalValue(tt.values); got != tt.want {
			t.Errorf("modalValue(%v) = %q; want %q", tt.values, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{28000, 28000},
		{25000.375, 25000.38},
		{25000.25, 25000.25},
		{7.625, 7.63},
		{0.125, 0.13},
	}
	for _, tt := range tests {
		if got := round2(tt.raw); got != tt.want {
			t.Errorf("round2(%v) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}
