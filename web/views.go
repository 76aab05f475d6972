package web

import (
	"encoding/json"
	"html/template"

	"vehicle-dashboard/models"
	"vehicle-dashboard/services"
)

// Warning and status strings shown by the views.
const (
	msgNoModelsForCompany = "No models found for this company."
	msgNoMatchingModels   = "No matching models found."
	msgMissingColumns     = "Required columns are missing from the dataset."
	msgNoManufacturerData = "No data or 'manufacturer' column missing."
	msgDataNotLoaded      = "Data not loaded."
	msgNoBrandData        = "No data available for this manufacturer."
	msgUploadSuccess      = "File uploaded successfully!"
)

// viewInput carries everything a view builder may read: the resolved
// dataset plus the presentation-owned filter inputs. Builders are pure;
// re-entering a page recomputes its view from scratch.
type viewInput struct {
	ds           *models.Dataset
	manufacturer string
	search       string
}

// pageData is the template payload: shared sidebar chrome plus the
// page-specific view model.
type pageData struct {
	Title     string
	Active    string
	Nav       []navLink
	Source    string
	LoadError string
	Flash     string
	HasUpload bool
	View      any
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

type homeView struct {
	Metrics models.SummaryMetrics
}

type modelsView struct {
	Manufacturers []string
	Selected      string
	Search        string
	Summaries     []models.ModelSummary
	Warning       string
}

type chartView struct {
	ChartURL string
	Legend   []legendEntry
	Warning  string
}

type legendEntry struct {
	Label string
	Color string
}

type heatmapView struct {
	Manufacturers []string
	Selected      string
	HasMap        bool
	CenterLat     float64
	CenterLong    float64
	PointsJS      template.JS
	Warning       string
}

func buildHomeView(in viewInput) homeView {
	return homeView{Metrics: services.SummaryMetrics(in.ds)}
}

func buildModelsView(in viewInput) modelsView {
	v := modelsView{
		Manufacturers: services.Manufacturers(in.ds),
		Selected:      in.manufacturer,
		Search:        in.search,
	}

	if in.ds.Empty() {
		v.Warning = msgDataNotLoaded
		return v
	}
	if !in.ds.HasType() || !in.ds.HasTransmission() {
		v.Warning = msgMissingColumns
		return v
	}

	// The dropdown defaults to the first manufacturer when none is chosen.
	if v.Selected == "" && len(v.Manufacturers) > 0 {
		v.Selected = v.Manufacturers[0]
	}

	v.Summaries = services.ModelsForManufacturer(in.ds, v.Selected, in.search)
	if len(v.Summaries) == 0 {
		if in.search != "" && len(services.ModelsForManufacturer(in.ds, v.Selected, "")) > 0 {
			v.Warning = msgNoMatchingModels
		} else {
			v.Warning = msgNoModelsForCompany
		}
	}
	return v
}

func buildTopBrandsView(in viewInput) chartView {
	if in.ds.Empty() {
		return chartView{Warning: msgNoManufacturerData}
	}
	return chartView{ChartURL: "/charts/top-brands.png"}
}

func buildTransmissionTypeView(in viewInput) chartView {
	if in.ds.Empty() {
		return chartView{Warning: msgDataNotLoaded}
	}
	if !in.ds.HasTransmission() || !in.ds.HasType() {
		return chartView{Warning: msgMissingColumns}
	}

	pairs := services.TransmissionByType(in.ds)
	if len(pairs) == 0 {
		return chartView{Warning: msgDataNotLoaded}
	}
	return chartView{
		ChartURL: "/charts/transmission-type.png",
		Legend:   legendFor(categoryOrder(pairs)),
	}
}

func buildManufacturerDriveView(in viewInput) chartView {
	if in.ds.Empty() {
		return chartView{Warning: msgDataNotLoaded}
	}

	pairs := services.DriveByManufacturer(in.ds)
	return chartView{
		ChartURL: "/charts/manufacturer-drive.png",
		Legend:   legendFor(categoryOrder(pairs)),
	}
}

func buildHeatmapView(in viewInput) heatmapView {
	v := heatmapView{
		Manufacturers: services.Manufacturers(in.ds),
		Selected:      in.manufacturer,
	}

	if in.ds.Empty() {
		v.Warning = msgDataNotLoaded
		return v
	}
	if v.Selected == "" && len(v.Manufacturers) > 0 {
		v.Selected = v.Manufacturers[0]
	}

	heat, ok := services.BrandHeatPoints(in.ds, v.Selected)
	if !ok {
		v.Warning = msgNoBrandData
		return v
	}

	raw := make([][2]float64, 0, len(heat.Points))
	for _, p := range heat.Points {
		raw = append(raw, [2]float64{p.Lat, p.Long})
	}
	// Coordinates are finite by the load invariant, so Marshal cannot fail.
	b, _ := json.Marshal(raw)

	v.HasMap = true
	v.CenterLat = heat.CenterLat
	v.CenterLong = heat.CenterLong
	v.PointsJS = template.JS(b)
	return v
}
