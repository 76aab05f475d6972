package web

import "fmt"

// Page identifies one of the six dashboard states. Home is the initial
// state; transitions are driven solely by the user's page selection, and no
// state carries memory between visits beyond the shared immutable dataset.
type Page int

const (
	PageHome Page = iota
	PageModelsByCompany
	PageTopBrands
	PageTransmissionVsType
	PageManufacturerVsDrive
	PageBrandHeatmap
)

// pages lists every state in sidebar order.
var pages = []Page{
	PageHome,
	PageModelsByCompany,
	PageTopBrands,
	PageTransmissionVsType,
	PageManufacturerVsDrive,
	PageBrandHeatmap,
}

// viewBuilders maps each state to its pure view constructor; rendering a
// page is enum dispatch plus one template execution, not a branch ladder.
var viewBuilders = map[Page]func(viewInput) any{
	PageHome:                func(in viewInput) any { return buildHomeView(in) },
	PageModelsByCompany:     func(in viewInput) any { return buildModelsView(in) },
	PageTopBrands:           func(in viewInput) any { return buildTopBrandsView(in) },
	PageTransmissionVsType:  func(in viewInput) any { return buildTransmissionTypeView(in) },
	PageManufacturerVsDrive: func(in viewInput) any { return buildManufacturerDriveView(in) },
	PageBrandHeatmap:        func(in viewInput) any { return buildHeatmapView(in) },
}

// String returns the navigation label.
func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageModelsByCompany:
		return "Models by Company"
	case PageTopBrands:
		return "Most Listed Vehicle Brands"
	case PageTransmissionVsType:
		return "Transmission vs Type"
	case PageManufacturerVsDrive:
		return "Manufacturer vs Drive"
	case PageBrandHeatmap:
		return "Brand-Specific Heatmap"
	}
	return "Home"
}

// Header returns the heading shown in the content area.
func (p Page) Header() string {
	switch p {
	case PageHome:
		return "🚗 Used Vehicle Market Analysis Dashboard"
	case PageModelsByCompany:
		return "Models by Manufacturer"
	case PageTopBrands:
		return "Most Listed Vehicle Brands"
	case PageTransmissionVsType:
		return "Transmission vs Type"
	case PageManufacturerVsDrive:
		return "Manufacturer vs Drive"
	case PageBrandHeatmap:
		return "Heatmap of Selected Brand"
	}
	return ""
}

// Slug returns the URL path segment for the page.
func (p Page) Slug() string {
	switch p {
	case PageHome:
		return "home"
	case PageModelsByCompany:
		return "models-by-company"
	case PageTopBrands:
		return "top-brands"
	case PageTransmissionVsType:
		return "transmission-vs-type"
	case PageManufacturerVsDrive:
		return "manufacturer-vs-drive"
	case PageBrandHeatmap:
		return "brand-heatmap"
	}
	return "home"
}

func (p Page) template() string {
	switch p {
	case PageHome:
		return "home.html"
	case PageModelsByCompany:
		return "models.html"
	case PageTopBrands:
		return "top_brands.html"
	case PageTransmissionVsType:
		return "transmission_type.html"
	case PageManufacturerVsDrive:
		return "manufacturer_drive.html"
	case PageBrandHeatmap:
		return "heatmap.html"
	}
	return "home.html"
}

// ParsePage resolves a URL slug to its page. Unknown slugs are an error;
// the server falls back to the initial state.
func ParsePage(slug string) (Page, error) {
	for _, p := range pages {
		if p.Slug() == slug {
			return p, nil
		}
	}
	return PageHome, fmt.Errorf("unknown page %q", slug)
}
