package web

import "testing"

func TestPageSlugRoundTrip(t *testing.T) {
	for _, p := range pages {
		got, err := ParsePage(p.Slug())
		if err != nil {
			t.Errorf("ParsePage(%q): %v", p.Slug(), err)
		}
		if got != p {
			t.Errorf("ParsePage(%q) = %v, want %v", p.Slug(), got, p)
		}
	}
}

func TestParsePageUnknown(t *testing.T) {
	got, err := ParsePage("no-such-page")
	if err == nil {
		t.Error("expected an error for an unknown slug")
	}
	if got != PageHome {
		t.Errorf("fallback page: got %v, want PageHome", got)
	}
}

func TestPageLabels(t *testing.T) {
	tests := []struct {
		page  Page
		label string
		slug  string
	}{
		{PageHome, "Home", "home"},
		{PageModelsByCompany, "Models by Company", "models-by-company"},
		{PageTopBrands, "Most Listed Vehicle Brands", "top-brands"},
		{PageTransmissionVsType, "Transmission vs Type", "transmission-vs-type"},
		{PageManufacturerVsDrive, "Manufacturer vs Drive", "manufacturer-vs-drive"},
		{PageBrandHeatmap, "Brand-Specific Heatmap", "brand-heatmap"},
	}
	for _, tt := range tests {
		if got := tt.page.String(); got != tt.label {
			t.Errorf("%v String: got %q, want %q", tt.page, got, tt.label)
		}
		if got := tt.page.Slug(); got != tt.slug {
			t.Errorf("%v Slug: got %q, want %q", tt.page, got, tt.slug)
		}
	}
}

func TestEveryPageHasABuilderAndTemplate(t *testing.T) {
	seen := make(map[string]Page)
	for _, p := range pages {
		if viewBuilders[p] == nil {
			t.Errorf("%v has no view builder", p)
		}
		name := p.template()
		if name == "" {
			t.Errorf("%v has no template", p)
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("template %q used by both %v and %v", name, prev, p)
		}
		seen[name] = p
	}
}
