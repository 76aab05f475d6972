package models

// Listing is one used-vehicle record with an explicit typed schema.
// The loader guarantees that every field except Type and Transmission is
// non-null; those two are optional columns and hold "" when absent.
type Listing struct {
	Manufacturer string  `db:"manufacturer" json:"manufacturer"`
	Model        string  `db:"model" json:"model"`
	Year         int     `db:"year" json:"year"`
	Price        float64 `db:"price" json:"price"`
	Lat          float64 `db:"lat" json:"lat"`
	Long         float64 `db:"long" json:"long"`
	Cylinders    string  `db:"cylinders" json:"cylinders"`
	Fuel         string  `db:"fuel" json:"fuel"`
	Drive        string  `db:"drive" json:"drive"`
	Type         string  `db:"type" json:"type,omitempty"`
	Transmission string  `db:"transmission" json:"transmission,omitempty"`
}

// Dataset is the ordered collection of listings loaded for the process
// lifetime. It is immutable after construction: no writer exists once a
// Dataset is built, so it is safe to share across sessions without locking.
type Dataset struct {
	listings        []Listing
	hasType         bool
	hasTransmission bool
}

// NewDataset builds a Dataset over the given listings. The two flags record
// whether the optional type/transmission columns were present in the source.
func NewDataset(listings []Listing, hasType, hasTransmission bool) *Dataset {
	return &Dataset{
		listings:        listings,
		hasType:         hasType,
		hasTransmission: hasTransmission,
	}
}

// EmptyDataset returns the zero-row Dataset substituted on load failure.
func EmptyDataset() *Dataset {
	return &Dataset{}
}

// Len returns the number of listings.
func (d *Dataset) Len() int { return len(d.listings) }

// Empty reports whether the Dataset has no rows.
func (d *Dataset) Empty() bool { return len(d.listings) == 0 }

// Listings returns the backing rows in load order. Callers must treat the
// slice as read-only.
func (d *Dataset) Listings() []Listing { return d.listings }

// HasType reports whether the source carried a type column.
func (d *Dataset) HasType() bool { return d.hasType }

// HasTransmission reports whether the source carried a transmission column.
func (d *Dataset) HasTransmission() bool { return d.hasTransmission }

// SummaryMetrics holds the headline counts for the home page.
type SummaryMetrics struct {
	TotalListings       int `json:"total_listings"`
	UniqueManufacturers int `json:"unique_manufacturers"`
	UniqueModels        int `json:"unique_models"`
}

// ModelSummary is the aggregate view of one manufacturer+model group:
// mean price, median year, and the modal value of each categorical field
// ("N/A" when the group has no non-null values for it). Recomputed on
// demand, never stored.
type ModelSummary struct {
	Model        string  `json:"model"`
	Count        int     `json:"count"`
	AvgPrice     float64 `json:"avg_price"`
	MedianYear   int     `json:"median_year"`
	Drive        string  `json:"drive"`
	Type         string  `json:"type"`
	Transmission string  `json:"transmission"`
	Fuel         string  `json:"fuel"`
	Cylinders    string  `json:"cylinders"`
}

// BrandFrequency pairs a manufacturer with its listing count.
type BrandFrequency struct {
	Manufacturer string `json:"manufacturer"`
	Count        int    `json:"count"`
}

// CategoryPair is one element of the multisets behind the grouped-bar
// views: (transmission, type) or (manufacturer, drive), one per listing.
type CategoryPair struct {
	Group    string `json:"group"`
	Category string `json:"category"`
}

// GeoPoint is a latitude/longitude pair in floating-point degrees.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// HeatPoints is the heatmap payload for one manufacturer: every listing
// coordinate verbatim in row order plus the arithmetic mean center.
type HeatPoints struct {
	CenterLat  float64    `json:"center_lat"`
	CenterLong float64    `json:"center_long"`
	Points     []GeoPoint `json:"points"`
}
