package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vehicle-dashboard/models"
)

// CSVSource loads the dataset from a delimited file on disk. The path is
// fixed at construction; the default deployment reads vehicles.csv from
// the working directory.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSVSource reading from the given path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Describe returns the file name shown in logs and the sidebar source note.
func (s *CSVSource) Describe() string {
	return filepath.Base(s.path)
}

// Load reads and parses the whole file.
func (s *CSVSource) Load() (*models.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", s.path, err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads a complete listings table from r: header resolution by
// exact column name, the nine-column null-drop, and strict typed parsing
// of the numeric fields. Uploaded files go through the same path as the
// default dataset.
func ParseCSV(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input: %w", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	// Spreadsheet exports often prefix the first header cell with a BOM.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv: %w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	_, hasType := idx[ColType]
	_, hasTransmission := idx[ColTransmission]

	var listings []models.Listing
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}

		l, ok, err := parseRow(record, idx, hasType, hasTransmission)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		if !ok {
			continue
		}
		listings = append(listings, l)
	}

	return models.NewDataset(listings, hasType, hasTransmission), nil
}

// parseRow applies the null-drop invariant and the typed schema to one
// record. ok=false drops the row (a required cell was empty); an error
// means a non-null cell failed its type, which fails the whole load rather
// than silently coercing.
func parseRow(record []string, idx map[string]int, hasType, hasTransmission bool) (models.Listing, bool, error) {
	cell := func(col string) string { return record[idx[col]] }

	for _, col := range RequiredColumns {
		if isNull(cell(col)) {
			return models.Listing{}, false, nil
		}
	}

	year, err := parseYear(cell(ColYear))
	if err != nil {
		return models.Listing{}, false, err
	}
	price, err := parseFloat(cell(ColPrice), ColPrice)
	if err != nil {
		return models.Listing{}, false, err
	}
	lat, err := parseFloat(cell(ColLat), ColLat)
	if err != nil {
		return models.Listing{}, false, err
	}
	long, err := parseFloat(cell(ColLong), ColLong)
	if err != nil {
		return models.Listing{}, false, err
	}

	l := models.Listing{
		Manufacturer: cell(ColManufacturer),
		Model:        cell(ColModel),
		Year:         year,
		Price:        price,
		Lat:          lat,
		Long:         long,
		Cylinders:    cell(ColCylinders),
		Fuel:         cell(ColFuel),
		Drive:        cell(ColDrive),
	}
	if hasType && !isNull(cell(ColType)) {
		l.Type = cell(ColType)
	}
	if hasTransmission && !isNull(cell(ColTransmission)) {
		l.Transmission = cell(ColTransmission)
	}

	return l, true, nil
}
