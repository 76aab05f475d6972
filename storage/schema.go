package storage

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Column names of the source table. The first nine are required: a row
// missing any of them is dropped at load time and never reappears in a
// computation. Type and transmission are optional; views that need them
// surface a missing-columns warning when the source lacks them.
const (
	ColManufacturer = "manufacturer"
	ColModel        = "model"
	ColYear         = "year"
	ColPrice        = "price"
	ColLat          = "lat"
	ColLong         = "long"
	ColCylinders    = "cylinders"
	ColFuel         = "fuel"
	ColDrive        = "drive"
	ColType         = "type"
	ColTransmission = "transmission"
)

// RequiredColumns must all be present in the source header; load fails
// otherwise.
var RequiredColumns = []string{
	ColManufacturer, ColModel, ColYear, ColPrice,
	ColLat, ColLong, ColCylinders, ColFuel, ColDrive,
}

// OptionalColumns may be absent; the Dataset records their presence.
var OptionalColumns = []string{ColType, ColTransmission}

// ErrMissingColumns marks a load failure caused by absent required columns.
var ErrMissingColumns = errors.New("required columns missing")

// nullTokens are the cell spellings treated as null, the common subset of
// what CSV exports of the source data actually contain.
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

func isNull(cell string) bool {
	_, ok := nullTokens[cell]
	return ok
}

// parseYear accepts integer cells and float-form cells such as "2015.0",
// truncating to the integer year.
func parseYear(cell string) (int, error) {
	if n, err := strconv.Atoi(cell); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer year: %q", cell)
	}
	return int(f), nil
}

// parseFloat rejects non-finite values: every numeric that survives the
// load is safe to average and to marshal.
func parseFloat(cell, column string) (float64, error) {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number in %s: %q", column, cell)
	}
	return f, nil
}
