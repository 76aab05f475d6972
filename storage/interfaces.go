package storage

import "vehicle-dashboard/models"

// DatasetSource is the interface any dataset backend must satisfy. Load
// reads the full listings table once; the Store caches the result for the
// process lifetime.
type DatasetSource interface {
	Load() (*models.Dataset, error)
	Describe() string
}
