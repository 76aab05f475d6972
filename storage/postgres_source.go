package storage

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"vehicle-dashboard/models"
	"vehicle-dashboard/utils"
)

// PostgresSource loads the dataset from a listings table. It is strictly
// read-only: the Dataset is never persisted back, so the source opens a
// connection, runs one SELECT, and closes.
type PostgresSource struct {
	dsn         string
	maxAttempts int
	logger      *utils.Logger
}

// NewPostgresSource creates a PostgresSource for the given connection string.
func NewPostgresSource(dsn string, maxAttempts int, logger *utils.Logger) *PostgresSource {
	return &PostgresSource{dsn: dsn, maxAttempts: maxAttempts, logger: logger}
}

// Describe returns the short label shown in logs and the sidebar source note.
func (s *PostgresSource) Describe() string {
	return "postgres/listings"
}

// Load connects (with back-off, the database container may still be
// starting), selects the full table, and converts rows to the typed schema.
// The nine-column null-drop is pushed into SQL; the optional columns are
// coalesced to "" so null stays representable.
func (s *PostgresSource) Load() (*models.Dataset, error) {
	var db *sqlx.DB
	err := utils.Retry(s.logger, "postgres-connect", s.maxAttempts, 2*time.Second, func() error {
		var connErr error
		db, connErr = sqlx.Connect("postgres", s.dsn)
		return connErr
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	defer db.Close()

	var listings []models.Listing
	query := `
		SELECT manufacturer, model, year, price, lat, long, cylinders, fuel, drive,
		       COALESCE("type", '')       AS type,
		       COALESCE(transmission, '') AS transmission
		FROM listings
		WHERE manufacturer IS NOT NULL AND model IS NOT NULL AND year IS NOT NULL
		  AND price IS NOT NULL AND lat IS NOT NULL AND long IS NOT NULL
		  AND cylinders IS NOT NULL AND fuel IS NOT NULL AND drive IS NOT NULL
		ORDER BY id
	`
	if err := db.Select(&listings, query); err != nil {
		return nil, fmt.Errorf("postgres: select listings: %w", err)
	}

	s.logger.Debug("[postgres] Loaded %d listings", len(listings))

	return models.NewDataset(listings, true, true), nil
}
