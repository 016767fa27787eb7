// internal/domain/apiclient.go
package domain

// APIClient represents a registered API consumer. Clients are provisioned
// out-of-band (seed data) and are read-only at runtime.
type APIClient struct {
	ID     int64  `db:"id" json:"id"`          // Primary key, BIGSERIAL in DB
	Name   string `db:"name" json:"name"`      // Display name
	APIKey string `db:"api_key" json:"apiKey"` // Unique API key
}
