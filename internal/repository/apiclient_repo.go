// internal/repository/apiclient_repo.go
package repository

import "context"

// APIClientRepository defines the interface for registered API client lookups.
// Clients are seeded out-of-band; the runtime only ever reads them.
type APIClientRepository interface {
	// APIKeyExists reports whether the given API key belongs to a registered
	// client, by exact string match.
	APIKeyExists(ctx context.Context, q DBExecutor, apiKey string) (bool, error)
}
