// internal/repository/postgres/apiclient_pg.go
package postgres

import (
	"context"
	"fmt"

	"user-directory/internal/repository"

	"github.com/jmoiron/sqlx"
)

// APIClientRepository implements repository.APIClientRepository for PostgreSQL.
type APIClientRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewAPIClientRepository creates a new APIClientRepository.
func NewAPIClientRepository(db *sqlx.DB) repository.APIClientRepository {
	return &APIClientRepository{}
}

// APIKeyExists reports whether the given API key belongs to a registered client.
func (r *APIClientRepository) APIKeyExists(ctx context.Context, q repository.DBExecutor, apiKey string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM api_clients WHERE api_key = $1)`
	if err := q.GetContext(ctx, &exists, query, apiKey); err != nil {
		return false, fmt.Errorf("failed to check api key: %w", err)
	}
	return exists, nil
}
