package postgres

import (
	"context"
	"fmt"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
)

// scanIDs runs a single-column id query and collects the results.
func scanIDs(ctx context.Context, q repositories.DBTX, query string, args ...interface{}) ([]string, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}
