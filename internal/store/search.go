package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/medtrack/internal/model"
)

// SearchParams holds parameters for searching medicines.
type SearchParams struct {
	Query           string
	IncludeArchived bool
	Limit           int
}

// SearchMedicines finds medicines whose name or purpose contains the query,
// ignoring case.
func (s *SQLiteStore) SearchMedicines(ctx context.Context, p SearchParams) ([]model.Medicine, error) {
	if strings.TrimSpace(p.Query) == "" {
		return nil, fmt.Errorf("search query is required")
	}
	return s.ListMedicines(ctx, ListParams{
		Query:           p.Query,
		IncludeArchived: p.IncludeArchived,
		Limit:           p.Limit,
	})
}
