package property

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MaxResults caps the broad fetch. It is a hard ceiling, not a pagination
// cursor: callers never see more than this many rows per lookup.
const MaxResults = 20

// Repository provides read access to approved property listings.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Search runs the broad fetch: approved listings constrained by whichever
// criteria fields are set, newest first, capped at MaxResults. The location
// predicate is an OR across city, state and address, so combined with other
// optional predicates it can admit false positives; LookupService re-checks
// the rows in memory.
func (r *Repository) Search(ctx context.Context, criteria SearchCriteria) ([]Record, error) {
	const base = `
		SELECT id, address, city, state, landmark, property_type, listing_type::text,
		       status::text, price, bedrooms, bathrooms, area, description, agent_id, created_at
		FROM properties`

	where := []string{"status = 'approved'"}
	args := []any{}

	if criteria.Location != nil {
		n := len(args) + 1
		where = append(where, fmt.Sprintf("(city ILIKE $%d OR state ILIKE $%d OR address ILIKE $%d)", n, n, n))
		args = append(args, "%"+*criteria.Location+"%")
	}
	if criteria.PropertyType != nil {
		where = append(where, fmt.Sprintf("property_type ILIKE $%d", len(args)+1))
		args = append(args, "%"+*criteria.PropertyType+"%")
	}
	if criteria.ListingType != nil {
		where = append(where, fmt.Sprintf("listing_type::text ILIKE $%d", len(args)+1))
		args = append(args, "%"+string(*criteria.ListingType)+"%")
	}
	if criteria.MinPrice != nil {
		where = append(where, fmt.Sprintf("price >= $%d", len(args)+1))
		args = append(args, *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		where = append(where, fmt.Sprintf("price <= $%d", len(args)+1))
		args = append(args, *criteria.MaxPrice)
	}
	if criteria.Bedrooms != nil {
		where = append(where, fmt.Sprintf("bedrooms >= $%d", len(args)+1))
		args = append(args, *criteria.Bedrooms)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC LIMIT %d",
		base, strings.Join(where, " AND "), MaxResults)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("property: search: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, MaxResults)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.Address,
			&rec.City,
			&rec.State,
			&rec.Landmark,
			&rec.PropertyType,
			&rec.ListingType,
			&rec.Status,
			&rec.Price,
			&rec.Bedrooms,
			&rec.Bathrooms,
			&rec.Area,
			&rec.Description,
			&rec.AgentID,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("property: scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("property: iterate records: %w", err)
	}

	return records, nil
}
