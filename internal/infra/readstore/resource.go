package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"reservation-engine/internal/domain/resource"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

const resourceViewColumns = `id, name, type, capacity, base_price_cents, price_unit, is_active, attributes, created_at, updated_at`

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resourceViewColumns+` FROM resources WHERE id = $1`, id)

	view, err := scanResourceView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return view, nil
}

func (r *ResourceReadStore) List(ctx context.Context, activeOnly bool) ([]*queries.ResourceView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+resourceViewColumns+`
		FROM resources
		WHERE NOT $1 OR is_active
		ORDER BY name`,
		activeOnly,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	var out []*queries.ResourceView
	for rows.Next() {
		view, err := scanResourceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read resources", err)
	}
	return out, nil
}

func scanResourceView(row pgx.Row) (*queries.ResourceView, error) {
	var view queries.ResourceView
	var attrsRaw []byte
	err := row.Scan(
		&view.ID, &view.Name, &view.Type, &view.Capacity, &view.BasePriceCents,
		&view.PriceUnit, &view.IsActive, &attrsRaw, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(attrsRaw) > 0 {
		var attrs resource.Attributes
		if err := json.Unmarshal(attrsRaw, &attrs); err != nil {
			return nil, err
		}
		view.Attributes = attrs
	}
	return &view, nil
}
