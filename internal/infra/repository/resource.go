package repository

import (
	"context"
	"encoding/json"
	"errors"

	"reservation-engine/internal/domain/resource"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(dbtx db.DBTX) *ResourceRepository {
	return &ResourceRepository{db: dbtx}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	attrs, err := json.Marshal(res.Attributes())
	if err != nil {
		return infra.WrapRepoErr("failed to encode resource attributes", err)
	}
	if len(res.Attributes()) == 0 {
		attrs = []byte("{}")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO resources (id, name, type, capacity, base_price_cents, price_unit, is_active, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.ID(), res.Name(), res.Type().String(), res.Capacity(), res.BasePriceCents(),
		res.PriceUnit().String(), res.IsActive(), attrs,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("resource already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	attrs, err := json.Marshal(res.Attributes())
	if err != nil {
		return infra.WrapRepoErr("failed to encode resource attributes", err)
	}
	if len(res.Attributes()) == 0 {
		attrs = []byte("{}")
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE resources
		SET name = $2, capacity = $3, base_price_cents = $4, price_unit = $5,
		    is_active = $6, attributes = $7, updated_at = now()
		WHERE id = $1`,
		res.ID(), res.Name(), res.Capacity(), res.BasePriceCents(),
		res.PriceUnit().String(), res.IsActive(), attrs,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

// LockByID acquires a row lock so check-then-insert booking sequences are
// serialized per resource.
func (r *ResourceRepository) LockByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, type, capacity, base_price_cents, price_unit, is_active
		FROM resources
		WHERE id = $1
		FOR UPDATE`,
		id,
	)

	var snap shared.ResourceSnapshot
	var typ, unit string
	err := row.Scan(&snap.ID, &snap.Name, &typ, &snap.Capacity, &snap.BasePriceCents, &unit, &snap.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock resource", err)
	}
	snap.Type = resource.Type(typ)
	snap.PriceUnit = resource.PriceUnit(unit)
	return &snap, nil
}

// DeleteCascade removes the resource and its dependents bottom-up. The
// explicit statement order replaces the original system's implicit
// remove-hook cascade.
func (r *ResourceRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := r.db.Exec(ctx, `
		DELETE FROM notification_jobs
		WHERE reservation_id IN (SELECT id FROM reservations WHERE resource_id = $1)`,
		id,
	); err != nil {
		return 0, infra.WrapRepoErr("failed to delete notification jobs", err)
	}

	if _, err := r.db.Exec(ctx, `
		DELETE FROM reservation_slots
		WHERE reservation_id IN (SELECT id FROM reservations WHERE resource_id = $1)`,
		id,
	); err != nil {
		return 0, infra.WrapRepoErr("failed to delete reservation slots", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE resource_id = $1`, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete reservations", err)
	}
	deleted := tag.RowsAffected()

	if _, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id); err != nil {
		return 0, infra.WrapRepoErr("failed to delete resource", err)
	}
	return deleted, nil
}
