package commands

import (
	"context"

	"reservation-engine/internal/domain/resource"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateResourceCommand struct {
	Name           string
	Type           resource.Type
	Capacity       int32
	BasePriceCents int64
	PriceUnit      resource.PriceUnit
	Attributes     resource.Attributes
}

type UpdateResourceCommand struct {
	ID             uuid.UUID
	Name           *string
	Capacity       *int32
	BasePriceCents *int64
	PriceUnit      *resource.PriceUnit
	IsActive       *bool
	Attributes     resource.Attributes
}

type ResourceCommands interface {
	Create(ctx context.Context, cmd CreateResourceCommand) (uuid.UUID, error)
	Update(ctx context.Context, cmd UpdateResourceCommand) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// DeleteCascade removes a resource and all of its reservations in one
	// transaction. Deliberately explicit; there is no implicit delete hook.
	DeleteCascade(ctx context.Context, id uuid.UUID) (deletedReservations int64, err error)
}

type resourceCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewResourceCommands(uow shared.UnitOfWork) ResourceCommands {
	return &resourceCommandsImpl{uow: uow}
}

func (c *resourceCommandsImpl) Create(ctx context.Context, cmd CreateResourceCommand) (uuid.UUID, error) {
	entity, err := resource.NewResource(uuid.New(), cmd.Name, cmd.Type, cmd.Capacity, cmd.BasePriceCents, cmd.PriceUnit, cmd.Attributes)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Resources().Create(ctx, entity); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entity.ID(), nil
}

func (c *resourceCommandsImpl) Update(ctx context.Context, cmd UpdateResourceCommand) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Resources().LockByID(ctx, cmd.ID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrResourceNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		merged, err := applyResourcePatch(snap, cmd)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		if err := tx.Resources().Update(ctx, merged); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *resourceCommandsImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	inactive := false
	return c.Update(ctx, UpdateResourceCommand{ID: id, IsActive: &inactive})
}

func (c *resourceCommandsImpl) DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Resources().LockByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrResourceNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		n, err := tx.Resources().DeleteCascade(ctx, id)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		deleted = n
		return nil
	})
	return deleted, err
}

func applyResourcePatch(snap *shared.ResourceSnapshot, cmd UpdateResourceCommand) (*resource.Resource, error) {
	name := snap.Name
	if cmd.Name != nil {
		name = *cmd.Name
	}
	capacity := snap.Capacity
	if cmd.Capacity != nil {
		capacity = *cmd.Capacity
	}
	basePrice := snap.BasePriceCents
	if cmd.BasePriceCents != nil {
		basePrice = *cmd.BasePriceCents
	}
	priceUnit := snap.PriceUnit
	if cmd.PriceUnit != nil {
		priceUnit = *cmd.PriceUnit
	}
	active := snap.IsActive
	if cmd.IsActive != nil {
		active = *cmd.IsActive
	}

	merged, err := resource.NewResource(snap.ID, name, snap.Type, capacity, basePrice, priceUnit, cmd.Attributes)
	if err != nil {
		return nil, err
	}
	if !active {
		merged.Deactivate()
	}
	return merged, nil
}
