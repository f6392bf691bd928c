package commands

import (
	"context"

	"slotbooker/internal/domain/exposure"
	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/errs"
)

type SlotUseCase interface {
	CreateSlot(ctx context.Context, in CreateSlotInput) (CreateSlotResult, error)
}

type SlotCommands struct {
	tx          TxRunner
	slots       SlotRepository
	invalidator ExposureCacheInvalidator
}

var _ SlotUseCase = (*SlotCommands)(nil)

func NewSlotCommands(tx TxRunner, slots SlotRepository, invalidator ExposureCacheInvalidator) *SlotCommands {
	return &SlotCommands{tx: tx, slots: slots, invalidator: invalidator}
}

// CreateSlot adds one concrete slot instance. Rule expansion happens in
// a separate system; this is the inventory hook it calls.
func (s *SlotCommands) CreateSlot(ctx context.Context, in CreateSlotInput) (CreateSlotResult, error) {
	sl, err := slot.NewSlot(in.LocationID, in.PersonID, in.StartAt, in.EndAt, in.Capacity)
	if err != nil {
		return CreateSlotResult{}, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = s.tx.Within(ctx, func(ctx context.Context, db infra.DBTX) error {
		if err := s.slots.Create(ctx, db, sl); err != nil {
			switch {
			case infra.IsKind(err, infra.KindConflict):
				return errs.Mark(err, errs.ErrSlotExists)
			case infra.IsKind(err, infra.KindNotFound):
				return errs.Mark(err, errs.ErrLocationNotFound)
			default:
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return CreateSlotResult{}, err
	}

	// New inventory changes what a scope can expose; drop the cached sets
	// so requesters see it without waiting out the stickiness window.
	s.invalidator.Invalidate(ctx, exposure.ScopeKey(sl.LocationID(), nil, sl.Date()))
	if sl.PersonID() != nil {
		s.invalidator.Invalidate(ctx, exposure.ScopeKey(sl.LocationID(), sl.PersonID(), sl.Date()))
	}

	return CreateSlotResult{SlotID: sl.ID(), Status: sl.Status().String()}, nil
}
