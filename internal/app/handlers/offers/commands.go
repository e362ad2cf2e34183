package offers

import (
	"context"
	"time"

	"staybook/internal/app/outbox"
	"staybook/internal/app/uow"
	domainoffers "staybook/internal/domain/offers"
	"staybook/internal/domain/shared/events"
)

const (
	createOfferKey = "offers.create"
	updateOfferKey = "offers.update"
	deleteOfferKey = "offers.delete"
)

// OfferFields carries the admin form payload. ApartmentIDs is the raw value
// as submitted; it is normalized into a scope exactly once here.
type OfferFields struct {
	Title              string
	Description        string
	DiscountPercentage float64
	ApartmentIDs       any
	ValidFrom          time.Time
	ValidUntil         time.Time
}

type CreateOfferCommand struct {
	CommandID string
	Fields    OfferFields
}

func (c CreateOfferCommand) Key() string { return createOfferKey }

type CreateOfferResult struct {
	OfferID string `json:"offer_id"`
}

type UpdateOfferCommand struct {
	OfferID string
	Fields  OfferFields
}

func (c UpdateOfferCommand) Key() string { return updateOfferKey }

type DeleteOfferCommand struct {
	OfferID string
}

func (c DeleteOfferCommand) Key() string { return deleteOfferKey }

// CommandHandlers implements the admin offer lifecycle. Offers are read-only
// everywhere else in the system.
type CommandHandlers struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *CommandHandlers) HandleCreate(ctx context.Context, cmd CreateOfferCommand) (*CreateOfferResult, error) {
	var result *CreateOfferResult
	err := h.withUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		// Malformed scope input is a validation failure on the write
		// path; only the read path degrades it to "matches nothing".
		scope, err := domainoffers.NormalizeScope(cmd.Fields.ApartmentIDs)
		if err != nil {
			return err
		}
		offer, err := domainoffers.New(domainoffers.CreateParams{
			ID:                 domainoffers.OfferID(cmd.CommandID),
			Title:              cmd.Fields.Title,
			Description:        cmd.Fields.Description,
			DiscountPercentage: cmd.Fields.DiscountPercentage,
			Scope:              scope,
			ValidFrom:          cmd.Fields.ValidFrom,
			ValidUntil:         cmd.Fields.ValidUntil,
			CreatedAt:          h.now(),
		})
		if err != nil {
			return err
		}
		if err := unit.Offers().Save(ctx, offer); err != nil {
			return err
		}
		pending := offer.PendingEvents()
		offer.ClearEvents()
		if err := h.drain(ctx, pending); err != nil {
			return err
		}
		result = &CreateOfferResult{OfferID: string(offer.ID)}
		return nil
	})
	return result, err
}

func (h *CommandHandlers) HandleUpdate(ctx context.Context, cmd UpdateOfferCommand) (struct{}, error) {
	err := h.withUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		scope, err := domainoffers.NormalizeScope(cmd.Fields.ApartmentIDs)
		if err != nil {
			return err
		}
		offer, err := unit.Offers().ByID(ctx, domainoffers.OfferID(cmd.OfferID))
		if err != nil {
			return err
		}
		err = offer.Update(domainoffers.UpdateParams{
			Title:              cmd.Fields.Title,
			Description:        cmd.Fields.Description,
			DiscountPercentage: cmd.Fields.DiscountPercentage,
			Scope:              scope,
			ValidFrom:          cmd.Fields.ValidFrom,
			ValidUntil:         cmd.Fields.ValidUntil,
		}, h.now())
		if err != nil {
			return err
		}
		if err := unit.Offers().Save(ctx, offer); err != nil {
			return err
		}
		pending := offer.PendingEvents()
		offer.ClearEvents()
		return h.drain(ctx, pending)
	})
	return struct{}{}, err
}

func (h *CommandHandlers) HandleDelete(ctx context.Context, cmd DeleteOfferCommand) (struct{}, error) {
	err := h.withUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		id := domainoffers.OfferID(cmd.OfferID)
		if err := unit.Offers().Delete(ctx, id); err != nil {
			return err
		}
		deleted := domainoffers.OfferDeleted{OfferID: id, At: h.now()}
		return h.drain(ctx, []events.DomainEvent{deleted})
	})
	return struct{}{}, err
}

// withUnit reuses a context-managed unit of work when the transaction
// middleware supplied one, otherwise it owns the commit/rollback itself.
func (h *CommandHandlers) withUnit(ctx context.Context, fn func(ctx context.Context, unit uow.UnitOfWork) error) error {
	if unit, ok := uow.FromContext(ctx); ok {
		return fn(ctx, unit)
	}
	if h.UoWFactory == nil {
		return uow.ErrUnitOfWorkMissing
	}
	unit, err := h.UoWFactory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	ctx = uow.ContextWithUnitOfWork(ctx, unit)
	if err := fn(ctx, unit); err != nil {
		_ = unit.Rollback(ctx)
		return err
	}
	return unit.Commit(ctx)
}

func (h *CommandHandlers) drain(ctx context.Context, evs []events.DomainEvent) error {
	encoder := h.Encoder
	if encoder == nil {
		encoder = outbox.JSONEventEncoder{}
	}
	return outbox.RecordDomainEvents(ctx, h.Outbox, encoder, evs)
}

func (h *CommandHandlers) now() time.Time {
	if h.Clock != nil {
		return h.Clock().UTC()
	}
	return time.Now().UTC()
}
