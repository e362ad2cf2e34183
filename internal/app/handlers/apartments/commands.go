package apartments

import (
	"context"
	"time"

	"staybook/internal/app/outbox"
	"staybook/internal/app/uow"
	domainapartments "staybook/internal/domain/apartments"
)

const (
	createApartmentKey = "apartments.create"
	updateRatesKey     = "apartments.update_rates"
)

type CreateApartmentCommand struct {
	CommandID   string
	OwnerID     string
	Title       string
	Description string
	Address     domainapartments.Address
	Amenities   []string
	GuestsLimit int
	NightlyRate float64
	CleaningFee float64
	Currency    string
	Activate    bool
}

func (c CreateApartmentCommand) Key() string { return createApartmentKey }

type CreateApartmentResult struct {
	ApartmentID string `json:"apartment_id"`
}

type UpdateRatesCommand struct {
	ApartmentID string
	NightlyRate float64
	CleaningFee float64
}

func (c UpdateRatesCommand) Key() string { return updateRatesKey }

type CommandHandlers struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *CommandHandlers) HandleCreate(ctx context.Context, cmd CreateApartmentCommand) (*CreateApartmentResult, error) {
	var result *CreateApartmentResult
	err := h.withUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		now := h.now()
		apartment, err := domainapartments.New(domainapartments.CreateParams{
			ID:          domainapartments.ApartmentID(cmd.CommandID),
			Owner:       domainapartments.OwnerID(cmd.OwnerID),
			Title:       cmd.Title,
			Description: cmd.Description,
			Address:     cmd.Address,
			Amenities:   cmd.Amenities,
			GuestsLimit: cmd.GuestsLimit,
			NightlyRate: cmd.NightlyRate,
			CleaningFee: cmd.CleaningFee,
			Currency:    cmd.Currency,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		if cmd.Activate {
			if err := apartment.Activate(now); err != nil {
				return err
			}
		}
		if err := unit.Apartments().Save(ctx, apartment); err != nil {
			return err
		}
		pending := apartment.PendingEvents()
		apartment.ClearEvents()
		if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
			return err
		}
		result = &CreateApartmentResult{ApartmentID: string(apartment.ID)}
		return nil
	})
	return result, err
}

func (h *CommandHandlers) HandleUpdateRates(ctx context.Context, cmd UpdateRatesCommand) (struct{}, error) {
	err := h.withUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		apartment, err := unit.Apartments().ByID(ctx, domainapartments.ApartmentID(cmd.ApartmentID))
		if err != nil {
			return err
		}
		if err := apartment.UpdateRates(cmd.NightlyRate, cmd.CleaningFee, h.now()); err != nil {
			return err
		}
		if err := unit.Apartments().Save(ctx, apartment); err != nil {
			return err
		}
		pending := apartment.PendingEvents()
		apartment.ClearEvents()
		return outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending)
	})
	return struct{}{}, err
}

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

func (h *CommandHandlers) now() time.Time {
	if h.Clock != nil {
		return h.Clock().UTC()
	}
	return time.Now().UTC()
}
