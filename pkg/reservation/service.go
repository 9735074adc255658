package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/partyloft/partyloft/internal/event_bus"
	"github.com/partyloft/partyloft/internal/utils"
	"github.com/partyloft/partyloft/pkg/pricing"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, res Reservation) (Reservation, error)
	Get(ctx context.Context, code string) (Reservation, error)
	Transition(ctx context.Context, code string, status Status) (Reservation, error)
	Delete(ctx context.Context, code string) error
}

type ServiceImpl struct {
	repo    Repository
	pricing pricing.Service
	bus     *event_bus.EventBus
	clock   utils.Clock
}

func NewService(repo Repository, pricingService pricing.Service, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, pricing: pricingService, bus: bus, clock: &utils.SystemClock{}}
}

// Create books a shift. The flow is validate, fast-fail on a locally held
// slot, price against the current configuration, freeze the snapshots,
// persist. The storage layer's partial unique index is the final arbiter
// under concurrency; its violation surfaces as the same ErrSlotTaken the
// fast-fail produces. The external calendar is deliberately not consulted
// here: external overlap is advisory for availability display only, since
// this system cannot reliably write back to the external source.
func (s *ServiceImpl) Create(ctx context.Context, res Reservation) (Reservation, error) {
	if err := validate(res); err != nil {
		return Reservation{}, err
	}
	res.Date = normalizeDate(res.Date)

	existing, err := s.repo.FindActiveByDateShift(ctx, res.Date, res.Shift)
	if err != nil {
		return Reservation{}, fmt.Errorf("failed to check slot availability: %w", err)
	}
	if existing != nil {
		return Reservation{}, ErrSlotTaken
	}

	if res.Kind == KindReservation {
		cfg, err := s.pricing.Current(ctx)
		if err != nil {
			return Reservation{}, fmt.Errorf("failed to price reservation: %w", err)
		}
		freeze(&res, pricing.Calculate(pricingRequest(res), cfg))
		res.Status = StatusRequested
	} else {
		res.Status = StatusConfirmed
	}

	res.Code, err = NewCode()
	if err != nil {
		return Reservation{}, err
	}
	res.CreatedAt = s.clock.Now()

	created, err := s.repo.Create(ctx, res)
	if err != nil {
		return Reservation{}, err
	}
	log.Infof("created %s %s for %s shift %s, total %.2f",
		created.Kind, created.Code, created.Date.Format(time.DateOnly), created.Shift, created.TotalPrice)

	s.publish(ctx, event_bus.ReservationCreatedEvent, event_bus.ReservationCreated{
		ID:        created.ID,
		Code:      created.Code,
		Kind:      string(created.Kind),
		Summary:   summaryFor(created),
		Date:      created.Date,
		ShiftCode: string(created.Shift),
	})

	return created, nil
}

func (s *ServiceImpl) Get(ctx context.Context, code string) (Reservation, error) {
	res, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return Reservation{}, err
	}
	if res == nil {
		return Reservation{}, ErrNotFound
	}
	return *res, nil
}

// Transition moves the reservation to the given status. Cancelling keeps the
// record and its frozen prices; it only releases the slot for future
// bookings and removes the mirrored external entry.
func (s *ServiceImpl) Transition(ctx context.Context, code string, status Status) (Reservation, error) {
	current, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return Reservation{}, err
	}
	if current == nil {
		return Reservation{}, ErrNotFound
	}
	if !CanTransition(current.Status, status) {
		return Reservation{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, code, status)
	if err != nil {
		return Reservation{}, err
	}
	if updated == nil {
		return Reservation{}, ErrNotFound
	}
	log.Infof("reservation %s: %s -> %s", code, current.Status, status)

	if status == StatusCancelled {
		s.publish(ctx, event_bus.ReservationCancelledEvent, event_bus.ReservationCancelled{
			ID:              updated.ID,
			Code:            updated.Code,
			CalendarEntryID: updated.CalendarEntryID,
		})
	}

	return *updated, nil
}

// Delete fully removes the record. Unlike cancellation this leaves no
// history behind.
func (s *ServiceImpl) Delete(ctx context.Context, code string) error {
	deleted, err := s.repo.Delete(ctx, code)
	if err != nil {
		return err
	}
	if deleted == nil {
		return ErrNotFound
	}
	log.Infof("deleted reservation %s", code)

	s.publish(ctx, event_bus.ReservationDeletedEvent, event_bus.ReservationDeleted{
		ID:              deleted.ID,
		Code:            deleted.Code,
		CalendarEntryID: deleted.CalendarEntryID,
	})
	return nil
}

// publish notifies subscribers (external calendar sync). Sync is best-effort:
// subscriber failures are logged here and never reach the caller.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("post-commit event %s not fully processed: %v", eventType, err)
	}
}

func pricingRequest(res Reservation) pricing.Request {
	return pricing.Request{
		Date:             res.Date,
		ChildCount:       res.ChildCount,
		MenuID:           res.MenuID,
		AdultItems:       res.AdultItems,
		WorkshopID:       res.WorkshopID,
		Character:        res.Character,
		Pinata:           res.Pinata,
		ExtensionMinutes: res.ExtensionMinutes,
	}
}

func freeze(res *Reservation, b pricing.Breakdown) {
	res.TotalPrice = b.Total
	res.MenuUnitPrice = b.MenuUnitPrice
	res.WeekendSurcharge = b.WeekendSurcharge
	res.WorkshopPrice = b.WorkshopPrice
	res.CharacterPrice = b.CharacterPrice
	res.PinataPrice = b.PinataPrice
	res.ExtensionPrice = b.ExtensionPrice
}

func summaryFor(res Reservation) string {
	if res.Kind == KindBlock {
		return fmt.Sprintf("Blocked (%s)", res.Shift)
	}
	name := res.ChildName
	if name == "" {
		name = res.ContactName
	}
	return fmt.Sprintf("Party: %s (%s)", name, res.Shift)
}

func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
