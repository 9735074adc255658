package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/partyloft/partyloft/pkg/availability"
	"github.com/partyloft/partyloft/pkg/pricing"
	"github.com/partyloft/partyloft/pkg/shift"
	log "github.com/sirupsen/logrus"
)

// activeSlotConstraint is the partial unique index on (event_date, shift)
// excluding cancelled rows. It is the final arbiter of the no-double-booking
// invariant when concurrent creations race past the application-level check.
const activeSlotConstraint = "reservation_active_slot_idx"

const pgUniqueViolation = "23505"

type Repository interface {
	// Create inserts the reservation and returns it with its storage id.
	// A unique violation on the active slot index is returned as ErrSlotTaken.
	Create(ctx context.Context, res Reservation) (Reservation, error)
	// FindByCode returns nil when no reservation carries the public code.
	FindByCode(ctx context.Context, code string) (*Reservation, error)
	// FindActiveByDateShift returns the non-cancelled holder of (date, shift),
	// or nil when the slot is free locally.
	FindActiveByDateShift(ctx context.Context, date time.Time, shiftID shift.ID) (*Reservation, error)
	UpdateStatus(ctx context.Context, code string, status Status) (*Reservation, error)
	SetCalendarEntryID(ctx context.Context, id int64, entryID string) error
	// Delete removes the row entirely and returns what was deleted, or nil
	// when the code is unknown.
	Delete(ctx context.Context, code string) (*Reservation, error)
	// ActiveSlots implements availability.ReservationSlots.
	ActiveSlots(ctx context.Context, from time.Time, to time.Time) ([]availability.Slot, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const reservationColumns = `id, code, kind, status, event_date, shift,
       contact_name, contact_email, contact_phone, child_name, child_age,
       child_count, adult_count, menu_id, adult_items, workshop_id,
       character_visit, pinata, extension_minutes, notes,
       total_price, menu_unit_price, weekend_surcharge, workshop_price,
       character_price, pinata_price, extension_price,
       calendar_entry_id, created_at`

func (r *RepositoryImpl) Create(ctx context.Context, res Reservation) (Reservation, error) {
	adultItems, err := json.Marshal(res.AdultItems)
	if err != nil {
		err := fmt.Errorf("could not marshal adult items: %w", err)
		log.Error(err)
		return Reservation{}, err
	}

	query := `INSERT INTO reservation (
                  code, kind, status, event_date, shift,
                  contact_name, contact_email, contact_phone, child_name, child_age,
                  child_count, adult_count, menu_id, adult_items, workshop_id,
                  character_visit, pinata, extension_minutes, notes,
                  total_price, menu_unit_price, weekend_surcharge, workshop_price,
                  character_price, pinata_price, extension_price,
                  calendar_entry_id, created_at
              ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
                        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
              RETURNING id`

	err = r.db.QueryRowContext(ctx, query,
		res.Code, res.Kind, res.Status, res.Date.Format(time.DateOnly), res.Shift,
		res.ContactName, res.ContactEmail, res.ContactPhone, res.ChildName, res.ChildAge,
		res.ChildCount, res.AdultCount, res.MenuID, adultItems, res.WorkshopID,
		res.Character, res.Pinata, res.ExtensionMinutes, res.Notes,
		res.TotalPrice, res.MenuUnitPrice, res.WeekendSurcharge, res.WorkshopPrice,
		res.CharacterPrice, res.PinataPrice, res.ExtensionPrice,
		res.CalendarEntryID, res.CreatedAt,
	).Scan(&res.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == activeSlotConstraint {
			return Reservation{}, ErrSlotTaken
		}
		err := fmt.Errorf("could not insert reservation: %w", err)
		log.Error(err)
		return Reservation{}, err
	}

	return res, nil
}

func (r *RepositoryImpl) FindByCode(ctx context.Context, code string) (*Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservation WHERE code = $1`, reservationColumns)
	return r.queryOne(ctx, query, code)
}

func (r *RepositoryImpl) FindActiveByDateShift(ctx context.Context, date time.Time, shiftID shift.ID) (*Reservation, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM reservation WHERE event_date = $1 AND shift = $2 AND status <> $3`,
		reservationColumns,
	)
	return r.queryOne(ctx, query, date.Format(time.DateOnly), shiftID, StatusCancelled)
}

func (r *RepositoryImpl) UpdateStatus(ctx context.Context, code string, status Status) (*Reservation, error) {
	query := fmt.Sprintf(
		`UPDATE reservation SET status = $1 WHERE code = $2 RETURNING %s`,
		reservationColumns,
	)
	return r.queryOne(ctx, query, status, code)
}

func (r *RepositoryImpl) SetCalendarEntryID(ctx context.Context, id int64, entryID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reservation SET calendar_entry_id = $1 WHERE id = $2`, entryID, id)
	if err != nil {
		err := fmt.Errorf("could not store calendar entry id: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, code string) (*Reservation, error) {
	query := fmt.Sprintf(
		`DELETE FROM reservation WHERE code = $1 RETURNING %s`, reservationColumns)
	return r.queryOne(ctx, query, code)
}

func (r *RepositoryImpl) ActiveSlots(ctx context.Context, from time.Time, to time.Time) ([]availability.Slot, error) {
	query := `SELECT event_date, shift FROM reservation
              WHERE event_date >= $1 AND event_date < $2 AND status <> $3`
	rows, err := r.db.QueryContext(ctx, query,
		from.Format(time.DateOnly), to.Format(time.DateOnly), StatusCancelled)
	if err != nil {
		err := fmt.Errorf("could not query occupied slots: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var slots []availability.Slot
	for rows.Next() {
		var slot availability.Slot
		if err := rows.Scan(&slot.Date, &slot.Shift); err != nil {
			err := fmt.Errorf("could not scan occupied slot: %w", err)
			log.Error(err)
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (r *RepositoryImpl) queryOne(ctx context.Context, query string, args ...any) (*Reservation, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	var res Reservation
	var adultItems []byte
	err := row.Scan(
		&res.ID, &res.Code, &res.Kind, &res.Status, &res.Date, &res.Shift,
		&res.ContactName, &res.ContactEmail, &res.ContactPhone, &res.ChildName, &res.ChildAge,
		&res.ChildCount, &res.AdultCount, &res.MenuID, &adultItems, &res.WorkshopID,
		&res.Character, &res.Pinata, &res.ExtensionMinutes, &res.Notes,
		&res.TotalPrice, &res.MenuUnitPrice, &res.WeekendSurcharge, &res.WorkshopPrice,
		&res.CharacterPrice, &res.PinataPrice, &res.ExtensionPrice,
		&res.CalendarEntryID, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not scan reservation: %w", err)
		log.Error(err)
		return nil, err
	}

	if len(adultItems) > 0 {
		if err := json.Unmarshal(adultItems, &res.AdultItems); err != nil {
			err := fmt.Errorf("could not unmarshal adult items: %w", err)
			log.Error(err)
			return nil, err
		}
	}
	if res.AdultItems == nil {
		res.AdultItems = []pricing.AdultLineItem{}
	}

	return &res, nil
}
