package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/partyloft/partyloft/internal/config"
	"github.com/partyloft/partyloft/internal/event_bus"
	"github.com/partyloft/partyloft/internal/utils"
	"github.com/partyloft/partyloft/pkg/availability"
	"github.com/partyloft/partyloft/pkg/calendar"
	"github.com/partyloft/partyloft/pkg/calendar_sync"
	"github.com/partyloft/partyloft/pkg/google"
	"github.com/partyloft/partyloft/pkg/pricing"
	"github.com/partyloft/partyloft/pkg/reservation"
	"github.com/partyloft/partyloft/pkg/shift"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Location *time.Location
	Bus      *event_bus.EventBus
	Clock    utils.Clock

	// ExternalCalendar stays nil when the Google integration is not
	// configured; the resolver and syncer handle that explicitly instead of
	// hiding it behind a lazily initialized global.
	ExternalCalendar calendar.Calendar

	PricingRepo    pricing.Repository
	PricingService pricing.Service
	PricingHandler *pricing.Handler

	AvailabilityService *availability.Service
	AvailabilityHandler *availability.Handler

	ReservationRepo    reservation.Repository
	ReservationService reservation.Service
	ReservationHandler *reservation.Handler

	ShiftHandler *shift.Handler

	Syncer *calendar_sync.Syncer
}

// BuildDependencies initializes and wires all application services and
// handlers. A misconfigured Google integration fails startup; an absent one
// merely disables external sync.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Errorf("unknown timezone %q, falling back to UTC: %v", cfg.Timezone, err)
		loc = time.UTC
	}
	deps.Location = loc
	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	externalCalendar, err := google.NewCalendar(context.Background(), cfg.Google)
	switch {
	case err == nil:
		deps.ExternalCalendar = externalCalendar
	case errors.Is(err, google.ErrNotConfigured):
		log.Info("Google Calendar integration not configured, running on local data only")
	default:
		return nil, err
	}

	deps.PricingRepo = pricing.NewRepository(db)
	deps.PricingService = pricing.NewService(deps.PricingRepo)
	deps.PricingHandler = pricing.NewHandler(deps.PricingService)

	deps.ReservationRepo = reservation.NewRepository(db)
	deps.ReservationService = reservation.NewService(deps.ReservationRepo, deps.PricingService, deps.Bus)
	deps.ReservationHandler = reservation.NewHandler(deps.ReservationService)

	var externalReader calendar.Reader
	if deps.ExternalCalendar != nil {
		externalReader = deps.ExternalCalendar
	}
	deps.AvailabilityService = availability.NewService(deps.ReservationRepo, externalReader, loc)
	deps.AvailabilityHandler = availability.NewHandler(deps.AvailabilityService)

	deps.ShiftHandler = shift.NewHandler()

	if deps.ExternalCalendar != nil {
		deps.Syncer = calendar_sync.NewSyncer(deps.ExternalCalendar, deps.ReservationRepo, loc)
		deps.Syncer.Register(deps.Bus)
	}

	return deps, nil
}
