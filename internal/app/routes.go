package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Shift catalog
	r.HandleFunc("/api/shifts", deps.ShiftHandler.GetShifts).Methods("GET")

	// Availability
	r.HandleFunc("/api/availability", deps.AvailabilityHandler.GetOccupancy).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/availability/month", deps.AvailabilityHandler.GetMonthOccupancy).
		Queries("year", "{year}", "month", "{month}").Methods("GET")

	// Reservations
	r.HandleFunc("/api/reservation", deps.ReservationHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservation/{code}", deps.ReservationHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservation/{code}/status", deps.ReservationHandler.UpdateStatus).Methods("PATCH")
	r.HandleFunc("/api/reservation/{code}", deps.ReservationHandler.DeleteReservation).Methods("DELETE")

	// Pricing administration
	r.HandleFunc("/api/pricing", deps.PricingHandler.GetConfig).Methods("GET")
	r.HandleFunc("/api/pricing", deps.PricingHandler.UpdateConfig).Methods("PUT")
}
