package availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/partyloft/partyloft/internal/rest"
	"github.com/partyloft/partyloft/pkg/shift"
)

type Handler struct {
	service *Service
}

type OccupancyDTO struct {
	Date           string     `json:"date"`
	OccupiedShifts []shift.ID `json:"occupiedShifts"`
	ExternalSynced bool       `json:"externalSynced"`
}

type SlotDTO struct {
	Date  string   `json:"date"`
	Shift shift.ID `json:"shift"`
}

type MonthOccupancyDTO struct {
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	Occupied       []SlotDTO `json:"occupied"`
	ExternalSynced bool      `json:"externalSynced"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	dateString := r.URL.Query().Get("date")
	date, err := time.Parse(time.DateOnly, dateString)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	occupancy, err := h.service.OccupiedShifts(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rest.WriteJSON(w, http.StatusOK, OccupancyDTO{
		Date:           dateString,
		OccupiedShifts: occupancy.Shifts,
		ExternalSynced: occupancy.ExternalSynced,
	})
}

func (h *Handler) GetMonthOccupancy(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' must be a number")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "'month' must be a number between 1 and 12")
		return
	}

	occupancy, err := h.service.OccupiedForMonth(r.Context(), year, time.Month(month))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := MonthOccupancyDTO{
		Year:           year,
		Month:          month,
		Occupied:       make([]SlotDTO, 0, len(occupancy.Slots)),
		ExternalSynced: occupancy.ExternalSynced,
	}
	for _, slot := range occupancy.Slots {
		dto.Occupied = append(dto.Occupied, SlotDTO{
			Date:  slot.Date.Format(time.DateOnly),
			Shift: slot.Shift,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}
