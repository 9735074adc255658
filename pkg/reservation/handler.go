package reservation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/partyloft/partyloft/internal/rest"
	"github.com/partyloft/partyloft/pkg/pricing"
	"github.com/partyloft/partyloft/pkg/shift"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

type CreateReservationDTO struct {
	Kind             string                  `json:"kind"`
	Date             string                  `json:"date"`
	Shift            shift.ID                `json:"shift"`
	ContactName      string                  `json:"contactName"`
	ContactEmail     string                  `json:"contactEmail"`
	ContactPhone     string                  `json:"contactPhone"`
	ChildName        string                  `json:"childName"`
	ChildAge         int                     `json:"childAge"`
	ChildCount       int                     `json:"childCount"`
	AdultCount       int                     `json:"adultCount"`
	MenuID           string                  `json:"menuId"`
	AdultItems       []pricing.AdultLineItem `json:"adultItems"`
	WorkshopID       string                  `json:"workshopId"`
	Character        string                  `json:"character"`
	Pinata           bool                    `json:"pinata"`
	ExtensionMinutes int                     `json:"extensionMinutes"`
	Notes            string                  `json:"notes"`
}

type ReservationDTO struct {
	Code             string                  `json:"code"`
	Kind             string                  `json:"kind"`
	Status           string                  `json:"status"`
	Date             string                  `json:"date"`
	Shift            shift.ID                `json:"shift"`
	ContactName      string                  `json:"contactName,omitempty"`
	ContactEmail     string                  `json:"contactEmail,omitempty"`
	ContactPhone     string                  `json:"contactPhone,omitempty"`
	ChildName        string                  `json:"childName,omitempty"`
	ChildAge         int                     `json:"childAge,omitempty"`
	ChildCount       int                     `json:"childCount"`
	AdultCount       int                     `json:"adultCount"`
	MenuID           string                  `json:"menuId,omitempty"`
	AdultItems       []pricing.AdultLineItem `json:"adultItems,omitempty"`
	WorkshopID       string                  `json:"workshopId,omitempty"`
	Character        string                  `json:"character,omitempty"`
	Pinata           bool                    `json:"pinata"`
	ExtensionMinutes int                     `json:"extensionMinutes"`
	Notes            string                  `json:"notes,omitempty"`
	TotalPrice       float64                 `json:"totalPrice"`
	MenuUnitPrice    float64                 `json:"menuUnitPrice"`
	WeekendSurcharge float64                 `json:"weekendSurcharge"`
	WorkshopPrice    float64                 `json:"workshopPrice"`
	CharacterPrice   float64                 `json:"characterPrice"`
	PinataPrice      float64                 `json:"pinataPrice"`
	ExtensionPrice   float64                 `json:"extensionPrice"`
	CreatedAt        time.Time               `json:"createdAt"`
}

type StatusUpdateDTO struct {
	Status string `json:"status"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new reservation")

	var dto CreateReservationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid reservation payload", err.Error())
		return
	}

	date, err := time.Parse(time.DateOnly, dto.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	kind := Kind(dto.Kind)
	if dto.Kind == "" {
		kind = KindReservation
	}

	created, err := h.service.Create(r.Context(), Reservation{
		Kind:             kind,
		Date:             date,
		Shift:            dto.Shift,
		ContactName:      dto.ContactName,
		ContactEmail:     dto.ContactEmail,
		ContactPhone:     dto.ContactPhone,
		ChildName:        dto.ChildName,
		ChildAge:         dto.ChildAge,
		ChildCount:       dto.ChildCount,
		AdultCount:       dto.AdultCount,
		MenuID:           dto.MenuID,
		AdultItems:       dto.AdultItems,
		WorkshopID:       dto.WorkshopID,
		Character:        dto.Character,
		Pinata:           dto.Pinata,
		ExtensionMinutes: dto.ExtensionMinutes,
		Notes:            dto.Notes,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	res, err := h.service.Get(r.Context(), code)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(res))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var dto StatusUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid status payload", err.Error())
		return
	}

	updated, err := h.service.Transition(r.Context(), code, Status(dto.Status))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if err := h.service.Delete(r.Context(), code); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSlotTaken):
		rest.WriteError(w, http.StatusConflict, "Shift already booked", err.Error())
	case errors.Is(err, ErrValidation):
		rest.WriteError(w, http.StatusBadRequest, "Invalid reservation request", err.Error())
	case errors.Is(err, ErrNotFound):
		rest.WriteError(w, http.StatusNotFound, "Reservation not found", "")
	case errors.Is(err, ErrInvalidTransition):
		rest.WriteError(w, http.StatusConflict, "Status transition not allowed", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(res Reservation) ReservationDTO {
	return ReservationDTO{
		Code:             res.Code,
		Kind:             string(res.Kind),
		Status:           string(res.Status),
		Date:             res.Date.Format(time.DateOnly),
		Shift:            res.Shift,
		ContactName:      res.ContactName,
		ContactEmail:     res.ContactEmail,
		ContactPhone:     res.ContactPhone,
		ChildName:        res.ChildName,
		ChildAge:         res.ChildAge,
		ChildCount:       res.ChildCount,
		AdultCount:       res.AdultCount,
		MenuID:           res.MenuID,
		AdultItems:       res.AdultItems,
		WorkshopID:       res.WorkshopID,
		Character:        res.Character,
		Pinata:           res.Pinata,
		ExtensionMinutes: res.ExtensionMinutes,
		Notes:            res.Notes,
		TotalPrice:       res.TotalPrice,
		MenuUnitPrice:    res.MenuUnitPrice,
		WeekendSurcharge: res.WeekendSurcharge,
		WorkshopPrice:    res.WorkshopPrice,
		CharacterPrice:   res.CharacterPrice,
		PinataPrice:      res.PinataPrice,
		ExtensionPrice:   res.ExtensionPrice,
		CreatedAt:        res.CreatedAt,
	}
}
