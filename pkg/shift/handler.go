package shift

import (
	"fmt"
	"net/http"

	"github.com/partyloft/partyloft/internal/rest"
)

type Handler struct{}

type ShiftDTO struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	shifts := All()
	dtos := make([]ShiftDTO, 0, len(shifts))
	for _, s := range shifts {
		dtos = append(dtos, ShiftDTO{
			ID:    s.ID,
			Name:  s.Name,
			Start: fmt.Sprintf("%02d:%02d", s.StartHour, s.StartMin),
			End:   fmt.Sprintf("%02d:%02d", s.EndHour, s.EndMin),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}
