package pricing

import (
	"encoding/json"
	"net/http"

	"github.com/partyloft/partyloft/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

type MenuPriceDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type AdultItemPriceDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type WorkshopPriceDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	PriceBase float64 `json:"priceBase"`
	PricePlus float64 `json:"pricePlus"`
}

type PriceConfigDTO struct {
	Menus               []MenuPriceDTO      `json:"menus"`
	AdultItems          []AdultItemPriceDTO `json:"adultItems"`
	Workshops           []WorkshopPriceDTO  `json:"workshops"`
	DefaultWorkshopBase float64             `json:"defaultWorkshopBase"`
	DefaultWorkshopPlus float64             `json:"defaultWorkshopPlus"`
	WeekendSurcharge    float64             `json:"weekendSurcharge"`
	CharacterPrice      float64             `json:"characterPrice"`
	PinataPrice         float64             `json:"pinataPrice"`
	Extension30Price    float64             `json:"extension30Price"`
	Extension60Price    float64             `json:"extension60Price"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Current(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, configToDTO(cfg))
}

func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating price configuration")

	var dto PriceConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid price configuration payload", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), dtoToConfig(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, configToDTO(updated))
}

func configToDTO(cfg PriceConfig) PriceConfigDTO {
	dto := PriceConfigDTO{
		Menus:               make([]MenuPriceDTO, 0, len(cfg.Menus)),
		AdultItems:          make([]AdultItemPriceDTO, 0, len(cfg.AdultItems)),
		Workshops:           make([]WorkshopPriceDTO, 0, len(cfg.Workshops)),
		DefaultWorkshopBase: cfg.DefaultWorkshopBase,
		DefaultWorkshopPlus: cfg.DefaultWorkshopPlus,
		WeekendSurcharge:    cfg.WeekendSurcharge,
		CharacterPrice:      cfg.CharacterPrice,
		PinataPrice:         cfg.PinataPrice,
		Extension30Price:    cfg.Extension30Price,
		Extension60Price:    cfg.Extension60Price,
	}
	for _, m := range cfg.Menus {
		dto.Menus = append(dto.Menus, MenuPriceDTO(m))
	}
	for _, i := range cfg.AdultItems {
		dto.AdultItems = append(dto.AdultItems, AdultItemPriceDTO(i))
	}
	for _, ws := range cfg.Workshops {
		dto.Workshops = append(dto.Workshops, WorkshopPriceDTO(ws))
	}
	return dto
}

func dtoToConfig(dto PriceConfigDTO) PriceConfig {
	cfg := PriceConfig{
		DefaultWorkshopBase: dto.DefaultWorkshopBase,
		DefaultWorkshopPlus: dto.DefaultWorkshopPlus,
		WeekendSurcharge:    dto.WeekendSurcharge,
		CharacterPrice:      dto.CharacterPrice,
		PinataPrice:         dto.PinataPrice,
		Extension30Price:    dto.Extension30Price,
		Extension60Price:    dto.Extension60Price,
	}
	for _, m := range dto.Menus {
		cfg.Menus = append(cfg.Menus, MenuPrice(m))
	}
	for _, i := range dto.AdultItems {
		cfg.AdultItems = append(cfg.AdultItems, AdultItemPrice(i))
	}
	for _, ws := range dto.Workshops {
		cfg.Workshops = append(cfg.Workshops, WorkshopPrice(ws))
	}
	return cfg
}
