package pricing

import "time"

// AdultLineItem is one à-la-carte adult order line. The unit price is the
// price the client snapshotted at selection time and is trusted as-is.
type AdultLineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Request is everything the calculator needs to price a reservation.
type Request struct {
	Date             time.Time
	ChildCount       int
	MenuID           string
	AdultItems       []AdultLineItem
	WorkshopID       string
	Character        string
	Pinata           bool
	ExtensionMinutes int
}

// Breakdown is the priced result. Each component field is the value frozen
// onto the reservation record as a snapshot.
type Breakdown struct {
	MenuUnitPrice    float64
	WeekendSurcharge float64
	AdultTotal       float64
	WorkshopPrice    float64
	CharacterPrice   float64
	PinataPrice      float64
	ExtensionPrice   float64
	Total            float64
}

// Calculate computes the total price of a reservation request against the
// given configuration. It is a pure function: no I/O, no hidden state, and
// two calls with identical inputs return identical results.
func Calculate(req Request, cfg PriceConfig) Breakdown {
	var b Breakdown

	b.MenuUnitPrice = cfg.MenuUnitPrice(req.MenuID)
	total := float64(req.ChildCount) * b.MenuUnitPrice

	if isWeekendRate(req.Date.Weekday()) {
		b.WeekendSurcharge = cfg.WeekendSurcharge
		total += float64(req.ChildCount) * cfg.WeekendSurcharge
	}

	for _, item := range req.AdultItems {
		b.AdultTotal += float64(item.Quantity) * item.UnitPrice
	}
	total += b.AdultTotal

	if req.WorkshopID != "" {
		base, plus := cfg.WorkshopTiers(req.WorkshopID)
		if req.ChildCount > WorkshopPlusThreshold {
			b.WorkshopPrice = plus
		} else {
			b.WorkshopPrice = base
		}
		total += b.WorkshopPrice
	}

	if req.Character != "" && req.Character != NoCharacter {
		b.CharacterPrice = cfg.CharacterPrice
		total += b.CharacterPrice
	}

	if req.Pinata {
		b.PinataPrice = cfg.PinataPrice
		total += b.PinataPrice
	}

	switch req.ExtensionMinutes {
	case 30:
		b.ExtensionPrice = cfg.Extension30Price
	case 60:
		b.ExtensionPrice = cfg.Extension60Price
	}
	total += b.ExtensionPrice

	b.Total = total
	return b
}

// isWeekendRate reports whether the weekday takes the weekend surcharge.
// Friday parties are billed as weekend parties.
func isWeekendRate(day time.Weekday) bool {
	return day == time.Friday || day == time.Saturday || day == time.Sunday
}
