package pricing

// NoCharacter is the character selection meaning "no character visit".
const NoCharacter = "none"

// WorkshopPlusThreshold is the child count above which a workshop is billed
// at its plus tier. A count of exactly this value still takes the base tier.
const WorkshopPlusThreshold = 15

type MenuPrice struct {
	ID    string
	Name  string
	Price float64
}

type AdultItemPrice struct {
	ID    string
	Name  string
	Price float64
}

type WorkshopPrice struct {
	ID        string
	Name      string
	PriceBase float64
	PricePlus float64
}

// PriceConfig is the current pricing of every bookable component. All values
// are decimal currency units. Reservations freeze the prices they were
// computed from, so editing this configuration never changes past totals.
type PriceConfig struct {
	Menus      []MenuPrice
	AdultItems []AdultItemPrice
	Workshops  []WorkshopPrice

	// Fallback workshop tiers for workshop ids not present in Workshops.
	DefaultWorkshopBase float64
	DefaultWorkshopPlus float64

	// Per-child surcharge applied on Friday, Saturday and Sunday.
	WeekendSurcharge float64

	CharacterPrice   float64
	PinataPrice      float64
	Extension30Price float64
	Extension60Price float64
}

// MenuUnitPrice returns the child menu unit price for the given menu id,
// or zero when the id is unknown.
func (c PriceConfig) MenuUnitPrice(menuID string) float64 {
	for _, m := range c.Menus {
		if m.ID == menuID {
			return m.Price
		}
	}
	return 0
}

// WorkshopTiers returns the base and plus prices for the given workshop id,
// falling back to the configured defaults when the id is unknown.
func (c PriceConfig) WorkshopTiers(workshopID string) (base, plus float64) {
	for _, w := range c.Workshops {
		if w.ID == workshopID {
			return w.PriceBase, w.PricePlus
		}
	}
	return c.DefaultWorkshopBase, c.DefaultWorkshopPlus
}
