package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() PriceConfig {
	return PriceConfig{
		Menus: []MenuPrice{
			{ID: "classic", Name: "Classic", Price: 15},
			{ID: "premium", Name: "Premium", Price: 22},
		},
		Workshops: []WorkshopPrice{
			{ID: "ceramics", Name: "Ceramics", PriceBase: 25, PricePlus: 30},
		},
		DefaultWorkshopBase: 20,
		DefaultWorkshopPlus: 28,
		WeekendSurcharge:    2,
		CharacterPrice:      50,
		PinataPrice:         18,
		Extension30Price:    30,
		Extension60Price:    55,
	}
}

// Fixed dates with known weekdays.
var (
	tuesday  = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	friday   = time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
)

func TestCalculate(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name      string
		req       Request
		wantTotal float64
	}{
		{
			name:      "menu base on a weekday",
			req:       Request{Date: tuesday, ChildCount: 12, MenuID: "classic"},
			wantTotal: 180,
		},
		{
			name:      "weekend surcharge on Saturday",
			req:       Request{Date: saturday, ChildCount: 12, MenuID: "classic"},
			wantTotal: 204,
		},
		{
			name:      "weekend surcharge on Friday",
			req:       Request{Date: friday, ChildCount: 12, MenuID: "classic"},
			wantTotal: 204,
		},
		{
			name:      "weekend surcharge on Sunday",
			req:       Request{Date: sunday, ChildCount: 12, MenuID: "classic"},
			wantTotal: 204,
		},
		{
			name: "workshop plus tier with extension",
			req: Request{
				Date: tuesday, ChildCount: 20, MenuID: "classic",
				WorkshopID: "ceramics", ExtensionMinutes: 30,
			},
			wantTotal: 360,
		},
		{
			name: "workshop base tier at the boundary count",
			req: Request{
				Date: tuesday, ChildCount: 15, MenuID: "classic",
				WorkshopID: "ceramics",
			},
			wantTotal: 250,
		},
		{
			name: "workshop plus tier one above the boundary",
			req: Request{
				Date: tuesday, ChildCount: 16, MenuID: "classic",
				WorkshopID: "ceramics",
			},
			wantTotal: 240 + 30,
		},
		{
			name: "unknown workshop falls back to default tiers",
			req: Request{
				Date: tuesday, ChildCount: 10, MenuID: "classic",
				WorkshopID: "magic-show",
			},
			wantTotal: 150 + 20,
		},
		{
			name: "unknown workshop above boundary uses default plus",
			req: Request{
				Date: tuesday, ChildCount: 16, MenuID: "classic",
				WorkshopID: "magic-show",
			},
			wantTotal: 240 + 28,
		},
		{
			name:      "unknown menu contributes zero",
			req:       Request{Date: tuesday, ChildCount: 12, MenuID: "does-not-exist"},
			wantTotal: 0,
		},
		{
			name: "adult line items use the passed-in unit price",
			req: Request{
				Date: tuesday, ChildCount: 10, MenuID: "classic",
				AdultItems: []AdultLineItem{
					{Name: "Pizza", Quantity: 3, UnitPrice: 12.5},
					{Name: "Coffee", Quantity: 4, UnitPrice: 3},
				},
			},
			wantTotal: 150 + 37.5 + 12,
		},
		{
			name: "character and pinata flat adds",
			req: Request{
				Date: tuesday, ChildCount: 10, MenuID: "classic",
				Character: "pirate", Pinata: true,
			},
			wantTotal: 150 + 50 + 18,
		},
		{
			name: "character none adds nothing",
			req: Request{
				Date: tuesday, ChildCount: 10, MenuID: "classic",
				Character: NoCharacter,
			},
			wantTotal: 150,
		},
		{
			name: "60 minute extension",
			req: Request{
				Date: tuesday, ChildCount: 10, MenuID: "classic",
				ExtensionMinutes: 60,
			},
			wantTotal: 150 + 55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.req, cfg)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.GreaterOrEqual(t, got.Total, 0.0)
		})
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	cfg := testConfig()
	req := Request{
		Date: saturday, ChildCount: 14, MenuID: "premium",
		WorkshopID: "ceramics", Character: "princess", Pinata: true,
		ExtensionMinutes: 60,
		AdultItems:       []AdultLineItem{{Name: "Prosecco", Quantity: 2, UnitPrice: 19}},
	}

	first := Calculate(req, cfg)
	second := Calculate(req, cfg)
	assert.Equal(t, first, second)
}

func TestCalculateSnapshotsComponents(t *testing.T) {
	cfg := testConfig()
	got := Calculate(Request{
		Date: friday, ChildCount: 16, MenuID: "classic",
		WorkshopID: "ceramics", Character: "pirate", Pinata: true,
		ExtensionMinutes: 30,
	}, cfg)

	assert.Equal(t, 15.0, got.MenuUnitPrice)
	assert.Equal(t, 2.0, got.WeekendSurcharge)
	assert.Equal(t, 30.0, got.WorkshopPrice)
	assert.Equal(t, 50.0, got.CharacterPrice)
	assert.Equal(t, 18.0, got.PinataPrice)
	assert.Equal(t, 30.0, got.ExtensionPrice)
}
