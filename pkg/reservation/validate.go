package reservation

import (
	"fmt"
	"net/mail"

	"github.com/partyloft/partyloft/pkg/shift"
)

// validate rejects malformed requests before any pricing or conflict logic
// runs. Blocks carry no customer data, so only their slot is checked.
func validate(r Reservation) error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if !shift.IsValid(r.Shift) {
		return fmt.Errorf("%w: unknown shift %q", ErrValidation, r.Shift)
	}
	if r.Kind != KindReservation && r.Kind != KindBlock {
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, r.Kind)
	}
	if r.Kind == KindBlock {
		return nil
	}

	if r.ContactName == "" {
		return fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(r.ContactEmail); err != nil {
		return fmt.Errorf("%w: invalid contact email", ErrValidation)
	}
	if r.ChildAge != 0 && (r.ChildAge < 1 || r.ChildAge > 18) {
		return fmt.Errorf("%w: child age out of range", ErrValidation)
	}
	if r.ChildCount < MinChildCount {
		return fmt.Errorf("%w: at least %d children required", ErrValidation, MinChildCount)
	}
	if r.AdultCount < 0 {
		return fmt.Errorf("%w: adult count cannot be negative", ErrValidation)
	}
	switch r.ExtensionMinutes {
	case 0, 30, 60:
	default:
		return fmt.Errorf("%w: extension must be 0, 30 or 60 minutes", ErrValidation)
	}
	for _, item := range r.AdultItems {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: adult item %q quantity must be positive", ErrValidation, item.Name)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: adult item %q price cannot be negative", ErrValidation, item.Name)
		}
	}
	return nil
}
