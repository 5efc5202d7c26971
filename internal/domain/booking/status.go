package booking

import "github.com/goofitre/carcare-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ParseStatus returns false for anything outside the four known values.
func ParseStatus(v string) (Status, bool) {
	switch s := Status(v); s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return s, true
	}
	return "", false
}

// ===============================
// Validations
// ===============================

// CanTransition allows PENDING→CONFIRMED|CANCELLED and
// CONFIRMED→COMPLETED|CANCELLED. COMPLETED and CANCELLED are final.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// InitialStatus is the status of a booking made through the public form;
// payment is captured with it, so it starts confirmed.
func InitialStatus() Status {
	return StatusConfirmed
}

// ===============================
// Payment Method
// ===============================

type Method string

const (
	MethodCash      Method = "CASH"
	MethodPromptPay Method = "PROMPTPAY"
	MethodCard      Method = "CARD"
)

func ParseMethod(v string) (Method, bool) {
	switch m := Method(v); m {
	case MethodCash, MethodPromptPay, MethodCard:
		return m, true
	}
	return "", false
}
