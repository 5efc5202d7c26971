package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Checkout is a card payment to be collected by the hosted gateway page.
type Checkout struct {
	BookingID string
	Title     string
	Amount    decimal.Decimal
	Currency  string
	Email     string
}

type Session struct {
	ProviderRef string
	URL         string
}

type Gateway interface {
	// CreateCheckout returns nil when no gateway is configured.
	CreateCheckout(ctx context.Context, c Checkout) (*Session, error)
}

type Noop struct{}

func (Noop) CreateCheckout(context.Context, Checkout) (*Session, error) { return nil, nil }

var _ Gateway = Noop{}
