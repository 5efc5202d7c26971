package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago opens a checkout preference per card booking.
type MercadoPago struct {
	client    preferenceCreator
	returnURL string
}

func NewMercadoPago(accessToken, publicURL string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		client:    preference.NewClient(cfg),
		returnURL: publicURL + "/booking/success",
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, c Checkout) (*Session, error) {
	back := m.returnURL + "?id=" + c.BookingID

	req := preference.Request{
		ExternalReference: c.BookingID,
		Items: []preference.ItemRequest{{
			ID:         c.BookingID,
			Title:      c.Title,
			Quantity:   1,
			UnitPrice:  c.Amount.InexactFloat64(),
			CurrencyID: c.Currency,
		}},
		BackURLs: &preference.BackURLsRequest{
			Success: back,
			Pending: back,
			Failure: back,
		},
	}
	if c.Email != "" {
		req.Payer = &preference.PayerRequest{Email: c.Email}
	}

	res, err := m.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &Session{ProviderRef: res.ID, URL: res.InitPoint}, nil
}

var _ Gateway = (*MercadoPago)(nil)
