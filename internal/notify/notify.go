package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// BookingMessage is what a customer is told after booking.
type BookingMessage struct {
	BookingID string
	Phone     string
	Customer  string
	StoreName string
	Service   string
	At        time.Time
}

func (m BookingMessage) Body() string {
	ref := m.BookingID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return fmt.Sprintf(
		"Hi %s, your %s booking at %s is confirmed for %s. Ref %s",
		m.Customer, m.Service, m.StoreName, m.At.Format("02 Jan 2006 15:04"), ref,
	)
}

type Notifier interface {
	BookingConfirmed(ctx context.Context, m BookingMessage) error
}

type Noop struct{}

func (Noop) BookingConfirmed(context.Context, BookingMessage) error { return nil }

const sendTimeout = 10 * time.Second

// Async sends in the background so the request never waits on the SMS
// provider. Wait blocks until in-flight sends finish.
type Async struct {
	next Notifier
	wg   sync.WaitGroup
}

func NewAsync(next Notifier) *Async {
	return &Async{next: next}
}

func (a *Async) BookingConfirmed(_ context.Context, m BookingMessage) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := a.next.BookingConfirmed(ctx, m); err != nil {
			log.Error().Err(err).
				Str("booking_id", m.BookingID).
				Msg("booking sms failed")
		}
	}()
	return nil
}

func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var (
	_ Notifier = Noop{}
	_ Notifier = (*Async)(nil)
)
