package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===============================
// Dashboard read models
// ===============================

type ServiceCount struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

// Recent is a booking row joined with its store and service names.
type Recent struct {
	ID           string    `json:"id"`
	StoreName    string    `json:"store_name"`
	ServiceName  string    `json:"service_name"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

type PaidAmount struct {
	Amount decimal.Decimal
	PaidAt time.Time
}

type DailyRevenue struct {
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// Window compares a period's revenue with the period right before it.
type Window struct {
	Current   decimal.Decimal `json:"current"`
	Previous  decimal.Decimal `json:"previous"`
	ChangePct int64           `json:"change_pct"`
}

func NewWindow(current, previous decimal.Decimal) Window {
	return Window{Current: current, Previous: previous, ChangePct: PctChange(current, previous)}
}

// PctChange is the rounded percentage change from prev to curr. Growth
// from nothing counts as 100.
func PctChange(curr, prev decimal.Decimal) int64 {
	if prev.IsZero() {
		if curr.IsZero() {
			return 0
		}
		return 100
	}
	return curr.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// DailySeries buckets payments into the last days calendar days ending
// today in loc, oldest first. Days without payments are zero.
func DailySeries(now time.Time, days int, loc *time.Location, paid []PaidAmount) []DailyRevenue {
	now = now.In(loc)
	out := make([]DailyRevenue, days)
	index := make(map[string]int, days)

	for i := 0; i < days; i++ {
		key := now.AddDate(0, 0, i-days+1).Format("2006-01-02")
		out[i] = DailyRevenue{Day: key, Amount: decimal.Zero}
		index[key] = i
	}

	for _, p := range paid {
		if i, ok := index[p.PaidAt.In(loc).Format("2006-01-02")]; ok {
			out[i].Amount = out[i].Amount.Add(p.Amount)
		}
	}
	return out
}

// StoreDashboard is the owner's overview of one store.
type StoreDashboard struct {
	*Stats
	Revenue30d  decimal.Decimal `json:"revenue_30d"`
	Upcoming    []Recent        `json:"upcoming"`
	TopServices []ServiceCount  `json:"top_services"`
}
