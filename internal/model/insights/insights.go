package insights

import "context"

// WeeklyInsights mirrors the analytics record the dashboard panel renders.
type WeeklyInsights struct {
	TotalTransactions int     `json:"totalTransactions"`
	TransactionChange float64 `json:"transactionChange"`
	TotalRevenue      float64 `json:"totalRevenue"`
	RevenueChange     float64 `json:"revenueChange"`
	ActiveCustomers   int     `json:"activeCustomers"`
	CustomerChange    float64 `json:"customerChange"`
	FailureRate       float64 `json:"failureRate"`
	FailureChange     float64 `json:"failureChange"`
	TopPaymentMethod  string  `json:"topPaymentMethod"`
	AverageTicket     float64 `json:"averageTicket"`
}

// Provider abstracts the analytics collaborator behind the weekly panel.
type Provider interface {
	Weekly(ctx context.Context) (WeeklyInsights, error)
}

// StaticProvider serves a fixed record, standing in for the real analytics
// pipeline.
type StaticProvider struct {
	record WeeklyInsights
}

// NewStaticProvider returns a provider that always answers with record.
func NewStaticProvider(record WeeklyInsights) *StaticProvider {
	return &StaticProvider{record: record}
}

// Weekly returns the configured record.
func (p *StaticProvider) Weekly(_ context.Context) (WeeklyInsights, error) {
	return p.record, nil
}

// Seed returns the demo record served until real analytics are wired up.
func Seed() WeeklyInsights {
	return WeeklyInsights{
		TotalTransactions: 1247,
		TransactionChange: 12.5,
		TotalRevenue:      89650,
		RevenueChange:     8.3,
		ActiveCustomers:   342,
		CustomerChange:    15.2,
		FailureRate:       2.1,
		FailureChange:     -0.8,
		TopPaymentMethod:  "UPI",
		AverageTicket:     719,
	}
}
