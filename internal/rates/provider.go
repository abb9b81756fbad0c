package rates

import "context"

// Provider supplies the current USD/TRY rate and the fixed share price.
// Consumed by read paths only; ledger mutations never call it.
type Provider interface {
	USDRate(ctx context.Context) float64
	SharePrice() int64
}

// Static is a fixed-rate Provider for tests and feed-less deployments.
type Static struct {
	Rate  float64
	Price int64
}

func (s *Static) USDRate(ctx context.Context) float64 { return s.Rate }
func (s *Static) SharePrice() int64                   { return s.Price }
