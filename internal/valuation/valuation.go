package valuation

import "github.com/shopspring/decimal"

// Tier boundaries are inclusive: [1,4] earns 7% computed on the TL amount,
// [5,9] earns 7% computed on the USD equivalent, [10,∞) earns 8% on the USD
// equivalent. All returns are reported USD-denominated so holdings of
// different tiers aggregate into one comparable total.
const (
	TierLocal    = 1
	TierUSD      = 2
	TierUSDHigh  = 3
	usdHighBound = 10
	usdBound     = 5
)

var (
	rateSeven = decimal.NewFromFloat(0.07)
	rateEight = decimal.NewFromFloat(0.08)
)

// Tier derives the return tier from a share count. Never persisted; holdings
// only store shares and the TL amount.
func Tier(shares int64) int {
	switch {
	case shares >= usdHighBound:
		return TierUSDHigh
	case shares >= usdBound:
		return TierUSD
	default:
		return TierLocal
	}
}

// Valuation is the read-time view of one holding at a given USD rate.
type Valuation struct {
	Shares           int64   `json:"shares"`
	Amount           int64   `json:"amount"`
	AmountUSD        float64 `json:"amount_usd"`
	MonthlyReturnUSD float64 `json:"monthly_return_usd"`
}

// Valuate computes the USD-equivalent and tiered monthly return for a holding.
// Callers obtain usdRate from the rate provider at request time; a
// non-positive rate yields zero USD figures instead of dividing by zero.
func Valuate(shares, amount int64, usdRate float64) Valuation {
	if usdRate <= 0 {
		return Valuation{Shares: shares, Amount: amount}
	}
	amt := decimal.NewFromInt(amount)
	rate := decimal.NewFromFloat(usdRate)
	amountUSD := amt.Div(rate)

	var monthlyUSD decimal.Decimal
	switch Tier(shares) {
	case TierUSDHigh:
		monthlyUSD = amountUSD.Mul(rateEight)
	case TierUSD:
		monthlyUSD = amountUSD.Mul(rateSeven)
	default:
		// Return accrues in TL; convert for the USD-denominated report.
		monthlyUSD = amt.Mul(rateSeven).Div(rate)
	}

	avUSD, _ := amountUSD.Round(2).Float64()
	mrUSD, _ := monthlyUSD.Round(2).Float64()
	return Valuation{
		Shares:           shares,
		Amount:           amount,
		AmountUSD:        avUSD,
		MonthlyReturnUSD: mrUSD,
	}
}
