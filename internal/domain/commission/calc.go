// Package commission holds the pure money math for sale commissions
// and draw balances. Callers are expected to pass non-negative inputs;
// a negative amount or an out-of-range rate is a caller bug, not user
// input, and is reported as an error instead of being clamped.
package commission

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// Compute returns revenue multiplied by the employee's commission rate,
// rounded to currency precision (two decimal places, half up).
func Compute(revenue, rate decimal.Decimal) (decimal.Decimal, error) {
	if revenue.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	if rate.IsNegative() || rate.GreaterThan(one) {
		return decimal.Zero, ErrInvalidRate
	}

	return revenue.Mul(rate).Round(2), nil
}

// RunningBalance advances an employee's draw balance by one entry:
// prior minus the draw paid out plus the commission earned. A draw is
// an advance against future commission, so the result may go negative;
// negative means the employee owes the advance back.
func RunningBalance(prior, draw, earned decimal.Decimal) (decimal.Decimal, error) {
	if draw.IsNegative() || earned.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}

	return prior.Sub(draw).Add(earned), nil
}
