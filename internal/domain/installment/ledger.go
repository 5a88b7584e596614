package installment

import (
	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
)

// Balance is the paid and outstanding position of one installment.
type Balance struct {
	Value     decimal.Decimal `json:"value"`
	Paid      decimal.Decimal `json:"total_paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Settled reports whether nothing is left to pay.
func (b Balance) Settled() bool {
	return !b.Remaining.IsPositive()
}

// Summarize totals the payments recorded against an installment of the given
// face value. Remaining never goes below zero.
func Summarize(value decimal.Decimal, amounts []decimal.Decimal) Balance {
	paid := decimal.Zero
	for _, a := range amounts {
		paid = paid.Add(a)
	}
	remaining := value.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Balance{Value: value, Paid: paid, Remaining: remaining}
}

// Settlement is the outcome of applying one payment.
type Settlement struct {
	Amount decimal.Decimal
	// Settles is true when this payment completes the installment.
	Settles bool
}

// ApplyPayment decides how much is recorded and whether the installment
// becomes paid. With payFull the requested amount is ignored and the
// remaining balance is used. An amount above the remaining balance is
// recorded in full and settles the installment.
func ApplyPayment(stored enum.InstallmentStatus, bal Balance, amount decimal.Decimal, payFull bool) (Settlement, error) {
	if stored == enum.InstallmentStatusPaid || bal.Settled() {
		return Settlement{}, ErrAlreadySettled
	}

	if payFull {
		amount = bal.Remaining
	}
	if !amount.IsPositive() {
		return Settlement{}, ErrNonPositiveAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return Settlement{}, ErrSubCentAmount
	}

	return Settlement{
		Amount:  amount,
		Settles: payFull || bal.Paid.Add(amount).GreaterThanOrEqual(bal.Value),
	}, nil
}
