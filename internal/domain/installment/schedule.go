package installment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
)

// Tolerance is the largest difference accepted between a hand edited
// plan and the sale total.
var Tolerance = decimal.New(1, -2)

// Draft is one installment of a plan before it is attached to a sale.
type Draft struct {
	Number  int                    `json:"installment_number"`
	Value   decimal.Decimal        `json:"value"`
	DueDate time.Time              `json:"due_date"`
	Status  enum.InstallmentStatus `json:"status"`
}

// Generate splits total into count installments.
//
// Every installment but the last gets total/count truncated to cents; the
// last one takes what is left, so the values always add up to total exactly.
// Due dates start FirstDueOffsetDays after from and advance by IntervalDays.
func Generate(total decimal.Decimal, count int, from time.Time, p Policy) ([]Draft, error) {
	if err := checkPlanInputs(total, count, p); err != nil {
		return nil, err
	}

	values := Split(total, count)
	drafts := make([]Draft, count)
	for i := range drafts {
		drafts[i] = Draft{
			Number:  i + 1,
			Value:   values[i],
			DueDate: p.DueDate(from, i),
			Status:  enum.InstallmentStatusPending,
		}
	}
	return drafts, nil
}

// Resize regenerates a plan for a new count. Values are always recomputed;
// due dates already present in prev are kept so manual edits survive.
func Resize(prev []Draft, count int, total decimal.Decimal, from time.Time, p Policy) ([]Draft, error) {
	drafts, err := Generate(total, count, from, p)
	if err != nil {
		return nil, err
	}
	for i := range drafts {
		if i < len(prev) && !prev[i].DueDate.IsZero() {
			drafts[i].DueDate = Date(prev[i].DueDate)
		}
	}
	return drafts, nil
}

// Split divides total into count shares of whole cents. The remainder goes
// to the last share. count must be positive.
func Split(total decimal.Decimal, count int) []decimal.Decimal {
	if count < 1 {
		return nil
	}
	n := decimal.NewFromInt(int64(count))
	share := total.DivRound(n, 8).Truncate(2)

	values := make([]decimal.Decimal, count)
	for i := 0; i < count-1; i++ {
		values[i] = share
	}
	values[count-1] = total.Sub(share.Mul(decimal.NewFromInt(int64(count - 1))))
	return values
}

// Validate checks a caller supplied plan before it is persisted.
func Validate(drafts []Draft, total decimal.Decimal, p Policy) error {
	if err := checkPlanInputs(total, len(drafts), p); err != nil {
		return err
	}

	sum := decimal.Zero
	for i, d := range drafts {
		if d.Number != i+1 {
			return fmt.Errorf("%w: position %d has number %d", ErrNonContiguous, i+1, d.Number)
		}
		if d.Value.IsNegative() {
			return fmt.Errorf("%w: installment %d", ErrNegativeValue, d.Number)
		}
		if d.DueDate.IsZero() {
			return fmt.Errorf("%w: installment %d", ErrMissingDueDate, d.Number)
		}
		sum = sum.Add(d.Value)
	}

	if sum.Sub(total).Abs().GreaterThan(Tolerance) {
		return fmt.Errorf("%w: sum %s, total %s", ErrPlanTotalMismatch, sum.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

// Sum adds the values of a plan.
func Sum(drafts []Draft) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range drafts {
		sum = sum.Add(d.Value)
	}
	return sum
}

func checkPlanInputs(total decimal.Decimal, count int, p Policy) error {
	if !p.AllowsCount(count) {
		return fmt.Errorf("%w: got %d, want %d to %d", ErrInvalidCount, count, p.MinCount, p.MaxCount)
	}
	if !total.IsPositive() {
		return ErrNonPositiveTotal
	}
	if !total.Equal(total.Round(2)) {
		return ErrSubCentTotal
	}
	return nil
}
