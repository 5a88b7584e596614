package installment

import (
	"fmt"
	"time"
)

// Policy controls how a schedule is laid out.
type Policy struct {
	FirstDueOffsetDays int
	IntervalDays       int
	MinCount           int
	MaxCount           int
}

// DefaultPolicy is monthly billing, first due 30 days after the sale, 2 to 12 installments.
func DefaultPolicy() Policy {
	return Policy{
		FirstDueOffsetDays: 30,
		IntervalDays:       30,
		MinCount:           2,
		MaxCount:           12,
	}
}

// Validate checks the policy itself, not a plan.
func (p Policy) Validate() error {
	if p.MinCount < 1 || p.MaxCount < p.MinCount {
		return fmt.Errorf("installment: invalid count range [%d, %d]", p.MinCount, p.MaxCount)
	}
	if p.FirstDueOffsetDays < 0 || p.IntervalDays < 1 {
		return fmt.Errorf("installment: invalid due date offsets (%d, %d)", p.FirstDueOffsetDays, p.IntervalDays)
	}
	return nil
}

// AllowsCount reports whether count is inside the policy range.
func (p Policy) AllowsCount(count int) bool {
	return count >= p.MinCount && count <= p.MaxCount
}

// DueDate returns the due date of the installment at index i (0-based).
func (p Policy) DueDate(from time.Time, i int) time.Time {
	return Date(from).AddDate(0, 0, p.FirstDueOffsetDays+p.IntervalDays*i)
}
