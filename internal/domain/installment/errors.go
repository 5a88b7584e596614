package installment

import "errors"

var (
	ErrInvalidCount      = errors.New("installment count is out of the allowed range")
	ErrNonPositiveTotal  = errors.New("installment plan total must be greater than zero")
	ErrSubCentTotal      = errors.New("installment plan total has more than two decimal places")
	ErrPlanTotalMismatch = errors.New("installment values do not add up to the sale total")
	ErrNonContiguous     = errors.New("installment numbers must run from 1 to the installment count")
	ErrNegativeValue     = errors.New("installment value cannot be negative")
	ErrMissingDueDate    = errors.New("installment due date is required")

	ErrNonPositiveAmount = errors.New("payment amount must be greater than zero")
	ErrAlreadySettled    = errors.New("installment is already paid")
	ErrSubCentAmount     = errors.New("payment amount has more than two decimal places")
)
