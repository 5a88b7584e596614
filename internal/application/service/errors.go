package service

import (
	"errors"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/installment"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
)

// planFields maps engine errors to the request field they concern.
var planFields = []struct {
	err   error
	field string
}{
	{installment.ErrInvalidCount, "installment_count"},
	{installment.ErrNonPositiveTotal, "total_amount"},
	{installment.ErrSubCentTotal, "total_amount"},
	{installment.ErrPlanTotalMismatch, "installments"},
	{installment.ErrNonContiguous, "installments"},
	{installment.ErrNegativeValue, "installments"},
	{installment.ErrMissingDueDate, "installments"},
	{installment.ErrNonPositiveAmount, "amount"},
	{installment.ErrSubCentAmount, "amount"},
	{installment.ErrAlreadySettled, "installment_id"},
}

// engineError turns a schedule or ledger rule violation into a validation
// error. Anything else passes through untouched.
func engineError(err error) error {
	if err == nil {
		return nil
	}
	for _, pf := range planFields {
		if errors.Is(err, pf.err) {
			return apperror.NewFieldValidationError(pf.field, err.Error())
		}
	}
	return err
}

// storeError keeps AppErrors raised inside a unit of work and wraps
// everything else as a persistence failure.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewPersistenceError(op, err)
}
