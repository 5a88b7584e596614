package installment

import (
	"time"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
)

// ResolveStatus derives the status shown for an installment.
//
// A paid installment stays paid. Otherwise it is overdue once its due date
// is strictly before today; an installment due today is still pending.
// Only calendar dates are compared.
func ResolveStatus(stored enum.InstallmentStatus, due, today time.Time) enum.InstallmentStatus {
	if stored == enum.InstallmentStatusPaid {
		return enum.InstallmentStatusPaid
	}
	if Date(due).Before(Date(today)) {
		return enum.InstallmentStatusOverdue
	}
	return enum.InstallmentStatusPending
}
