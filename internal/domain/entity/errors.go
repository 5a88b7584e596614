package entity

import "errors"

// ErrPaymentImmutable is returned when something tries to rewrite a ledger entry.
var ErrPaymentImmutable = errors.New("payments are append-only")
