// Package installment holds the installment plan rules: splitting a sale
// total into a dated schedule, reconciling payments against an installment,
// and resolving the live status shown to operators.
//
// Everything here is pure. Persistence and transactions live in the
// application services that call into it.
package installment
