package service

import (
	"time"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/installment"
)

// Calendar supplies the business date. Tests replace Now.
type Calendar struct {
	Now      func() time.Time
	Location *time.Location
}

// NewCalendar returns a wall-clock calendar in loc.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Now: time.Now, Location: loc}
}

// Today is the current calendar date in the business timezone.
func (c Calendar) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return installment.Today(now(), c.Location)
}
