// Package schedule is the delivery schedule resolution engine. Every
// function is a pure computation over its explicit arguments: no clock
// reads, no I/O, no package state. Callers fetch contracts and one-off
// deliveries up front and may invoke the engine concurrently.
package schedule

import (
	"bytes"
	"time"

	"github.com/nurpe/delivery-billing/internal/model"
)

// Resolve returns the weekly quantity map in force for the contract on the
// given date. Dates before the contract start resolve to an all-zero map.
// The pattern change with the latest change date not after the target date
// replaces the base pattern entirely; ties on the change date are broken by
// record id so repeated calls stay deterministic.
func Resolve(contract model.Contract, date time.Time) model.WeeklyQuantities {
	day := dateOnly(date)
	if day.Before(dateOnly(contract.StartDate)) {
		return model.WeeklyQuantities{}
	}

	var effective *model.PatternChange
	for i := range contract.Changes {
		change := &contract.Changes[i]
		if dateOnly(change.ChangeDate).After(day) {
			continue
		}
		if effective == nil || changeLess(*effective, *change) {
			effective = change
		}
	}
	if effective != nil {
		return effective.Quantities
	}
	return baseQuantities(contract)
}

func baseQuantities(contract model.Contract) model.WeeklyQuantities {
	var quantities model.WeeklyQuantities
	for _, pattern := range contract.Patterns {
		if !pattern.IsActive {
			continue
		}
		if pattern.Weekday < time.Sunday || pattern.Weekday > time.Saturday {
			continue
		}
		quantities[pattern.Weekday] = pattern.Quantity
	}
	return quantities
}

// changeLess orders pattern changes by (change date, record id); the
// greater of two applicable changes wins.
func changeLess(a, b model.PatternChange) bool {
	ad, bd := dateOnly(a.ChangeDate), dateOnly(b.ChangeDate)
	if !ad.Equal(bd) {
		return ad.Before(bd)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

// dateOnly normalizes to midnight UTC. All engine date comparisons go
// through this to keep day boundaries consistent.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
