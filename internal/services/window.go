package services

import (
	"time"

	"todo-store/internal/domain"
)

// processWindow is captured once when the package is initialised and never
// refreshed, so Start and End are the same instant for the whole process.
// A real "today" filter needs DayWindowSource instead.
var processWindow = domain.InstantWindow(time.Now())

// WindowSource yields the window used by the fetch filter.
type WindowSource func() domain.Window

// StaticWindow returns the window captured at package initialisation.
func StaticWindow() WindowSource {
	w := processWindow
	return func() domain.Window { return w }
}

// DayWindowSource recomputes the calendar day around now() on every call.
func DayWindowSource(now func() time.Time) WindowSource {
	if now == nil {
		now = time.Now
	}
	return func() domain.Window { return domain.DayWindow(now()) }
}
