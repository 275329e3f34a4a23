package widget

import (
	"time"

	"github.com/username/trail-availability/internal/booking"
)

// Status is the fetch lifecycle of the calendar
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Selection is the user-chosen (year, month, route) triple
type Selection struct {
	Year  int
	Month time.Month
	Route booking.Route
}

// NewSelection starts at the month containing now
func NewSelection(now time.Time, route booking.Route) Selection {
	return Selection{Year: now.Year(), Month: now.Month(), Route: route}
}

// Request builds the wire request for the selection
func (s Selection) Request() booking.AvailabilityRequest {
	return booking.NewAvailabilityRequest(s.Year, s.Month, s.Route)
}

// State is a snapshot of the calendar
type State struct {
	Selection  Selection
	Data       booking.Availability
	Status     Status
	Err        string
	Generation uint64 // fetch this state belongs to; 0 before Mount
}

// Loading reports whether a fetch is outstanding
func (s State) Loading() bool {
	return s.Status == StatusLoading
}
