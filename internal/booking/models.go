package booking

import (
	"encoding/json"
	"fmt"
	"time"
)

// Availability maps a date key (YYYY-MM-DD) to remaining seats.
// A missing key means availability is unknown.
type Availability map[string]int

// Seats looks up the seats remaining for a date key
func (a Availability) Seats(dateKey string) (int, bool) {
	seats, ok := a[dateKey]
	return seats, ok
}

// Clone returns an independent copy (nil stays nil)
func (a Availability) Clone() Availability {
	if a == nil {
		return nil
	}
	out := make(Availability, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// AvailabilityRequest is the POST body sent to the booking service.
// Month is a zero-padded two digit string ("03"), not a number.
type AvailabilityRequest struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
	Route Route  `json:"route"`
}

// NewAvailabilityRequest builds a request for the given selection
func NewAvailabilityRequest(year int, month time.Month, route Route) AvailabilityRequest {
	return AvailabilityRequest{
		Year:  year,
		Month: fmt.Sprintf("%02d", int(month)),
		Route: route,
	}
}

// Date returns the availability key for a day of the requested month
func (r AvailabilityRequest) Date(day int) string {
	return fmt.Sprintf("%d-%s-%02d", r.Year, r.Month, day)
}

// AvailabilityResponse is the success body. Other keys are ignored.
type AvailabilityResponse struct {
	Data Availability `json:"data"`
}

// UnmarshalJSON rejects null and negative seat counts
func (r *AvailabilityResponse) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data map[string]*int `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if raw.Data == nil {
		r.Data = nil
		return nil
	}

	data := make(Availability, len(raw.Data))
	for date, seats := range raw.Data {
		if seats == nil {
			return fmt.Errorf("missing seat count for %s", date)
		}
		if *seats < 0 {
			return fmt.Errorf("negative seat count %d for %s", *seats, date)
		}
		data[date] = *seats
	}

	r.Data = data
	return nil
}
