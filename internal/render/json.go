package render

import (
	"encoding/json"
	"io"

	"github.com/username/trail-availability/internal/calendar"
	"github.com/username/trail-availability/internal/widget"
)

type jsonView struct {
	Year       int                   `json:"year"`
	Month      int                   `json:"month"`
	Route      string                `json:"route"`
	RouteTitle string                `json:"route_title"`
	Status     widget.Status         `json:"status"`
	Error      string                `json:"error,omitempty"`
	Offset     int                   `json:"offset"`
	Weekdays   []string              `json:"weekdays"`
	Rows       [][]calendar.CellView `json:"rows"`
	BookingURL string                `json:"booking_url"`
	ContactURL string                `json:"contact_url"`
}

// JSON renders the calendar view as a JSON document
type JSON struct {
	w io.Writer
}

// NewJSON creates a JSON renderer
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

// Render writes one document
func (j *JSON) Render(v widget.View) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")

	return enc.Encode(jsonView{
		Year:       v.Selection.Year,
		Month:      int(v.Selection.Month),
		Route:      v.Selection.Route.String(),
		RouteTitle: v.Route.Title,
		Status:     v.Status,
		Error:      v.Err,
		Offset:     v.Grid.Offset,
		Weekdays:   calendar.WeekdayHeaders[:],
		Rows:       v.Cells,
		BookingURL: v.Links.Booking,
		ContactURL: v.Links.Contact,
	})
}
