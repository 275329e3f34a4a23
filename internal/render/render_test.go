package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/trail-availability/internal/booking"
	"github.com/username/trail-availability/internal/calendar"
	"github.com/username/trail-availability/internal/widget"
)

func testView(data booking.Availability, status widget.Status, errMsg string) widget.View {
	grid := calendar.BuildGrid(2025, time.March)
	links := calendar.Links{Booking: "https://example.com/book/4d", Contact: "https://example.com/contact"}
	info, _ := booking.Route4Day.Info()

	return widget.View{
		Selection: widget.Selection{Year: 2025, Month: time.March, Route: booking.Route4Day},
		Route:     info,
		Status:    status,
		Err:       errMsg,
		Grid:      grid,
		Cells:     calendar.Present(grid, data, status == widget.StatusLoading, links),
		Links:     links,
	}
}

func TestText_Render(t *testing.T) {
	var buf bytes.Buffer
	view := testView(booking.Availability{
		"2025-03-01": 0,
		"2025-03-02": 49,
		"2025-03-03": 50,
		"2025-03-04": 150,
	}, widget.StatusSuccess, "")

	require.NoError(t, NewText(&buf, false).Render(view))
	out := buf.String()

	assert.Contains(t, out, "Inca Trail 4 Days")
	assert.Contains(t, out, "March 2025")
	assert.Contains(t, out, "Sold Out")
	assert.Contains(t, out, "49 left")
	assert.Contains(t, out, "50 left")
	assert.Contains(t, out, "150 left")
	assert.Contains(t, out, "Contact us")
	assert.Contains(t, out, "Book Now")
	assert.Contains(t, out, "https://example.com/contact")
	assert.NotContains(t, out, "Error:")
	assert.NotContains(t, out, "\033[")

	for _, h := range calendar.WeekdayHeaders {
		assert.Contains(t, out, h)
	}
}

func TestText_RenderLoadingAndError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewText(&buf, false).Render(testView(nil, widget.StatusLoading, "")))
	assert.Equal(t, 31, strings.Count(buf.String(), widget.LoadingIndicator{}.String()))

	buf.Reset()
	require.NoError(t, NewText(&buf, true).Render(testView(nil, widget.StatusError, "availability request failed")))
	assert.Equal(t, 1, strings.Count(buf.String(), "Error: availability request failed"))
	assert.Contains(t, buf.String(), "\033[")
}

func TestText_RowsHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewText(&buf, false).Render(testView(booking.Availability{"2025-03-31": 7}, widget.StatusSuccess, "")))

	width := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.HasPrefix(line, "|") && !strings.HasPrefix(line, "+") {
			continue
		}
		n := len([]rune(line))
		if width == 0 {
			width = n
		}
		assert.Equal(t, width, n, "line %q", line)
	}
	assert.Equal(t, 7*(cellWidth+1)+1, width)
}

func TestJSON_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSON(&buf).Render(testView(booking.Availability{"2025-03-01": 0}, widget.StatusSuccess, "")))

	var doc struct {
		Year   int    `json:"year"`
		Month  int    `json:"month"`
		Route  string `json:"route"`
		Status string `json:"status"`
		Offset int    `json:"offset"`
		Rows   [][]struct {
			Empty bool   `json:"empty"`
			Date  string `json:"date"`
			Label string `json:"label"`
			Level string `json:"level"`
			Link  string `json:"link"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, 2025, doc.Year)
	assert.Equal(t, 3, doc.Month)
	assert.Equal(t, "4d", doc.Route)
	assert.Equal(t, "success", doc.Status)
	assert.Equal(t, 5, doc.Offset)

	first := doc.Rows[0][5]
	assert.Equal(t, "2025-03-01", first.Date)
	assert.Equal(t, "Sold Out", first.Label)
	assert.Equal(t, "sold_out", first.Level)
	assert.Equal(t, "https://example.com/contact", first.Link)
	assert.True(t, doc.Rows[0][0].Empty)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	r, err := New("text", &buf, false)
	require.NoError(t, err)
	assert.IsType(t, &Text{}, r)

	r, err = New("json", &buf, false)
	require.NoError(t, err)
	assert.IsType(t, &JSON{}, r)

	_, err = New("html", &buf, false)
	assert.Error(t, err)
}
