package calendar

import (
	"testing"
	"time"
)

type mapLookup map[string]int

func (m mapLookup) Seats(key string) (int, bool) {
	v, ok := m[key]
	return v, ok
}

var testLinks = Links{
	Booking: "https://example.com/book/4d",
	Contact: "https://example.com/contact",
}

func TestPresentCell(t *testing.T) {
	cell := Cell{Day: 10, DateKey: "2025-03-10"}

	tests := []struct {
		name      string
		data      Lookup
		wantLevel StockLevel
		wantLabel string
		wantLink  string
		wantText  string
	}{
		{"sold out", mapLookup{"2025-03-10": 0}, StockSoldOut, "Sold Out", testLinks.Contact, "Contact Us"},
		{"one left", mapLookup{"2025-03-10": 1}, StockLow, "1 left", testLinks.Booking, "Book Now"},
		{"49 is low", mapLookup{"2025-03-10": 49}, StockLow, "49 left", testLinks.Booking, "Book Now"},
		{"50 is medium", mapLookup{"2025-03-10": 50}, StockMedium, "50 left", testLinks.Booking, "Book Now"},
		{"99 is medium", mapLookup{"2025-03-10": 99}, StockMedium, "99 left", testLinks.Booking, "Book Now"},
		{"100 is high", mapLookup{"2025-03-10": 100}, StockHigh, "100 left", testLinks.Booking, "Book Now"},
		{"150 is high", mapLookup{"2025-03-10": 150}, StockHigh, "150 left", testLinks.Booking, "Book Now"},
		{"absent key", mapLookup{"2025-03-11": 20}, StockUnknown, "Contact us", "", ""},
		{"no data", nil, StockUnknown, "Contact us", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := PresentCell(cell, tt.data, false, testLinks)

			if view.Level != tt.wantLevel {
				t.Errorf("Level = %v, want %v", view.Level, tt.wantLevel)
			}
			if view.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", view.Label, tt.wantLabel)
			}
			if view.Link != tt.wantLink {
				t.Errorf("Link = %q, want %q", view.Link, tt.wantLink)
			}
			if view.LinkText != tt.wantText {
				t.Errorf("LinkText = %q, want %q", view.LinkText, tt.wantText)
			}
			if view.Loading {
				t.Errorf("Loading = true, want false")
			}
		})
	}
}

func TestPresentCell_SoldOutIgnoresRoute(t *testing.T) {
	data := mapLookup{"2025-03-10": 0}
	cell := Cell{Day: 10, DateKey: "2025-03-10"}

	for _, booking := range []string{"https://example.com/book/4d", "https://example.com/book/2d"} {
		view := PresentCell(cell, data, false, Links{Booking: booking, Contact: testLinks.Contact})
		if view.Link != testLinks.Contact {
			t.Errorf("sold-out link with booking %s = %q, want contact", booking, view.Link)
		}
	}
}

func TestPresent_LoadingHidesStaleData(t *testing.T) {
	grid := BuildGrid(2025, time.March)
	data := mapLookup{"2025-03-01": 0, "2025-03-15": 70}

	rows := Present(grid, data, true, testLinks)

	content := 0
	for _, row := range rows {
		for _, view := range row {
			if view.Empty {
				if view.Loading {
					t.Errorf("blank cell marked loading")
				}
				continue
			}
			content++
			if !view.Loading || view.Label != "" || view.Link != "" || view.Seats != nil {
				t.Errorf("cell %s not a pure loading marker: %+v", view.DateKey, view)
			}
		}
	}

	if content != 31 {
		t.Errorf("content cells = %d, want 31", content)
	}
}

func TestPresent_Seats(t *testing.T) {
	grid := BuildGrid(2025, time.March)
	rows := Present(grid, mapLookup{"2025-03-01": 12}, false, testLinks)

	view := rows[0][5]
	if view.Seats == nil || *view.Seats != 12 {
		t.Fatalf("Seats = %v, want 12", view.Seats)
	}
	if rows[0][6].Seats != nil {
		t.Errorf("absent date carries seats")
	}
}
