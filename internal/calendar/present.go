package calendar

import "fmt"

// StockLevel classifies remaining seats
type StockLevel int

const (
	StockUnknown StockLevel = iota
	StockSoldOut
	StockLow
	StockMedium
	StockHigh
)

const (
	lowStockBelow    = 50
	mediumStockBelow = 100
)

const (
	LabelSoldOut   = "Sold Out"
	LabelContactUs = "Contact us"
	LinkContactUs  = "Contact Us"
	LinkBookNow    = "Book Now"
)

// String returns the stock level name
func (s StockLevel) String() string {
	switch s {
	case StockSoldOut:
		return "sold_out"
	case StockLow:
		return "low"
	case StockMedium:
		return "medium"
	case StockHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name
func (s StockLevel) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Lookup resolves seats remaining for a date key
type Lookup interface {
	Seats(dateKey string) (int, bool)
}

// Links are the outbound targets a cell may point to
type Links struct {
	Booking string
	Contact string
}

// CellView is a cell with its presentation resolved
type CellView struct {
	Empty    bool       `json:"empty,omitempty"`
	Day      int        `json:"day,omitempty"`
	DateKey  string     `json:"date,omitempty"`
	Loading  bool       `json:"loading,omitempty"`
	Seats    *int       `json:"seats,omitempty"`
	Level    StockLevel `json:"level"`
	Label    string     `json:"label,omitempty"`
	Link     string     `json:"link,omitempty"`
	LinkText string     `json:"link_text,omitempty"`
}

// Classify maps a seat count to its stock level
func Classify(seats int) StockLevel {
	switch {
	case seats == 0:
		return StockSoldOut
	case seats < lowStockBelow:
		return StockLow
	case seats < mediumStockBelow:
		return StockMedium
	default:
		return StockHigh
	}
}

// PresentCell applies the display rules to a single cell.
// Loading wins over any data still held.
func PresentCell(cell Cell, data Lookup, loading bool, links Links) CellView {
	if cell.Empty {
		return CellView{Empty: true}
	}

	view := CellView{Day: cell.Day, DateKey: cell.DateKey}
	if loading {
		view.Loading = true
		return view
	}

	var seats int
	var known bool
	if data != nil {
		seats, known = data.Seats(cell.DateKey)
	}
	if !known {
		view.Label = LabelContactUs
		return view
	}

	view.Seats = &seats
	view.Level = Classify(seats)
	if view.Level == StockSoldOut {
		view.Label = LabelSoldOut
		view.Link = links.Contact
		view.LinkText = LinkContactUs
		return view
	}

	view.Label = fmt.Sprintf("%d left", seats)
	view.Link = links.Booking
	view.LinkText = LinkBookNow
	return view
}

// Present resolves every cell of the grid
func Present(grid Grid, data Lookup, loading bool, links Links) [][]CellView {
	rows := make([][]CellView, len(grid.Rows))
	for i, row := range grid.Rows {
		rows[i] = make([]CellView, len(row))
		for j, cell := range row {
			rows[i][j] = PresentCell(cell, data, loading, links)
		}
	}
	return rows
}
