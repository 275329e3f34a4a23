package calendar

import (
	"fmt"
	"time"

	"github.com/username/trail-availability/pkg/dateutil"
)

// DaysPerWeek is the width of the grid
const DaysPerWeek = 7

// WeekdayHeaders are the column labels, Monday first
var WeekdayHeaders = [DaysPerWeek]string{"L", "M", "X", "J", "V", "S", "D"}

// Cell is one slot of the month grid. Empty cells pad the week before the 1st.
type Cell struct {
	Empty   bool
	Day     int
	DateKey string
}

// Grid represents a month laid out in Monday-first weeks
type Grid struct {
	Year        int
	Month       time.Month
	Offset      int // blank cells before the 1st (0 = Monday)
	DaysInMonth int
	Rows        [][]Cell
}

// DateKey formats the lookup key used by the booking service: YYYY-MM-DD
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%d-%02d-%02d", year, int(month), day)
}

// BuildGrid lays out the month: Offset blanks, then one cell per day,
// chunked into rows of seven. The last row is not padded.
func BuildGrid(year int, month time.Month) Grid {
	offset := dateutil.FirstWeekdayOffset(year, month)
	days := dateutil.DaysInMonth(year, month)

	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Empty: true})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{
			Day:     day,
			DateKey: DateKey(year, month, day),
		})
	}

	rows := make([][]Cell, 0, (len(cells)+DaysPerWeek-1)/DaysPerWeek)
	for start := 0; start < len(cells); start += DaysPerWeek {
		end := start + DaysPerWeek
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}

	return Grid{
		Year:        year,
		Month:       month,
		Offset:      offset,
		DaysInMonth: days,
		Rows:        rows,
	}
}

// Title returns the month heading, e.g. "March 2025"
func (g Grid) Title() string {
	return fmt.Sprintf("%s %d", g.Month, g.Year)
}
