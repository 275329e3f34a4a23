package calendar

import (
	"testing"
	"time"
)

func TestBuildGrid_Shape(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			grid := BuildGrid(year, month)

			blanks, days := 0, 0
			for _, row := range grid.Rows {
				if len(row) == 0 || len(row) > DaysPerWeek {
					t.Fatalf("%d-%02d: row width %d", year, month, len(row))
				}
				for _, cell := range row {
					if cell.Empty {
						if days > 0 {
							t.Fatalf("%d-%02d: blank cell after day cells", year, month)
						}
						blanks++
					} else {
						days++
					}
				}
			}

			wantDays := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
			wantOffset := (int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()) + 6) % 7
			wantRows := (wantDays + wantOffset + 6) / 7

			if days != wantDays {
				t.Errorf("%d-%02d: day cells = %d, want %d", year, month, days, wantDays)
			}
			if blanks != wantOffset || grid.Offset != wantOffset {
				t.Errorf("%d-%02d: blanks = %d (Offset %d), want %d", year, month, blanks, grid.Offset, wantOffset)
			}
			if len(grid.Rows) != wantRows {
				t.Errorf("%d-%02d: rows = %d, want %d", year, month, len(grid.Rows), wantRows)
			}
		}
	}
}

func TestBuildGrid_LeapFebruary(t *testing.T) {
	grid := BuildGrid(2024, time.February)

	if grid.DaysInMonth != 29 {
		t.Fatalf("DaysInMonth = %d, want 29", grid.DaysInMonth)
	}

	// Feb 1 2024 is a Thursday
	if grid.Offset != 3 {
		t.Errorf("Offset = %d, want 3", grid.Offset)
	}

	last := grid.Rows[len(grid.Rows)-1]
	if got := last[len(last)-1]; got.Day != 29 || got.DateKey != "2024-02-29" {
		t.Errorf("last cell = %+v, want day 29 / 2024-02-29", got)
	}
}

func TestBuildGrid_DateKeysAndColumns(t *testing.T) {
	// March 2025 starts on Saturday: five blanks, then 1 under "S"
	grid := BuildGrid(2025, time.March)

	first := grid.Rows[0]
	if len(first) != DaysPerWeek {
		t.Fatalf("first row width = %d, want 7", len(first))
	}
	if first[5].Day != 1 || first[5].DateKey != "2025-03-01" {
		t.Errorf("first[5] = %+v, want 2025-03-01", first[5])
	}
	if first[6].DateKey != "2025-03-02" {
		t.Errorf("first[6] = %+v, want 2025-03-02", first[6])
	}
	if WeekdayHeaders[5] != "S" || WeekdayHeaders[6] != "D" {
		t.Errorf("unexpected headers %v", WeekdayHeaders)
	}
	if grid.Title() != "March 2025" {
		t.Errorf("Title() = %q, want March 2025", grid.Title())
	}
}

func TestDateKey(t *testing.T) {
	if got := DateKey(2025, time.March, 7); got != "2025-03-07" {
		t.Errorf("DateKey = %q, want 2025-03-07", got)
	}
	if got := DateKey(2025, time.November, 23); got != "2025-11-23" {
		t.Errorf("DateKey = %q, want 2025-11-23", got)
	}
}
