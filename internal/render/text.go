package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/username/trail-availability/internal/calendar"
	"github.com/username/trail-availability/internal/widget"
)

const cellWidth = 10

const (
	ansiReset      = "\033[0m"
	ansiBold       = "\033[1m"
	ansiGray       = "\033[90m"
	ansiRed        = "\033[31m"
	ansiBlue       = "\033[34m"
	ansiLowStock   = "\033[41;97m" // white on red
	ansiMidStock   = "\033[43;30m" // black on yellow
	ansiHighStock  = "\033[42;97m" // white on green
	ansiSoldOutMsg = "\033[1;31m"
)

// Text renders the calendar as a boxed grid for terminals
type Text struct {
	w      io.Writer
	color  bool
	loader widget.LoadingIndicator
}

// NewText creates a text renderer. Color enables ANSI stock highlighting.
func NewText(w io.Writer, color bool) *Text {
	return &Text{w: w, color: color}
}

// Render writes one frame
func (t *Text) Render(v widget.View) error {
	var b strings.Builder

	b.WriteString(t.paint(ansiBold, v.Route.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Ruta: %s   Mes: %s   [%s]\n", v.Selection.Route, v.Grid.Title(), v.Status)
	if v.Err != "" {
		b.WriteString(t.paint(ansiRed, "Error: "+v.Err))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	border := strings.Repeat("+"+strings.Repeat("-", cellWidth), calendar.DaysPerWeek) + "+\n"

	b.WriteString(border)
	for _, h := range calendar.WeekdayHeaders {
		b.WriteString("|")
		b.WriteString(t.paint(ansiBold, center(h, cellWidth)))
	}
	b.WriteString("|\n")
	b.WriteString(border)

	for _, row := range v.Cells {
		lines := [3]strings.Builder{}
		for col := 0; col < calendar.DaysPerWeek; col++ {
			var cell calendar.CellView
			if col < len(row) {
				cell = row[col]
			} else {
				cell = calendar.CellView{Empty: true}
			}
			day, label, link := t.cellLines(cell)
			lines[0].WriteString("|" + day)
			lines[1].WriteString("|" + label)
			lines[2].WriteString("|" + link)
		}
		for i := range lines {
			b.WriteString(lines[i].String())
			b.WriteString("|\n")
		}
		b.WriteString(border)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-10s → %s\n", calendar.LinkBookNow, v.Links.Booking)
	fmt.Fprintf(&b, "%-10s → %s\n", calendar.LinkContactUs, v.Links.Contact)

	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Text) cellLines(cell calendar.CellView) (day, label, link string) {
	blank := strings.Repeat(" ", cellWidth)
	if cell.Empty {
		return blank, blank, blank
	}

	day = t.paint(ansiBold, center(fmt.Sprint(cell.Day), cellWidth))

	if cell.Loading {
		return day, t.paint(ansiBlue, center(t.loader.String(), cellWidth)), blank
	}

	switch cell.Level {
	case calendar.StockUnknown:
		return day, t.paint(ansiGray, center(cell.Label, cellWidth)), blank
	case calendar.StockSoldOut:
		label = t.paint(ansiSoldOutMsg, center(cell.Label, cellWidth))
		link = t.paint(ansiGray, center(cell.LinkText, cellWidth))
	case calendar.StockLow:
		label = t.paint(ansiLowStock, center(cell.Label, cellWidth))
		link = center(cell.LinkText, cellWidth)
	case calendar.StockMedium:
		label = t.paint(ansiMidStock, center(cell.Label, cellWidth))
		link = center(cell.LinkText, cellWidth)
	case calendar.StockHigh:
		label = t.paint(ansiHighStock, center(cell.Label, cellWidth))
		link = center(cell.LinkText, cellWidth)
	}

	return day, label, link
}

func (t *Text) paint(code, s string) string {
	if !t.color || s == "" {
		return s
	}
	return code + s + ansiReset
}

// center pads s to width, truncating when it does not fit
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
