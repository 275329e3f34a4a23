package render

import (
	"fmt"
	"io"

	"github.com/username/trail-availability/internal/widget"
)

// Renderer writes calendar frames
type Renderer interface {
	Render(v widget.View) error
}

// New picks a renderer by output format ("text" or "json")
func New(format string, w io.Writer, color bool) (Renderer, error) {
	switch format {
	case "", "text":
		return NewText(w, color), nil
	case "json":
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("output must be 'text' or 'json', got '%s'", format)
	}
}
