package object

import (
	"unicode/utf8"

	"github.com/tomz197/astroops/internal/draw"
)

// Text is a line of text placed over the canvas.
// Coordinates are 1-based terminal positions.
type Text struct {
	X     int
	Y     int
	Value string // May contain ANSI styling
	Width int    // Visible width in cells; 0 means rune count of Value
}

// Draw writes the text at its position and marks the cells it covers so the
// canvas repaints them once the text is gone.
func (t Text) Draw(w *draw.ChunkWriter, c *draw.Canvas) {
	if t.Value == "" {
		return
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)
	width := t.Width
	if width == 0 {
		width = utf8.RuneCountInString(t.Value)
	}
	w.WriteAt(x, y, t.Value)
	if c != nil {
		c.MarkDirty(x, y, width)
	}
}
