// Package term renders a game view for a terminal.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

// Renderer writes views using a termenv color profile. termenv.Ascii disables styling.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer picks the color profile of out, or Ascii when color is off.
func NewRenderer(out *termenv.Output, color bool) *Renderer {
	if !color || out == nil {
		return &Renderer{profile: termenv.Ascii}
	}
	return &Renderer{profile: out.Profile}
}

// NewRendererWithProfile is used when the profile is already known.
func NewRendererWithProfile(p termenv.Profile) *Renderer {
	return &Renderer{profile: p}
}

func (r *Renderer) mark(c domain.ViewCell) string {
	text := c.Mark
	if text == "" {
		text = "."
	}
	s := r.profile.String(text)
	switch c.Mark {
	case "X":
		s = s.Foreground(r.profile.Color("6"))
	case "O":
		s = s.Foreground(r.profile.Color("5"))
	}
	if c.Winning {
		s = s.Bold().Reverse()
	}
	return s.String()
}

func (r *Renderer) status(v domain.View) string {
	s := r.profile.String(v.Status).Bold()
	switch v.Outcome {
	case domain.Won:
		s = s.Foreground(r.profile.Color("2"))
	case domain.Drawn:
		s = s.Foreground(r.profile.Color("3"))
	}
	return s.String()
}

// Render writes the status line, the board with coordinate headers and the move list.
func (r *Renderer) Render(w io.Writer, v domain.View) error {
	var b strings.Builder

	b.WriteString(r.status(v))
	b.WriteString("\n\n    1 2 3\n")
	for _, row := range v.Rows() {
		fmt.Fprintf(&b, "  %d", row[0].Row)
		for _, c := range row {
			b.WriteString(" ")
			b.WriteString(r.mark(c))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nMoves (%s):\n", v.Order)
	for _, m := range v.Moves {
		if m.IsCurrent {
			fmt.Fprintf(&b, "> %2d. %s\n", m.Index, m.CurrentText)
			continue
		}
		fmt.Fprintf(&b, "  %2d. %s\n", m.Index, m.Label)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
