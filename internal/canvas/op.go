package canvas

import (
	"errors"
	"fmt"
)

// Tools accepted in a draw op.
const (
	ToolStroke = "stroke"
	ToolErase  = "erase"
	ToolFill   = "fill"
	ToolClear  = "clear"
)

// Op is one drawing action from the drawer's client. Points arrive in display
// coordinates together with the display size; the surface rescales them to the
// logical buffer before compositing.
type Op struct {
	Tool   string  `json:"tool"`
	Points []Point `json:"points,omitempty"`
	Color  string  `json:"color,omitempty"`
	Width  float64 `json:"width,omitempty"`

	DisplayWidth  float64 `json:"displayWidth,omitempty"`
	DisplayHeight float64 `json:"displayHeight,omitempty"`
}

// Apply validates and composites the op into the surface.
func (s *Surface) Apply(op Op) error {
	switch op.Tool {
	case ToolClear:
		s.Clear()
		return nil

	case ToolStroke:
		if len(op.Points) == 0 {
			return errors.New("stroke requires at least one point")
		}
		c, err := ParseColor(op.Color)
		if err != nil {
			return fmt.Errorf("stroke color: %w", err)
		}
		w := op.Width
		if w <= 0 {
			w = 5
		}
		s.Stroke(s.mapPoints(op), c, w)
		return nil

	case ToolErase:
		if len(op.Points) == 0 {
			return errors.New("erase requires at least one point")
		}
		r := op.Width
		if r <= 0 {
			r = 10
		}
		s.Erase(s.mapPoints(op), r)
		return nil

	case ToolFill:
		if len(op.Points) != 1 {
			return errors.New("fill requires exactly one seed point")
		}
		c, err := ParseColor(op.Color)
		if err != nil {
			return fmt.Errorf("fill color: %w", err)
		}
		p := s.mapPoints(op)[0]
		s.Fill(int(p.X), int(p.Y), c)
		return nil

	default:
		return fmt.Errorf("unknown tool %q", op.Tool)
	}
}

func (s *Surface) mapPoints(op Op) []Point {
	out := make([]Point, len(op.Points))
	for i, p := range op.Points {
		out[i] = s.MapToLogical(p, op.DisplayWidth, op.DisplayHeight)
	}
	return out
}
