package canvas

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

// White is the background color of a fresh drawing surface.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Point is a position in logical buffer coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Surface is a fixed-size RGBA pixel buffer owned by a single room. All
// mutation happens on the room's goroutine, so the surface itself carries no
// locking.
type Surface struct {
	w, h int
	pix  []color.RGBA
}

func New(w, h int) *Surface {
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 500
	}
	s := &Surface{w: w, h: h, pix: make([]color.RGBA, w*h)}
	s.Clear()
	return s
}

func (s *Surface) Width() int  { return s.w }
func (s *Surface) Height() int { return s.h }

// Clear repaints the whole buffer white.
func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = White
	}
}

// At returns the pixel at (x, y). Out-of-range reads return the background,
// never panic; the drawing path must stay responsive.
func (s *Surface) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return White
	}
	return s.pix[y*s.w+x]
}

func (s *Surface) set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.pix[y*s.w+x] = c
}

// Stroke composites a round-capped, round-joined polyline into the buffer.
// A single point paints a dot of the given width.
func (s *Surface) Stroke(points []Point, c color.RGBA, width float64) {
	if len(points) == 0 {
		return
	}
	r := width / 2
	if r < 0.5 {
		r = 0.5
	}
	if len(points) == 1 {
		s.stampSegment(points[0], points[0], c, r)
		return
	}
	for i := 1; i < len(points); i++ {
		s.stampSegment(points[i-1], points[i], c, r)
	}
}

// Erase runs the same motion capture as Stroke but paints the background
// color. The radius is independent of the pen width.
func (s *Surface) Erase(points []Point, radius float64) {
	if radius < 0.5 {
		radius = 0.5
	}
	if len(points) == 1 {
		s.stampSegment(points[0], points[0], White, radius)
		return
	}
	for i := 1; i < len(points); i++ {
		s.stampSegment(points[i-1], points[i], White, radius)
	}
}

// stampSegment paints every pixel whose center lies within r of the segment
// a-b. Including the endpoints gives round caps and round joins for free.
func (s *Surface) stampSegment(a, b Point, c color.RGBA, r float64) {
	minX := int(math.Floor(math.Min(a.X, b.X) - r))
	maxX := int(math.Ceil(math.Max(a.X, b.X) + r))
	minY := int(math.Floor(math.Min(a.Y, b.Y) - r))
	maxY := int(math.Ceil(math.Max(a.Y, b.Y) + r))

	// Clamp the scan window to the buffer, never error on out-of-range input.
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= s.w {
		maxX = s.w - 1
	}
	if maxY >= s.h {
		maxY = s.h - 1
	}

	r2 := r * r
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if distSq(float64(x), float64(y), a, b) <= r2 {
				s.pix[y*s.w+x] = c
			}
		}
	}
}

// distSq is the squared distance from (px, py) to the segment a-b.
func distSq(px, py float64, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-a.X)*dx + (py-a.Y)*dy) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	cx, cy := a.X+t*dx, a.Y+t*dy
	return (px-cx)*(px-cx) + (py-cy)*(py-cy)
}

// Fill repaints the 4-connected region matching the seed pixel's exact RGBA
// value. Filling a region with its own color is a no-op. The fill uses an
// explicit stack; neighbor pushes are bounds-checked before they happen.
func (s *Surface) Fill(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	target := s.pix[y*s.w+x]
	if target == c {
		return
	}

	type cell struct{ x, y int }
	stack := []cell{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i := p.y*s.w + p.x
		if s.pix[i] != target {
			continue
		}
		s.pix[i] = c

		if p.x > 0 {
			stack = append(stack, cell{p.x - 1, p.y})
		}
		if p.x < s.w-1 {
			stack = append(stack, cell{p.x + 1, p.y})
		}
		if p.y > 0 {
			stack = append(stack, cell{p.x, p.y - 1})
		}
		if p.y < s.h-1 {
			stack = append(stack, cell{p.x, p.y + 1})
		}
	}
}

// DataURL encodes the buffer as a base64 PNG data URL, the shape the reference
// client stores in its drawingData field.
func (s *Surface) DataURL() (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			img.SetRGBA(x, y, s.pix[y*s.w+x])
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// MapToLogical converts a point captured on a display surface of arbitrary
// size into logical buffer coordinates, scaling each axis independently so
// non-uniform client layouts stay correct.
func (s *Surface) MapToLogical(p Point, displayW, displayH float64) Point {
	if displayW <= 0 || displayH <= 0 {
		return p
	}
	return Point{
		X: p.X * float64(s.w) / displayW,
		Y: p.Y * float64(s.h) / displayH,
	}
}

// ParseColor parses a #RRGGBB or #RGB hex color.
func ParseColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return color.RGBA{}, errors.New("color must start with '#'")
	}
	var r, g, b uint8
	switch len(hex) {
	case 7:
		if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, err
		}
	case 4:
		if _, err := fmt.Sscanf(hex, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, err
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, errors.New("unsupported color format")
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
