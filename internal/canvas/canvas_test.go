package canvas

import (
	"image/color"
	"strings"
	"testing"
)

var black = color.RGBA{A: 255}

func TestFillRepaintsWholeSurface(t *testing.T) {
	s := New(800, 500)

	s.Fill(400, 250, black)

	for _, p := range [][2]int{{0, 0}, {799, 0}, {0, 499}, {799, 499}, {400, 250}} {
		if got := s.At(p[0], p[1]); got != black {
			t.Fatalf("pixel (%d,%d) = %v, want black", p[0], p[1], got)
		}
	}
}

func TestFillSeedColorIsNoOp(t *testing.T) {
	s := New(100, 100)
	s.Fill(50, 50, black)

	// Filling with the color already under the seed must terminate and leave
	// the buffer untouched.
	s.Fill(50, 50, black)
	if got := s.At(50, 50); got != black {
		t.Fatalf("pixel (50,50) = %v, want black", got)
	}
}

func TestFillStopsAtStrokeBoundary(t *testing.T) {
	s := New(100, 100)

	// Vertical wall splitting the surface.
	wall := make([]Point, 0, 100)
	for y := 0; y < 100; y++ {
		wall = append(wall, Point{X: 50, Y: float64(y)})
	}
	s.Stroke(wall, black, 3)

	red := color.RGBA{R: 255, A: 255}
	s.Fill(10, 50, red)

	if got := s.At(10, 50); got != red {
		t.Fatalf("left side = %v, want red", got)
	}
	if got := s.At(90, 50); got != White {
		t.Fatalf("right side = %v, want white (fill crossed the wall)", got)
	}
}

func TestFillOutOfRangeSeed(t *testing.T) {
	s := New(10, 10)
	s.Fill(-1, 5, black)
	s.Fill(5, 100, black)
	if got := s.At(5, 5); got != White {
		t.Fatalf("surface changed by out-of-range fill: %v", got)
	}
}

func TestStrokePaintsDotForSinglePoint(t *testing.T) {
	s := New(100, 100)
	s.Stroke([]Point{{X: 50, Y: 50}}, black, 6)

	if got := s.At(50, 50); got != black {
		t.Fatalf("center = %v, want black", got)
	}
	if got := s.At(50, 52); got != black {
		t.Fatalf("within radius = %v, want black", got)
	}
	if got := s.At(50, 60); got != White {
		t.Fatalf("outside radius = %v, want white", got)
	}
}

func TestStrokeOutsideBoundsDoesNotPanic(t *testing.T) {
	s := New(50, 50)
	s.Stroke([]Point{{X: -20, Y: -20}, {X: 100, Y: 100}}, black, 4)
	if got := s.At(25, 25); got != black {
		t.Fatalf("diagonal through center = %v, want black", got)
	}
}

func TestEraseRestoresBackground(t *testing.T) {
	s := New(100, 100)
	s.Stroke([]Point{{X: 10, Y: 50}, {X: 90, Y: 50}}, black, 4)
	s.Erase([]Point{{X: 10, Y: 50}, {X: 90, Y: 50}}, 6)

	if got := s.At(50, 50); got != White {
		t.Fatalf("erased pixel = %v, want white", got)
	}
}

func TestMapToLogicalScalesPerAxis(t *testing.T) {
	s := New(800, 500)

	p := s.MapToLogical(Point{X: 200, Y: 125}, 400, 250)
	if p.X != 400 || p.Y != 250 {
		t.Fatalf("mapped point = %v, want (400,250)", p)
	}

	// Degenerate display size passes the point through.
	p = s.MapToLogical(Point{X: 3, Y: 4}, 0, 0)
	if p.X != 3 || p.Y != 4 {
		t.Fatalf("mapped point = %v, want (3,4)", p)
	}
}

func TestApplyRejectsBadOps(t *testing.T) {
	s := New(50, 50)

	cases := []Op{
		{Tool: "sparkle"},
		{Tool: ToolStroke},
		{Tool: ToolStroke, Points: []Point{{X: 1, Y: 1}}, Color: "red"},
		{Tool: ToolFill, Points: []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, Color: "#000000"},
	}
	for _, op := range cases {
		if err := s.Apply(op); err == nil {
			t.Fatalf("Apply(%+v) succeeded, want error", op)
		}
	}
}

func TestApplyClear(t *testing.T) {
	s := New(50, 50)
	s.Fill(25, 25, black)
	if err := s.Apply(Op{Tool: ToolClear}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := s.At(25, 25); got != White {
		t.Fatalf("after clear = %v, want white", got)
	}
}

func TestApplyFillScalesSeed(t *testing.T) {
	s := New(800, 500)
	op := Op{
		Tool:          ToolFill,
		Points:        []Point{{X: 200, Y: 125}},
		Color:         "#ff0000",
		DisplayWidth:  400,
		DisplayHeight: 250,
	}
	if err := s.Apply(op); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got := s.At(400, 250); (got != color.RGBA{R: 255, A: 255}) {
		t.Fatalf("seed pixel = %v, want red", got)
	}
}

func TestDataURL(t *testing.T) {
	s := New(10, 10)
	url, err := s.DataURL()
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.40s", url)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if (c != color.RGBA{R: 255, G: 128, A: 255}) {
		t.Fatalf("got %v", c)
	}

	c, err = ParseColor("#fff")
	if err != nil {
		t.Fatalf("ParseColor short: %v", err)
	}
	if c != White {
		t.Fatalf("short white = %v", c)
	}

	for _, bad := range []string{"", "red", "#12345", "#zzzzzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q) succeeded, want error", bad)
		}
	}
}
