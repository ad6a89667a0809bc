package render

import (
	"bytes"
	"image/color"
	"testing"
)

func TestCanvas_NewFillsBackground(t *testing.T) {
	c := New(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	got := c.img.RGBAAt(2, 2)
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if got != want {
		t.Errorf("background pixel = %v, want %v", got, want)
	}
}

func TestCanvas_TransformAppliesScaleRotationTranslation(t *testing.T) {
	c := New(1, 1, color.RGBA{})
	p := c.Transform(Point{X: 1, Y: 0}, [2]int{10, 10}, 0, [2]float64{2, 2})
	if p.X != 12 || p.Y != 10 {
		t.Errorf("transform = %v, want (12, 10)", p)
	}
}

func TestCanvas_StampLineDrawsAtEndpoints(t *testing.T) {
	c := New(10, 10, color.RGBA{A: 255})
	red := color.RGBA{R: 255, A: 255}
	c.StampLine(Point{X: 0, Y: 0}, Point{X: 9, Y: 0}, 1, red)
	if c.img.RGBAAt(0, 0) != red || c.img.RGBAAt(9, 0) != red {
		t.Errorf("endpoints not stamped: %v / %v", c.img.RGBAAt(0, 0), c.img.RGBAAt(9, 0))
	}
}

func TestCanvas_EncodePNGProducesValidHeader(t *testing.T) {
	c := New(2, 2, color.RGBA{A: 255})
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if buf.Len() < 8 || string(buf.Bytes()[1:4]) != "PNG" {
		t.Errorf("output does not look like a PNG")
	}
}
