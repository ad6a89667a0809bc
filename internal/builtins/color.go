package builtins

import (
	"image/color"
	"strconv"
	"strings"
)

// namedColors is the predefined palette accepted by color() alongside
// hex literals (§4.6).
var namedColors = map[string]color.RGBA{
	"black":  {R: 0, G: 0, B: 0, A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"red":    {R: 255, G: 0, B: 0, A: 255},
	"green":  {R: 0, G: 128, B: 0, A: 255},
	"blue":   {R: 0, G: 0, B: 255, A: 255},
	"yellow": {R: 255, G: 255, B: 0, A: 255},
	"cyan":   {R: 0, G: 255, B: 255, A: 255},
	"magenta": {R: 255, G: 0, B: 255, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
	"orange": {R: 255, G: 165, B: 0, A: 255},
	"purple": {R: 128, G: 0, B: 128, A: 255},
	"brown":  {R: 165, G: 42, B: 42, A: 255},
	"pink":   {R: 255, G: 192, B: 203, A: 255},
}

// parseColor accepts a hex literal "#RRGGBB" or one of namedColors'
// keys, case-insensitively for the name form.
func parseColor(s string) (color.RGBA, bool) {
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, errR := strconv.ParseUint(s[1:3], 16, 8)
		g, errG := strconv.ParseUint(s[3:5], 16, 8)
		b, errB := strconv.ParseUint(s[5:7], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, true
		}
		return color.RGBA{}, false
	}
	c, ok := namedColors[strings.ToLower(s)]
	return c, ok
}
