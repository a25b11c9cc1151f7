// Package color derives stable placeholder colors from identifiers.
package color

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Saturation and lightness shared by every placeholder, chosen so white
// initials stay readable on top.
const (
	saturation = 0.45
	lightness  = 0.55
)

// ForID returns a "#RRGGBB" color for id. The same id always maps to the
// same color; only the hue varies.
func ForID(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	hue := float64(h.Sum32() % 360)

	r, g, b := hsl(hue, saturation, lightness)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hsl converts hue in degrees and saturation and lightness in [0,1] to RGB.
func hsl(h, s, l float64) (r, g, b uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = c, x, 0
	case h < 120:
		r1, g1, b1 = x, c, 0
	case h < 180:
		r1, g1, b1 = 0, c, x
	case h < 240:
		r1, g1, b1 = 0, x, c
	case h < 300:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}

	to8 := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return to8(r1), to8(g1), to8(b1)
}
