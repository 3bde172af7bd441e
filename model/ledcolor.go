package model

import (
	"fmt"
	"image/color"
)

const (
	RED_OFFSET   uint8 = 0x10
	GREEN_OFFSET uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

// Color is a single RGB slot value. Colors compare with ==.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{R: 0xFF, G: 0xFF, B: 0xFF}
)

// NewColor unpacks a 0xRRGGBB value.
func NewColor(c uint32) Color {
	return Color{
		R: getcolor(c, RED_OFFSET),
		G: getcolor(c, GREEN_OFFSET),
		B: getcolor(c, BLUE_OFFSET),
	}
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

// Hex packs the color back into 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<RED_OFFSET | uint32(c.G)<<GREEN_OFFSET | uint32(c.B)<<BLUE_OFFSET
}

func (c Color) String() string {
	return fmt.Sprintf("#%06X", c.Hex())
}

func (c Color) ToNRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Lerp interpolates component-wise from a to b at step i of n, rounding
// down. Lerp(a, b, 0, n) == a, Lerp(a, b, n, n) == b, and because the
// rounding is a floor, Lerp(a, b, i, n) == Lerp(b, a, n-i, n).
func Lerp(a, b Color, i, n int) Color {
	if n <= 0 {
		return a
	}
	return Color{
		R: lerp8(a.R, b.R, i, n),
		G: lerp8(a.G, b.G, i, n),
		B: lerp8(a.B, b.B, i, n),
	}
}

func lerp8(a, b uint8, i, n int) uint8 {
	return uint8(int(a) + floorDiv((int(b)-int(a))*i, n))
}

// floorDiv divides by a positive n rounding toward negative infinity.
func floorDiv(x, n int) int {
	q := x / n
	if x%n != 0 && x < 0 {
		q--
	}
	return q
}

// Scale dims the color by level/255.
func (c Color) Scale(level uint8) Color {
	return Color{
		R: uint8(uint16(c.R) * uint16(level) / 255),
		G: uint8(uint16(c.G) * uint16(level) / 255),
		B: uint8(uint16(c.B) * uint16(level) / 255),
	}
}
