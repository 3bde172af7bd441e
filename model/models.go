package model

import (
	"image"
	"math"
)

const (
	InnerLength  = 16
	OuterLength  = 24
	BufferLength = InnerLength + OuterLength

	// MaxRingLength bounds every temporary streak buffer.
	MaxRingLength = OuterLength
)

// Direction is a visual rotation sense, as seen from the front of the rings.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) Reverse() Direction {
	if d == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

func (d Direction) String() string {
	if d == Clockwise {
		return "cw"
	}
	return "ccw"
}

// Shift is a logical rotation: Up moves every slot toward the higher index.
type Shift int

const (
	Up Shift = iota
	Down
)

// Ring is a view over a contiguous run of the buffer. Indexing records which
// visual direction increasing index runs in and Origin is the clockwise angle,
// in turns, where index 0 sits. Both are fixed by the wiring.
type Ring struct {
	Name     string
	Start    int
	Len      int
	Indexing Direction
	Origin   float64
}

// InnerOrigin puts inner index 0 five inner slots clockwise of outer index 0.
const InnerOrigin = 5.0 / InnerLength

var (
	Inner = Ring{Name: "inner", Start: 0, Len: InnerLength, Indexing: Clockwise, Origin: InnerOrigin}
	Outer = Ring{Name: "outer", Start: InnerLength, Len: OuterLength, Indexing: CounterClockwise}
)

// Rings lists both rings in buffer order.
var Rings = []Ring{Inner, Outer}

// End is the first absolute slot past the ring.
func (r Ring) End() int {
	return r.Start + r.Len
}

// Contains reports whether the absolute slot belongs to the ring.
func (r Ring) Contains(abs int) bool {
	return abs >= r.Start && abs < r.End()
}

// Wrap reduces any index, negative included, into [0, Len).
func (r Ring) Wrap(i int) int {
	i %= r.Len
	if i < 0 {
		i += r.Len
	}
	return i
}

// ShiftFor returns the logical shift that moves the ring visually in d.
func (r Ring) ShiftFor(d Direction) Shift {
	if r.Indexing == d {
		return Up
	}
	return Down
}

// Angle returns the visual clockwise position of ring index i in turns [0,1),
// measured from outer index 0.
func (r Ring) Angle(i int) float64 {
	i = r.Wrap(i)
	if r.Indexing == CounterClockwise && i != 0 {
		i = r.Len - i
	}
	a := r.Origin + float64(i)/float64(r.Len)
	return a - math.Floor(a)
}

// Buffer owns the slots of both rings, inner first.
type Buffer struct {
	slots []Color
}

func NewBuffer() *Buffer {
	return &Buffer{slots: make([]Color, BufferLength)}
}

// BufferOf copies slots into a new buffer. Short input is padded with Black
// and long input truncated.
func BufferOf(slots []Color) *Buffer {
	b := NewBuffer()
	copy(b.slots, slots)
	return b
}

func (b *Buffer) Len() int {
	return len(b.slots)
}

// Slots returns the ring's sub-slice. Its capacity ends at the ring boundary
// so an append can never spill into the neighbouring ring.
func (b *Buffer) Slots(r Ring) []Color {
	return b.slots[r.Start:r.End():r.End()]
}

// At returns the absolute slot, or Black when out of range.
func (b *Buffer) At(abs int) Color {
	if abs < 0 || abs >= len(b.slots) {
		return Black
	}
	return b.slots[abs]
}

// Set writes an absolute slot; out of range writes are dropped.
func (b *Buffer) Set(abs int, c Color) bool {
	if abs < 0 || abs >= len(b.slots) {
		return false
	}
	b.slots[abs] = c
	return true
}

// Fill sets every slot of both rings.
func (b *Buffer) Fill(c Color) {
	for i := range b.slots {
		b.slots[i] = c
	}
}

// Snapshot copies the whole buffer.
func (b *Buffer) Snapshot() []Color {
	out := make([]Color, len(b.slots))
	copy(out, b.slots)
	return out
}

// RingOf returns the ring owning the absolute slot.
func RingOf(abs int) (Ring, bool) {
	for _, r := range Rings {
		if r.Contains(abs) {
			return r, true
		}
	}
	return Ring{}, false
}

// Image lays the buffer out as a single row, the shape nrzled expects.
func (b *Buffer) Image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, len(b.slots), 1))
	for x := 0; x < im.Rect.Max.X; x++ {
		im.SetNRGBA(x, 0, b.slots[x].ToNRGBA())
	}
	return im
}
