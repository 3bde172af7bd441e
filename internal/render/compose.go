package render

import (
	"github.com/coreman2200/funtimes-ringlight/model"
)

const (
	// InnerBumpCenter is the inner ring midpoint.
	InnerBumpCenter = 8
	// OuterBumpCenter is absolute, i.e. outer index 12.
	OuterBumpCenter = 28

	InnerMaxBumpRadius = 7
	OuterMaxBumpRadius = 11
)

// MakeStreak repaints the ring as background plus one unwrapped streak over
// indices [0, length). The head lands on the leading edge for rotation in d;
// the tail trails behind it.
func MakeStreak(buf *model.Buffer, r model.Ring, d model.Direction, length int, head, tail, background model.Color) {
	slots := buf.Slots(r)
	FillSolid(slots, background)

	length = clamp(length, 1, r.Len)
	streak := slots[:length]
	if r.ShiftFor(d) == model.Up {
		FillGradient(streak, tail, head)
	} else {
		FillGradient(streak, head, tail)
	}
}

func MakeClockwiseStreak(buf *model.Buffer, r model.Ring, length int, head, tail, background model.Color) {
	MakeStreak(buf, r, model.Clockwise, length, head, tail, background)
}

func MakeCounterClockwiseStreak(buf *model.Buffer, r model.Ring, length int, head, tail, background model.Color) {
	MakeStreak(buf, r, model.CounterClockwise, length, head, tail, background)
}

// MakeBump repaints the ring as background plus a bump at the ring's fixed
// centre. The radius is clamped so the bump always fits.
func MakeBump(buf *model.Buffer, r model.Ring, radius int, background, peak model.Color) error {
	FillSolid(buf.Slots(r), background)

	center, limit := BumpGeometry(r)
	return DrawBump(buf, center, min(radius, limit), background, peak)
}

// BumpGeometry returns the absolute bump centre and the largest radius that
// fits the ring.
func BumpGeometry(r model.Ring) (center, maxRadius int) {
	if r == model.Inner {
		return InnerBumpCenter, InnerMaxBumpRadius
	}
	return OuterBumpCenter, OuterMaxBumpRadius
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
