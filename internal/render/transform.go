package render

import (
	"errors"

	"github.com/coreman2200/funtimes-ringlight/model"
)

var (
	// ErrStreakClamped reports a streak whose length was pulled into [1, ring length].
	// The clamped streak is still drawn.
	ErrStreakClamped = errors.New("streak length clamped to ring")
	// ErrBumpRadius reports a bump with radius < 1; nothing is drawn.
	ErrBumpRadius = errors.New("bump radius below 1")
	// ErrBumpOutOfRange reports a bump whose span leaves its ring; nothing is drawn.
	ErrBumpOutOfRange = errors.New("bump span outside ring")
)

// Rotate moves every slot one position in place. The slot pushed off one end
// reappears at the other.
func Rotate(slots []model.Color, s model.Shift) {
	n := len(slots)
	if n < 2 {
		return
	}
	switch s {
	case model.Up:
		last := slots[n-1]
		copy(slots[1:], slots[:n-1])
		slots[0] = last
	case model.Down:
		first := slots[0]
		copy(slots, slots[1:])
		slots[n-1] = first
	}
}

// RotateRing rotates the ring visually in d.
func RotateRing(buf *model.Buffer, r model.Ring, d model.Direction) {
	Rotate(buf.Slots(r), r.ShiftFor(d))
}

func FillSolid(slots []model.Color, c model.Color) {
	for i := range slots {
		slots[i] = c
	}
}

// FillGradient runs a to b across slots, both ends inclusive. A single slot
// gets a.
func FillGradient(slots []model.Color, a, b model.Color) {
	n := len(slots)
	if n == 0 {
		return
	}
	if n == 1 {
		slots[0] = a
		return
	}
	for i := range slots {
		slots[i] = model.Lerp(a, b, i, n-1)
	}
}

// DrawWrappedStreak writes a gradient of length slots into the ring from
// start, wrapping past the last index to 0. Slots outside the streak keep
// their color.
func DrawWrappedStreak(buf *model.Buffer, r model.Ring, start, length int, a, b model.Color) error {
	var err error
	if length < 1 {
		return ErrStreakClamped
	}
	if length > r.Len {
		length = r.Len
		err = ErrStreakClamped
	}

	var tmp [model.MaxRingLength]model.Color
	streak := tmp[:length]
	FillGradient(streak, a, b)

	slots := buf.Slots(r)
	start = r.Wrap(start)
	for i, c := range streak {
		slots[r.Wrap(start+i)] = c
	}
	return err
}

// DrawBump writes a peak of width 2*radius+1 centred on the absolute slot
// center: background rising to peak at center, then falling back. Bumps do
// not wrap; a span leaving the owning ring draws nothing.
func DrawBump(buf *model.Buffer, center, radius int, background, peak model.Color) error {
	if radius < 1 {
		return ErrBumpRadius
	}
	r, ok := model.RingOf(center)
	if !ok || !r.Contains(center-radius) || !r.Contains(center+radius) {
		return ErrBumpOutOfRange
	}

	slots := buf.Slots(r)
	c := center - r.Start
	FillGradient(slots[c-radius:c+1], background, peak)
	FillGradient(slots[c:c+radius+1], peak, background)
	return nil
}
