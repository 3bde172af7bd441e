package render

import (
	"fmt"
	"testing"

	"github.com/coreman2200/funtimes-ringlight/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seeded fills the buffer with distinct colors so any misplaced slot shows.
func seeded() *model.Buffer {
	buf := model.NewBuffer()
	for i := 0; i < buf.Len(); i++ {
		buf.Set(i, model.Color{R: uint8(i + 1), G: uint8(3 * i), B: uint8(255 - i)})
	}
	return buf
}

func TestRotateRoundTrip(t *testing.T) {
	for _, r := range model.Rings {
		for _, s := range []model.Shift{model.Up, model.Down} {
			t.Run(fmt.Sprintf("%s/%d", r.Name, s), func(t *testing.T) {
				buf := seeded()
				before := buf.Snapshot()

				for i := 0; i < r.Len; i++ {
					Rotate(buf.Slots(r), s)
					if i < r.Len-1 {
						require.NotEqual(t, before, buf.Snapshot())
					}
				}
				assert.Equal(t, before, buf.Snapshot())
			})
		}
	}
}

func TestRotateSingleStep(t *testing.T) {
	slots := []model.Color{{R: 1}, {R: 2}, {R: 3}, {R: 4}}
	Rotate(slots, model.Up)
	assert.Equal(t, []model.Color{{R: 4}, {R: 1}, {R: 2}, {R: 3}}, slots)
	Rotate(slots, model.Down)
	Rotate(slots, model.Down)
	assert.Equal(t, []model.Color{{R: 2}, {R: 3}, {R: 4}, {R: 1}}, slots)
}

func TestRotateRingLeavesOtherRing(t *testing.T) {
	buf := seeded()
	before := buf.Snapshot()
	RotateRing(buf, model.Outer, model.Clockwise)

	after := buf.Snapshot()
	assert.Equal(t, before[:16], after[:16])
	// outer indexes counter-clockwise, so clockwise is a Down shift
	assert.Equal(t, before[17], after[16])
	assert.Equal(t, before[16], after[39])
}

func TestFillGradientEndpoints(t *testing.T) {
	a := model.NewColor(0xFF8000)
	b := model.NewColor(0x0010F0)

	one := make([]model.Color, 1)
	FillGradient(one, a, b)
	assert.Equal(t, a, one[0])

	for n := 2; n <= model.MaxRingLength; n++ {
		slots := make([]model.Color, n)
		FillGradient(slots, a, b)
		assert.Equal(t, a, slots[0], "n=%d", n)
		assert.Equal(t, b, slots[n-1], "n=%d", n)
	}

	FillGradient(nil, a, b)
}

func TestFillGradientIsRepeatable(t *testing.T) {
	a, b := model.NewColor(0x123456), model.NewColor(0xFEDCBA)
	x := make([]model.Color, 9)
	y := make([]model.Color, 9)
	FillGradient(x, a, b)
	FillGradient(y, a, b)
	assert.Equal(t, x, y)
	assert.Equal(t, model.Lerp(a, b, 4, 8), x[4])
}

func TestFillSolid(t *testing.T) {
	buf := seeded()
	FillSolid(buf.Slots(model.Inner), model.White)
	for i := 0; i < 16; i++ {
		assert.Equal(t, model.White, buf.At(i))
	}
	assert.NotEqual(t, model.White, buf.At(16))
}

func TestDrawWrappedStreakWritesOnlyStreak(t *testing.T) {
	for _, r := range model.Rings {
		t.Run(r.Name, func(t *testing.T) {
			buf := seeded()
			before := buf.Snapshot()
			a, b := model.NewColor(0xFF0000), model.NewColor(0x0000FF)

			L := r.Len
			require.NoError(t, DrawWrappedStreak(buf, r, L-2, 4, a, b))

			after := buf.Snapshot()
			written := map[int]bool{}
			for i := range after {
				if after[i] != before[i] {
					written[i] = true
				}
			}
			want := map[int]bool{
				r.Start + L - 2: true,
				r.Start + L - 1: true,
				r.Start:         true,
				r.Start + 1:     true,
			}
			assert.Equal(t, want, written)
			assert.Equal(t, a, after[r.Start+L-2])
			assert.Equal(t, b, after[r.Start+1])
		})
	}
}

func TestDrawWrappedStreakClamps(t *testing.T) {
	buf := model.NewBuffer()
	err := DrawWrappedStreak(buf, model.Inner, 3, 40, model.White, model.White)
	assert.ErrorIs(t, err, ErrStreakClamped)
	for i := 0; i < 16; i++ {
		assert.Equal(t, model.White, buf.At(i))
	}
	assert.Equal(t, model.Black, buf.At(16))

	buf = seeded()
	before := buf.Snapshot()
	assert.ErrorIs(t, DrawWrappedStreak(buf, model.Inner, 3, 0, model.White, model.White), ErrStreakClamped)
	assert.Equal(t, before, buf.Snapshot())
}

func TestDrawWrappedStreakNormalizesStart(t *testing.T) {
	buf := model.NewBuffer()
	require.NoError(t, DrawWrappedStreak(buf, model.Outer, -1, 2, model.White, model.White))
	assert.Equal(t, model.White, buf.At(39))
	assert.Equal(t, model.White, buf.At(16))
	assert.Equal(t, model.Black, buf.At(17))
}

func TestDrawBump(t *testing.T) {
	bg, peak := model.NewColor(0x000010), model.NewColor(0xF0F000)
	buf := model.NewBuffer()
	buf.Fill(bg)

	require.NoError(t, DrawBump(buf, 8, 3, bg, peak))
	assert.Equal(t, bg, buf.At(5))
	assert.Equal(t, peak, buf.At(8))
	assert.Equal(t, bg, buf.At(11))
	assert.Equal(t, buf.At(7), buf.At(9), "bump is symmetric")
	assert.Equal(t, buf.At(6), buf.At(10), "bump is symmetric")
}

func TestDrawBumpRejects(t *testing.T) {
	cases := []struct {
		name   string
		center int
		radius int
		err    error
	}{
		{"zero radius", 8, 0, ErrBumpRadius},
		{"crosses inner end", 14, 3, ErrBumpOutOfRange},
		{"crosses into inner", 17, 2, ErrBumpOutOfRange},
		{"past buffer", 39, 1, ErrBumpOutOfRange},
		{"negative centre", -1, 1, ErrBumpOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := seeded()
			before := buf.Snapshot()
			assert.ErrorIs(t, DrawBump(buf, tc.center, tc.radius, model.Black, model.White), tc.err)
			assert.Equal(t, before, buf.Snapshot())
		})
	}
}
