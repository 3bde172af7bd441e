package render

import (
	"testing"

	"github.com/coreman2200/funtimes-ringlight/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	head = model.NewColor(0xFFFFFF)
	tail = model.NewColor(0x200000)
	bg   = model.NewColor(0x000008)
)

func TestMakeStreakHeadLeads(t *testing.T) {
	cases := []struct {
		ring    model.Ring
		dir     model.Direction
		headIdx int
	}{
		// inner indexes clockwise: clockwise is Up, so the head sits at length-1
		{model.Inner, model.Clockwise, 5},
		{model.Inner, model.CounterClockwise, 0},
		{model.Outer, model.Clockwise, 0},
		{model.Outer, model.CounterClockwise, 5},
	}
	for _, tc := range cases {
		t.Run(tc.ring.Name+"/"+tc.dir.String(), func(t *testing.T) {
			buf := model.NewBuffer()
			MakeStreak(buf, tc.ring, tc.dir, 6, head, tail, bg)
			slots := buf.Slots(tc.ring)
			assert.Equal(t, head, slots[tc.headIdx])
			for i := 6; i < tc.ring.Len; i++ {
				assert.Equal(t, bg, slots[i])
			}
		})
	}
}

func TestMakeStreakDoesNotTouchOtherRing(t *testing.T) {
	buf := model.NewBuffer()
	buf.Fill(model.White)
	MakeClockwiseStreak(buf, model.Outer, 10, head, tail, bg)
	for i := 0; i < 16; i++ {
		assert.Equal(t, model.White, buf.At(i))
	}
	MakeCounterClockwiseStreak(buf, model.Inner, 99, head, tail, bg)
	assert.Equal(t, tail, buf.At(15), "length is clamped to the ring")
	assert.Equal(t, head, buf.At(0))
}

func TestMakeBumpClampsRadius(t *testing.T) {
	buf := model.NewBuffer()
	require.NoError(t, MakeBump(buf, model.Inner, 50, bg, head))
	assert.Equal(t, head, buf.At(InnerBumpCenter))
	assert.Equal(t, bg, buf.At(1))
	assert.Equal(t, bg, buf.At(15))
	assert.Equal(t, bg, buf.At(0))

	require.NoError(t, MakeBump(buf, model.Outer, 50, bg, head))
	assert.Equal(t, head, buf.At(OuterBumpCenter))
	assert.Equal(t, bg, buf.At(17))
	assert.Equal(t, bg, buf.At(39))
	assert.Equal(t, head, buf.At(InnerBumpCenter), "inner ring untouched")
}

func TestMakeBumpZeroRadiusLeavesBackground(t *testing.T) {
	buf := model.NewBuffer()
	assert.ErrorIs(t, MakeBump(buf, model.Outer, 0, bg, head), ErrBumpRadius)
	for _, c := range buf.Slots(model.Outer) {
		assert.Equal(t, bg, c)
	}
}
