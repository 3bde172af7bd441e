// Package gear keeps the two rings moving in step. The inner ring has 16
// slots and the outer 24, so two inner moves cover the same angle as three
// outer moves.
package gear

import (
	"github.com/coreman2200/funtimes-ringlight/model"
)

const (
	// Cycle is the number of ticks in one full gear phase.
	Cycle = 6

	// SyncOuterStreak and SyncInnerStreak are the clockwise sync streak
	// lengths. The inner streak is pre-rotated by its own length, which lines
	// its head up with the outer head given model.InnerOrigin.
	SyncOuterStreak = 10
	SyncInnerStreak = 6

	// The counter-clockwise streaks start on the other edge of each ring, so
	// the inner length that lines up under the same pre-rotation rule is 11.
	SyncCCWOuterStreak = 10
	SyncCCWInnerStreak = 11

	// TouchCooldown is the number of ticks a fired touch stays quiet.
	TouchCooldown = 3
)

// Gear is the 3:2 phase counter.
type Gear struct {
	phase int
}

// Advance reports which rings rotate on this tick, then moves the phase on.
// Outer rotates on even phases and inner on every third.
func (g *Gear) Advance() (outer, inner bool) {
	outer = g.phase%2 == 0
	inner = g.phase%3 == 0
	g.phase = (g.phase + 1) % Cycle
	return outer, inner
}

func (g *Gear) Phase() int {
	return g.phase
}

func (g *Gear) Reset() {
	g.phase = 0
}

// AlignmentTable maps each inner index to the outer index it sits against.
// Entry i is 9i/4 rounded half up, modulo the outer length.
var AlignmentTable = func() (t [model.InnerLength]int) {
	for i := range t {
		t[i] = ((i*9 + 2) / 4) % model.OuterLength
	}
	return t
}()

// Touching reports whether inner position in sits against outer position out.
func Touching(in, out int) bool {
	if in < 0 || in >= model.InnerLength || out < 0 || out >= model.OuterLength {
		return false
	}
	return AlignmentTable[in] == out
}

// Touch tracks both ring positions and fires when they line up. After it
// fires it stays quiet for TouchCooldown ticks.
type Touch struct {
	inner, outer int
	cooldown     int
}

func (t *Touch) MoveInner(steps int) {
	t.inner = model.Inner.Wrap(t.inner + steps)
}

func (t *Touch) MoveOuter(steps int) {
	t.outer = model.Outer.Wrap(t.outer + steps)
}

// Positions returns the tracked inner and outer positions.
func (t *Touch) Positions() (inner, outer int) {
	return t.inner, t.outer
}

func (t *Touch) Cooldown() int {
	return t.cooldown
}

// Check reports a touch and arms the cooldown.
func (t *Touch) Check() bool {
	if t.cooldown > 0 || !Touching(t.inner, t.outer) {
		return false
	}
	t.cooldown = TouchCooldown
	return true
}

// Tick counts the cooldown down once. It is independent of the gear phase.
func (t *Touch) Tick() {
	if t.cooldown > 0 {
		t.cooldown--
	}
}

// Reset puts both positions back to 0 and clears the cooldown.
func (t *Touch) Reset() {
	*t = Touch{}
}
