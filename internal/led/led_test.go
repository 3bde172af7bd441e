package led

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-ringlight/model"
)

func TestOutputIsIdentityByDefault(t *testing.T) {
	o := NewOutput()
	buf := model.NewBuffer()
	buf.Set(0, model.NewColor(0x123456))
	buf.Set(39, model.White)

	frame := o.Frame(buf)
	assert.Equal(t, buf.Snapshot(), frame)

	rgb := o.RGB(buf)
	require.Len(t, rgb, model.BufferLength*3)
	assert.Equal(t, []byte{0x12, 0x34, 0x56}, rgb[:3])
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF}, rgb[len(rgb)-3:])

	im := o.Image(buf)
	assert.Equal(t, model.NewColor(0x123456).ToNRGBA(), im.NRGBAAt(0, 0))
}

func TestOutputPipeline(t *testing.T) {
	o := NewOutput()
	buf := model.NewBuffer()
	buf.Fill(model.White)

	o.SetColorCorrection(TypicalLEDStrip)
	assert.Equal(t, model.NewColor(0xFFB0F0), o.Frame(buf)[0])

	o.SetBrightness(0)
	assert.Equal(t, uint8(0), o.Brightness())
	assert.Equal(t, model.Black, o.Frame(buf)[5])

	o.SetBrightness(255)
	o.SetColorCorrection(Uncorrected)
	o.SetGamma(2)
	buf.Fill(model.Color{R: 128, G: 255, B: 0})
	c := o.Frame(buf)[0]
	assert.Equal(t, uint8(64), c.R)
	assert.Equal(t, uint8(255), c.G)
	assert.Equal(t, uint8(0), c.B)

	assert.Equal(t, model.Color{R: 128, G: 255}, buf.At(0), "the buffer itself is never changed")
}

func TestParseCorrection(t *testing.T) {
	c, err := ParseCorrection("Typical_SMD5050")
	require.NoError(t, err)
	assert.Equal(t, TypicalSMD5050, c)

	c, err = ParseCorrection("")
	require.NoError(t, err)
	assert.Equal(t, Uncorrected, c)

	_, err = ParseCorrection("sodium")
	assert.Error(t, err)
}

func TestSimRecordsFrames(t *testing.T) {
	var out bytes.Buffer
	d := NewSim(&out, false)
	buf := model.NewBuffer()

	buf.Set(0, model.White)
	require.NoError(t, d.Flush(buf))
	buf.Set(0, model.Black)
	require.NoError(t, d.Flush(buf))

	assert.Equal(t, 2, d.Count())
	assert.Equal(t, model.White, d.Frames()[0][0], "frames are copies")
	assert.Equal(t, model.Black, d.Last()[0])
	assert.Equal(t, 2, strings.Count(out.String(), "[frame "))

	start := time.Now()
	d.Delay(time.Second)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, []time.Duration{time.Second}, d.Delays())

	require.NoError(t, d.Close())
	assert.Error(t, d.Flush(buf))
}

type failing struct {
	*Sim
}

func (failing) Flush(*model.Buffer) error { return errors.New("boom") }

func TestTeeFansOut(t *testing.T) {
	a, b := NewSim(nil, false), NewSim(nil, false)
	tee := NewTee(a, nil, failing{NewSim(nil, false)}, b)

	err := tee.Flush(model.NewBuffer())
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, a.Count(), "a failing driver does not stop the others")
	assert.Equal(t, 1, b.Count())

	tee.SetBrightness(10)
	assert.Equal(t, uint8(10), b.Brightness())
	tee.SetColorCorrection(TypicalLEDStrip)

	tee.Delay(time.Millisecond)
	assert.Len(t, a.Delays(), 1)
	assert.Empty(t, b.Delays())

	require.NoError(t, tee.Close())
}
