package led

import (
	"fmt"
	"image"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/coreman2200/funtimes-ringlight/model"
)

// Driver abstracts an LED output sink. Flush copies the buffer; a driver
// never keeps a reference to it.
type Driver interface {
	Flush(buf *model.Buffer) error
	SetBrightness(level uint8)
	SetColorCorrection(c Correction)
	Delay(d time.Duration)
	// Close releases resources.
	Close() error
}

// Correction scales each channel by value/255 to even out LED color
// response.
type Correction model.Color

var (
	TypicalLEDStrip = Correction(model.NewColor(0xFFB0F0))
	TypicalSMD5050  = Correction(model.NewColor(0xFFB0F0))
	Uncorrected     = Correction(model.NewColor(0xFFFFFF))
)

var corrections = map[string]Correction{
	"typical_led_strip": TypicalLEDStrip,
	"typical_smd5050":   TypicalSMD5050,
	"uncorrected":       Uncorrected,
}

// ParseCorrection looks a correction profile up by config name.
func ParseCorrection(name string) (Correction, error) {
	if name == "" {
		return Uncorrected, nil
	}
	c, ok := corrections[strings.ToLower(name)]
	if !ok {
		return Uncorrected, fmt.Errorf("unknown color correction %q", name)
	}
	return c, nil
}

// Output holds the per-frame color pipeline shared by every driver:
// correction, then brightness, then gamma.
type Output struct {
	mu         sync.Mutex
	brightness uint8
	correction Correction
	lut        [256]uint8
}

func NewOutput() *Output {
	o := &Output{brightness: 255, correction: Uncorrected}
	o.SetGamma(1)
	return o
}

func (o *Output) SetBrightness(level uint8) {
	o.mu.Lock()
	o.brightness = level
	o.mu.Unlock()
}

func (o *Output) Brightness() uint8 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.brightness
}

func (o *Output) SetColorCorrection(c Correction) {
	o.mu.Lock()
	o.correction = c
	o.mu.Unlock()
}

// SetGamma rebuilds the channel lookup table. Values <= 0 mean linear.
func (o *Output) SetGamma(g float64) {
	if g <= 0 {
		g = 1
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.lut {
		o.lut[i] = uint8(math.Round(math.Pow(float64(i)/255, g) * 255))
	}
}

// Delay sleeps between ticks.
func (o *Output) Delay(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (o *Output) apply(c model.Color) model.Color {
	c.R = uint8(uint16(c.R) * uint16(o.correction.R) / 255)
	c.G = uint8(uint16(c.G) * uint16(o.correction.G) / 255)
	c.B = uint8(uint16(c.B) * uint16(o.correction.B) / 255)
	c = c.Scale(o.brightness)
	return model.Color{R: o.lut[c.R], G: o.lut[c.G], B: o.lut[c.B]}
}

// Frame returns a corrected copy of the buffer.
func (o *Output) Frame(buf *model.Buffer) []model.Color {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := buf.Snapshot()
	for i, c := range out {
		out[i] = o.apply(c)
	}
	return out
}

// RGB returns the corrected frame as packed R,G,B bytes.
func (o *Output) RGB(buf *model.Buffer) []byte {
	frame := o.Frame(buf)
	rgb := make([]byte, 0, len(frame)*3)
	for _, c := range frame {
		rgb = append(rgb, c.R, c.G, c.B)
	}
	return rgb
}

// Image returns the corrected frame as a single row.
func (o *Output) Image(buf *model.Buffer) *image.NRGBA {
	return model.BufferOf(o.Frame(buf)).Image()
}
