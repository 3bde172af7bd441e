package spi

import (
	"fmt"
	"image"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	spiconn "periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-ringlight/internal/led"
	"github.com/coreman2200/funtimes-ringlight/model"
)

const (
	// RefreshRate is the WS2812 bit rate in kHz; nrzled needs three SPI bits
	// per data bit plus some headroom.
	RefreshRate     = 800
	DefaultSpeedKHz = (RefreshRate * 3) + 100
	ConsoleWidth    = 100
)

type Opts struct {
	// Dev is the spireg port name; "" picks the first one.
	Dev      string
	SpeedKHz int
}

// Renderer flushes frames to a WS2812 chain over SPI, or to the console when
// no SPI port is available.
type Renderer struct {
	*led.Output
	log    zerolog.Logger
	drawer display.Drawer
	port   spiconn.PortCloser
	Spi    bool
}

// Open looks the SPI port up. If none is found the console renderer is
// returned instead, with no error.
func Open(o Opts, log zerolog.Logger) (*Renderer, error) {
	p, err := spireg.Open(o.Dev)
	if err != nil {
		log.Warn().Err(err).Msg("failed to find a SPI port, printing at the console")
		return NewConsole(log), nil
	}
	r, err := New(p, o, log)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	r.port = p
	return r, nil
}

// New drives nrzled on an already open port.
func New(p spiconn.Port, o Opts, log zerolog.Logger) (*Renderer, error) {
	speed := o.SpeedKHz
	if speed <= 0 {
		speed = DefaultSpeedKHz
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: model.BufferLength,
		Channels:  3,
		Freq:      physic.Frequency(speed) * physic.KiloHertz,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	if err := d.Halt(); err != nil {
		return nil, fmt.Errorf("nrzled halt: %w", err)
	}
	log.Info().Str("device", d.String()).Int("speed_khz", speed).Msg("spi output ready")
	return &Renderer{Output: led.NewOutput(), log: log, drawer: d, Spi: true}, nil
}

// NewConsole prints each frame as a row of colored blocks.
func NewConsole(log zerolog.Logger) *Renderer {
	return &Renderer{Output: led.NewOutput(), log: log, drawer: screen.New(ConsoleWidth)}
}

func (r *Renderer) Flush(buf *model.Buffer) error {
	if err := r.drawer.Draw(r.drawer.Bounds(), r.Image(buf), image.Point{}); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if !r.Spi {
		fmt.Printf("\n")
	}
	return nil
}

func (r *Renderer) String() string {
	return r.drawer.String()
}

// Close blanks the chain and releases the port.
func (r *Renderer) Close() error {
	if err := r.drawer.Halt(); err != nil {
		return fmt.Errorf("halt: %w", err)
	}
	if r.port != nil {
		return r.port.Close()
	}
	return nil
}
