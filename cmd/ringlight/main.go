package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-ringlight/internal/app"
	"github.com/coreman2200/funtimes-ringlight/internal/command"
	"github.com/coreman2200/funtimes-ringlight/internal/config"
	"github.com/coreman2200/funtimes-ringlight/internal/led"
	"github.com/coreman2200/funtimes-ringlight/internal/metrics"
	"github.com/coreman2200/funtimes-ringlight/internal/pattern"
	"github.com/coreman2200/funtimes-ringlight/internal/term"
	"github.com/coreman2200/funtimes-ringlight/internal/ws"
	"github.com/coreman2200/funtimes-ringlight/spi"
)

func main() {
	flags, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("bad arguments")
	}

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flags.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// ---- Config overrides flags where set ----
	settings := flags
	if c, err := config.Load(flags.ConfigPath); err != nil {
		log.Debug().Err(err).Str("path", flags.ConfigPath).Msg("no config loaded; using flags")
	} else {
		settings = flags.Apply(c)
	}

	// the terminal preview owns the screen, keep the log quiet under it
	if (settings.Driver == "term" || settings.Preview) && !flags.Debug {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	correction, err := led.ParseCorrection(settings.ColorCorrection)
	if err != nil {
		log.Warn().Err(err).Msg("using uncorrected output")
	}

	// ---- Drivers ----
	var (
		drivers []led.Driver
		screen  *term.Screen
		preview *ws.Preview
	)
	primary, screen := openDriver(settings)
	drivers = append(drivers, primary)
	if settings.Preview && screen == nil {
		if s, err := openScreen(); err != nil {
			log.Warn().Err(err).Msg("terminal preview unavailable")
		} else {
			screen = s
			drivers = append(drivers, s)
		}
	}
	if settings.HTTPAddr != "" {
		preview = ws.NewPreview(log.With().Str("component", "ws").Logger())
		drivers = append(drivers, preview)
	}
	for _, d := range drivers {
		if g, ok := d.(interface{ SetGamma(float64) }); ok {
			g.SetGamma(settings.Gamma)
		}
	}
	out := led.NewTee(drivers...)
	out.SetBrightness(settings.BrightnessLevel())
	out.SetColorCorrection(correction)
	defer func() {
		if err := out.Close(); err != nil {
			log.Warn().Err(err).Msg("closing drivers")
		}
	}()

	// ---- Conductor ----
	m := metrics.New()
	reg := pattern.Default(log.With().Str("component", "pattern").Logger())
	opts := app.Options{
		Log:      log.With().Str("component", "conductor").Logger(),
		Registry: reg,
		Driver:   out,
		Delay:    settings.Delay,
		Help:     os.Stdout,
		Metrics:  m,
	}
	if screen != nil {
		opts.Help = nil
		opts.OnStatus = func(s app.Status) {
			screen.SetStatus(s.Key + " " + s.Pattern + " " + (time.Duration(s.DelayMs) * time.Millisecond).String())
		}
	}
	conductor := app.NewConductor(opts)
	if settings.StartPattern != "" {
		conductor.Select(rune(settings.StartPattern[0]))
	}

	ctx, done := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer done()

	// ---- Command input ----
	if screen != nil {
		go func() {
			if err := screen.Keys(ctx, conductor.Commands()); errors.Is(err, term.ErrQuit) {
				done()
			}
		}()
	} else {
		go func() {
			if err := command.Read(ctx, os.Stdin, conductor.Commands()); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("command input stopped")
			}
		}()
	}

	// ---- HTTP: preview, health, metrics ----
	if preview != nil {
		r := prometheus.NewRegistry()
		r.MustRegister(m)
		preview.Status = conductor.StatusMap

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", preview.HandleFrames)
		mux.HandleFunc("/health", preview.HandleHealth)
		mux.Handle("/metrics", metrics.Handler(r))
		srv := &http.Server{
			Addr:         settings.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", settings.HTTPAddr).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("http server failed")
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	log.Info().Str("driver", settings.Driver).Dur("delay", conductor.Delay()).Msg("ringlight starting")
	_ = conductor.Run(ctx)
	log.Info().Msg("shutting down")
}

// openDriver builds the primary output. The terminal screen is returned too
// when it is the primary, so keys can be read from it.
func openDriver(s config.Settings) (led.Driver, *term.Screen) {
	l := log.With().Str("component", "driver").Str("driver", s.Driver).Logger()
	switch s.Driver {
	case "sim":
		return led.NewSim(os.Stdout, true), nil
	case "console":
		return spi.NewConsole(l), nil
	case "term":
		sc, err := openScreen()
		if err != nil {
			l.Warn().Err(err).Msg("terminal unavailable; falling back to console")
			return spi.NewConsole(l), nil
		}
		return sc, sc
	}

	if _, err := host.Init(); err != nil {
		l.Warn().Err(err).Msg("periph host init failed; falling back to console")
		return spi.NewConsole(l), nil
	}
	r, err := spi.Open(spi.Opts{Dev: s.SPI.Dev, SpeedKHz: s.SPI.SpeedKHz}, l)
	if err != nil {
		l.Warn().Err(err).Msg("SPI init failed; falling back to console")
		return spi.NewConsole(l), nil
	}
	return r, nil
}

func openScreen() (*term.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return term.New(s, log.With().Str("component", "term").Logger())
}
