package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"irtimer/core"
	"irtimer/host/audio"
	"irtimer/host/config"
	"irtimer/host/console"
	"irtimer/host/link"
	"irtimer/host/serial"
	"irtimer/host/sim"
	"irtimer/host/trace"
	"irtimer/storage"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	device     = flag.String("device", "", "Serial device of the paired unit (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate of the paired unit (overrides config)")
	mode       = flag.Int("mode", -1, "Mode selected at startup, 0-7 (overrides config)")
	laps       = flag.Int("laps", -1, "Lap count for timer modes (overrides config)")
	tracePath  = flag.String("trace", "", "Record a CBOR event trace to this file")
	replayPath = flag.String("replay", "", "Replay a recorded trace and print the final display")
	listPorts  = flag.Bool("list-ports", false, "List serial ports and exit")
	withAudio  = flag.Bool("audio", false, "Play alarm tones on the sound card")
	debug      = flag.Bool("debug", false, "Enable debug output")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *listPorts {
		ports, err := serial.ListPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println("No serial ports found")
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, _ := cfg.Log.SlogLevel()
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	core.SetDebugWriter(func(msg string) { logger.Debug(msg) })
	core.SetDebugEnabled(level <= slog.LevelDebug)
	core.InitAsyncDebug()

	mem, err := cfg.Storage()
	if err != nil {
		logger.Warn("using default calibration", "err", err)
	}

	if *replayPath != "" {
		return replay(*replayPath, logger)
	}

	var spk core.Speaker = audio.NewSilent(logger)
	if cfg.Audio.Enabled {
		s, err := audio.NewSpeaker(cfg.Audio.SampleRate, cfg.Audio.Frequency, logger)
		if err != nil {
			logger.Warn("audio unavailable, running silent", "err", err)
		} else {
			defer s.Close()
			spk = s
		}
	}

	unit := link.NewUnit(logger)
	if cfg.Link.Device != "" {
		sc := serial.DefaultConfig(cfg.Link.Device)
		sc.Baud = cfg.Link.Baud
		if err := unit.ConnectWithConfig(sc); err != nil {
			return err
		}
		defer unit.Close()
	}

	var tw *trace.Writer
	if cfg.Trace.Path != "" {
		tw, err = trace.Create(cfg.Trace.Path, trace.NewHeader(storage.Encode(mem.Calibration())))
		if err != nil {
			return err
		}
		defer func() {
			if err := tw.Close(); err != nil {
				logger.Warn("close trace", "err", err)
			}
			logger.Info("trace written", "path", cfg.Trace.Path, "records", tw.Records())
		}()
	}

	s := sim.New(sim.Options{
		Storage: mem,
		Speaker: spk,
		Link:    unit,
		Trace:   tw,
		Logger:  logger,
		OnRender: func(f sim.Frame) {
			logger.Debug("display", "frame", f.String())
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	if _, err := s.Select(ctx, uint8(cfg.Mode), uint8(cfg.Laps)); err != nil {
		logger.Error("startup mode", "mode", cfg.Mode, "err", err)
	}

	c, err := console.New(s)
	if err != nil {
		cancel()
		<-done
		return err
	}
	c.Run(ctx, cancel)

	return <-done
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}

	// flags win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Link.Device = *device
		case "baud":
			cfg.Link.Baud = *baud
		case "mode":
			cfg.Mode = *mode
		case "laps":
			cfg.Laps = *laps
		case "trace":
			cfg.Trace.Path = *tracePath
		case "audio":
			cfg.Audio.Enabled = *withAudio
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func replay(path string, logger *slog.Logger) error {
	r, err := trace.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	h := r.Header()
	logger.Info("replaying trace", "session", h.SessionID, "created", h.Created)

	display := core.NewSegmentDisplay()
	in, n, err := trace.Replay(r, core.Board{
		Display: display,
		Speaker: audio.NewSilent(logger),
	})
	if err != nil {
		if in != nil {
			in.Ring().Dump()
		}
		return fmt.Errorf("replay %s: %w", path, err)
	}
	if in.Mode() == nil {
		return errors.New("trace selects no mode")
	}

	fmt.Printf("events:  %d\n", n)
	fmt.Printf("mode:    %d (%s)\n", in.Mode().Index, in.Mode().Handler.Kind())
	fmt.Printf("packet:  0x%02X\n", in.Mode().Packet)
	fmt.Printf("display: %s\n", display)
	return nil
}
