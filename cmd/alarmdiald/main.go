package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urathe/AlarmDial/hal"
	"github.com/urathe/AlarmDial/hal/hostsim"
	"github.com/urathe/AlarmDial/system"
)

func main() {
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port the modem is attached to")
	flag.Bool("hostsim", false, "Run against an in-process simulated modem/GPIO/flash instead of real hardware")
	flag.String("flash-path", "alarmdial-config.bin", "File standing in for the reserved flash sector in hostsim mode")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	deps := system.Deps{
		Logger: logger.With("component", "system"),
	}

	if config.HostSim {
		logger.Info("running against simulated hardware", "flash", config.FlashPath)
		deps.Dialer = hostsim.NewLoopbackDialer()
		deps.Pins = hostsim.NewMemoryPins()
		deps.LED = &hostsim.BlinkLED{}
		deps.Timer = &hostsimTimer{log: logger.With("component", "watchdog")}
		deps.CS = &hostsim.MutexCriticalSection{}
		deps.Store = hostsim.NewFileStore(config.FlashPath)
	} else {
		logger.Info("dialling modem", "port", config.SerialPort)
		deps.Dialer = hal.SerialDialer{PortName: config.SerialPort}
		// GPIO, LED, watchdog, and flash drivers are out of this
		// module's scope on real hardware (spec §1); a board-specific
		// build supplies its own hal implementations here.
		deps.Pins = hostsim.NewMemoryPins()
		deps.LED = &hostsim.BlinkLED{}
		deps.Timer = &hostsimTimer{log: logger.With("component", "watchdog")}
		deps.CS = &hostsim.MutexCriticalSection{}
		deps.Store = hostsim.NewFileStore(config.FlashPath)
	}

	s := system.New(deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting alarmdiald")
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("system exited", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// hostsimTimer logs watchdog arm/feed calls instead of driving a real
// hardware watchdog peripheral (out of scope, spec §1): there is no MCU
// to reset on this host, so a missed feed only shows up in the log.
type hostsimTimer struct {
	log     *slog.Logger
	armedAt time.Duration
}

func (t *hostsimTimer) Arm(d time.Duration) {
	t.armedAt = d
	t.log.Debug("watchdog armed", "deadline", d)
}

func (t *hostsimTimer) Feed() {
	t.log.Debug("watchdog fed", "deadline", t.armedAt)
}
