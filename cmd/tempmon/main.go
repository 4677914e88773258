// TempMon reads thermocouple samples from a serial-attached sensor board,
// charts them live, and logs each session to a timestamped CSV file.
// It runs as a TUI by default; -headless logs samples to the terminal
// instead, and an optional web dashboard serves the live feed.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"TempMon/internal/app"
	"TempMon/internal/model"
	"TempMon/internal/monitor"
	"TempMon/internal/tui"
	"TempMon/internal/util"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("c", "configs/config.yml", "path to configuration file")
	devFlag := flag.String("device", "", "serial device path (overrides config; empty = auto-detect)")
	baudFlag := flag.Int("baud", 0, "serial baud rate (overrides config)")
	httpFlag := flag.String("http", "", "dashboard listen address (overrides config)")
	headless := flag.Bool("headless", false, "run without the TUI, logging samples instead")
	flag.Parse()

	util.SetupLogger()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *devFlag != "" {
		cfg.Serial.Device = *devFlag
	}
	if *baudFlag != 0 {
		cfg.Serial.Baud = *baudFlag
	}
	if *httpFlag != "" {
		cfg.HTTP.Addr = *httpFlag
	}
	cfg.ApplyDefaults()

	if err := os.MkdirAll(cfg.Files.Folder, 0o755); err != nil {
		return fmt.Errorf("create measurements folder: %w", err)
	}

	store, err := app.OpenStore(filepath.Join(cfg.Files.Folder, "sessions.db"))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	hub := app.NewHub()
	mon := monitor.New(cfg, store, hub)

	if cfg.HTTP.Addr != "" {
		web, err := app.NewApp(store, hub)
		if err != nil {
			return err
		}
		go func() {
			if err := web.Start(cfg.HTTP.Addr); err != nil {
				util.Error("[main] dashboard: %v", err)
			}
		}()
		defer web.Stop()
	}

	if *headless {
		return runHeadless(mon)
	}
	return runTUI(mon, cfg)
}

// loadConfig reads the YAML configuration; a missing file yields defaults.
func loadConfig(path string) (model.Config, error) {
	var cfg model.Config
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// runTUI hands the terminal to bubbletea; the log moves to a file so it
// does not corrupt the screen.
func runTUI(mon *monitor.Monitor, cfg model.Config) error {
	closeLog, err := util.UseFile(filepath.Join(cfg.Files.Folder, "tempmon.log"))
	if err != nil {
		return err
	}
	defer closeLog()

	p := tea.NewProgram(tui.New(mon), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// runHeadless starts recording immediately and logs each sample until
// interrupted.
func runHeadless(mon *monitor.Monitor) error {
	path, err := mon.StartSession()
	if err != nil {
		return err
	}
	util.Info("[main] recording to %s (Ctrl+C to stop)", path)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-stop:
			file, err := mon.StopSession()
			if err != nil {
				return err
			}
			util.Info("[main] saved %s", file)
			return nil
		case e := <-mon.Events():
			switch e.Kind {
			case monitor.EventSample:
				change := "-"
				if e.Sample.Change != nil {
					change = fmt.Sprintf("%.4f", *e.Sample.Change)
				}
				util.Info("[main] %6d ms  %7.2f C  %s C/s", e.Sample.ElapsedMS, e.Sample.Temperature, change)
			case monitor.EventError:
				return e.Err
			}
		}
	}
}
