// Package model defines shared configuration structures used to initialize TempMon.
package model

import (
	"os"
	"path/filepath"
)

// Config represents the root structure loaded from configs/config.yml.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Files  FilesConfig  `yaml:"files"`
	HTTP   HTTPConfig   `yaml:"http"`
	Chart  ChartConfig  `yaml:"chart"`
}

// SerialConfig defines how the sensor port is opened.
type SerialConfig struct {
	Device string `yaml:"device"` // serial device path; empty means auto-detect
	Baud   int    `yaml:"baud"`   // baud rate, default 9600
}

// FilesConfig defines where measurement files are written.
type FilesConfig struct {
	Folder string `yaml:"folder"` // measurements folder, default ~/Documents/TempMon
}

// HTTPConfig defines the optional live dashboard listener.
type HTTPConfig struct {
	Addr string `yaml:"addr"` // listen address (e.g. ":8090"); empty disables the dashboard
}

// ChartConfig defines the live chart behaviour.
type ChartConfig struct {
	Window int `yaml:"window"` // number of samples kept for the chart, default 100
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Serial.Baud == 0 {
		c.Serial.Baud = 9600
	}
	if c.Chart.Window == 0 {
		c.Chart.Window = 100
	}
	if c.Files.Folder == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Files.Folder = filepath.Join(home, "Documents", "TempMon")
	}
}
