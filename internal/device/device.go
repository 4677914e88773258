// Package device defines a line-oriented interface for the thermocouple
// sensor link and implements it over a physical serial port.
package device

import "time"

// Device defines an abstract interface for the sensor link.
// Implementations provide ReadLine/WriteLine operations with optional timeout.
type Device interface {
	// ReadLine reads a single line terminated by '\n'.
	// If timeout > 0, it must return after timeout even if no data available.
	ReadLine(timeout time.Duration) (string, error)

	// WriteLine writes s followed by '\n' to the device.
	WriteLine(s string) error

	// Close closes the device and releases underlying resources.
	// A blocked ReadLine returns an error once the device is closed.
	Close() error
}
