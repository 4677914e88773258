package device

import (
	"errors"
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// ErrPortNotFound is returned when no sensor adapter is attached.
var ErrPortNotFound = errors.New("no thermocouple adapter detected")

// ch340VID is the vendor ID of the CH340/CH341 USB-serial bridge that the
// sensor board ships with.
const ch340VID = "1A86"

// FindSensorPort enumerates USB serial ports and returns the path of the
// first one that looks like the sensor's USB-serial bridge.
func FindSensorPort() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}
	return matchSensorPort(ports)
}

// matchSensorPort picks the sensor port out of an enumerated port list.
func matchSensorPort(ports []*enumerator.PortDetails) (string, error) {
	for _, p := range ports {
		if !p.IsUSB {
			continue
		}
		if strings.EqualFold(p.VID, ch340VID) {
			return p.Name, nil
		}
		// Some CH340 clones enumerate under other VIDs with only a
		// generic product string.
		product := strings.ToLower(p.Product)
		if strings.Contains(product, "ch340") || strings.Contains(product, "usb serial") {
			return p.Name, nil
		}
	}
	return "", ErrPortNotFound
}
