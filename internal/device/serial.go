// Package device implements SerialDevice using go.bug.st/serial,
// which provides real serial communication with the sensor board.
package device

import (
	"bufio"
	"errors"
	"fmt"
	"sync"
	"time"

	serial "go.bug.st/serial"
)

// ErrReadTimeout is returned by ReadLine when no full line arrives in time.
var ErrReadTimeout = errors.New("read timeout")

type readResult struct {
	line string
	err  error
}

// SerialDevice implements Device using go.bug.st/serial.
//
// Line reads are served by at most one background read at a time: when
// ReadLine times out, the in-flight read stays pending and its result is
// delivered to the next ReadLine call, so no input is lost and no
// goroutine piles up behind a slow sensor.
type SerialDevice struct {
	mu      sync.Mutex
	port    serial.Port
	r       *bufio.Reader
	dev     string
	baud    int
	results chan readResult
	reading bool
}

// NewSerialDevice creates and opens a serial device with the given path and baudrate.
func NewSerialDevice(dev string, baud int) (*SerialDevice, error) {
	p, err := serial.Open(dev, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial %s: %w", dev, err)
	}
	return newSerialDevice(p, dev, baud), nil
}

// newSerialDevice wraps an already-open port.
func newSerialDevice(p serial.Port, dev string, baud int) *SerialDevice {
	return &SerialDevice{
		port:    p,
		r:       bufio.NewReader(p),
		dev:     dev,
		baud:    baud,
		results: make(chan readResult, 1),
	}
}

// Close closes the underlying serial connection, unblocking any pending read.
func (s *SerialDevice) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// ReadLine reads a single line from the serial port, blocking until newline,
// timeout, or port close.
func (s *SerialDevice) ReadLine(timeout time.Duration) (string, error) {
	s.mu.Lock()
	if s.port == nil && !s.reading {
		s.mu.Unlock()
		return "", errors.New("serial port not open")
	}
	if !s.reading {
		s.reading = true
		r := s.r
		go func() {
			line, err := r.ReadString('\n')
			s.results <- readResult{line, err}
		}()
	}
	s.mu.Unlock()

	if timeout <= 0 {
		res := <-s.results
		s.finishRead()
		return res.line, res.err
	}

	select {
	case res := <-s.results:
		s.finishRead()
		return res.line, res.err
	case <-time.After(timeout):
		// The in-flight read stays pending for the next call.
		return "", ErrReadTimeout
	}
}

func (s *SerialDevice) finishRead() {
	s.mu.Lock()
	s.reading = false
	s.mu.Unlock()
}

// WriteLine writes a single line followed by '\n' to the serial port.
func (s *SerialDevice) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return errors.New("serial port not open")
	}
	_, err := s.port.Write(append([]byte(line), '\n'))
	return err
}
