// Feeder stands in for the sensor board during development. It creates a
// virtual serial pair with socat and writes one synthetic temperature
// reading per interval to one end; point TempMon at the other end:
//
//	go run ./cmd/feeder -link /tmp/ttyTEMP -feed /tmp/ttyFEED
//	go run ./cmd/tempmon -device /tmp/ttyTEMP
//
// Every -garbage-th line is deliberately malformed to exercise the
// parser's skip path.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"TempMon/internal/device"
	"TempMon/internal/util"
)

func main() {
	link := flag.String("link", "/tmp/ttyTEMP", "pty link for the monitor side")
	feed := flag.String("feed", "/tmp/ttyFEED", "pty link for the feeder side")
	baud := flag.Int("baud", 9600, "serial baud")
	interval := flag.Duration("interval", 1*time.Second, "time between readings")
	base := flag.Float64("base", 23.5, "base temperature in Celsius")
	garbage := flag.Int("garbage", 25, "write a malformed line every N readings (0 disables)")
	flag.Parse()

	util.SetupLogger()

	socat := util.NewSocatManager()
	if err := socat.CreatePair(*link, *feed); err != nil {
		log.Fatalf("create virtual serial pair: %v", err)
	}
	defer socat.Cleanup()

	// Give socat a moment to create the links.
	time.Sleep(500 * time.Millisecond)

	dev, err := device.NewSerialDevice(*feed, *baud)
	if err != nil {
		log.Fatalf("open feeder side: %v", err)
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil {
			log.Printf("warning: close feeder serial: %v", cerr)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	util.Info("[feeder] streaming on %s (monitor side: %s)", *feed, *link)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	start := time.Now()
	for n := 1; ; n++ {
		select {
		case <-stop:
			util.Info("[feeder] stopped after %d readings", n-1)
			return
		case <-ticker.C:
		}

		if *garbage > 0 && n%*garbage == 0 {
			if err := dev.WriteLine("sensor glitch"); err != nil {
				log.Printf("[feeder] write error: %v", err)
			}
			continue
		}

		// Slow sine drift plus jitter, close to what the real board emits.
		t := time.Since(start).Seconds()
		temp := *base + 2*math.Sin(t/60) + (rand.Float64()-0.5)*0.2
		line := strconv.FormatFloat(temp, 'f', 2, 64)
		if err := dev.WriteLine(line); err != nil {
			log.Printf("[feeder] write error: %v", err)
			continue
		}
		util.Info("[feeder] sent %s", line)
	}
}
