// Splash presents a raw XRGB8888 image on every connected display of a
// DRM adapter, keeps it there until interrupted, and restores the
// previous display configuration on exit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/splash"
	"github.com/BeatGlow/splash/card"
)

func main() {
	cardFlag := flag.Int("card", 0, "DRM card index")
	imageFlag := flag.String("image", "", `raw XRGB8888 image file, "-" for stdin (default: test pattern)`)
	backlightFlag := flag.String("backlight", "", "backlight GPIO pin name (default: none)")
	verboseFlag := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := splash.Config{Log: log}
	switch *imageFlag {
	case "":
		// built-in test pattern
	case "-":
		cfg.Payload = splash.Stream(os.Stdin)
	default:
		cfg.Payload = splash.File(*imageFlag)
	}

	if *backlightFlag != "" {
		if _, err := host.Init(); err != nil {
			fatal(err)
		}
		pin := gpioreg.ByName(*backlightFlag)
		if pin == nil {
			fatal(fmt.Errorf("no such GPIO pin %q", *backlightFlag))
		}
		cfg.Backlight = pin
	}

	dev, err := card.Open(*cardFlag)
	if err != nil {
		fatal(err)
	}

	ctrl := splash.New(dev, cfg)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	go func() {
		<-stop
		ctrl.Stop()
	}()

	if err := ctrl.Run(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
