// Package splash takes over every connected output of a DRM adapter,
// presents a fixed image on each, and restores the previous display
// configuration on shutdown.
package splash

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"periph.io/x/conn/v3/gpio"
)

// Config is the controller configuration.
type Config struct {
	// Payload supplies the raw XRGB8888 pixels shown on each output.
	// When nil, every output shows the built-in test pattern.
	Payload Source

	// Backlight is an optional panel backlight pin, driven high while
	// any output is presenting and low again at teardown.
	Backlight gpio.PinOut

	// Log receives the per-output progress and failure records.
	// Defaults to [slog.Default].
	Log *slog.Logger
}

// Controller owns every display session on one adapter, from discovery
// through presentation to restoration.
type Controller struct {
	dev Device
	cfg Config
	log *slog.Logger

	taken    uint32 // claimed CRTCs, one bit per CRTC index
	sessions []*Session

	stopped  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
}

// New returns a controller for the given adapter device. The
// controller takes ownership of the device and closes it when Run
// finishes.
func New(dev Device, cfg Config) *Controller {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		dev:    dev,
		cfg:    cfg,
		log:    log,
		stopCh: make(chan struct{}),
	}
}

// Run drives the full lifecycle: enumerate the adapter and present
// every usable output, block until [Controller.Stop], then tear every
// session down and close the device. An error is returned only for
// fatal pre-enumeration failures; per-output failures are logged and
// skip just that output.
func (c *Controller) Run() error {
	res, err := c.dev.Resources()
	if err != nil {
		_ = c.dev.Close()
		return fmt.Errorf("splash: query resources: %w", err)
	}

	for _, id := range res.Connectors {
		c.sessions = append(c.sessions, c.setup(res, id))
	}
	if c.presented() > 0 {
		c.backlight(gpio.High)
	}

	c.wait()
	c.teardown()
	return nil
}

// Stop requests a graceful shutdown. It is safe to call from a signal
// handling goroutine, any number of times, before or during Run.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		close(c.stopCh)
	})
}

// Sessions returns every discovered session, usable or not, in
// enumeration order. Valid until Run returns.
func (c *Controller) Sessions() []*Session {
	return c.sessions
}

// wait blocks until Stop is called. The stop flag has a single writer
// (the signal path) and a single reader; the channel only exists so
// the wait can block instead of polling.
func (c *Controller) wait() {
	if c.stopped.Load() {
		return
	}
	<-c.stopCh
}

// teardown releases every presented session: buffer first, then the
// saved CRTC configuration. Sessions that never reached presentation
// hold no resources. Runs exactly once per Run.
func (c *Controller) teardown() {
	for _, sess := range c.sessions {
		if !sess.Presented() {
			continue
		}
		sess.FB.destroy(c.dev)
		sess.FB = nil
		c.restore(sess)
	}
	c.backlight(gpio.Low)
	_ = c.dev.Close()
}

func (c *Controller) backlight(level gpio.Level) {
	if c.cfg.Backlight == nil {
		return
	}
	if err := c.cfg.Backlight.Out(level); err != nil {
		c.log.Error("backlight failed", "level", level, "error", err)
	}
}

func (c *Controller) presented() int {
	var n int
	for _, sess := range c.sessions {
		if sess.State == StatePresented {
			n++
		}
	}
	return n
}
