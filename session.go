package splash

import (
	"fmt"
	"log/slog"

	"github.com/kytart/godrm/pkg/mode"

	"github.com/BeatGlow/splash/card"
)

// State of a display session.
type State uint8

// Session states. Every state except StatePresented marks the output
// unusable; StatePresentFailed still owns a live framebuffer and takes
// part in teardown.
const (
	StateDiscovered State = iota
	StateDisconnected
	StateNoMode
	StateNoPipeline
	StateNoBuffer
	StatePresentFailed
	StatePresented
)

func (s State) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateDisconnected:
		return "disconnected"
	case StateNoMode:
		return "no mode"
	case StateNoPipeline:
		return "no pipeline"
	case StateNoBuffer:
		return "no buffer"
	case StatePresentFailed:
		return "present failed"
	case StatePresented:
		return "presented"
	default:
		return "invalid"
	}
}

// Session binds one connector to its resolved CRTC, chosen mode and
// framebuffer, plus the CRTC configuration saved just before the
// framebuffer took over.
type Session struct {
	Connector uint32
	Name      string
	State     State

	CRTC uint32
	Mode mode.Info
	Rate uint32 // refresh rate in millihertz, derived from the timings

	FB *Framebuffer

	saved *mode.Crtc // nil if the snapshot failed or was never taken
}

// Presented reports whether the session's framebuffer is live (or
// possibly partially live) on its CRTC. Present failures count: the
// hardware may already scan the buffer out, so teardown treats them
// exactly like presented sessions.
func (s *Session) Presented() bool {
	return s.State == StatePresented || s.State == StatePresentFailed
}

// setup drives one connector through the session state machine:
// connectivity check, mode selection, CRTC resolution, framebuffer
// creation, payload, snapshot, presentation. Every failure downgrades
// only this session and never aborts the enumeration; present failures
// keep the framebuffer for teardown.
func (c *Controller) setup(res *mode.Resources, id uint32) *Session {
	sess := &Session{Connector: id, State: StateDiscovered}

	conn, err := c.dev.Connector(id)
	if err != nil {
		c.log.Error("query connector failed", "connector", id, "error", err)
		sess.State = StateDisconnected
		return sess
	}
	sess.Name = card.ConnectorName(conn)

	log := c.log.With("connector", sess.Name)
	log.Info("found display")

	if conn.Connection != mode.Connected {
		log.Info("disconnected")
		sess.State = StateDisconnected
		return sess
	}

	if len(conn.Modes) == 0 {
		log.Warn("no valid modes")
		sess.State = StateNoMode
		return sess
	}

	crtc, ok := findCRTC(c.dev, res, conn, &c.taken)
	if !ok {
		log.Warn("no free crtc")
		sess.State = StateNoPipeline
		return sess
	}
	sess.CRTC = crtc
	log.Info("using crtc", "crtc", crtc)

	// Modes[0] is the best mode, so we'll just use that.
	sess.Mode = conn.Modes[0]
	sess.Rate = refreshRate(&sess.Mode)
	log.Info("using mode",
		"width", sess.Mode.Hdisplay,
		"height", sess.Mode.Vdisplay,
		"rate", sess.Rate)

	fb, err := createFramebuffer(c.dev, sess.Mode.Hdisplay, sess.Mode.Vdisplay)
	if err != nil {
		log.Error("create framebuffer failed", "error", err)
		sess.State = StateNoBuffer
		return sess
	}
	sess.FB = fb
	log.Info("created framebuffer", "fb", fb.ID, "size", fb.Size)

	if err := c.paint(sess, log); err != nil {
		log.Error("load payload failed", "error", err)
		fb.destroy(c.dev)
		sess.FB = nil
		sess.State = StateNoBuffer
		return sess
	}

	// Save the CRTC configuration in place before taking over. An idle
	// CRTC, or a failed query, leaves nothing to restore.
	if saved, err := c.dev.Crtc(crtc); err == nil {
		sess.saved = saved
	}

	if err := c.dev.SetCrtc(crtc, fb.ID, 0, 0, sess.Connector, &sess.Mode); err != nil {
		log.Error("set crtc failed", "error", err)
		sess.State = StatePresentFailed
		return sess
	}

	sess.State = StatePresented
	return sess
}

// paint fills the session's framebuffer from the configured payload
// source, or with the built-in test pattern when no source is set.
func (c *Controller) paint(sess *Session, log *slog.Logger) error {
	if c.cfg.Payload == nil {
		label := fmt.Sprintf("%s %dx%d", sess.Name, sess.Mode.Hdisplay, sess.Mode.Vdisplay)
		drawPattern(sess.FB.Image(), label)
		return nil
	}

	r, err := c.cfg.Payload.Open()
	if err != nil {
		return fmt.Errorf("open payload: %w", err)
	}
	defer r.Close()

	n, full, err := fill(sess.FB, r)
	if err != nil {
		return err
	}
	if !full {
		log.Warn("payload size mismatch", "read", n, "size", sess.FB.Size)
	}
	return nil
}

// restore reapplies the CRTC configuration saved before presentation.
// Failures are logged, never retried.
func (c *Controller) restore(sess *Session) {
	if sess.saved == nil {
		return
	}
	saved := sess.saved
	sess.saved = nil

	var m *mode.Info
	if saved.ModeValid != 0 {
		m = &saved.Mode
	}
	if err := c.dev.SetCrtc(saved.ID, saved.BufferID, saved.X, saved.Y, sess.Connector, m); err != nil {
		c.log.Error("restore crtc failed", "connector", sess.Name, "error", err)
	}
}

// Mode flags from the kernel's drm_mode.h.
const (
	modeFlagInterlace  = 1 << 4
	modeFlagDoubleScan = 1 << 5
)

// refreshRate derives the refresh rate in millihertz from the mode's
// pixel clock and blanking totals, rather than trusting the verbatim
// vrefresh field.
func refreshRate(m *mode.Info) uint32 {
	if m.Htotal == 0 || m.Vtotal == 0 {
		return 0
	}

	rate := (uint64(m.Clock)*1000000/uint64(m.Htotal) + uint64(m.Vtotal)/2) / uint64(m.Vtotal)

	if m.Flags&modeFlagInterlace != 0 {
		rate *= 2
	}
	if m.Flags&modeFlagDoubleScan != 0 {
		rate /= 2
	}
	if m.Vscan > 1 {
		rate /= uint64(m.Vscan)
	}

	return uint32(rate)
}
