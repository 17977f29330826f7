package splash

import (
	"errors"

	"github.com/kytart/godrm/pkg/mode"
)

var errFake = errors.New("injected fault")

type setCall struct {
	crtc, fb, x, y uint32
	connector      uint32
	mode           *mode.Info
}

// fakeDevice is a scripted in-memory adapter. It tracks live kernel
// objects so tests can assert that nothing leaks, and every failure
// point can be made to fail on demand.
type fakeDevice struct {
	crtcs      []uint32
	connOrder  []uint32
	connectors map[uint32]*mode.Connector
	encoders   map[uint32]*mode.Encoder
	crtcState  map[uint32]mode.Crtc

	failResources bool
	failCreate    bool
	failAdd       bool
	failMapDumb   bool
	failMap       bool
	failSet       bool

	nextHandle uint32
	nextFB     uint32
	dumbs      map[uint32]*mode.FB // live dumb allocations
	fbs        map[uint32]uint32   // live scanout ids -> backing handle
	mapped     int                 // live mappings
	setCalls   []setCall           // every SetCrtc attempt, failed or not
	closed     bool
}

func newFakeDevice(crtcs int) *fakeDevice {
	f := &fakeDevice{
		connectors: make(map[uint32]*mode.Connector),
		encoders:   make(map[uint32]*mode.Encoder),
		crtcState:  make(map[uint32]mode.Crtc),
		dumbs:      make(map[uint32]*mode.FB),
		fbs:        make(map[uint32]uint32),
	}
	for i := 0; i < crtcs; i++ {
		f.crtcs = append(f.crtcs, uint32(100+i))
	}
	return f
}

func (f *fakeDevice) addConnector(id uint32, connected bool, modes []mode.Info, encoders ...uint32) {
	conn := &mode.Connector{
		ID:       id,
		Type:     11, // HDMI-A
		TypeID:   id,
		Modes:    modes,
		Encoders: encoders,
	}
	if connected {
		conn.Connection = mode.Connected
	} else {
		conn.Connection = mode.Connected + 1
	}
	f.connOrder = append(f.connOrder, id)
	f.connectors[id] = conn
}

func (f *fakeDevice) addEncoder(id, possibleCrtcs uint32) {
	f.encoders[id] = &mode.Encoder{ID: id, PossibleCrtcs: possibleCrtcs}
}

// leaked reports whether any kernel object or mapping is still live.
func (f *fakeDevice) leaked() bool {
	return len(f.dumbs) != 0 || len(f.fbs) != 0 || f.mapped != 0
}

func (f *fakeDevice) Resources() (*mode.Resources, error) {
	if f.failResources {
		return nil, errFake
	}
	return &mode.Resources{Crtcs: f.crtcs, Connectors: f.connOrder}, nil
}

func (f *fakeDevice) Connector(id uint32) (*mode.Connector, error) {
	conn, ok := f.connectors[id]
	if !ok {
		return nil, errFake
	}
	return conn, nil
}

func (f *fakeDevice) Encoder(id uint32) (*mode.Encoder, error) {
	enc, ok := f.encoders[id]
	if !ok {
		return nil, errFake
	}
	return enc, nil
}

const fakeStrideAlign = 64

func (f *fakeDevice) CreateDumb(width, height uint16) (*mode.FB, error) {
	if f.failCreate {
		return nil, errFake
	}
	f.nextHandle++
	pitch := (uint32(width)*4 + fakeStrideAlign - 1) &^ uint32(fakeStrideAlign-1)
	fb := &mode.FB{
		Width:  uint32(width),
		Height: uint32(height),
		BPP:    32,
		Handle: f.nextHandle,
		Pitch:  pitch,
		Size:   uint64(pitch) * uint64(height),
	}
	f.dumbs[fb.Handle] = fb
	return fb, nil
}

func (f *fakeDevice) AddFB(width, height uint16, pitch, handle uint32) (uint32, error) {
	if f.failAdd {
		return 0, errFake
	}
	if _, ok := f.dumbs[handle]; !ok {
		return 0, errFake
	}
	f.nextFB++
	id := 1000 + f.nextFB
	f.fbs[id] = handle
	return id, nil
}

func (f *fakeDevice) MapDumb(handle uint32) (uint64, error) {
	if f.failMapDumb {
		return 0, errFake
	}
	if _, ok := f.dumbs[handle]; !ok {
		return 0, errFake
	}
	return uint64(handle) << 12, nil
}

func (f *fakeDevice) Map(offset, size uint64) ([]byte, error) {
	if f.failMap {
		return nil, errFake
	}
	f.mapped++
	return make([]byte, size), nil
}

func (f *fakeDevice) Unmap(data []byte) error {
	f.mapped--
	return nil
}

func (f *fakeDevice) RmFB(id uint32) error {
	if _, ok := f.fbs[id]; !ok {
		return errFake
	}
	delete(f.fbs, id)
	return nil
}

func (f *fakeDevice) DestroyDumb(handle uint32) error {
	if _, ok := f.dumbs[handle]; !ok {
		return errFake
	}
	delete(f.dumbs, handle)
	return nil
}

func (f *fakeDevice) Crtc(id uint32) (*mode.Crtc, error) {
	state, ok := f.crtcState[id]
	if !ok {
		return &mode.Crtc{ID: id}, nil
	}
	state.ID = id
	return &state, nil
}

func (f *fakeDevice) SetCrtc(crtc, fb, x, y uint32, connector uint32, m *mode.Info) error {
	f.setCalls = append(f.setCalls, setCall{
		crtc: crtc, fb: fb, x: x, y: y, connector: connector, mode: m,
	})
	if f.failSet {
		return errFake
	}
	state := mode.Crtc{ID: crtc, BufferID: fb, X: x, Y: y}
	if m != nil {
		state.Mode = *m
		state.ModeValid = 1
		state.Width = uint32(m.Hdisplay)
		state.Height = uint32(m.Vdisplay)
	}
	f.crtcState[crtc] = state
	return nil
}

func (f *fakeDevice) Close() error {
	f.closed = true
	return nil
}

// testMode builds 60 Hz-ish timings for the given resolution.
func testMode(w, h uint16) mode.Info {
	var (
		htotal = uint32(w) + 40
		vtotal = uint32(h) + 10
	)
	return mode.Info{
		Clock:    htotal * vtotal * 60 / 1000,
		Hdisplay: w,
		Htotal:   uint16(htotal),
		Vdisplay: h,
		Vtotal:   uint16(vtotal),
	}
}
