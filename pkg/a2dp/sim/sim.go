package sim

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/a2dp"
)

// Simulator errors.
var (
	ErrReleased = errors.New("player released")
	ErrNoMedia  = errors.New("media url is empty")
)

// PlayerState is the state of a simulated player.
type PlayerState string

// Player states.
const (
	StateIdle     PlayerState = "IDLE"
	StateStarted  PlayerState = "STARTED"
	StatePaused   PlayerState = "PAUSED"
	StateStopped  PlayerState = "STOPPED"
	StateReleased PlayerState = "RELEASED"
)

// Adapter is a simulated Bluetooth adapter.
type Adapter struct {
	mu      sync.Mutex
	enabled bool
	devices []a2dp.Device
}

// NewAdapter creates an enabled adapter with the given bonded devices.
func NewAdapter(devices ...a2dp.Device) *Adapter {
	return &Adapter{enabled: true, devices: devices}
}

// Enabled reports whether the adapter is on.
func (a *Adapter) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Enable turns the adapter on.
func (a *Adapter) Enable() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = true
	return nil
}

// Disable turns the adapter off.
func (a *Adapter) Disable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = false
}

// BondedDevices returns the bonded devices. A disabled adapter reports none.
func (a *Adapter) BondedDevices() ([]a2dp.Device, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return nil, nil
	}
	out := make([]a2dp.Device, len(a.devices))
	copy(out, a.devices)
	return out, nil
}

// SetConnected changes the connection state of the device with address.
func (a *Adapter) SetConnected(address string, connected bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.devices {
		if a.devices[i].Address == address {
			a.devices[i].Connected = connected
		}
	}
}

// Profile is a simulated A2DP source profile. A preference becomes the active
// configuration once ApplyDelay has passed.
type Profile struct {
	// ApplyDelay is how long a preference takes to apply.
	ApplyDelay time.Duration

	// Reject keeps the current configuration regardless of preference.
	Reject bool

	mu        sync.Mutex
	current   *a2dp.CodecConfig
	pending   *a2dp.CodecConfig
	requested time.Time
}

// NewProfile creates a profile with an initial active configuration. A nil
// initial configuration means no device is streaming.
func NewProfile(initial *a2dp.CodecConfig, applyDelay time.Duration) *Profile {
	return &Profile{ApplyDelay: applyDelay, current: initial}
}

// SetCodecPreference requests cfg.
func (p *Profile) SetCodecPreference(cfg a2dp.CodecConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = &cfg
	p.requested = time.Now()
	return nil
}

// CodecStatus returns the active configuration.
func (p *Profile) CodecStatus() (a2dp.CodecStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending != nil && !p.Reject && time.Since(p.requested) >= p.ApplyDelay {
		p.current = p.pending
		p.pending = nil
	}
	if p.current == nil {
		return a2dp.CodecStatus{}, a2dp.ErrNoCodecStatus
	}
	return a2dp.CodecStatus{
		Config:     *p.current,
		Selectable: []a2dp.CodecConfig{*p.current},
	}, nil
}

// Player is a simulated media player.
type Player struct {
	url    string
	logger *slog.Logger

	mu      sync.Mutex
	state   PlayerState
	looping bool
	left    float32
	right   float32
	starts  int
}

// URL returns the media url.
func (p *Player) URL() string { return p.url }

// Start starts or resumes playback.
func (p *Player) Start() error {
	return p.move(StateStarted, func() { p.starts++ })
}

// Pause pauses playback.
func (p *Player) Pause() error {
	return p.move(StatePaused, nil)
}

// Stop stops playback.
func (p *Player) Stop() error {
	return p.move(StateStopped, nil)
}

// Release frees the player. Later calls fail with ErrReleased.
func (p *Player) Release() error {
	return p.move(StateReleased, nil)
}

// SetLooping sets looping playback.
func (p *Player) SetLooping(loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.looping = loop
}

// SetVolume sets the channel volumes.
func (p *Player) SetVolume(left, right float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.left, p.right = left, right
}

// State returns the player state.
func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Looping reports whether looping is on.
func (p *Player) Looping() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.looping
}

// Volume returns the channel volumes.
func (p *Player) Volume() (left, right float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.left, p.right
}

// Starts returns how many times playback was started.
func (p *Player) Starts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.starts
}

func (p *Player) move(to PlayerState, fn func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateReleased {
		return ErrReleased
	}
	p.logger.Debug("player state", "url", p.url, "from", p.state, "to", to)
	p.state = to
	if fn != nil {
		fn()
	}
	return nil
}

// PlayerFactory creates simulated players and remembers them.
type PlayerFactory struct {
	Logger *slog.Logger

	mu      sync.Mutex
	players []*Player
}

// Create returns a new idle player for url.
func (f *PlayerFactory) Create(url string) (a2dp.Player, error) {
	if url == "" {
		return nil, ErrNoMedia
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := &Player{url: url, logger: logger, state: StateIdle}

	f.mu.Lock()
	f.players = append(f.players, p)
	f.mu.Unlock()
	return p, nil
}

// Last returns the most recently created player.
func (f *PlayerFactory) Last() *Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.players) == 0 {
		return nil
	}
	return f.players[len(f.players)-1]
}

// Created returns how many players were created.
func (f *PlayerFactory) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.players)
}
