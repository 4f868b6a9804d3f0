package a2dp

import (
	"errors"
	"time"
)

// Platform errors.
var (
	ErrNoCodecStatus = errors.New("codec status unavailable")
)

// Device is a bonded Bluetooth device.
type Device struct {
	Address   string
	Name      string
	Connected bool
}

// Adapter is the local Bluetooth adapter.
type Adapter interface {
	Enabled() bool
	Enable() error
	BondedDevices() ([]Device, error)
}

// Profile is the A2DP source profile.
type Profile interface {
	// SetCodecPreference requests a codec configuration. The change is
	// applied asynchronously.
	SetCodecPreference(cfg CodecConfig) error

	// CodecStatus returns ErrNoCodecStatus when no device is streaming.
	CodecStatus() (CodecStatus, error)
}

// Player plays one media item.
type Player interface {
	Start() error
	Pause() error
	Stop() error
	Release() error
	SetLooping(loop bool)
	SetVolume(left, right float32)
}

// PlayerFactory creates players for media URLs.
type PlayerFactory interface {
	Create(url string) (Player, error)
}

// AlarmScheduler schedules one-shot alarms. Scheduling an id that is pending
// replaces it.
type AlarmScheduler interface {
	Schedule(id string, delay time.Duration, payload any) error
	Cancel(id string) error
}

// StatusLogger records run transitions.
type StatusLogger interface {
	LogStatus(msg string)
}
