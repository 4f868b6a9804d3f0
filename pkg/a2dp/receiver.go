package a2dp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/log"
)

// Receiver errors.
var (
	ErrNotConfigured      = errors.New("power test receiver not configured")
	ErrAdapterUnavailable = errors.New("bluetooth adapter unavailable")
	ErrNoDevice           = errors.New("no connected device")
	ErrCodecNotApplied    = errors.New("codec config not applied")
	ErrPlayerCreate       = errors.New("failed to create media player")
)

// Verification defaults.
const (
	DefaultVerifyAttempts = 10
	DefaultVerifyInterval = time.Second
)

// AlarmID is the id of every alarm in a run's chain.
const AlarmID = "a2dp"

// Player volumes.
const (
	NormalVolume float32 = 0.5
	ZeroVolume   float32 = 0
)

// Action is what an alarm does when it fires.
type Action int

// Alarm actions.
const (
	ActionNone  Action = 0
	ActionStart Action = 1
	ActionPause Action = 2
	ActionStop  Action = 3
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "START"
	case ActionPause:
		return "PAUSE"
	case ActionStop:
		return "STOP"
	default:
		return "NONE"
	}
}

// Alarm is the payload scheduled for each step of the chain.
type Alarm struct {
	Number int
	Action Action
}

// Phase is the state of the current run.
type Phase string

// Run phases.
const (
	PhaseIdle      Phase = "IDLE"
	PhasePreparing Phase = "PREPARING"
	PhaseScheduled Phase = "SCHEDULED"
	PhasePlaying   Phase = "PLAYING"
	PhasePaused    Phase = "PAUSED"
	PhaseStopped   Phase = "STOPPED"
	PhaseFailed    Phase = "FAILED"
)

// Status is a snapshot of the receiver.
type Status struct {
	Phase       Phase     `cbor:"phase" json:"phase"`
	Alarm       int       `cbor:"alarm" json:"alarm"`
	TotalAlarms int       `cbor:"totalAlarms" json:"totalAlarms"`
	NextAction  string    `cbor:"nextAction,omitempty" json:"nextAction,omitempty"`
	NotPlay     bool      `cbor:"notPlay,omitempty" json:"notPlay,omitempty"`
	Mute        bool      `cbor:"mute,omitempty" json:"mute,omitempty"`
	Error       string    `cbor:"error,omitempty" json:"error,omitempty"`
	MusicURL    string    `cbor:"musicUrl,omitempty" json:"musicUrl,omitempty"`
	UpdatedAt   time.Time `cbor:"updatedAt" json:"updatedAt"`
}

// Config configures a Receiver.
type Config struct {
	Adapter   Adapter
	Profile   Profile
	Players   PlayerFactory
	Scheduler AlarmScheduler

	// Status receives one line per transition (optional).
	Status StatusLogger

	Logger  *slog.Logger
	Capture log.Logger

	VerifyAttempts int
	VerifyInterval time.Duration
}

// Receiver runs power tests. One run is active at a time; starting a new run
// replaces the previous one.
type Receiver struct {
	cfg    Config
	logger *slog.Logger

	startMu sync.Mutex

	mu        sync.Mutex
	params    Params
	player    Player
	numAlarms int
	status    Status
}

// NewReceiver creates a receiver and enables the adapter if needed.
func NewReceiver(cfg Config) (*Receiver, error) {
	if cfg.Adapter == nil || cfg.Profile == nil || cfg.Players == nil || cfg.Scheduler == nil {
		return nil, ErrNotConfigured
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Capture == nil {
		cfg.Capture = log.NoopLogger{}
	}
	if cfg.Status == nil {
		cfg.Status = discardStatus{}
	}
	if cfg.VerifyAttempts <= 0 {
		cfg.VerifyAttempts = DefaultVerifyAttempts
	}
	if cfg.VerifyInterval <= 0 {
		cfg.VerifyInterval = DefaultVerifyInterval
	}

	logger := cfg.Logger.With("component", "a2dp")
	if !cfg.Adapter.Enabled() {
		logger.Info("adapter disabled, enabling")
		if err := cfg.Adapter.Enable(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAdapterUnavailable, err)
		}
		if !cfg.Adapter.Enabled() {
			return nil, ErrAdapterUnavailable
		}
	}

	return &Receiver{
		cfg:    cfg,
		logger: logger,
		status: Status{Phase: PhaseIdle, UpdatedAt: time.Now()},
	}, nil
}

// Status returns a snapshot of the current run.
func (r *Receiver) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Start prepares a run and schedules its first alarm after p.StartTime.
// Preparation blocks while the codec configuration is verified; ctx aborts
// the wait.
func (r *Receiver) Start(ctx context.Context, p Params) error {
	if err := p.Validate(); err != nil {
		r.cfg.Status.LogStatus(fmt.Sprintf("A2DP invalid parameters: %v", err))
		r.logger.Warn("invalid parameters", "error", err)
		return err
	}

	r.startMu.Lock()
	defer r.startMu.Unlock()

	r.mu.Lock()
	r.reset()
	r.params = p
	r.status = Status{NotPlay: p.NotPlay, Mute: p.Mute, MusicURL: p.MusicURL}
	r.transition(PhasePreparing, p.Codec.String())
	r.mu.Unlock()

	player, err := r.prepare(ctx, p)
	if err != nil {
		r.mu.Lock()
		r.fail(err)
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.player = player
	r.numAlarms = p.Alarms()
	r.status.TotalAlarms = r.numAlarms
	if err := r.schedule(Alarm{Number: 1, Action: ActionStart}, p.StartTime); err != nil {
		r.fail(err)
		return err
	}
	r.transition(PhaseScheduled, fmt.Sprintf("first alarm in %s", p.StartTime))
	return nil
}

// HandleAlarm runs one step of the chain. payload must be an Alarm.
func (r *Receiver) HandleAlarm(payload any) {
	a, ok := payload.(Alarm)
	if !ok {
		r.logger.Error("alarm without action", "payload", payload)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if a.Action == ActionNone {
		r.logger.Error("alarm without action", "alarm", a.Number)
		return
	}
	if r.player == nil {
		r.logger.Error("media player is nil", "alarm", a.Number, "action", a.Action)
		return
	}

	r.status.Alarm = a.Number
	p := r.params
	play := !p.NotPlay

	switch a.Action {
	case ActionStart:
		if play {
			r.check("start", r.player.Start())
			r.player.SetLooping(true)
		}
		r.transition(PhasePlaying, r.alarmNote(a))
		r.next(a, p.PlayTime)
	case ActionPause:
		if play {
			r.check("pause", r.player.Pause())
		}
		r.transition(PhasePaused, r.alarmNote(a))
		r.next(a, p.IdleTime)
	case ActionStop:
		if play {
			r.check("stop", r.player.Stop())
		}
		r.check("release", r.player.Release())
		r.player = nil
		r.status.NextAction = ""
		r.transition(PhaseStopped, r.alarmNote(a))
	default:
		r.logger.Error("unknown action", "alarm", a.Number, "action", int(a.Action))
	}
}

// Abort cancels the pending alarm and releases the player.
func (r *Receiver) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reset() {
		r.transition(PhaseStopped, "aborted")
	}
}

func (r *Receiver) prepare(ctx context.Context, p Params) (Player, error) {
	if !p.Mute {
		devices, err := r.cfg.Adapter.BondedDevices()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
		}
		connected := 0
		for _, d := range devices {
			if d.Connected {
				connected++
			}
		}
		if connected == 0 {
			return nil, ErrNoDevice
		}

		if err := r.cfg.Profile.SetCodecPreference(p.Codec); err != nil {
			return nil, fmt.Errorf("set codec preference: %w", err)
		}
		if err := r.waitForCodec(ctx, p.Codec); err != nil {
			return nil, err
		}
	}

	player, err := r.cfg.Players.Create(p.MusicURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlayerCreate, err)
	}
	if player == nil {
		return nil, ErrPlayerCreate
	}
	r.logger.Debug("media player created", "url", p.MusicURL)

	if p.Mute {
		player.SetVolume(ZeroVolume, ZeroVolume)
	} else {
		player.SetVolume(NormalVolume, NormalVolume)
	}
	return player, nil
}

func (r *Receiver) waitForCodec(ctx context.Context, want CodecConfig) error {
	for i := 0; i < r.cfg.VerifyAttempts; i++ {
		if r.codecApplied(want) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.cfg.VerifyInterval):
		}
	}
	if r.codecApplied(want) {
		return nil
	}
	return ErrCodecNotApplied
}

func (r *Receiver) codecApplied(want CodecConfig) bool {
	st, err := r.cfg.Profile.CodecStatus()
	if err != nil {
		return false
	}
	r.logger.Debug("codec status", "config", st.Config.String())
	return want.Matches(st.Config)
}

// next schedules the alarm after cur. Caller holds r.mu.
func (r *Receiver) next(cur Alarm, delay time.Duration) {
	if cur.Number >= r.numAlarms {
		r.logger.Debug("all alarms done", "alarm", cur.Number)
		return
	}

	action := ActionStart
	switch {
	case cur.Number == r.numAlarms-1:
		action = ActionStop
	case cur.Action == ActionStart:
		action = ActionPause
	}
	if err := r.schedule(Alarm{Number: cur.Number + 1, Action: action}, delay); err != nil {
		r.fail(err)
	}
}

// schedule sets the chain's alarm. Caller holds r.mu.
func (r *Receiver) schedule(a Alarm, delay time.Duration) error {
	if err := r.cfg.Scheduler.Schedule(AlarmID, delay, a); err != nil {
		return fmt.Errorf("schedule alarm %d: %w", a.Number, err)
	}
	r.status.NextAction = a.Action.String()
	r.logger.Debug("alarm scheduled", "alarm", a.Number, "action", a.Action, "in", delay)
	return nil
}

// reset cancels the pending alarm and releases the player. It reports whether
// a run was active. Caller holds r.mu.
func (r *Receiver) reset() bool {
	active := r.player != nil
	_ = r.cfg.Scheduler.Cancel(AlarmID)
	if r.player != nil {
		r.check("release", r.player.Release())
		r.player = nil
	}
	return active
}

// fail records err and releases resources. Caller holds r.mu.
func (r *Receiver) fail(err error) {
	r.reset()
	r.status.Error = err.Error()
	r.status.NextAction = ""
	r.transition(PhaseFailed, err.Error())
}

func (r *Receiver) check(op string, err error) {
	if err != nil {
		r.logger.Warn("player call failed", "op", op, "error", err)
		r.cfg.Status.LogStatus(fmt.Sprintf("A2DP player %s failed: %v", op, err))
	}
}

func (r *Receiver) alarmNote(a Alarm) string {
	return fmt.Sprintf("alarm %d/%d %s", a.Number, r.numAlarms, a.Action)
}

// transition moves to phase and records it. Caller holds r.mu.
func (r *Receiver) transition(phase Phase, note string) {
	old := r.status.Phase
	r.status.Phase = phase
	r.status.UpdatedAt = time.Now()

	msg := fmt.Sprintf("A2DP %s: %s", phase, note)
	r.cfg.Status.LogStatus(msg)
	r.logger.Info("power test", "phase", phase, "note", note)
	r.cfg.Capture.Log(log.Event{
		Timestamp: r.status.UpdatedAt,
		Layer:     log.LayerFacade,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityPowerTest,
			OldState: string(old),
			NewState: string(phase),
			Reason:   note,
		},
	})
}

type discardStatus struct{}

func (discardStatus) LogStatus(string) {}
