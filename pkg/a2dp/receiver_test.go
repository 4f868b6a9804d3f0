package a2dp_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbridge/rcbridge-go/pkg/a2dp"
	"github.com/rcbridge/rcbridge-go/pkg/a2dp/mocks"
)

// manualScheduler holds the pending alarm until the test fires it.
type manualScheduler struct {
	mu       sync.Mutex
	pending  *scheduled
	history  []scheduled
	canceled int
}

type scheduled struct {
	delay time.Duration
	alarm a2dp.Alarm
}

func (s *manualScheduler) Schedule(id string, delay time.Duration, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, _ := payload.(a2dp.Alarm)
	entry := scheduled{delay: delay, alarm: a}
	s.pending = &entry
	s.history = append(s.history, entry)
	return nil
}

func (s *manualScheduler) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.canceled++
	}
	s.pending = nil
	return nil
}

// fire delivers the pending alarm and reports whether there was one.
func (s *manualScheduler) fire(r *a2dp.Receiver) bool {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()
	if p == nil {
		return false
	}
	r.HandleAlarm(p.alarm)
	return true
}

func (s *manualScheduler) actions() []a2dp.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]a2dp.Action, len(s.history))
	for i, h := range s.history {
		out[i] = h.alarm.Action
	}
	return out
}

type statusRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (s *statusRecorder) LogStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, msg)
}

var testCodec = a2dp.CodecConfig{
	CodecType:     a2dp.CodecTypeAAC,
	Priority:      a2dp.CodecPriorityHighest,
	SampleRate:    44100,
	BitsPerSample: 16,
	ChannelMode:   a2dp.ChannelModeStereo,
}

func testParams(reps int) a2dp.Params {
	return a2dp.Params{
		Codec:       testCodec,
		StartTime:   5 * time.Second,
		PlayTime:    30 * time.Second,
		IdleTime:    10 * time.Second,
		Repetitions: reps,
		MusicURL:    "file:///music/tone.wav",
	}
}

type fixture struct {
	adapter *mocks.MockAdapter
	profile *mocks.MockProfile
	players *mocks.MockPlayerFactory
	player  *mocks.MockPlayer
	sched   *manualScheduler
	status  *statusRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		adapter: mocks.NewMockAdapter(t),
		profile: mocks.NewMockProfile(t),
		players: mocks.NewMockPlayerFactory(t),
		player:  mocks.NewMockPlayer(t),
		sched:   &manualScheduler{},
		status:  &statusRecorder{},
	}
	f.adapter.EXPECT().Enabled().Return(true).Once()
	return f
}

func (f *fixture) expectDevice() {
	f.adapter.EXPECT().BondedDevices().Return([]a2dp.Device{
		{Address: "00:11:22:33:44:55", Name: "headset", Connected: true},
	}, nil).Once()
	f.profile.EXPECT().SetCodecPreference(testCodec).Return(nil).Once()
	f.profile.EXPECT().CodecStatus().Return(a2dp.CodecStatus{Config: testCodec}, nil).Once()
}

func (f *fixture) receiver(t *testing.T) *a2dp.Receiver {
	t.Helper()
	r, err := a2dp.NewReceiver(a2dp.Config{
		Adapter:        f.adapter,
		Profile:        f.profile,
		Players:        f.players,
		Scheduler:      f.sched,
		Status:         f.status,
		VerifyAttempts: 3,
		VerifyInterval: time.Millisecond,
	})
	require.NoError(t, err)
	return r
}

func TestNewReceiverRequiresDependencies(t *testing.T) {
	_, err := a2dp.NewReceiver(a2dp.Config{})
	assert.ErrorIs(t, err, a2dp.ErrNotConfigured)
}

func TestNewReceiverEnablesAdapter(t *testing.T) {
	adapter := mocks.NewMockAdapter(t)
	adapter.EXPECT().Enabled().Return(false).Once()
	adapter.EXPECT().Enable().Return(nil).Once()
	adapter.EXPECT().Enabled().Return(true).Once()

	_, err := a2dp.NewReceiver(a2dp.Config{
		Adapter:   adapter,
		Profile:   mocks.NewMockProfile(t),
		Players:   mocks.NewMockPlayerFactory(t),
		Scheduler: &manualScheduler{},
	})
	require.NoError(t, err)
}

func TestNewReceiverAdapterUnavailable(t *testing.T) {
	adapter := mocks.NewMockAdapter(t)
	adapter.EXPECT().Enabled().Return(false).Once()
	adapter.EXPECT().Enable().Return(errors.New("radio off")).Once()

	_, err := a2dp.NewReceiver(a2dp.Config{
		Adapter:   adapter,
		Profile:   mocks.NewMockProfile(t),
		Players:   mocks.NewMockPlayerFactory(t),
		Scheduler: &manualScheduler{},
	})
	assert.ErrorIs(t, err, a2dp.ErrAdapterUnavailable)
}

func TestReceiverSingleRepetition(t *testing.T) {
	f := newFixture(t)
	f.expectDevice()
	f.players.EXPECT().Create("file:///music/tone.wav").Return(f.player, nil).Once()
	f.player.EXPECT().SetVolume(a2dp.NormalVolume, a2dp.NormalVolume).Return().Once()
	f.player.EXPECT().Start().Return(nil).Once()
	f.player.EXPECT().SetLooping(true).Return().Once()
	f.player.EXPECT().Stop().Return(nil).Once()
	f.player.EXPECT().Release().Return(nil).Once()

	r := f.receiver(t)
	require.NoError(t, r.Start(context.Background(), testParams(1)))

	st := r.Status()
	assert.Equal(t, a2dp.PhaseScheduled, st.Phase)
	assert.Equal(t, 2, st.TotalAlarms)
	assert.Equal(t, "START", st.NextAction)

	require.True(t, f.sched.fire(r))
	assert.Equal(t, a2dp.PhasePlaying, r.Status().Phase)
	assert.Equal(t, "STOP", r.Status().NextAction)

	require.True(t, f.sched.fire(r))
	assert.Equal(t, a2dp.PhaseStopped, r.Status().Phase)
	assert.False(t, f.sched.fire(r), "no alarm after STOP")

	assert.Equal(t, []a2dp.Action{a2dp.ActionStart, a2dp.ActionStop}, f.sched.actions())
	assert.Equal(t, 5*time.Second, f.sched.history[0].delay)
	assert.Equal(t, 30*time.Second, f.sched.history[1].delay)
}

func TestReceiverAlarmChain(t *testing.T) {
	f := newFixture(t)
	f.expectDevice()
	f.players.EXPECT().Create("file:///music/tone.wav").Return(f.player, nil).Once()
	f.player.EXPECT().SetVolume(a2dp.NormalVolume, a2dp.NormalVolume).Return().Once()
	f.player.EXPECT().Start().Return(nil).Times(2)
	f.player.EXPECT().SetLooping(true).Return().Times(2)
	f.player.EXPECT().Pause().Return(nil).Once()
	f.player.EXPECT().Stop().Return(nil).Once()
	f.player.EXPECT().Release().Return(nil).Once()

	r := f.receiver(t)
	require.NoError(t, r.Start(context.Background(), testParams(2)))

	phases := []a2dp.Phase{a2dp.PhasePlaying, a2dp.PhasePaused, a2dp.PhasePlaying, a2dp.PhaseStopped}
	for i, want := range phases {
		require.True(t, f.sched.fire(r), "alarm %d", i+1)
		st := r.Status()
		if st.Phase != want {
			t.Errorf("after alarm %d: Phase = %s, want %s", i+1, st.Phase, want)
		}
		if st.Alarm != i+1 {
			t.Errorf("after alarm %d: Alarm = %d", i+1, st.Alarm)
		}
	}
	assert.False(t, f.sched.fire(r))

	want := []a2dp.Action{a2dp.ActionStart, a2dp.ActionPause, a2dp.ActionStart, a2dp.ActionStop}
	assert.Equal(t, want, f.sched.actions())

	delays := []time.Duration{5 * time.Second, 30 * time.Second, 10 * time.Second, 30 * time.Second}
	for i, d := range delays {
		assert.Equal(t, d, f.sched.history[i].delay, "delay of alarm %d", i+1)
	}

	f.status.mu.Lock()
	defer f.status.mu.Unlock()
	assert.Contains(t, f.status.lines[0], "PREPARING")
	assert.Contains(t, f.status.lines[len(f.status.lines)-1], "STOPPED")
}

func TestReceiverNotPlay(t *testing.T) {
	f := newFixture(t)
	f.expectDevice()
	f.players.EXPECT().Create("file:///music/tone.wav").Return(f.player, nil).Once()
	f.player.EXPECT().SetVolume(a2dp.NormalVolume, a2dp.NormalVolume).Return().Once()
	// Only the player is released; it never starts.
	f.player.EXPECT().Release().Return(nil).Once()

	r := f.receiver(t)
	p := testParams(2)
	p.NotPlay = true
	require.NoError(t, r.Start(context.Background(), p))

	for f.sched.fire(r) {
	}
	assert.Equal(t, a2dp.PhaseStopped, r.Status().Phase)
	assert.Len(t, f.sched.actions(), 4)
	assert.True(t, r.Status().NotPlay)
}

func TestReceiverMute(t *testing.T) {
	f := newFixture(t)
	// Mute skips device and codec checks.
	f.players.EXPECT().Create("file:///music/tone.wav").Return(f.player, nil).Once()
	f.player.EXPECT().SetVolume(a2dp.ZeroVolume, a2dp.ZeroVolume).Return().Once()

	r := f.receiver(t)
	p := testParams(1)
	p.Mute = true
	require.NoError(t, r.Start(context.Background(), p))
	assert.Equal(t, a2dp.PhaseScheduled, r.Status().Phase)
}

func TestReceiverNoDevice(t *testing.T) {
	f := newFixture(t)
	f.adapter.EXPECT().BondedDevices().Return([]a2dp.Device{
		{Address: "00:11:22:33:44:55", Connected: false},
	}, nil).Once()

	r := f.receiver(t)
	err := r.Start(context.Background(), testParams(1))
	assert.ErrorIs(t, err, a2dp.ErrNoDevice)

	st := r.Status()
	assert.Equal(t, a2dp.PhaseFailed, st.Phase)
	assert.NotEmpty(t, st.Error)
	assert.Empty(t, f.sched.actions())
}

func TestReceiverCodecNotApplied(t *testing.T) {
	f := newFixture(t)
	f.adapter.EXPECT().BondedDevices().Return([]a2dp.Device{{Connected: true}}, nil).Once()
	f.profile.EXPECT().SetCodecPreference(testCodec).Return(nil).Once()

	other := testCodec
	other.SampleRate = 48000
	// Three polls plus the final check.
	f.profile.EXPECT().CodecStatus().Return(a2dp.CodecStatus{Config: other}, nil).Times(4)

	r := f.receiver(t)
	err := r.Start(context.Background(), testParams(1))
	assert.ErrorIs(t, err, a2dp.ErrCodecNotApplied)
	assert.Equal(t, a2dp.PhaseFailed, r.Status().Phase)
}

func TestReceiverCodecAppliedLate(t *testing.T) {
	f := newFixture(t)
	f.adapter.EXPECT().BondedDevices().Return([]a2dp.Device{{Connected: true}}, nil).Once()
	f.profile.EXPECT().SetCodecPreference(testCodec).Return(nil).Once()
	f.profile.EXPECT().CodecStatus().Return(a2dp.CodecStatus{}, a2dp.ErrNoCodecStatus).Once()
	f.profile.EXPECT().CodecStatus().Return(a2dp.CodecStatus{Config: testCodec}, nil).Once()
	f.players.EXPECT().Create("file:///music/tone.wav").Return(f.player, nil).Once()
	f.player.EXPECT().SetVolume(a2dp.NormalVolume, a2dp.NormalVolume).Return().Once()

	r := f.receiver(t)
	require.NoError(t, r.Start(context.Background(), testParams(1)))
}

func TestReceiverCodecWaitCanceled(t *testing.T) {
	f := newFixture(t)
	f.adapter.EXPECT().BondedDevices().Return([]a2dp.Device{{Connected: true}}, nil).Once()
	f.profile.EXPECT().SetCodecPreference(testCodec).Return(nil).Once()
	f.profile.EXPECT().CodecStatus().Return(a2dp.CodecStatus{}, a2dp.ErrNoCodecStatus).Once()

	r, err := a2dp.NewReceiver(a2dp.Config{
		Adapter:        f.adapter,
		Profile:        f.profile,
		Players:        f.players,
		Scheduler:      f.sched,
		VerifyInterval: time.Hour,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Start(ctx, testParams(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReceiverPlayerCreateFails(t *testing.T) {
	f := newFixture(t)
	f.expectDevice()
	f.players.EXPECT().Create("file:///music/tone.wav").Return(nil, errors.New("no such file")).Once()

	r := f.receiver(t)
	err := r.Start(context.Background(), testParams(1))
	assert.ErrorIs(t, err, a2dp.ErrPlayerCreate)
}

func TestReceiverInvalidParams(t *testing.T) {
	f := newFixture(t)
	r := f.receiver(t)

	p := testParams(0)
	err := r.Start(context.Background(), p)
	assert.ErrorIs(t, err, a2dp.ErrInvalidParams)
	assert.Equal(t, a2dp.PhaseIdle, r.Status().Phase)
}

func TestReceiverAbort(t *testing.T) {
	f := newFixture(t)
	f.expectDevice()
	f.players.EXPECT().Create("file:///music/tone.wav").Return(f.player, nil).Once()
	f.player.EXPECT().SetVolume(a2dp.NormalVolume, a2dp.NormalVolume).Return().Once()
	f.player.EXPECT().Release().Return(nil).Once()

	r := f.receiver(t)
	require.NoError(t, r.Start(context.Background(), testParams(1)))

	r.Abort()
	assert.Equal(t, a2dp.PhaseStopped, r.Status().Phase)
	assert.False(t, f.sched.fire(r), "abort cancels the pending alarm")

	// A second abort is a no-op.
	r.Abort()
}

func TestReceiverRestartReplacesRun(t *testing.T) {
	f := newFixture(t)
	f.adapter.EXPECT().BondedDevices().Return([]a2dp.Device{{Connected: true}}, nil).Times(2)
	f.profile.EXPECT().SetCodecPreference(testCodec).Return(nil).Times(2)
	f.profile.EXPECT().CodecStatus().Return(a2dp.CodecStatus{Config: testCodec}, nil).Times(2)

	second := mocks.NewMockPlayer(t)
	f.players.EXPECT().Create("file:///music/tone.wav").Return(f.player, nil).Once()
	f.players.EXPECT().Create("file:///music/tone.wav").Return(second, nil).Once()
	f.player.EXPECT().SetVolume(a2dp.NormalVolume, a2dp.NormalVolume).Return().Once()
	f.player.EXPECT().Release().Return(nil).Once()
	second.EXPECT().SetVolume(a2dp.NormalVolume, a2dp.NormalVolume).Return().Once()

	r := f.receiver(t)
	require.NoError(t, r.Start(context.Background(), testParams(1)))
	require.NoError(t, r.Start(context.Background(), testParams(1)))

	assert.Equal(t, 1, f.sched.canceled)
	assert.Equal(t, a2dp.PhaseScheduled, r.Status().Phase)
}

func TestReceiverIgnoresBadAlarms(t *testing.T) {
	f := newFixture(t)
	r := f.receiver(t)

	r.HandleAlarm("not an alarm")
	r.HandleAlarm(a2dp.Alarm{Number: 1, Action: a2dp.ActionNone})
	// No player yet.
	r.HandleAlarm(a2dp.Alarm{Number: 1, Action: a2dp.ActionStart})

	assert.Equal(t, a2dp.PhaseIdle, r.Status().Phase)
	assert.Empty(t, f.sched.actions())
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action a2dp.Action
		want   string
	}{
		{a2dp.ActionNone, "NONE"},
		{a2dp.ActionStart, "START"},
		{a2dp.ActionPause, "PAUSE"},
		{a2dp.ActionStop, "STOP"},
		{a2dp.Action(9), "NONE"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", int(tt.action), got, tt.want)
		}
	}
}
