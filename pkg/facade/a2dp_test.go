package facade

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbridge/rcbridge-go/pkg/a2dp"
	"github.com/rcbridge/rcbridge-go/pkg/a2dp/sim"
	"github.com/rcbridge/rcbridge-go/pkg/alarm"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

func newTestReceiver(t *testing.T, devices ...a2dp.Device) *a2dp.Receiver {
	t.Helper()
	alarms := alarm.NewManager()
	t.Cleanup(alarms.Close)

	r, err := a2dp.NewReceiver(a2dp.Config{
		Adapter:   sim.NewAdapter(devices...),
		Profile:   sim.NewProfile(nil, 0),
		Players:   &sim.PlayerFactory{},
		Scheduler: alarms,
	})
	require.NoError(t, err)
	alarms.OnFire(func(_ string, payload any) { r.HandleAlarm(payload) })
	t.Cleanup(r.Abort)
	return r
}

func powerTestExtras() map[string]any {
	return map[string]any{
		a2dp.KeyCodecType:     "0",
		a2dp.KeySampleRate:    "44100",
		a2dp.KeyBitsPerSample: "16",
		a2dp.KeyStartTime:     "60",
		a2dp.KeyPlayTime:      "60",
		a2dp.KeyMusicURL:      "file:///music/tone.wav",
	}
}

func TestPowerTestStart(t *testing.T) {
	pt := NewPowerTest(newTestReceiver(t, a2dp.Device{Address: "aa", Connected: true}))

	st, err := pt.Start(context.Background(), powerTestExtras())
	require.NoError(t, err)
	assert.Equal(t, a2dp.PhaseScheduled, st.Phase)
	assert.Equal(t, 2, st.TotalAlarms)
	assert.Equal(t, "START", st.NextAction)

	got, err := pt.Status()
	require.NoError(t, err)
	assert.Equal(t, st.Phase, got.Phase)
}

func TestPowerTestErrors(t *testing.T) {
	tests := []struct {
		name    string
		devices []a2dp.Device
		mutate  func(map[string]any)
		code    wire.Code
	}{
		{
			name:    "missing play time",
			devices: []a2dp.Device{{Connected: true}},
			mutate:  func(m map[string]any) { delete(m, a2dp.KeyPlayTime) },
			code:    wire.CodeInvalidArgument,
		},
		{
			name:   "no connected device",
			mutate: func(map[string]any) {},
			code:   wire.CodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := NewPowerTest(newTestReceiver(t, tt.devices...))
			extras := powerTestExtras()
			tt.mutate(extras)

			_, err := pt.Start(context.Background(), extras)
			var we *wire.Error
			require.True(t, errors.As(err, &we), "error %v is not a wire error", err)
			if we.Code != tt.code {
				t.Errorf("Start() code = %v, want %v", we.Code, tt.code)
			}
		})
	}
}

func TestPowerTestDisabled(t *testing.T) {
	pt := NewPowerTest(nil)

	_, err := pt.Start(context.Background(), powerTestExtras())
	assert.ErrorIs(t, err, ErrPowerTestUnavailable)
	_, err = pt.Status()
	assert.ErrorIs(t, err, wire.ErrUnavailable)
}
