package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/registry"
)

func openMemory(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func sub(kind registry.Kind, handle int) registry.Subscription {
	return registry.Subscription{Kind: kind, Handle: handle, CreatedAt: time.Now()}
}

func TestJournalLifecycle(t *testing.T) {
	j := openMemory(t)

	require.NoError(t, j.Started("s1", sub(registry.KindScan, 1)))
	require.NoError(t, j.Delivered("s1", event.New(registry.EventTypeScan, 1, registry.OutcomeSuccess, nil)))
	require.NoError(t, j.Delivered("s1", event.New(registry.EventTypeScan, 1, registry.OutcomeResults, nil)))

	rec, err := j.Get("s1", registry.KindScan, 1)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Active())
	assert.Equal(t, int64(2), rec.Deliveries)
	assert.Equal(t, registry.OutcomeResults, rec.LastOutcome)

	require.NoError(t, j.Stopped("s1", registry.KindScan, 1, registry.ReasonStopped, time.Now()))
	// Late callbacks are not counted.
	require.NoError(t, j.Delivered("s1", event.New(registry.EventTypeScan, 1, registry.OutcomeResults, nil)))

	rec, err = j.Get("s1", registry.KindScan, 1)
	require.NoError(t, err)
	assert.False(t, rec.Active())
	assert.Equal(t, registry.ReasonStopped, rec.StopReason)
	assert.Equal(t, int64(2), rec.Deliveries)

	missing, err := j.Get("s1", registry.KindScan, 9)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestJournalStopOnlyOnce(t *testing.T) {
	j := openMemory(t)
	require.NoError(t, j.Started("s1", sub(registry.KindChange, 1)))
	require.NoError(t, j.Stopped("s1", registry.KindChange, 1, registry.ReasonRollback, time.Now()))
	require.NoError(t, j.Stopped("s1", registry.KindChange, 1, registry.ReasonShutdown, time.Now()))

	rec, err := j.Get("s1", registry.KindChange, 1)
	require.NoError(t, err)
	assert.Equal(t, registry.ReasonRollback, rec.StopReason)
}

func TestJournalListAndActive(t *testing.T) {
	j := openMemory(t)

	require.NoError(t, j.Started("s1", sub(registry.KindScan, 1)))
	require.NoError(t, j.Started("s1", sub(registry.KindScan, 2)))
	require.NoError(t, j.Started("s1", sub(registry.KindBssid, 1)))
	require.NoError(t, j.Started("s2", sub(registry.KindScan, 1)))
	require.NoError(t, j.Stopped("s1", registry.KindScan, 1, registry.ReasonFailed, time.Now()))

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"session", Filter{SessionID: "s1"}, 3},
		{"kind", Filter{Kind: registry.KindScan}, 3},
		{"active", Filter{ActiveOnly: true}, 3},
		{"session and kind", Filter{SessionID: "s1", Kind: registry.KindBssid}, 1},
		{"limit", Filter{Limit: 2}, 2},
		{"offset", Filter{Limit: 10, Offset: 3}, 1},
		{"future", Filter{Since: time.Now().Add(time.Hour)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := j.List(tt.filter)
			require.NoError(t, err)
			if len(got) != tt.want {
				t.Errorf("List(%+v) returned %d records, want %d", tt.filter, len(got), tt.want)
			}
		})
	}

	active, err := j.Active("s1")
	require.NoError(t, err)
	assert.Len(t, active, 2)
	for _, rec := range active {
		assert.True(t, rec.Active())
	}
}

func TestJournalHooks(t *testing.T) {
	j := openMemory(t)
	q := event.NewQueue(0)
	defer q.Close()

	reg := registry.New(registry.Config{Sink: q, Hooks: j.Hooks("s1", nil)})
	defer reg.Close()

	h, err := reg.Register(t.Context(), registry.KindScan, func(int) (any, error) { return struct{}{}, nil })
	require.NoError(t, err)
	reg.Deliver(registry.KindScan, h, registry.OutcomeSuccess, nil)
	reg.Fail(registry.KindScan, h, 1, "boom")

	rec, err := j.Get("s1", registry.KindScan, h)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, registry.ReasonFailed, rec.StopReason)
	assert.Equal(t, int64(2), rec.Deliveries)
	assert.Equal(t, registry.OutcomeFailure, rec.LastOutcome)
}

func TestJournalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Started("s1", sub(registry.KindScan, 1)))
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())
	assert.ErrorIs(t, j.Started("s1", sub(registry.KindScan, 2)), ErrClosed)

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()
	recs, err := j.List(Filter{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
