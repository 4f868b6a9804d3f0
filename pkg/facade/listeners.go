package facade

import (
	"log/slog"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/registry"
	"github.com/rcbridge/rcbridge-go/pkg/wifi"
)

// listener turns platform callbacks for one subscription into client events.
type listener struct {
	reg    *registry.Registry
	kind   registry.Kind
	handle int
	logger *slog.Logger
}

func (l *listener) deliver(outcome string, data map[string]any) {
	ev := l.reg.Deliver(l.kind, l.handle, outcome, data)
	l.logger.Debug("event posted", "name", ev.Name)
}

func (l *listener) deliverResults(outcome string, results []wifi.ScanResult) {
	l.deliver(outcome, map[string]any{event.KeyResults: results})
}

func (l *listener) OnSuccess() {
	l.deliver(registry.OutcomeSuccess, nil)
}

func (l *listener) OnFailure(reason int, description string) {
	l.logger.Warn("platform reported failure",
		"kind", l.kind.String(),
		"handle", l.handle,
		"reason", reason,
		"description", description)
	l.reg.Fail(l.kind, l.handle, reason, description)
}

type scanListener struct{ listener }

func (l *scanListener) OnPeriodChanged(periodInMs int) {
	l.deliver(registry.OutcomePeriodChanged, map[string]any{event.KeyNewPeriod: periodInMs})
}

// OnResults caches the batch before posting it, so a client that sees the
// event can read the same batch back.
func (l *scanListener) OnResults(results []wifi.ScanResult) {
	l.reg.StoreResults(l.handle, results)
	l.deliverResults(registry.OutcomeResults, results)
}

// OnFullResult posts a single result. Full results are not cached.
func (l *scanListener) OnFullResult(result wifi.ScanResult) {
	l.deliverResults(registry.OutcomeFullResult, []wifi.ScanResult{result})
}

type changeListener struct{ listener }

func (l *changeListener) OnChanging(results []wifi.ScanResult) {
	l.deliverResults(registry.OutcomeChanging, results)
}

func (l *changeListener) OnQuiescence(results []wifi.ScanResult) {
	l.deliverResults(registry.OutcomeQuiescence, results)
}

type bssidListener struct{ listener }

func (l *bssidListener) OnFound(results []wifi.ScanResult) {
	l.deliverResults(registry.OutcomeBssidFound, results)
}

func (l *bssidListener) OnLost(results []wifi.ScanResult) {
	l.deliverResults(registry.OutcomeBssidLost, results)
}

var (
	_ wifi.ScanListener   = (*scanListener)(nil)
	_ wifi.ChangeListener = (*changeListener)(nil)
	_ wifi.BssidListener  = (*bssidListener)(nil)
)
