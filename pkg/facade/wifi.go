package facade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rcbridge/rcbridge-go/pkg/registry"
	"github.com/rcbridge/rcbridge-go/pkg/rpc"
	"github.com/rcbridge/rcbridge-go/pkg/wifi"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// WifiScanner RPC methods.
const (
	MethodStartScan           = "wifiScannerStartScan"
	MethodStopScan            = "wifiScannerStopScan"
	MethodListScans           = "wifiScannerListScans"
	MethodGetScanResults      = "wifiScannerGetScanResults"
	MethodStartTrackingChange = "wifiScannerStartTrackingChange"
	MethodStopTrackingChange  = "wifiScannerStopTrackingChange"
	MethodStartTrackingBssids = "wifiScannerStartTrackingBssids"
	MethodStopTrackingBssids  = "wifiScannerStopTrackingBssids"
	MethodShutdown            = "wifiScannerShutdown"
)

// ChangeTracking holds the parameters of a change tracking request.
type ChangeTracking struct {
	BssidSpecs               []string
	RssiSampleSize           int
	LostApSampleSize         int
	UnchangedSampleSize      int
	MinApsBreachingThreshold int
	PeriodInMs               int
}

// WifiScanner binds a platform scanner to one session's registry.
type WifiScanner struct {
	scanner wifi.Scanner
	reg     *registry.Registry
	logger  *slog.Logger

	// mu serializes platform start and stop calls.
	mu sync.Mutex
}

// NewWifiScanner creates a facade. A nil scanner makes every operation fail
// with ErrScannerUnavailable.
func NewWifiScanner(scanner wifi.Scanner, reg *registry.Registry, logger *slog.Logger) *WifiScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &WifiScanner{
		scanner: scanner,
		reg:     reg,
		logger:  logger.With("facade", "wifi"),
	}
}

// StartScan registers a scan subscription and starts a background scan for
// it. The returned handle names the subscription's events.
func (w *WifiScanner) StartScan(ctx context.Context, settings wifi.ScanSettings) (int, error) {
	if w.scanner == nil {
		return 0, ErrScannerUnavailable
	}

	var l *scanListener
	h, err := w.reg.Register(ctx, registry.KindScan, func(handle int) (any, error) {
		l = &scanListener{w.listener(registry.KindScan, handle)}
		return l, nil
	})
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	err = w.scanner.StartBackgroundScan(settings, l)
	w.mu.Unlock()
	if err != nil {
		w.rollback(registry.KindScan, h)
		return 0, fmt.Errorf("start background scan: %w", err)
	}

	w.logger.Info("scan started", "handle", h, "periodInMs", settings.PeriodInMs, "band", settings.Band)
	return h, nil
}

// StopScan stops the scan with handle and drops its cached results.
func (w *WifiScanner) StopScan(handle int) error {
	return w.stop(registry.KindScan, handle)
}

// ScanHandles returns the active scan handles in ascending order.
func (w *WifiScanner) ScanHandles() []int {
	return w.reg.Handles(registry.KindScan)
}

// LastResults returns the most recent result batch of an active scan.
func (w *WifiScanner) LastResults(handle int) ([]wifi.ScanResult, error) {
	return w.reg.LastResults(handle)
}

// StartChangeTracking configures change tracking for the given access points
// and starts it.
func (w *WifiScanner) StartChangeTracking(ctx context.Context, req ChangeTracking) (int, error) {
	if w.scanner == nil {
		return 0, ErrScannerUnavailable
	}

	infos, err := wifi.ParseChangeSpecs(req.BssidSpecs, req.UnchangedSampleSize)
	if err != nil {
		return 0, err
	}
	cfg := wifi.ChangeConfig{
		RssiSampleSize:           req.RssiSampleSize,
		LostApSampleSize:         req.LostApSampleSize,
		UnchangedSampleSize:      req.UnchangedSampleSize,
		MinApsBreachingThreshold: req.MinApsBreachingThreshold,
		PeriodInMs:               req.PeriodInMs,
		Infos:                    infos,
	}

	var l *changeListener
	h, err := w.reg.Register(ctx, registry.KindChange, func(handle int) (any, error) {
		l = &changeListener{w.listener(registry.KindChange, handle)}
		return l, nil
	})
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	err = w.scanner.ConfigureWifiChange(cfg)
	if err == nil {
		err = w.scanner.StartTrackingWifiChange(l)
	}
	w.mu.Unlock()
	if err != nil {
		w.rollback(registry.KindChange, h)
		return 0, fmt.Errorf("start change tracking: %w", err)
	}

	w.logger.Info("change tracking started", "handle", h, "aps", len(infos))
	return h, nil
}

// StopChangeTracking stops change tracking with handle.
func (w *WifiScanner) StopChangeTracking(handle int) error {
	return w.stop(registry.KindChange, handle)
}

// StartBssidTracking starts tracking the given access points.
func (w *WifiScanner) StartBssidTracking(ctx context.Context, specs []string, apLostThreshold int) (int, error) {
	if w.scanner == nil {
		return 0, ErrScannerUnavailable
	}

	infos, err := wifi.ParseBssidSpecs(specs)
	if err != nil {
		return 0, err
	}

	var l *bssidListener
	h, err := w.reg.Register(ctx, registry.KindBssid, func(handle int) (any, error) {
		l = &bssidListener{w.listener(registry.KindBssid, handle)}
		return l, nil
	})
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	err = w.scanner.StartTrackingBssids(infos, apLostThreshold, l)
	w.mu.Unlock()
	if err != nil {
		w.rollback(registry.KindBssid, h)
		return 0, fmt.Errorf("start bssid tracking: %w", err)
	}

	w.logger.Info("bssid tracking started", "handle", h, "aps", len(infos), "apLostThreshold", apLostThreshold)
	return h, nil
}

// StopBssidTracking stops bssid tracking with handle.
func (w *WifiScanner) StopBssidTracking(handle int) error {
	return w.stop(registry.KindBssid, handle)
}

// Shutdown stops every subscription of every kind. Stop failures are logged
// by the registry; the registry is empty afterwards.
func (w *WifiScanner) Shutdown() {
	n := w.reg.Len()
	w.reg.Shutdown(w.platformStop)
	if n > 0 {
		w.logger.Info("subscriptions shut down", "count", n)
	}
}

func (w *WifiScanner) listener(kind registry.Kind, handle int) listener {
	return listener{reg: w.reg, kind: kind, handle: handle, logger: w.logger}
}

// stop removes the subscription first so callbacks racing with the stop no
// longer count against it, then stops the platform side.
func (w *WifiScanner) stop(kind registry.Kind, handle int) error {
	if w.scanner == nil {
		return ErrScannerUnavailable
	}
	sub, err := w.reg.Unregister(kind, handle)
	if err != nil {
		return fmt.Errorf("%s %d: %w", kind, handle, err)
	}
	if err := w.platformStop(sub); err != nil {
		return fmt.Errorf("stop %s %d: %w", kind, handle, err)
	}
	w.logger.Info("subscription stopped", "kind", kind.String(), "handle", handle)
	return nil
}

func (w *WifiScanner) platformStop(sub registry.Subscription) error {
	if w.scanner == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch l := sub.Listener.(type) {
	case *scanListener:
		return w.scanner.StopBackgroundScan(l)
	case *changeListener:
		return w.scanner.StopTrackingWifiChange(l)
	case *bssidListener:
		return w.scanner.StopTrackingBssids(l)
	}
	return ErrUnexpectedListener
}

func (w *WifiScanner) rollback(kind registry.Kind, handle int) {
	// A synchronous failure callback may already have removed a scan.
	if _, err := w.reg.Remove(kind, handle, registry.ReasonRollback); err != nil && !errors.Is(err, registry.ErrNotFound) {
		w.logger.Warn("rollback failed", "kind", kind.String(), "handle", handle, "error", err)
	}
}

// Register adds the WifiScanner methods to r.
func (w *WifiScanner) Register(r rpc.Registrar) error {
	handlers := map[string]rpc.Handler{
		MethodStartScan:           w.rpcStartScan,
		MethodStopScan:            w.withHandle(w.StopScan),
		MethodListScans:           w.rpcListScans,
		MethodGetScanResults:      w.rpcGetScanResults,
		MethodStartTrackingChange: w.rpcStartTrackingChange,
		MethodStopTrackingChange:  w.withHandle(w.StopChangeTracking),
		MethodStartTrackingBssids: w.rpcStartTrackingBssids,
		MethodStopTrackingBssids:  w.withHandle(w.StopBssidTracking),
		MethodShutdown:            w.rpcShutdown,
	}
	return register(r, handlers)
}

func (w *WifiScanner) rpcStartScan(ctx context.Context, p wire.Params) (any, error) {
	m, err := p.Object("settings")
	if err != nil {
		return nil, err
	}
	settings, err := wifi.ParseScanSettings(m)
	if err != nil {
		return nil, err
	}
	return w.StartScan(ctx, settings)
}

func (w *WifiScanner) rpcListScans(context.Context, wire.Params) (any, error) {
	return w.ScanHandles(), nil
}

func (w *WifiScanner) rpcGetScanResults(_ context.Context, p wire.Params) (any, error) {
	h, err := p.Int("handle")
	if err != nil {
		return nil, err
	}
	return w.LastResults(h)
}

func (w *WifiScanner) rpcStartTrackingChange(ctx context.Context, p wire.Params) (any, error) {
	var req ChangeTracking
	var err error
	if req.BssidSpecs, err = p.Strings("bssidSpecs"); err != nil {
		return nil, err
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"rssiSS", &req.RssiSampleSize},
		{"lostApSS", &req.LostApSampleSize},
		{"unchangedSS", &req.UnchangedSampleSize},
		{"minApsBreachingThreshold", &req.MinApsBreachingThreshold},
		{"periodInMs", &req.PeriodInMs},
	}
	for _, f := range ints {
		if *f.dst, err = p.Int(f.key); err != nil {
			return nil, err
		}
	}
	return w.StartChangeTracking(ctx, req)
}

func (w *WifiScanner) rpcStartTrackingBssids(ctx context.Context, p wire.Params) (any, error) {
	specs, err := p.Strings("bssidSpecs")
	if err != nil {
		return nil, err
	}
	threshold, err := p.Int("apLostThreshold")
	if err != nil {
		return nil, err
	}
	return w.StartBssidTracking(ctx, specs, threshold)
}

func (w *WifiScanner) rpcShutdown(context.Context, wire.Params) (any, error) {
	w.Shutdown()
	return nil, nil
}

func (w *WifiScanner) withHandle(fn func(int) error) rpc.Handler {
	return func(_ context.Context, p wire.Params) (any, error) {
		h, err := p.Int("handle")
		if err != nil {
			return nil, err
		}
		return nil, fn(h)
	}
}

func register(r rpc.Registrar, handlers map[string]rpc.Handler) error {
	for method, h := range handlers {
		if err := r.Handle(method, h); err != nil {
			return err
		}
	}
	return nil
}
