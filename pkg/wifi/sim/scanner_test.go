package sim

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/wifi"
)

type recorder struct {
	mu        sync.Mutex
	success   int
	failures  []string
	batches   [][]wifi.ScanResult
	full      []wifi.ScanResult
	changing  int
	quiet     int
	found     []wifi.ScanResult
	lost      []wifi.ScanResult
	gotResult chan struct{}
}

func newRecorder() *recorder {
	return &recorder{gotResult: make(chan struct{}, 64)}
}

func (r *recorder) OnSuccess() {
	r.mu.Lock()
	r.success++
	r.mu.Unlock()
}

func (r *recorder) OnFailure(reason int, description string) {
	r.mu.Lock()
	r.failures = append(r.failures, description)
	r.mu.Unlock()
}

func (r *recorder) OnPeriodChanged(int) {}

func (r *recorder) OnResults(results []wifi.ScanResult) {
	r.mu.Lock()
	r.batches = append(r.batches, results)
	r.mu.Unlock()
	r.signal()
}

func (r *recorder) OnFullResult(result wifi.ScanResult) {
	r.mu.Lock()
	r.full = append(r.full, result)
	r.mu.Unlock()
}

func (r *recorder) OnChanging([]wifi.ScanResult) {
	r.mu.Lock()
	r.changing++
	r.mu.Unlock()
	r.signal()
}

func (r *recorder) OnQuiescence([]wifi.ScanResult) {
	r.mu.Lock()
	r.quiet++
	r.mu.Unlock()
}

func (r *recorder) OnFound(results []wifi.ScanResult) {
	r.mu.Lock()
	r.found = append(r.found, results...)
	r.mu.Unlock()
	r.signal()
}

func (r *recorder) OnLost(results []wifi.ScanResult) {
	r.mu.Lock()
	r.lost = append(r.lost, results...)
	r.mu.Unlock()
}

func (r *recorder) signal() {
	select {
	case r.gotResult <- struct{}{}:
	default:
	}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.gotResult:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for callback")
	}
}

func testAPs() []AccessPoint {
	return []AccessPoint{
		{SSID: "home", BSSID: "aa:aa:aa:aa:aa:01", Level: -45, Frequency: 2412},
		{SSID: "office", BSSID: "aa:aa:aa:aa:aa:02", Level: -60, Frequency: 5180},
		{SSID: "cafe", BSSID: "aa:aa:aa:aa:aa:03", Level: -75, Frequency: 2437},
	}
}

func TestBackgroundScanDeliversResults(t *testing.T) {
	s := New(Config{AccessPoints: testAPs(), Interval: 5 * time.Millisecond, Jitter: -1})
	defer s.Close()

	rec := newRecorder()
	settings := wifi.ScanSettings{PeriodInMs: 1000, ReportEvents: wifi.ReportEachScan | wifi.ReportFullResult}
	if err := s.StartBackgroundScan(settings, rec); err != nil {
		t.Fatalf("StartBackgroundScan() error = %v", err)
	}
	rec.wait(t)

	if err := s.StopBackgroundScan(rec); err != nil {
		t.Fatalf("StopBackgroundScan() error = %v", err)
	}
	s.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.success != 1 {
		t.Errorf("OnSuccess calls = %d, want 1", rec.success)
	}
	if len(rec.batches[0]) != 3 {
		t.Errorf("batch size = %d, want 3", len(rec.batches[0]))
	}
	if rec.batches[0][0].Level != -45 {
		t.Errorf("Level = %d, want -45 with drift disabled", rec.batches[0][0].Level)
	}
	if len(rec.full) < 3 {
		t.Errorf("full results = %d, want >= 3", len(rec.full))
	}
}

func TestBackgroundScanFiltersBandAndCount(t *testing.T) {
	s := New(Config{AccessPoints: testAPs(), Interval: 5 * time.Millisecond, Jitter: -1})
	defer s.Close()

	rec := newRecorder()
	settings := wifi.ScanSettings{PeriodInMs: 10, Band: wifi.Band24GHz, NumBssidsPerScan: 1}
	if err := s.StartBackgroundScan(settings, rec); err != nil {
		t.Fatalf("StartBackgroundScan() error = %v", err)
	}
	rec.wait(t)
	s.StopBackgroundScan(rec)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	batch := rec.batches[0]
	if len(batch) != 1 || batch[0].SSID != "home" {
		t.Errorf("batch = %+v, want strongest 2.4GHz AP only", batch)
	}
}

func TestStartBackgroundScanInvalidPeriod(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	if err := s.StartBackgroundScan(wifi.ScanSettings{}, newRecorder()); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("StartBackgroundScan() error = %v, want ErrInvalidPeriod", err)
	}
}

func TestStopUnknownListener(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	if err := s.StopBackgroundScan(newRecorder()); !errors.Is(err, ErrUnknownListener) {
		t.Errorf("StopBackgroundScan() error = %v, want ErrUnknownListener", err)
	}
}

func TestChangeTrackingRequiresConfigure(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	if err := s.StartTrackingWifiChange(newRecorder()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("StartTrackingWifiChange() error = %v, want ErrNotConfigured", err)
	}
}

func TestChangeTrackingReportsBreach(t *testing.T) {
	s := New(Config{AccessPoints: testAPs(), Interval: 5 * time.Millisecond, Jitter: -1})
	defer s.Close()

	err := s.ConfigureWifiChange(wifi.ChangeConfig{
		PeriodInMs: 100,
		Infos:      []wifi.BssidInfo{{BSSID: "aa:aa:aa:aa:aa:01", Low: -40, High: -30}},
	})
	if err != nil {
		t.Fatalf("ConfigureWifiChange() error = %v", err)
	}

	rec := newRecorder()
	if err := s.StartTrackingWifiChange(rec); err != nil {
		t.Fatalf("StartTrackingWifiChange() error = %v", err)
	}
	rec.wait(t)
	s.StopTrackingWifiChange(rec)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.changing == 0 {
		t.Error("OnChanging not called for AP outside its band")
	}
}

func TestBssidTrackingFound(t *testing.T) {
	s := New(Config{AccessPoints: testAPs(), Interval: 5 * time.Millisecond, Jitter: -1})
	defer s.Close()

	rec := newRecorder()
	infos := []wifi.BssidInfo{{BSSID: "aa:aa:aa:aa:aa:02", Low: -70, High: -50}}
	if err := s.StartTrackingBssids(infos, -90, rec); err != nil {
		t.Fatalf("StartTrackingBssids() error = %v", err)
	}
	rec.wait(t)
	s.StopTrackingBssids(rec)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.found) != 1 || rec.found[0].SSID != "office" {
		t.Errorf("found = %+v, want office once", rec.found)
	}
}

func TestFailStopsAndReports(t *testing.T) {
	s := New(Config{AccessPoints: testAPs(), Interval: time.Hour})
	defer s.Close()

	rec := newRecorder()
	if err := s.StartBackgroundScan(wifi.ScanSettings{PeriodInMs: 10}, rec); err != nil {
		t.Fatalf("StartBackgroundScan() error = %v", err)
	}
	if err := s.Fail(rec, 2, "hardware busy"); err != nil {
		t.Fatalf("Fail() error = %v", err)
	}
	if s.Active() != 0 {
		t.Errorf("Active() = %d, want 0", s.Active())
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.failures) != 1 || rec.failures[0] != "hardware busy" {
		t.Errorf("failures = %v", rec.failures)
	}
}

func TestCloseRejectsNewSubscriptions(t *testing.T) {
	s := New(Config{Interval: time.Hour})
	rec := newRecorder()
	s.StartBackgroundScan(wifi.ScanSettings{PeriodInMs: 10}, rec)
	s.Close()

	if s.Active() != 0 {
		t.Errorf("Active() after Close = %d, want 0", s.Active())
	}
	if err := s.StartBackgroundScan(wifi.ScanSettings{PeriodInMs: 10}, newRecorder()); !errors.Is(err, ErrClosed) {
		t.Errorf("StartBackgroundScan() after Close error = %v, want ErrClosed", err)
	}
}
