package sim

import (
	"errors"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/wifi"
)

// Simulator errors.
var (
	ErrUnknownListener = errors.New("listener not active")
	ErrInvalidPeriod   = errors.New("scan period must be positive")
	ErrNotConfigured   = errors.New("wifi change not configured")
	ErrClosed          = errors.New("scanner closed")
)

// DefaultJitter is the default maximum level change per tick, in dBm.
const DefaultJitter = 6

// AccessPoint is a simulated access point.
type AccessPoint struct {
	SSID         string
	BSSID        string
	Capabilities string
	Level        int
	Frequency    int
}

// Config configures a Scanner.
type Config struct {
	AccessPoints []AccessPoint

	// Interval overrides every requested period when positive.
	Interval time.Duration

	// Jitter is the maximum level change per tick. Zero selects DefaultJitter;
	// a negative value disables drift.
	Jitter int

	// Seed seeds the level drift. Zero uses the current time.
	Seed int64

	Logger *slog.Logger
}

// Scanner is a simulated wifi.Scanner.
type Scanner struct {
	config Config
	logger *slog.Logger
	start  time.Time

	mu     sync.Mutex
	rng    *rand.Rand
	levels map[string]int
	active map[any]chan struct{}
	change *wifi.ChangeConfig
	closed bool
	wg     sync.WaitGroup
}

// New creates a simulated scanner.
func New(cfg Config) *Scanner {
	if cfg.Jitter == 0 {
		cfg.Jitter = DefaultJitter
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	levels := make(map[string]int, len(cfg.AccessPoints))
	for _, ap := range cfg.AccessPoints {
		levels[ap.BSSID] = ap.Level
	}

	return &Scanner{
		config: cfg,
		logger: logger,
		start:  time.Now(),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		levels: levels,
		active: make(map[any]chan struct{}),
	}
}

// StartBackgroundScan implements wifi.Scanner.
func (s *Scanner) StartBackgroundScan(settings wifi.ScanSettings, l wifi.ScanListener) error {
	if settings.PeriodInMs <= 0 {
		return ErrInvalidPeriod
	}

	return s.run(l, s.period(settings.PeriodInMs), func() {
		results := s.scan(settings)
		l.OnResults(results)
		if settings.WantsFullResults() {
			for _, r := range results {
				l.OnFullResult(r)
			}
		}
	})
}

// StopBackgroundScan implements wifi.Scanner.
func (s *Scanner) StopBackgroundScan(l wifi.ScanListener) error {
	return s.stop(l)
}

// ConfigureWifiChange implements wifi.Scanner.
func (s *Scanner) ConfigureWifiChange(cfg wifi.ChangeConfig) error {
	if cfg.PeriodInMs <= 0 {
		return ErrInvalidPeriod
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cfg.Infos = slices.Clone(cfg.Infos)
	s.change = &cfg
	return nil
}

// StartTrackingWifiChange implements wifi.Scanner. It reports the tracked
// access points whose level left their band as changing, and reports
// quiescence once every tracked level is back inside its band.
func (s *Scanner) StartTrackingWifiChange(l wifi.ChangeListener) error {
	s.mu.Lock()
	cfg := s.change
	s.mu.Unlock()
	if cfg == nil {
		return ErrNotConfigured
	}

	changing := false
	return s.run(l, s.period(cfg.PeriodInMs), func() {
		seen := s.scan(wifi.ScanSettings{})
		var breaching []wifi.ScanResult
		for _, info := range cfg.Infos {
			r, ok := find(seen, info.BSSID)
			if ok && (r.Level < info.Low || r.Level > info.High) {
				breaching = append(breaching, r)
			}
		}

		threshold := max(cfg.MinApsBreachingThreshold, 1)
		switch {
		case len(breaching) >= threshold:
			changing = true
			l.OnChanging(breaching)
		case changing:
			changing = false
			l.OnQuiescence(tracked(seen, cfg.Infos))
		}
	})
}

// StopTrackingWifiChange implements wifi.Scanner.
func (s *Scanner) StopTrackingWifiChange(l wifi.ChangeListener) error {
	return s.stop(l)
}

// StartTrackingBssids implements wifi.Scanner. An access point is found when
// it is visible with a level inside its band, and lost once its level drops
// below apLostThreshold or it disappears.
func (s *Scanner) StartTrackingBssids(infos []wifi.BssidInfo, apLostThreshold int, l wifi.BssidListener) error {
	infos = slices.Clone(infos)
	found := make(map[string]bool, len(infos))

	return s.run(l, s.period(0), func() {
		seen := s.scan(wifi.ScanSettings{})
		var gained, lost []wifi.ScanResult
		for _, info := range infos {
			r, ok := find(seen, info.BSSID)
			switch {
			case !found[info.BSSID] && ok && r.Level >= info.Low && r.Level <= info.High:
				found[info.BSSID] = true
				gained = append(gained, r)
			case found[info.BSSID] && (!ok || r.Level < apLostThreshold):
				found[info.BSSID] = false
				if !ok {
					r = wifi.ScanResult{BSSID: info.BSSID}
				}
				lost = append(lost, r)
			}
		}
		if len(gained) > 0 {
			l.OnFound(gained)
		}
		if len(lost) > 0 {
			l.OnLost(lost)
		}
	})
}

// StopTrackingBssids implements wifi.Scanner.
func (s *Scanner) StopTrackingBssids(l wifi.BssidListener) error {
	return s.stop(l)
}

// Fail stops the subscription of l and reports a failure to it, as a platform
// would after an unrecoverable scan error.
func (s *Scanner) Fail(l wifi.ActionListener, reason int, description string) error {
	if err := s.stop(l); err != nil {
		return err
	}
	l.OnFailure(reason, description)
	return nil
}

// Active returns the number of running subscriptions.
func (s *Scanner) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Close stops every subscription and waits for their goroutines to exit.
func (s *Scanner) Close() {
	s.mu.Lock()
	s.closed = true
	for l, done := range s.active {
		close(done)
		delete(s.active, l)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// run acknowledges l and starts a goroutine calling tick every period.
func (s *Scanner) run(l wifi.ActionListener, period time.Duration, tick func()) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	done := make(chan struct{})
	s.active[l] = done
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		l.OnSuccess()

		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				tick()
			}
		}
	}()

	s.logger.Debug("sim subscription started", "period", period)
	return nil
}

func (s *Scanner) stop(l any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	done, ok := s.active[l]
	if !ok {
		return ErrUnknownListener
	}
	close(done)
	delete(s.active, l)
	return nil
}

func (s *Scanner) period(ms int) time.Duration {
	if s.config.Interval > 0 {
		return s.config.Interval
	}
	if ms <= 0 {
		return time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

// scan drifts every level and returns the access points matching settings.
func (s *Scanner) scan(settings wifi.ScanSettings) []wifi.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Since(s.start).Microseconds()
	results := make([]wifi.ScanResult, 0, len(s.config.AccessPoints))
	for _, ap := range s.config.AccessPoints {
		level := s.levels[ap.BSSID]
		if s.config.Jitter > 0 {
			level += s.rng.Intn(2*s.config.Jitter+1) - s.config.Jitter
			level = min(max(level, -100), -20)
			s.levels[ap.BSSID] = level
		}

		if !matches(settings, ap.Frequency) {
			continue
		}
		results = append(results, wifi.ScanResult{
			SSID:         ap.SSID,
			BSSID:        ap.BSSID,
			Capabilities: ap.Capabilities,
			Level:        level,
			Frequency:    ap.Frequency,
			Timestamp:    ts,
		})
	}

	if n := settings.NumBssidsPerScan; n > 0 && len(results) > n {
		slices.SortFunc(results, func(a, b wifi.ScanResult) int { return b.Level - a.Level })
		results = results[:n]
	}
	return results
}

func matches(settings wifi.ScanSettings, freq int) bool {
	if len(settings.Channels) > 0 {
		return slices.Contains(settings.Channels, freq)
	}
	switch settings.Band {
	case wifi.Band24GHz:
		return freq < 3000
	case wifi.Band5GHz, wifi.Band5GHzDFS, wifi.Band5GHzWithDFS:
		return freq >= 5000
	}
	return true
}

func find(results []wifi.ScanResult, bssid string) (wifi.ScanResult, bool) {
	for _, r := range results {
		if r.BSSID == bssid {
			return r, true
		}
	}
	return wifi.ScanResult{}, false
}

func tracked(results []wifi.ScanResult, infos []wifi.BssidInfo) []wifi.ScanResult {
	var out []wifi.ScanResult
	for _, info := range infos {
		if r, ok := find(results, info.BSSID); ok {
			out = append(out, r)
		}
	}
	return out
}

// Compile-time interface satisfaction check.
var _ wifi.Scanner = (*Scanner)(nil)
