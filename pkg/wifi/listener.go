package wifi

// ActionListener receives the outcome of a start request.
type ActionListener interface {
	OnSuccess()
	OnFailure(reason int, description string)
}

// ScanListener receives background scan callbacks.
type ScanListener interface {
	ActionListener
	OnPeriodChanged(periodInMs int)
	OnResults(results []ScanResult)
	OnFullResult(result ScanResult)
}

// ChangeListener receives wifi change tracking callbacks.
type ChangeListener interface {
	ActionListener
	OnChanging(results []ScanResult)
	OnQuiescence(results []ScanResult)
}

// BssidListener receives BSSID tracking callbacks.
type BssidListener interface {
	ActionListener
	OnFound(results []ScanResult)
	OnLost(results []ScanResult)
}

// Scanner is the platform scanning subsystem.
//
// Listener callbacks may be invoked from any goroutine, including before the
// start call returns. Implementations need not be safe for concurrent use;
// callers serialize start calls.
type Scanner interface {
	StartBackgroundScan(settings ScanSettings, l ScanListener) error
	StopBackgroundScan(l ScanListener) error

	ConfigureWifiChange(cfg ChangeConfig) error
	StartTrackingWifiChange(l ChangeListener) error
	StopTrackingWifiChange(l ChangeListener) error

	StartTrackingBssids(infos []BssidInfo, apLostThreshold int, l BssidListener) error
	StopTrackingBssids(l BssidListener) error
}
