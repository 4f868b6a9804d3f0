package facade

import (
	"github.com/rcbridge/rcbridge-go/pkg/a2dp"
	"github.com/rcbridge/rcbridge-go/pkg/rpc"
	"github.com/rcbridge/rcbridge-go/pkg/version"
	"github.com/rcbridge/rcbridge-go/pkg/wifi"
)

// Deps are the process-wide services the facades are built on.
type Deps struct {
	// Scanner is the platform scanner. Nil disables the WifiScanner methods.
	Scanner wifi.Scanner

	// PowerTest is the shared receiver. Nil disables the power-test methods.
	PowerTest *a2dp.Receiver

	// Manifest describes methods for rpcDescribe.
	Manifest *version.Manifest
}

// Setup returns the session setup that registers every facade. Closing the
// session shuts down its WifiScanner subscriptions.
func Setup(deps Deps) rpc.SetupFunc {
	return func(s *rpc.Session) error {
		wifiFacade := NewWifiScanner(deps.Scanner, s.Registry(), s.Logger())

		registrars := []interface{ Register(rpc.Registrar) error }{
			wifiFacade,
			NewEvents(s.Queue(), s),
			NewPowerTest(deps.PowerTest),
			NewCatalog(deps.Manifest, s.Methods),
		}
		for _, f := range registrars {
			if err := f.Register(s); err != nil {
				return err
			}
		}

		s.OnClose(wifiFacade.Shutdown)
		return nil
	}
}
