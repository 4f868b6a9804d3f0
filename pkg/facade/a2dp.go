package facade

import (
	"context"
	"errors"

	"github.com/rcbridge/rcbridge-go/pkg/a2dp"
	"github.com/rcbridge/rcbridge-go/pkg/rpc"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// PowerTest RPC methods.
const (
	MethodPowerTestStart  = "a2dpPowerTestStart"
	MethodPowerTestStatus = "a2dpPowerTestStatus"
)

// PowerTest exposes the process-wide A2DP power-test receiver.
type PowerTest struct {
	receiver *a2dp.Receiver
}

// NewPowerTest creates the facade. A nil receiver makes both methods fail
// with ErrPowerTestUnavailable.
func NewPowerTest(receiver *a2dp.Receiver) *PowerTest {
	return &PowerTest{receiver: receiver}
}

// Start parses extras and starts a run. The returned status is taken after
// the first alarm is scheduled.
func (pt *PowerTest) Start(ctx context.Context, extras map[string]any) (a2dp.Status, error) {
	if pt.receiver == nil {
		return a2dp.Status{}, ErrPowerTestUnavailable
	}

	p, err := a2dp.ParseParams(extras)
	if err != nil {
		return a2dp.Status{}, rpcError(wire.CodeInvalidArgument, err)
	}

	if err := pt.receiver.Start(ctx, p); err != nil {
		switch {
		case errors.Is(err, a2dp.ErrInvalidParams):
			return pt.receiver.Status(), rpcError(wire.CodeInvalidArgument, err)
		case errors.Is(err, a2dp.ErrNoDevice),
			errors.Is(err, a2dp.ErrAdapterUnavailable),
			errors.Is(err, a2dp.ErrCodecNotApplied):
			return pt.receiver.Status(), rpcError(wire.CodeUnavailable, err)
		}
		return pt.receiver.Status(), err
	}
	return pt.receiver.Status(), nil
}

// Status returns the receiver's status.
func (pt *PowerTest) Status() (a2dp.Status, error) {
	if pt.receiver == nil {
		return a2dp.Status{}, ErrPowerTestUnavailable
	}
	return pt.receiver.Status(), nil
}

// Register adds the power-test methods to r.
func (pt *PowerTest) Register(r rpc.Registrar) error {
	return register(r, map[string]rpc.Handler{
		MethodPowerTestStart: func(ctx context.Context, p wire.Params) (any, error) {
			extras, err := p.Object("extras")
			if err != nil {
				return nil, err
			}
			return pt.Start(ctx, extras)
		},
		MethodPowerTestStatus: func(context.Context, wire.Params) (any, error) {
			return pt.Status()
		},
	})
}
