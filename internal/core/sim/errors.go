package sim

import "errors"

// Rejected intents. None of them change any state.
var (
	ErrNoCaptureDevices   = errors.New("no capture devices left")
	ErrDeviceUnaffordable = errors.New("not enough currency for device")
	ErrUnknownDevice      = errors.New("unknown device")
	ErrNoBonusDevices     = errors.New("no bonus devices left")
	ErrNoOpponent         = errors.New("opponent disabled")
	ErrSessionOver        = errors.New("session is over")
)
