package remote

import "github.com/jetkvm/remote/internal/logging"

var (
	remoteLogger   = logging.GetSubsystemLogger("remote")
	configLogger   = logging.GetSubsystemLogger("config")
	serialLogger   = logging.GetSubsystemLogger("serial")
	hidLogger      = logging.GetSubsystemLogger("hid")
	deviceLogger   = logging.GetSubsystemLogger("device")
	modeLogger     = logging.GetSubsystemLogger("mode")
	dispatchLogger = logging.GetSubsystemLogger("dispatch")
	displayLogger  = logging.GetSubsystemLogger("display")
	webLogger      = logging.GetSubsystemLogger("web")
)
