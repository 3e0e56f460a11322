package bootstrap

// State is the startup phase of the gateway.
type State int32

// Startup phases. Failed is terminal.
const (
	Disconnected State = iota
	Connecting
	Connected
	IndexReady
	Failed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "DISCONNECTED"
	case Connecting:
		return "CONNECTING"
	case Connected:
		return "CONNECTED"
	case IndexReady:
		return "INDEX_READY"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
