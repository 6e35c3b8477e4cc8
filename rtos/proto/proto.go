package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	default:
		return "unknown"
	}
}

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(b []byte, limit int) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	if len(b) > limit {
		b = b[:limit]
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
