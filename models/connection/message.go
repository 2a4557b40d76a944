package connection

// Message is the envelope of every websocket frame exchanged with the
// game server. Code is one of the signal codes.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// ErrDetail is the reason the server attached to the frame, or fallback
// when it sent none.
func (m Message[T]) ErrDetail(fallback string) string {
	if m.Error == nil {
		return fallback
	}
	if m.Error.ErrorDetails != "" {
		return m.Error.ErrorDetails
	}
	if m.Error.Message != "" {
		return m.Error.Message
	}
	return fallback
}
