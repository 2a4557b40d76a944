package connection

import "fmt"

// What a failed read or write means for the frame being exchanged.
const (
	ConnAbort uint8 = iota
	ConnRetry
)

// ConnErr reports a websocket failure together with the action it calls for.
type ConnErr struct {
	action uint8
	cause  error
}

func newConnErr(action uint8, cause error) *ConnErr {
	return &ConnErr{action: action, cause: cause}
}

func (c *ConnErr) Error() string {
	if c.action == ConnRetry {
		return fmt.Sprintf("connection error (retryable): %v", c.cause)
	}
	return fmt.Sprintf("connection error: %v", c.cause)
}

func (c *ConnErr) Unwrap() error {
	return c.cause
}

func (c *ConnErr) Action() uint8 {
	return c.action
}
