package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrSubmitFailed = "fleet submission failed"
)

var (
	ErrFleetIncomplete  = errors.New("fleet is not complete yet")
	ErrSessionEnded     = errors.New("setup session already ended")
	ErrStatsUnavailable = errors.New("no database configured for stats")
	ErrNilTokenSource   = errors.New("token source must not be nil")
)

// Raised when raw user input cannot be normalized into a board cell.
type OutOfRangeError struct {
	Field string
	Value string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s out of range:\t%q", e.Field, e.Value)
}

func ErrColumnOutOfRange(value string) error {
	return &OutOfRangeError{Field: "column", Value: value}
}

func ErrRowOutOfRange(value string) error {
	return &OutOfRangeError{Field: "row", Value: value}
}

// Raised when a ship size has no remaining instances left to place.
type DepletedError struct {
	Size int
}

func (e *DepletedError) Error() string {
	return fmt.Sprintf("no ships of size %d left to place", e.Size)
}

func ErrDepleted(size int) error {
	return &DepletedError{Size: size}
}

// SubmissionError carries the outcome of a failed call to the game API.
// Retryable is false only when resending the same fleet cannot succeed.
type SubmissionError struct {
	GameId    string
	Status    int
	Detail    string
	Retryable bool
}

func (e *SubmissionError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s - game: %s\tdesc: %s", ConstErrSubmitFailed, e.GameId, e.Detail)
	}
	return fmt.Sprintf("%s - game: %s\tstatus: %d\tdesc: %s", ConstErrSubmitFailed, e.GameId, e.Status, e.Detail)
}

func ErrSubmission(gameId string, status int, detail string) error {
	// 4xx besides timeouts and rate limits mean the payload or credential was refused
	retryable := status == 0 || status >= 500 || status == 408 || status == 429
	return &SubmissionError{GameId: gameId, Status: status, Detail: detail, Retryable: retryable}
}

func ErrInvalidState(op, state string) error {
	return fmt.Errorf("operation %s not allowed in state %s", op, state)
}

func ErrSizeNotSelectable(size int) error {
	return fmt.Errorf("ship size is not selectable:\t%d", size)
}

func ErrInvalidShipSize(size int) error {
	return fmt.Errorf("invalid ship size:\t%d", size)
}

func ErrInvalidOrientation(value string) error {
	return fmt.Errorf("invalid ship direction:\t%q", value)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("invalid type of development stage: %s", stage)
}

func ErrInvalidTransport(transport string) error {
	return fmt.Errorf("invalid submission transport: %s", transport)
}

func ErrMissingConfig(key string) error {
	return fmt.Errorf("required config is missing:\t%s", key)
}

func ErrInvalidCommand(cmd string) error {
	return fmt.Errorf("invalid command:\t%s", cmd)
}
