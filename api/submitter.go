package api

import (
	"context"

	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

const (
	TransportHTTP = "http"
	TransportWs   = "ws"
)

// Submitter hands a completed fleet to the game server.
type Submitter interface {
	SubmitFleet(ctx context.Context, gameId string, ships []mb.Ship) error
}

// TokenSource supplies the bearer credential of the signed in player.
// The token is forwarded as is and never inspected.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type StaticToken string

func (t StaticToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}

var _ TokenSource = StaticToken("")
