package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
	mc "github.com/saeidalz13/battleship-fleet/models/connection"
)

const defaultReadyWait = time.Second * 10

// WsSubmitter submits the fleet over the game server websocket. Every
// submission opens its own connection: the server greets with a
// session id, the client sends CodeReady with the fleet and the server
// answers with CodeReadyAccepted or CodeReadyRejected.
type WsSubmitter struct {
	wsURL     string
	tokens    TokenSource
	dialer    websocket.Dialer
	readyWait time.Duration
	backOff   time.Duration
}

var _ Submitter = (*WsSubmitter)(nil)

type WsOption func(*WsSubmitter) error

func NewWsSubmitter(wsURL string, tokens TokenSource, optFuncs ...WsOption) (*WsSubmitter, error) {
	if tokens == nil {
		return nil, cerr.ErrNilTokenSource
	}

	ws := WsSubmitter{
		wsURL:  wsURL,
		tokens: tokens,
		dialer: websocket.Dialer{
			// good average time since this is not a high-latency operation
			HandshakeTimeout: time.Second * 5,
			ReadBufferSize:   2048,
			WriteBufferSize:  2048,
		},
		readyWait: defaultReadyWait,
		backOff:   time.Second,
	}
	for _, opt := range optFuncs {
		if err := opt(&ws); err != nil {
			return nil, err
		}
	}
	return &ws, nil
}

func WithReadyWait(d time.Duration) WsOption {
	return func(ws *WsSubmitter) error {
		ws.readyWait = d
		return nil
	}
}

func WithWriteBackOff(d time.Duration) WsOption {
	return func(ws *WsSubmitter) error {
		ws.backOff = d
		return nil
	}
}

func (ws *WsSubmitter) SubmitFleet(ctx context.Context, gameId string, ships []mb.Ship) error {
	token, err := ws.tokens.Token(ctx)
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := ws.dialer.DialContext(ctx, ws.wsURL, header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return cerr.ErrSubmission(gameId, status, err.Error())
	}

	session := mc.NewSession(conn)
	session.SetBackOff(ws.backOff)
	defer session.Close()

	deadline := time.Now().Add(ws.readyWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	var greeting mc.Message[mc.RespSessionId]
	if err := session.ReadJSON(&greeting, deadline); err != nil {
		return cerr.ErrSubmission(gameId, 0, err.Error())
	}
	session.SetId(greeting.Payload.SessionID)

	reqFleet := mc.NewReqSubmitFleet(ships)
	reqFleet.GameId = gameId
	msg := mc.NewMessage[mc.ReqSubmitFleet](mc.CodeReady)
	msg.AddPayload(reqFleet)

	if err := session.WriteJSONWithRetry(msg); err != nil {
		return cerr.ErrSubmission(gameId, 0, err.Error())
	}

	var reply mc.Message[mc.RespSubmitFleet]
	if err := session.ReadJSON(&reply, deadline); err != nil {
		return cerr.ErrSubmission(gameId, 0, err.Error())
	}

	switch reply.Code {
	case mc.CodeReadyAccepted:
		log.Info().Str("game_id", gameId).Str("session_id", session.Id()).Int("ships", len(ships)).Msg("fleet submitted")
		return nil

	case mc.CodeReadyRejected:
		detail := reply.ErrDetail("fleet rejected")
		log.Error().Str("game_id", gameId).Str("session_id", session.Id()).Str("detail", detail).Msg("fleet submission refused")
		return &cerr.SubmissionError{GameId: gameId, Detail: detail, Retryable: false}

	default:
		return cerr.ErrSubmission(gameId, 0, "unexpected reply code")
	}
}
