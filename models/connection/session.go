package connection

import (
	"errors"
	"net"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

// Session wraps the websocket connection to the game server for one
// fleet setup session.
type Session struct {
	id      string
	conn    *websocket.Conn
	backOff time.Duration
}

func NewSession(conn *websocket.Conn) *Session {
	return &Session{
		conn:    conn,
		backOff: time.Second,
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) SetId(id string) {
	s.id = id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

// SetBackOff changes the base retry delay. Tests use a tiny one.
func (s *Session) SetBackOff(d time.Duration) {
	s.backOff = d
}

func (s *Session) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return s.conn.Close()
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Warn().Err(err).Msg("timeout error")
		return ConnRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn().Err(err).Msg("high server load/traffic error")
		return ConnRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		log.Warn().Err(err).Msg("close error")
		return ConnAbort
	}

	log.Error().Err(err).Msg("unexpected error")
	return ConnAbort
}

// WriteJSONWithRetry writes msg as a JSON frame and retries with a
// linear back off on transient errors.
func (s *Session) WriteJSONWithRetry(msg interface{}) error {
	var retries uint8

	for {
		err := s.conn.WriteJSON(msg)
		if err == nil {
			return nil
		}

		action := s.onConnErr(err)
		if action == ConnRetry && retries < maxWriteWsRetries {
			retries++
			log.Info().Str("session_id", s.id).Uint8("retry", retries).Msg("writing to ws failed; retrying")
			time.Sleep(time.Duration(retries*backOffFactor) * s.backOff)
			continue
		}

		return newConnErr(action, err)
	}
}

// ReadJSON blocks until the next message arrives or the deadline passes.
func (s *Session) ReadJSON(v interface{}, deadline time.Time) error {
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return newConnErr(ConnAbort, err)
	}

	if err := s.conn.ReadJSON(v); err != nil {
		return newConnErr(ConnAbort, err)
	}
	return nil
}
