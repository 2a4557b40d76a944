package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-fleet/api"
	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

// Recorder keeps a log of submission attempts. Failing to record never
// fails the submission itself.
type Recorder interface {
	RecordSubmission(ctx context.Context, gameId string, ships []mb.Ship, submitErr error) error
}

// Session is one pre-game fleet setup for a single game.
type Session struct {
	gameId    string
	engine    *mb.PlacementEngine
	submitter api.Submitter
	recorder  Recorder
}

type Option func(*Session)

func WithRecorder(recorder Recorder) Option {
	return func(s *Session) {
		s.recorder = recorder
	}
}

func New(gameId string, engine *mb.PlacementEngine, submitter api.Submitter, optFuncs ...Option) *Session {
	s := Session{
		gameId:    gameId,
		engine:    engine,
		submitter: submitter,
	}
	for _, opt := range optFuncs {
		opt(&s)
	}
	return &s
}

func (s *Session) GameId() string {
	return s.gameId
}

func (s *Session) Engine() *mb.PlacementEngine {
	return s.engine
}

func (s *Session) Ended() bool {
	return s.engine.State() == mb.StateSubmitted
}

// Submit sends the completed fleet. On failure the engine stays in
// FLEET_COMPLETE with its fleet intact so the call can be repeated.
func (s *Session) Submit(ctx context.Context) error {
	if s.Ended() {
		return cerr.ErrSessionEnded
	}
	if !s.engine.ReadyToSubmit() {
		return cerr.ErrFleetIncomplete
	}

	fleet := s.engine.Fleet()
	submitErr := s.submitter.SubmitFleet(ctx, s.gameId, fleet)
	s.record(ctx, fleet, submitErr)

	if submitErr != nil {
		log.Error().Err(submitErr).Str("game_id", s.gameId).Bool("retryable", IsRetryable(submitErr)).Msg("fleet submission failed")
		if err := s.engine.ReportSubmissionFailure(submitErr); err != nil {
			return err
		}
		return submitErr
	}

	return s.engine.MarkSubmitted()
}

func (s *Session) record(ctx context.Context, fleet []mb.Ship, submitErr error) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordSubmission(ctx, s.gameId, fleet, submitErr); err != nil {
		log.Warn().Err(err).Str("game_id", s.gameId).Msg("failed to record submission")
	}
}

// IsRetryable reports whether resubmitting the same fleet may succeed.
// Errors that are not submission errors (e.g. a cancelled context) are
// treated as retryable.
func IsRetryable(err error) bool {
	var subErr *cerr.SubmissionError
	if errors.As(err, &subErr) {
		return subErr.Retryable
	}
	return err != nil
}
