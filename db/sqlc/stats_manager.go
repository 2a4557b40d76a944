package sqlc

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

const (
	OutcomeAccepted = "ACCEPTED"

	statsQueueSize = 64
)

// StatsManager counts placement outcomes. It observes the placement
// engine and bumps one counter per accepted or rejected attempt. The
// writes happen on a worker goroutine so placement never waits on the
// database.
type StatsManager struct {
	queries  Querier
	outcomes chan string
	done     chan struct{}

	mu     sync.Mutex
	closed bool
}

var _ mb.Observer = (*StatsManager)(nil)

func NewStatsManager(queries Querier) *StatsManager {
	s := &StatsManager{
		queries:  queries,
		outcomes: make(chan string, statsQueueSize),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *StatsManager) OnTransition(_ *mb.PlacementEngine, t mb.Transition) {
	var outcome string
	switch t.To {
	case mb.StateAccepted:
		outcome = OutcomeAccepted
	case mb.StateRejected:
		outcome = t.Verdict.Reason.String()
	default:
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.outcomes <- outcome:
	default:
		log.Warn().Str("outcome", outcome).Msg("placement stats queue full; outcome dropped")
	}
}

func (s *StatsManager) run() {
	defer close(s.done)

	for outcome := range s.outcomes {
		ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
		if err := s.queries.IncrementPlacementStat(ctx, outcome); err != nil {
			log.Warn().Err(err).Str("outcome", outcome).Msg("failed to record placement stat")
		}
		cancel()
	}
}

// Close stops taking outcomes and waits for the queued ones to be written.
func (s *StatsManager) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.outcomes)
	}
	s.mu.Unlock()

	<-s.done
}

// GetPlacementStat returns 0 for an outcome that was never recorded.
func (s *StatsManager) GetPlacementStat(ctx context.Context, outcome string) (int64, error) {
	count, err := s.queries.GetPlacementStat(ctx, outcome)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return count, err
}
