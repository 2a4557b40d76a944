package sqlc

import (
	"context"
	"time"

	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

const (
	QuerierCtxTimeout = time.Second * 10

	StatSubmitted = "SUBMITTED"
)

type DbManager struct {
	Submissions *SubmissionManager
	Stats       *StatsManager
}

func NewDbManager(queries Querier) DbManager {
	return DbManager{
		Submissions: NewSubmissionManager(queries),
		Stats:       NewStatsManager(queries),
	}
}

type StatCount struct {
	Name  string
	Count int64
}

// FleetStats lists every placement outcome counter followed by the
// successful submissions of gameId.
func (dm DbManager) FleetStats(ctx context.Context, gameId string) ([]StatCount, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	outcomes := []string{
		OutcomeAccepted,
		mb.RejectInvalidInput.String(),
		mb.RejectOutOfBounds.String(),
		mb.RejectCollision.String(),
	}

	stats := make([]StatCount, 0, len(outcomes)+1)
	for _, outcome := range outcomes {
		count, err := dm.Stats.GetPlacementStat(ctx, outcome)
		if err != nil {
			return nil, err
		}
		stats = append(stats, StatCount{Name: outcome, Count: count})
	}

	submitted, err := dm.Submissions.CountSuccessfulSubmissions(ctx, gameId)
	if err != nil {
		return nil, err
	}
	return append(stats, StatCount{Name: StatSubmitted, Count: submitted}), nil
}
