package sqlc

import (
	"context"
	"database/sql"

	"github.com/sqlc-dev/pqtype"
)

const insertFleetSubmission = `INSERT INTO fleet_submissions (game_id, ships, succeeded, error_detail) VALUES ($1, $2, $3, $4)`

type InsertFleetSubmissionParams struct {
	GameID      string
	Ships       pqtype.NullRawMessage
	Succeeded   bool
	ErrorDetail sql.NullString
}

func (q *Queries) InsertFleetSubmission(ctx context.Context, arg InsertFleetSubmissionParams) error {
	_, err := q.db.ExecContext(ctx, insertFleetSubmission,
		arg.GameID,
		arg.Ships,
		arg.Succeeded,
		arg.ErrorDetail,
	)
	return err
}

const countSuccessfulSubmissions = `SELECT COUNT(*) FROM fleet_submissions WHERE game_id = $1 AND succeeded`

func (q *Queries) CountSuccessfulSubmissions(ctx context.Context, gameID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countSuccessfulSubmissions, gameID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const incrementPlacementStat = `INSERT INTO placement_stats (outcome, count) VALUES ($1, 1) ON CONFLICT (outcome) DO UPDATE SET count = placement_stats.count + 1`

func (q *Queries) IncrementPlacementStat(ctx context.Context, outcome string) error {
	_, err := q.db.ExecContext(ctx, incrementPlacementStat, outcome)
	return err
}

const getPlacementStat = `SELECT count FROM placement_stats WHERE outcome = $1`

func (q *Queries) GetPlacementStat(ctx context.Context, outcome string) (int64, error) {
	row := q.db.QueryRowContext(ctx, getPlacementStat, outcome)
	var count int64
	err := row.Scan(&count)
	return count, err
}
