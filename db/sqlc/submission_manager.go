package sqlc

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
	mc "github.com/saeidalz13/battleship-fleet/models/connection"
)

type SubmissionManager struct {
	queries Querier
}

func NewSubmissionManager(queries Querier) *SubmissionManager {
	return &SubmissionManager{queries: queries}
}

// RecordSubmission logs one submission attempt with the fleet in the
// same wire shape that was sent. submitErr is nil for a success.
func (s *SubmissionManager) RecordSubmission(ctx context.Context, gameId string, ships []mb.Ship, submitErr error) error {
	raw, err := json.Marshal(mc.NewShipRecords(ships))
	if err != nil {
		return err
	}

	arg := InsertFleetSubmissionParams{
		GameID:    gameId,
		Ships:     pqtype.NullRawMessage{RawMessage: raw, Valid: true},
		Succeeded: submitErr == nil,
	}
	if submitErr != nil {
		arg.ErrorDetail = sql.NullString{String: submitErr.Error(), Valid: true}
	}

	return s.queries.InsertFleetSubmission(ctx, arg)
}

func (s *SubmissionManager) CountSuccessfulSubmissions(ctx context.Context, gameId string) (int64, error) {
	return s.queries.CountSuccessfulSubmissions(ctx, gameId)
}
