package sqlc

import (
	"context"
)

type Querier interface {
	InsertFleetSubmission(ctx context.Context, arg InsertFleetSubmissionParams) error
	CountSuccessfulSubmissions(ctx context.Context, gameID string) (int64, error)
	IncrementPlacementStat(ctx context.Context, outcome string) error
	GetPlacementStat(ctx context.Context, outcome string) (int64, error)
}

var _ Querier = (*Queries)(nil)
