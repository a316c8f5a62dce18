package interfaces

import (
	"context"

	"biashara_backoffice/internal/domain/entities"
)

// IJobCardRepository abstracts DynamoDB persistence for JobCard.
//
// CompleteIfOpen sets the card to COMPLETED conditionally on it not already
// being COMPLETED or CANCELLED; a zero-value result with a nil error means
// the card was missing or already closed, which callers treat as a no-op.

type IJobCardRepository interface {
	Create(ctx context.Context, c entities.JobCard) (entities.JobCard, error)
	GetByID(ctx context.Context, id string) (entities.JobCard, error)
	CompleteIfOpen(ctx context.Context, id string) (entities.JobCard, error)
}
