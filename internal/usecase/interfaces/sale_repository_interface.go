package interfaces

import (
	"context"

	"biashara_backoffice/internal/domain/entities"
)

// ISaleRepository abstracts DynamoDB persistence for the Sale aggregate
// (sale + items + installments stored as one item).
//
// Save must write conditionally on the stored version still matching
// s.Version and persist s.Version+1, so concurrent writers on the same sale
// cannot both succeed; a zero-value result with a nil error signals the
// version check (or existence check) failed.

type ISaleRepository interface {
	Create(ctx context.Context, s entities.Sale) (entities.Sale, error)
	GetByID(ctx context.Context, id string) (entities.Sale, error)
	Save(ctx context.Context, s entities.Sale) (entities.Sale, error)
}
