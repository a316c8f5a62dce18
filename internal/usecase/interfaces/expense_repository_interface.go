package interfaces

import (
	"context"

	"biashara_backoffice/internal/domain/entities"
)

// IExpenseRepository abstracts DynamoDB persistence for Expense.
//
// Repository contract:
//   - a zero-value (empty ID) result with a nil error means "no matching row",
//     which covers both not-found and a failed transition precondition
//   - TransitionStatus must apply the status write conditionally on the row
//     still holding the expected current status, so two concurrent conflicting
//     transitions can never both succeed
//   - UpdateFields must likewise require the row to still be editable
//     (DRAFT or PENDING) at write time

type IExpenseRepository interface {
	Create(ctx context.Context, e entities.Expense) (entities.Expense, error)
	GetByID(ctx context.Context, id string) (entities.Expense, error)
	UpdateFields(ctx context.Context, e entities.Expense) (entities.Expense, error)
	TransitionStatus(ctx context.Context, id string, from, to entities.ExpenseStatus, rejectionReason string) (entities.Expense, error)
	ListByJobCardID(ctx context.Context, jobCardID string) ([]entities.Expense, error)
}
