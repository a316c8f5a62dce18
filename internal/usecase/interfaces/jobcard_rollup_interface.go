package interfaces

import "context"

// IJobCardRollup is the notification port the expense lifecycle calls after
// an expense linked to a job card reaches a resolved state (PAID or
// CANCELLED). The expense transition is the primary operation: callers log
// rollup errors and never roll the transition back.

type IJobCardRollup interface {
	OnExpenseResolved(ctx context.Context, jobCardID string) error
}
