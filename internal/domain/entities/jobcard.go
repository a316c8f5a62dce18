package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobCardStatus is the lifecycle state of a field-visit record.

type JobCardStatus string

const (
	JobCardStatusDraft                     JobCardStatus = "DRAFT"
	JobCardStatusPendingClientConfirmation JobCardStatus = "PENDING_CLIENT_CONFIRMATION"
	JobCardStatusInProgress                JobCardStatus = "IN_PROGRESS"
	JobCardStatusCompleted                 JobCardStatus = "COMPLETED"
	JobCardStatusCancelled                 JobCardStatus = "CANCELLED"
)

// Open reports whether the card may still auto-complete.
func (s JobCardStatus) Open() bool {
	return s != JobCardStatusCompleted && s != JobCardStatusCancelled
}

// JobTask is one unit of work performed during a visit.

type JobTask struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// JobExpense is a lightweight cost line recorded directly on the card,
// distinct from top-level Expense records that reference the card by id.

type JobExpense struct {
	ID         string          `json:"id"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	HasReceipt bool            `json:"has_receipt"`
}

// JobCard is a field-visit record. Its financial completeness depends on the
// status of every top-level Expense whose JobCardID references it.
//
// Storage model (DynamoDB):
//   - PK: id
//   - tasks and expense lines embedded in the card item

type JobCard struct {
	ID        string        `json:"id"`
	JobNumber string        `json:"job_number"`
	ClientID  string        `json:"client_id"`
	VisitDate time.Time     `json:"visit_date"`
	Status    JobCardStatus `json:"status"`
	Tasks     []JobTask     `json:"tasks,omitempty"`
	Expenses  []JobExpense  `json:"expenses,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
