package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the approval-workflow state of an expense.
//
// Happy path: DRAFT -> PENDING -> APPROVED -> PAID.
// REJECTED is reachable from PENDING or APPROVED, CANCELLED from DRAFT or
// PENDING. PAID, REJECTED and CANCELLED are terminal.

type ExpenseStatus string

const (
	ExpenseStatusDraft     ExpenseStatus = "DRAFT"
	ExpenseStatusPending   ExpenseStatus = "PENDING"
	ExpenseStatusApproved  ExpenseStatus = "APPROVED"
	ExpenseStatusPaid      ExpenseStatus = "PAID"
	ExpenseStatusRejected  ExpenseStatus = "REJECTED"
	ExpenseStatusCancelled ExpenseStatus = "CANCELLED"
)

// expenseTransitions holds every legal status edge. Anything not listed is
// illegal; terminal states have no outgoing edges at all.
var expenseTransitions = map[ExpenseStatus][]ExpenseStatus{
	ExpenseStatusDraft:    {ExpenseStatusPending, ExpenseStatusCancelled},
	ExpenseStatusPending:  {ExpenseStatusApproved, ExpenseStatusRejected, ExpenseStatusCancelled},
	ExpenseStatusApproved: {ExpenseStatusPaid, ExpenseStatusRejected},
}

func (s ExpenseStatus) CanTransitionTo(target ExpenseStatus) bool {
	for _, t := range expenseTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s ExpenseStatus) IsTerminal() bool {
	switch s {
	case ExpenseStatusPaid, ExpenseStatusRejected, ExpenseStatusCancelled:
		return true
	}
	return false
}

// IsResolved reports whether the expense no longer blocks the completion of
// a job card it is linked to. A cancelled expense counts as resolved.
func (s ExpenseStatus) IsResolved() bool {
	return s == ExpenseStatusPaid || s == ExpenseStatusCancelled
}

// Editable reports whether non-status fields may still change.
func (s ExpenseStatus) Editable() bool {
	return s == ExpenseStatusDraft || s == ExpenseStatusPending
}

// PaymentMethod is how an expense was (or will be) settled.

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMpesa        PaymentMethod = "MPESA"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMpesa,
		PaymentMethodCheque, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodOther:
		return true
	}
	return false
}

// Expense is a single recorded business cost moving through the approval
// workflow. Amounts are exact decimals; RejectionReason is non-empty iff the
// status is REJECTED.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (job_card_id-index): job_card_id

type Expense struct {
	ID              string          `json:"id"`
	ExpenseNumber   string          `json:"expense_number"`
	CategoryID      string          `json:"category_id"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	ExpenseDate     time.Time       `json:"expense_date"`
	Vendor          string          `json:"vendor,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Status          ExpenseStatus   `json:"status"`
	HasReceipt      bool            `json:"has_receipt"`
	ReceiptURL      string          `json:"receipt_url,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	SubmittedByID   string          `json:"submitted_by_id"`
	JobCardID       string          `json:"job_card_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
