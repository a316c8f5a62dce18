package request

import (
	"strings"
	"time"
)

// CreateExpenseRequest is the payload for submitting a new expense. Amount
// is a decimal-formatted string; binary floats never carry money. Status may
// be DRAFT or PENDING and defaults to DRAFT.

type CreateExpenseRequest struct {
	CategoryID      string     `json:"category_id" binding:"required"`
	Description     string     `json:"description" binding:"required"`
	Amount          string     `json:"amount" binding:"required"`
	ExpenseDate     *time.Time `json:"expense_date"`
	Vendor          string     `json:"vendor"`
	ReferenceNumber string     `json:"reference_number"`
	PaymentMethod   string     `json:"payment_method"`
	HasReceipt      bool       `json:"has_receipt"`
	ReceiptURL      string     `json:"receipt_url"`
	Notes           string     `json:"notes"`
	SubmittedByID   string     `json:"submitted_by_id" binding:"required"`
	JobCardID       string     `json:"job_card_id"`
	Status          string     `json:"status"`
}

func (r CreateExpenseRequest) ResolveExpenseDate() time.Time {
	if r.ExpenseDate != nil {
		return *r.ExpenseDate
	}
	return time.Time{}
}

// UpdateExpenseRequest patches the mutable fields of an expense. Absent
// fields stay untouched; status is not patchable.

type UpdateExpenseRequest struct {
	CategoryID      *string    `json:"category_id"`
	Description     *string    `json:"description"`
	Amount          *string    `json:"amount"`
	ExpenseDate     *time.Time `json:"expense_date"`
	Vendor          *string    `json:"vendor"`
	ReferenceNumber *string    `json:"reference_number"`
	PaymentMethod   *string    `json:"payment_method"`
	HasReceipt      *bool      `json:"has_receipt"`
	ReceiptURL      *string    `json:"receipt_url"`
	Notes           *string    `json:"notes"`
}

// Empty reports whether the patch carries no field at all.
func (r UpdateExpenseRequest) Empty() bool {
	return r.CategoryID == nil && r.Description == nil && r.Amount == nil &&
		r.ExpenseDate == nil && r.Vendor == nil && r.ReferenceNumber == nil &&
		r.PaymentMethod == nil && r.HasReceipt == nil && r.ReceiptURL == nil &&
		r.Notes == nil
}

// ExpenseActionRequest carries the acting employee for a status transition.
// Reason is only consumed by reject; ActorID only by cancel.

type ExpenseActionRequest struct {
	ActorRole string `json:"actor_role" binding:"required"`
	ActorID   string `json:"actor_id"`
	Reason    string `json:"reason"`
}

func (r ExpenseActionRequest) ResolveActorRole() string {
	return strings.TrimSpace(r.ActorRole)
}
