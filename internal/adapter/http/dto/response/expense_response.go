package response

import (
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/domain/money"
)

// ExpenseResponse renders an expense for clients. Amount carries exactly
// two decimal places; rounding happens only here, at the presentation
// boundary.

type ExpenseResponse struct {
	ID              string    `json:"id"`
	ExpenseNumber   string    `json:"expense_number"`
	CategoryID      string    `json:"category_id"`
	Description     string    `json:"description"`
	Amount          string    `json:"amount"`
	ExpenseDate     time.Time `json:"expense_date"`
	Vendor          string    `json:"vendor,omitempty"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
	HasReceipt      bool      `json:"has_receipt"`
	ReceiptURL      string    `json:"receipt_url,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	SubmittedByID   string    `json:"submitted_by_id"`
	JobCardID       string    `json:"job_card_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromExpense(e entities.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:              e.ID,
		ExpenseNumber:   e.ExpenseNumber,
		CategoryID:      e.CategoryID,
		Description:     e.Description,
		Amount:          money.Format(e.Amount),
		ExpenseDate:     e.ExpenseDate,
		Vendor:          e.Vendor,
		ReferenceNumber: e.ReferenceNumber,
		PaymentMethod:   string(e.PaymentMethod),
		Status:          string(e.Status),
		HasReceipt:      e.HasReceipt,
		ReceiptURL:      e.ReceiptURL,
		Notes:           e.Notes,
		RejectionReason: e.RejectionReason,
		SubmittedByID:   e.SubmittedByID,
		JobCardID:       e.JobCardID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromExpenses(expenses []entities.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, FromExpense(e))
	}
	return out
}
