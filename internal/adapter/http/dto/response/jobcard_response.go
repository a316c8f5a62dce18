package response

import (
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/domain/money"

	"github.com/shopspring/decimal"
)

type JobTaskResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

type JobExpenseResponse struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	HasReceipt bool   `json:"has_receipt"`
}

// JobCardFinancialSummary aggregates the top-level expenses linked to the
// card: how many exist, how many are resolved (PAID or CANCELLED), and the
// total versus paid amounts.

type JobCardFinancialSummary struct {
	LinkedExpenseCount   int    `json:"linked_expense_count"`
	ResolvedExpenseCount int    `json:"resolved_expense_count"`
	TotalAmount          string `json:"total_amount"`
	PaidAmount           string `json:"paid_amount"`
}

type JobCardResponse struct {
	ID        string                  `json:"id"`
	JobNumber string                  `json:"job_number"`
	ClientID  string                  `json:"client_id"`
	VisitDate time.Time               `json:"visit_date"`
	Status    string                  `json:"status"`
	Tasks     []JobTaskResponse       `json:"tasks,omitempty"`
	Expenses  []JobExpenseResponse    `json:"expenses,omitempty"`
	Financial JobCardFinancialSummary `json:"financial"`
	Notes     string                  `json:"notes,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func FromJobCard(c entities.JobCard, linked []entities.Expense) JobCardResponse {
	tasks := make([]JobTaskResponse, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		tasks = append(tasks, JobTaskResponse{ID: t.ID, Description: t.Description, Done: t.Done})
	}
	expenses := make([]JobExpenseResponse, 0, len(c.Expenses))
	for _, e := range c.Expenses {
		expenses = append(expenses, JobExpenseResponse{
			ID:         e.ID,
			Category:   e.Category,
			Amount:     money.Format(e.Amount),
			HasReceipt: e.HasReceipt,
		})
	}

	total := decimal.Zero
	paid := decimal.Zero
	resolved := 0
	for _, e := range linked {
		total = total.Add(e.Amount)
		if e.Status == entities.ExpenseStatusPaid {
			paid = paid.Add(e.Amount)
		}
		if e.Status.IsResolved() {
			resolved++
		}
	}

	return JobCardResponse{
		ID:        c.ID,
		JobNumber: c.JobNumber,
		ClientID:  c.ClientID,
		VisitDate: c.VisitDate,
		Status:    string(c.Status),
		Tasks:     tasks,
		Expenses:  expenses,
		Financial: JobCardFinancialSummary{
			LinkedExpenseCount:   len(linked),
			ResolvedExpenseCount: resolved,
			TotalAmount:          money.Format(total),
			PaidAmount:           money.Format(paid),
		},
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
