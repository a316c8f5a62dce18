package response

import (
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/domain/money"
)

type SaleItemResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
}

type InstallmentResponse struct {
	ID     string    `json:"id"`
	Amount string    `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
	Status string    `json:"status"`
	Notes  string    `json:"notes,omitempty"`
}

// SaleResponse renders the sale ledger: items, installments and the derived
// total/paid/remaining amounts, each with two decimal places.

type SaleResponse struct {
	ID                             string                `json:"id"`
	SaleNumber                     string                `json:"sale_number"`
	ClientID                       string                `json:"client_id"`
	SaleDate                       time.Time             `json:"sale_date"`
	Status                         string                `json:"status"`
	Items                          []SaleItemResponse    `json:"items"`
	Installments                   []InstallmentResponse `json:"installments"`
	TotalAmount                    string                `json:"total_amount"`
	PaidAmount                     string                `json:"paid_amount"`
	Remaining                      string                `json:"remaining"`
	AgreedMonthlyInstallmentAmount string                `json:"agreed_monthly_installment_amount,omitempty"`
	RequestedPaymentDateExtension  bool                  `json:"requested_payment_date_extension"`
	PaymentExtensionDueDate        *time.Time            `json:"payment_extension_due_date,omitempty"`
	Notes                          string                `json:"notes,omitempty"`
	CreatedAt                      time.Time             `json:"created_at"`
	UpdatedAt                      time.Time             `json:"updated_at"`
}

func FromSale(s entities.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  money.Format(it.UnitPrice),
			TotalPrice: money.Format(it.TotalPrice),
		})
	}
	installments := make([]InstallmentResponse, 0, len(s.Installments))
	for _, in := range s.Installments {
		installments = append(installments, InstallmentResponse{
			ID:     in.ID,
			Amount: money.Format(in.Amount),
			PaidAt: in.PaidAt,
			Status: string(in.Status),
			Notes:  in.Notes,
		})
	}

	resp := SaleResponse{
		ID:                            s.ID,
		SaleNumber:                    s.SaleNumber,
		ClientID:                      s.ClientID,
		SaleDate:                      s.SaleDate,
		Status:                        string(s.Status),
		Items:                         items,
		Installments:                  installments,
		TotalAmount:                   money.Format(s.TotalAmount()),
		PaidAmount:                    money.Format(s.PaidAmount()),
		Remaining:                     money.Format(s.Remaining()),
		RequestedPaymentDateExtension: s.RequestedPaymentDateExtension,
		PaymentExtensionDueDate:       s.PaymentExtensionDueDate,
		Notes:                         s.Notes,
		CreatedAt:                     s.CreatedAt,
		UpdatedAt:                     s.UpdatedAt,
	}
	if s.AgreedMonthlyInstallmentAmount != nil {
		resp.AgreedMonthlyInstallmentAmount = money.Format(*s.AgreedMonthlyInstallmentAmount)
	}
	return resp
}
