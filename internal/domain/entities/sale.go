package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale. CANCELLED is terminal.

type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "DRAFT"
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// InstallmentStatus marks whether a recorded installment counts towards the
// paid amount.

type InstallmentStatus string

const (
	InstallmentStatusPaid    InstallmentStatus = "PAID"
	InstallmentStatusPending InstallmentStatus = "PENDING"
)

// SaleItem is one product line on a sale. TotalPrice is always
// quantity * unit price, never caller-supplied.

type SaleItem struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Installment is one recorded payment against a sale's total.

type Installment struct {
	ID     string            `json:"id"`
	Amount decimal.Decimal   `json:"amount"`
	PaidAt time.Time         `json:"paid_at"`
	Status InstallmentStatus `json:"status"`
	Notes  string            `json:"notes,omitempty"`
}

// Sale is the payment ledger aggregate: items plus installments. TotalAmount
// and PaidAmount are derived; 0 <= PaidAmount <= TotalAmount holds after
// every mutation.
//
// Storage model (DynamoDB):
//   - PK: id
//   - items and installments embedded in the aggregate item
//   - version attribute for optimistic locking

type Sale struct {
	ID                             string           `json:"id"`
	SaleNumber                     string           `json:"sale_number"`
	ClientID                       string           `json:"client_id"`
	SaleDate                       time.Time        `json:"sale_date"`
	Status                         SaleStatus       `json:"status"`
	Items                          []SaleItem       `json:"items"`
	Installments                   []Installment    `json:"installments"`
	AgreedMonthlyInstallmentAmount *decimal.Decimal `json:"agreed_monthly_installment_amount,omitempty"`
	RequestedPaymentDateExtension  bool             `json:"requested_payment_date_extension"`
	PaymentExtensionDueDate        *time.Time       `json:"payment_extension_due_date,omitempty"`
	Notes                          string           `json:"notes,omitempty"`
	CreatedAt                      time.Time        `json:"created_at"`
	UpdatedAt                      time.Time        `json:"updated_at"`
	Version                        int              `json:"version"`
}

// TotalAmount is the sum of all item totals. Recomputing is idempotent.
func (s Sale) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

// PaidAmount is the sum of PAID installment amounts.
func (s Sale) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, in := range s.Installments {
		if in.Status == InstallmentStatusPaid {
			paid = paid.Add(in.Amount)
		}
	}
	return paid
}

// Remaining is TotalAmount - PaidAmount.
func (s Sale) Remaining() decimal.Decimal {
	return s.TotalAmount().Sub(s.PaidAmount())
}

// ItemPrice computes the line total for a quantity at a unit price.
func ItemPrice(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
