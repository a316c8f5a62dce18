package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/domain/faults"
	"biashara_backoffice/internal/domain/money"
	"biashara_backoffice/internal/infrastructure/logging"
	"biashara_backoffice/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrSaleItemNotFound = errors.New("sale item not found")
	ErrInvalidSaleID    = errors.New("invalid sale id")
	// ErrConcurrentUpdate is returned when an optimistic-lock write loses to
	// another writer on the same sale. Retrying is the caller's decision.
	ErrConcurrentUpdate = errors.New("sale modified concurrently")
)

// SaleItemInput is one product line supplied by the caller. The line total
// is always computed here, never accepted from the wire.

type SaleItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice string
}

// FirstInstallmentInput optionally records an opening payment together with
// sale creation.

type FirstInstallmentInput struct {
	Amount string
	PaidAt time.Time
	Notes  string
}

// CreateSaleCommand creates a sale with at least one item.

type CreateSaleCommand struct {
	ClientID                       string
	SaleDate                       time.Time
	Notes                          string
	AgreedMonthlyInstallmentAmount string
	Items                          []SaleItemInput
	FirstInstallment               *FirstInstallmentInput
}

// ISaleUseCase owns sale totals, installment recording and remaining-balance
// computation. Every mutation preserves 0 <= paidAmount <= totalAmount.

type ISaleUseCase interface {
	CreateSale(ctx context.Context, cmd CreateSaleCommand) (entities.Sale, error)
	GetByID(ctx context.Context, id string) (entities.Sale, error)
	AddItem(ctx context.Context, saleID string, item SaleItemInput) (entities.Sale, error)
	UpdateItem(ctx context.Context, saleID, itemID string, item SaleItemInput) (entities.Sale, error)
	RemoveItem(ctx context.Context, saleID, itemID string) (entities.Sale, error)
	RecordInstallment(ctx context.Context, saleID, amount string, paidAt time.Time, notes string) (entities.Sale, error)
	RequestExtension(ctx context.Context, saleID string, dueDate time.Time) (entities.Sale, error)
	CancelSale(ctx context.Context, saleID string) (entities.Sale, error)
}

type SaleUseCase struct {
	repo interfaces.ISaleRepository
}

var _ ISaleUseCase = (*SaleUseCase)(nil)

func NewSaleUseCase(repo interfaces.ISaleRepository) *SaleUseCase {
	return &SaleUseCase{repo: repo}
}

func (u *SaleUseCase) CreateSale(ctx context.Context, cmd CreateSaleCommand) (entities.Sale, error) {
	if strings.TrimSpace(cmd.ClientID) == "" {
		return entities.Sale{}, faults.NewValidation("client_id", "required")
	}
	if len(cmd.Items) == 0 {
		return entities.Sale{}, faults.NewValidation("items", "a sale requires at least one item")
	}

	items := make([]entities.SaleItem, 0, len(cmd.Items))
	for i, in := range cmd.Items {
		item, err := buildSaleItem(in)
		if err != nil {
			return entities.Sale{}, faults.NewValidation(fmt.Sprintf("items[%d]", i), err.Error())
		}
		items = append(items, item)
	}

	saleDate := cmd.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now().UTC()
	}
	now := time.Now().UTC()
	id := uuid.NewString()
	s := entities.Sale{
		ID:         id,
		SaleNumber: documentNumber("SAL", now, id),
		ClientID:   strings.TrimSpace(cmd.ClientID),
		SaleDate:   saleDate,
		Status:     entities.SaleStatusPending,
		Items:      items,
		Notes:      cmd.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if v := strings.TrimSpace(cmd.AgreedMonthlyInstallmentAmount); v != "" {
		monthly, err := money.ParsePositive(v)
		if err != nil {
			return entities.Sale{}, faults.NewValidation("agreed_monthly_installment_amount", err.Error())
		}
		s.AgreedMonthlyInstallmentAmount = &monthly
	}

	if cmd.FirstInstallment != nil {
		amount, err := money.ParsePositive(cmd.FirstInstallment.Amount)
		if err != nil {
			return entities.Sale{}, faults.NewValidation("first_installment.amount", err.Error())
		}
		if amount.GreaterThan(s.TotalAmount()) {
			return entities.Sale{}, faults.NewValidation("first_installment.amount", "amount exceeds total")
		}
		paidAt := cmd.FirstInstallment.PaidAt
		if paidAt.IsZero() {
			paidAt = now
		}
		s.Installments = append(s.Installments, entities.Installment{
			ID:     uuid.NewString(),
			Amount: amount,
			PaidAt: paidAt,
			Status: entities.InstallmentStatusPaid,
			Notes:  cmd.FirstInstallment.Notes,
		})
	}

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		return entities.Sale{}, err
	}
	logging.GetLogger().WithFields(logrus.Fields{
		"sale_id":     created.ID,
		"sale_number": created.SaleNumber,
		"total":       money.Format(created.TotalAmount()),
	}).Info("sale created")
	return created, nil
}

func (u *SaleUseCase) GetByID(ctx context.Context, id string) (entities.Sale, error) {
	return u.load(ctx, id)
}

func (u *SaleUseCase) AddItem(ctx context.Context, saleID string, in SaleItemInput) (entities.Sale, error) {
	s, err := u.loadMutable(ctx, saleID, "add item to")
	if err != nil {
		return entities.Sale{}, err
	}
	item, err := buildSaleItem(in)
	if err != nil {
		return entities.Sale{}, faults.NewValidation("item", err.Error())
	}
	s.Items = append(s.Items, item)
	return u.save(ctx, s)
}

func (u *SaleUseCase) UpdateItem(ctx context.Context, saleID, itemID string, in SaleItemInput) (entities.Sale, error) {
	s, err := u.loadMutable(ctx, saleID, "update item on")
	if err != nil {
		return entities.Sale{}, err
	}
	item, err := buildSaleItem(in)
	if err != nil {
		return entities.Sale{}, faults.NewValidation("item", err.Error())
	}

	itemID = strings.TrimSpace(itemID)
	replaced := false
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			item.ID = itemID
			s.Items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		return entities.Sale{}, ErrSaleItemNotFound
	}

	if err := checkPaidWithinTotal(s); err != nil {
		return entities.Sale{}, err
	}
	return u.save(ctx, s)
}

func (u *SaleUseCase) RemoveItem(ctx context.Context, saleID, itemID string) (entities.Sale, error) {
	s, err := u.loadMutable(ctx, saleID, "remove item from")
	if err != nil {
		return entities.Sale{}, err
	}

	itemID = strings.TrimSpace(itemID)
	kept := s.Items[:0:0]
	removed := false
	for _, it := range s.Items {
		if it.ID == itemID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return entities.Sale{}, ErrSaleItemNotFound
	}
	if len(kept) == 0 {
		return entities.Sale{}, faults.NewInvariant("sale keeps at least one item",
			"removing the last item is not allowed")
	}
	s.Items = kept

	if err := checkPaidWithinTotal(s); err != nil {
		return entities.Sale{}, err
	}
	return u.save(ctx, s)
}

func (u *SaleUseCase) RecordInstallment(ctx context.Context, saleID, amount string, paidAt time.Time, notes string) (entities.Sale, error) {
	s, err := u.loadMutable(ctx, saleID, "record installment on")
	if err != nil {
		return entities.Sale{}, err
	}

	a, err := money.ParsePositive(amount)
	if err != nil {
		return entities.Sale{}, faults.NewValidation("amount", err.Error())
	}
	remaining := s.Remaining()
	if a.GreaterThan(remaining) {
		return entities.Sale{}, faults.NewValidation("amount",
			fmt.Sprintf("amount %s exceeds remaining balance %s", money.Format(a), money.Format(remaining)))
	}

	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	s.Installments = append(s.Installments, entities.Installment{
		ID:     uuid.NewString(),
		Amount: a,
		PaidAt: paidAt,
		Status: entities.InstallmentStatusPaid,
		Notes:  notes,
	})

	saved, err := u.save(ctx, s)
	if err != nil {
		return entities.Sale{}, err
	}
	logging.GetLogger().WithFields(logrus.Fields{
		"sale_id":   saved.ID,
		"amount":    money.Format(a),
		"paid":      money.Format(saved.PaidAmount()),
		"remaining": money.Format(saved.Remaining()),
	}).Info("installment recorded")
	return saved, nil
}

func (u *SaleUseCase) RequestExtension(ctx context.Context, saleID string, dueDate time.Time) (entities.Sale, error) {
	s, err := u.loadMutable(ctx, saleID, "request extension on")
	if err != nil {
		return entities.Sale{}, err
	}
	if dueDate.IsZero() {
		return entities.Sale{}, faults.NewValidation("due_date", "required")
	}
	// Informational only: payment legality is unaffected.
	s.RequestedPaymentDateExtension = true
	s.PaymentExtensionDueDate = &dueDate
	return u.save(ctx, s)
}

func (u *SaleUseCase) CancelSale(ctx context.Context, saleID string) (entities.Sale, error) {
	s, err := u.load(ctx, saleID)
	if err != nil {
		return entities.Sale{}, err
	}
	if s.Status == entities.SaleStatusCompleted || s.Status == entities.SaleStatusCancelled {
		return entities.Sale{}, faults.NewInvalidState("sale", s.ID, string(s.Status), "cancel")
	}
	s.Status = entities.SaleStatusCancelled
	return u.save(ctx, s)
}

func (u *SaleUseCase) load(ctx context.Context, id string) (entities.Sale, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Sale{}, ErrInvalidSaleID
	}
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Sale{}, err
	}
	if s.ID == "" {
		return entities.Sale{}, ErrSaleNotFound
	}
	return s, nil
}

// loadMutable loads a sale and rejects mutations on cancelled sales.
func (u *SaleUseCase) loadMutable(ctx context.Context, id, action string) (entities.Sale, error) {
	s, err := u.load(ctx, id)
	if err != nil {
		return entities.Sale{}, err
	}
	if s.Status == entities.SaleStatusCancelled {
		return entities.Sale{}, faults.NewInvalidState("sale", s.ID, string(s.Status), action)
	}
	return s, nil
}

func (u *SaleUseCase) save(ctx context.Context, s entities.Sale) (entities.Sale, error) {
	s.UpdatedAt = time.Now().UTC()
	saved, err := u.repo.Save(ctx, s)
	if err != nil {
		return entities.Sale{}, err
	}
	if saved.ID == "" {
		return entities.Sale{}, ErrConcurrentUpdate
	}
	return saved, nil
}

func buildSaleItem(in SaleItemInput) (entities.SaleItem, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return entities.SaleItem{}, fmt.Errorf("product_id is required")
	}
	if in.Quantity <= 0 {
		return entities.SaleItem{}, fmt.Errorf("quantity must be greater than zero")
	}
	unitPrice, err := money.ParsePositive(in.UnitPrice)
	if err != nil {
		return entities.SaleItem{}, fmt.Errorf("unit_price: %s", err.Error())
	}
	return entities.SaleItem{
		ID:         uuid.NewString(),
		ProductID:  strings.TrimSpace(in.ProductID),
		Quantity:   in.Quantity,
		UnitPrice:  unitPrice,
		TotalPrice: entities.ItemPrice(in.Quantity, unitPrice),
	}, nil
}

// checkPaidWithinTotal rejects item mutations that would drop the total
// below what has already been paid.
func checkPaidWithinTotal(s entities.Sale) error {
	total := s.TotalAmount()
	paid := s.PaidAmount()
	if total.LessThan(paid) {
		return faults.NewInvariant("paidAmount <= totalAmount",
			fmt.Sprintf("total %s would drop below paid %s", money.Format(total), money.Format(paid)))
	}
	return nil
}
