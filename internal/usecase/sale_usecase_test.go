package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/domain/faults"
	mock_interfaces "biashara_backoffice/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// twoItemSale totals 1000.00 (2 x 500.00).
func twoItemSale(id string) entities.Sale {
	unit := decimal.RequireFromString("500.00")
	return entities.Sale{
		ID:         id,
		SaleNumber: "SAL-20260830-ABCD1234",
		ClientID:   "client-1",
		SaleDate:   time.Now().UTC(),
		Status:     entities.SaleStatusPending,
		Items: []entities.SaleItem{
			{ID: "item-1", ProductID: "prod-1", Quantity: 1, UnitPrice: unit, TotalPrice: unit},
			{ID: "item-2", ProductID: "prod-2", Quantity: 1, UnitPrice: unit, TotalPrice: unit},
		},
		Version: 1,
	}
}

func TestSaleUseCase_CreateSale(t *testing.T) {
	t.Run("requires at least one item", func(t *testing.T) {
		uc := NewSaleUseCase(nil)
		_, err := uc.CreateSale(context.Background(), CreateSaleCommand{ClientID: "client-1"})
		if !faults.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("item totals computed exactly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Sale{})).DoAndReturn(
			func(_ context.Context, s entities.Sale) (entities.Sale, error) {
				if len(s.Items) != 2 {
					t.Fatalf("expected 2 items, got %d", len(s.Items))
				}
				if !s.Items[0].TotalPrice.Equal(decimal.RequireFromString("0.30")) {
					t.Fatalf("expected 3 x 0.10 = 0.30, got %s", s.Items[0].TotalPrice)
				}
				if !s.TotalAmount().Equal(decimal.RequireFromString("500.30")) {
					t.Fatalf("expected total 500.30, got %s", s.TotalAmount())
				}
				if s.Status != entities.SaleStatusPending {
					t.Fatalf("expected PENDING, got %s", s.Status)
				}
				return s, nil
			},
		)

		_, err := uc.CreateSale(context.Background(), CreateSaleCommand{
			ClientID: "client-1",
			Items: []SaleItemInput{
				{ProductID: "prod-1", Quantity: 3, UnitPrice: "0.10"},
				{ProductID: "prod-2", Quantity: 1, UnitPrice: "500.00"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("bad item indexed in error", func(t *testing.T) {
		uc := NewSaleUseCase(nil)
		_, err := uc.CreateSale(context.Background(), CreateSaleCommand{
			ClientID: "client-1",
			Items: []SaleItemInput{
				{ProductID: "prod-1", Quantity: 1, UnitPrice: "10"},
				{ProductID: "prod-2", Quantity: 0, UnitPrice: "10"},
			},
		})
		var ve *faults.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if ve.Field != "items[1]" {
			t.Fatalf("expected items[1], got %q", ve.Field)
		}
	})

	t.Run("first installment within total recorded as PAID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Sale) (entities.Sale, error) {
				if len(s.Installments) != 1 {
					t.Fatalf("expected 1 installment, got %d", len(s.Installments))
				}
				if s.Installments[0].Status != entities.InstallmentStatusPaid {
					t.Fatalf("expected PAID installment, got %s", s.Installments[0].Status)
				}
				if !s.PaidAmount().Equal(decimal.RequireFromString("100")) {
					t.Fatalf("expected paid 100, got %s", s.PaidAmount())
				}
				return s, nil
			},
		)

		_, err := uc.CreateSale(context.Background(), CreateSaleCommand{
			ClientID:         "client-1",
			Items:            []SaleItemInput{{ProductID: "prod-1", Quantity: 1, UnitPrice: "250"}},
			FirstInstallment: &FirstInstallmentInput{Amount: "100"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("first installment above total rejected", func(t *testing.T) {
		uc := NewSaleUseCase(nil)
		_, err := uc.CreateSale(context.Background(), CreateSaleCommand{
			ClientID:         "client-1",
			Items:            []SaleItemInput{{ProductID: "prod-1", Quantity: 1, UnitPrice: "250"}},
			FirstInstallment: &FirstInstallmentInput{Amount: "300"},
		})
		if !faults.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestSaleUseCase_RecordInstallment(t *testing.T) {
	t.Run("within remaining appends and saves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Sale) (entities.Sale, error) {
				if !s.PaidAmount().Equal(decimal.RequireFromString("600")) {
					t.Fatalf("expected paid 600, got %s", s.PaidAmount())
				}
				if !s.Remaining().Equal(decimal.RequireFromString("400")) {
					t.Fatalf("expected remaining 400, got %s", s.Remaining())
				}
				s.Version++
				return s, nil
			},
		)

		res, err := uc.RecordInstallment(context.Background(), "sale-1", "600", time.Time{}, "first payment")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Installments) != 1 {
			t.Fatalf("expected 1 installment, got %d", len(res.Installments))
		}
	})

	t.Run("amount above remaining leaves ledger unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		s := twoItemSale("sale-1")
		s.Installments = []entities.Installment{{
			ID:     "inst-1",
			Amount: decimal.RequireFromString("600"),
			Status: entities.InstallmentStatusPaid,
			PaidAt: time.Now().UTC(),
		}}
		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(s, nil)
		// No Save expectation: the over-payment must never reach the store.

		_, err := uc.RecordInstallment(context.Background(), "sale-1", "500", time.Now().UTC(), "")
		if !faults.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)

		_, err := uc.RecordInstallment(context.Background(), "sale-1", "-5", time.Now().UTC(), "")
		if !faults.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("cancelled sale rejects installments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		s := twoItemSale("sale-1")
		s.Status = entities.SaleStatusCancelled
		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(s, nil)

		_, err := uc.RecordInstallment(context.Background(), "sale-1", "100", time.Now().UTC(), "")
		if !faults.IsInvalidState(err) {
			t.Fatalf("expected invalid state error, got %v", err)
		}
	})

	t.Run("lost version race maps to concurrent update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Sale{}, nil)

		_, err := uc.RecordInstallment(context.Background(), "sale-1", "100", time.Now().UTC(), "")
		if !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})
}

func TestSaleUseCase_Items(t *testing.T) {
	t.Run("add item recomputes line total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Sale) (entities.Sale, error) {
				if len(s.Items) != 3 {
					t.Fatalf("expected 3 items, got %d", len(s.Items))
				}
				added := s.Items[2]
				if !added.TotalPrice.Equal(decimal.RequireFromString("75.00")) {
					t.Fatalf("expected 3 x 25.00 = 75.00, got %s", added.TotalPrice)
				}
				return s, nil
			},
		)

		_, err := uc.AddItem(context.Background(), "sale-1", SaleItemInput{
			ProductID: "prod-3", Quantity: 3, UnitPrice: "25.00",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("update unknown item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)

		_, err := uc.UpdateItem(context.Background(), "sale-1", "missing", SaleItemInput{
			ProductID: "prod-1", Quantity: 1, UnitPrice: "10",
		})
		if !errors.Is(err, ErrSaleItemNotFound) {
			t.Fatalf("expected ErrSaleItemNotFound, got %v", err)
		}
	})

	t.Run("shrinking total below paid violates invariant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		s := twoItemSale("sale-1")
		s.Installments = []entities.Installment{{
			ID:     "inst-1",
			Amount: decimal.RequireFromString("800"),
			Status: entities.InstallmentStatusPaid,
			PaidAt: time.Now().UTC(),
		}}
		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(s, nil)

		// Dropping item-2 would leave total 500 < paid 800.
		_, err := uc.RemoveItem(context.Background(), "sale-1", "item-2")
		if !faults.IsInvariant(err) {
			t.Fatalf("expected invariant violation, got %v", err)
		}
	})

	t.Run("removing the last item is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		s := twoItemSale("sale-1")
		s.Items = s.Items[:1]
		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(s, nil)

		_, err := uc.RemoveItem(context.Background(), "sale-1", "item-1")
		if !faults.IsInvariant(err) {
			t.Fatalf("expected invariant violation, got %v", err)
		}
	})

	t.Run("remove item succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Sale) (entities.Sale, error) {
				if len(s.Items) != 1 || s.Items[0].ID != "item-1" {
					t.Fatalf("unexpected items: %+v", s.Items)
				}
				return s, nil
			},
		)

		if _, err := uc.RemoveItem(context.Background(), "sale-1", "item-2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSaleUseCase_RequestExtension(t *testing.T) {
	t.Run("sets flag and due date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Sale) (entities.Sale, error) {
				if !s.RequestedPaymentDateExtension {
					t.Fatalf("expected extension flag set")
				}
				if s.PaymentExtensionDueDate == nil || !s.PaymentExtensionDueDate.Equal(due) {
					t.Fatalf("unexpected due date: %v", s.PaymentExtensionDueDate)
				}
				return s, nil
			},
		)

		if _, err := uc.RequestExtension(context.Background(), "sale-1", due); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero due date rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)

		_, err := uc.RequestExtension(context.Background(), "sale-1", time.Time{})
		if !faults.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestSaleUseCase_CancelSale(t *testing.T) {
	t.Run("cancel pending sale", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(twoItemSale("sale-1"), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Sale) (entities.Sale, error) {
				if s.Status != entities.SaleStatusCancelled {
					t.Fatalf("expected CANCELLED, got %s", s.Status)
				}
				return s, nil
			},
		)

		if _, err := uc.CancelSale(context.Background(), "sale-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("cancel completed sale is illegal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		s := twoItemSale("sale-1")
		s.Status = entities.SaleStatusCompleted
		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(s, nil)

		_, err := uc.CancelSale(context.Background(), "sale-1")
		if !faults.IsInvalidState(err) {
			t.Fatalf("expected invalid state error, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISaleRepository(ctrl)
		uc := NewSaleUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "sale-1").Return(entities.Sale{}, nil)

		_, err := uc.CancelSale(context.Background(), "sale-1")
		if !errors.Is(err, ErrSaleNotFound) {
			t.Fatalf("expected ErrSaleNotFound, got %v", err)
		}
	})
}
