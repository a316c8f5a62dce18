package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"biashara_backoffice/internal/adapter/http/handlers/mocks"
	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/domain/faults"
	"biashara_backoffice/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func saleRouter(h *SaleHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/sales", h.CreateSale)
	r.GET("/v1/sales/:id", h.GetSale)
	r.POST("/v1/sales/:id/items", h.AddSaleItem)
	r.PATCH("/v1/sales/:id/items/:item_id", h.UpdateSaleItem)
	r.DELETE("/v1/sales/:id/items/:item_id", h.RemoveSaleItem)
	r.POST("/v1/sales/:id/installments", h.RecordInstallment)
	r.POST("/v1/sales/:id/extension", h.RequestExtension)
	r.POST("/v1/sales/:id/cancel", h.CancelSale)
	return r
}

func ledgerSale(id string) entities.Sale {
	unit := decimal.RequireFromString("500.00")
	return entities.Sale{
		ID:       id,
		ClientID: "client-1",
		Status:   entities.SaleStatusPending,
		Items: []entities.SaleItem{
			{ID: "item-1", ProductID: "prod-1", Quantity: 2, UnitPrice: unit, TotalPrice: unit.Mul(decimal.NewFromInt(2))},
		},
		Installments: []entities.Installment{
			{ID: "inst-1", Amount: decimal.RequireFromString("600.00"), Status: entities.InstallmentStatusPaid, PaidAt: time.Now().UTC()},
		},
		Version: 2,
	}
}

func TestSaleHandler_CreateSale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		w := doJSON(t, r, http.MethodPost, "/v1/sales", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		w := doJSON(t, r, http.MethodPost, "/v1/sales", `{"client_id":"client-1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created with derived amounts in response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().CreateSale(gomock.Any(), gomock.AssignableToTypeOf(usecase.CreateSaleCommand{})).DoAndReturn(
			func(_ context.Context, cmd usecase.CreateSaleCommand) (entities.Sale, error) {
				if cmd.ClientID != "client-1" || len(cmd.Items) != 1 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				if cmd.FirstInstallment == nil || cmd.FirstInstallment.Amount != "600.00" {
					t.Fatalf("expected first installment, got %+v", cmd.FirstInstallment)
				}
				return ledgerSale("sale-1"), nil
			},
		)

		w := doJSON(t, r, http.MethodPost, "/v1/sales",
			`{"client_id":"client-1","items":[{"product_id":"prod-1","quantity":2,"unit_price":"500.00"}],"first_installment":{"amount":"600.00"}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["total_amount"] != "1000.00" || body["paid_amount"] != "600.00" || body["remaining"] != "400.00" {
			t.Fatalf("unexpected derived amounts: %v", body)
		}
	})
}

func TestSaleHandler_RecordInstallment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("recorded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().RecordInstallment(gomock.Any(), "sale-1", "400.00", gomock.Any(), "final payment").
			Return(ledgerSale("sale-1"), nil)

		w := doJSON(t, r, http.MethodPost, "/v1/sales/sale-1/installments",
			`{"amount":"400.00","notes":"final payment"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("overpayment maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().RecordInstallment(gomock.Any(), "sale-1", "500.00", gomock.Any(), "").
			Return(entities.Sale{}, faults.NewValidation("amount", "amount 500.00 exceeds remaining balance 400.00"))

		w := doJSON(t, r, http.MethodPost, "/v1/sales/sale-1/installments", `{"amount":"500.00"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("concurrent update maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().RecordInstallment(gomock.Any(), "sale-1", "100.00", gomock.Any(), "").
			Return(entities.Sale{}, usecase.ErrConcurrentUpdate)

		w := doJSON(t, r, http.MethodPost, "/v1/sales/sale-1/installments", `{"amount":"100.00"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestSaleHandler_Items(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("remove item invariant maps to 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().RemoveItem(gomock.Any(), "sale-1", "item-1").
			Return(entities.Sale{}, faults.NewInvariant("sale keeps at least one item", ""))

		req := httptest.NewRequest(http.MethodDelete, "/v1/sales/sale-1/items/item-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("update unknown item maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().UpdateItem(gomock.Any(), "sale-1", "missing", gomock.Any()).
			Return(entities.Sale{}, usecase.ErrSaleItemNotFound)

		w := doJSON(t, r, http.MethodPatch, "/v1/sales/sale-1/items/missing",
			`{"product_id":"prod-1","quantity":1,"unit_price":"10.00"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("add item success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().AddItem(gomock.Any(), "sale-1", usecase.SaleItemInput{
			ProductID: "prod-2", Quantity: 1, UnitPrice: "25.00",
		}).Return(ledgerSale("sale-1"), nil)

		w := doJSON(t, r, http.MethodPost, "/v1/sales/sale-1/items",
			`{"product_id":"prod-2","quantity":1,"unit_price":"25.00"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestSaleHandler_Lifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("extension requires due date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		w := doJSON(t, r, http.MethodPost, "/v1/sales/sale-1/extension", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("extension recorded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		uc.EXPECT().RequestExtension(gomock.Any(), "sale-1", due).Return(ledgerSale("sale-1"), nil)

		w := doJSON(t, r, http.MethodPost, "/v1/sales/sale-1/extension",
			`{"due_date":"2026-10-01T00:00:00Z"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("cancel completed maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().CancelSale(gomock.Any(), "sale-1").
			Return(entities.Sale{}, faults.NewInvalidState("sale", "sale-1", "COMPLETED", "cancel"))

		req := httptest.NewRequest(http.MethodPost, "/v1/sales/sale-1/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("get unknown sale maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaleUseCase(ctrl)
		r := saleRouter(NewSaleHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Sale{}, usecase.ErrSaleNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/sales/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
