package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"biashara_backoffice/internal/adapter/http/handlers/mocks"
	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func jobCardRouter(h *JobCardHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/jobcards", h.CreateJobCard)
	r.GET("/v1/jobcards/:id", h.GetJobCard)
	return r
}

func TestJobCardHandler_CreateJobCard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing client id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIJobCardRollupUseCase(ctrl)
		r := jobCardRouter(NewJobCardHandler(uc, nil))

		w := doJSON(t, r, http.MethodPost, "/v1/jobcards", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIJobCardRollupUseCase(ctrl)
		r := jobCardRouter(NewJobCardHandler(uc, nil))

		uc.EXPECT().CreateJobCard(gomock.Any(), gomock.AssignableToTypeOf(usecase.CreateJobCardCommand{})).DoAndReturn(
			func(_ context.Context, cmd usecase.CreateJobCardCommand) (entities.JobCard, error) {
				if cmd.ClientID != "client-1" || len(cmd.Tasks) != 1 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.JobCard{ID: "jc-1", Status: entities.JobCardStatusDraft}, nil
			},
		)

		w := doJSON(t, r, http.MethodPost, "/v1/jobcards",
			`{"client_id":"client-1","tasks":["service borehole pump"]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestJobCardHandler_GetJobCard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("card with financial summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIJobCardRollupUseCase(ctrl)
		expenses := mocks.NewMockIExpenseUseCase(ctrl)
		r := jobCardRouter(NewJobCardHandler(uc, expenses))

		uc.EXPECT().GetByID(gomock.Any(), "jc-1").
			Return(entities.JobCard{ID: "jc-1", Status: entities.JobCardStatusInProgress}, nil)
		expenses.EXPECT().ListByJobCardID(gomock.Any(), "jc-1").Return([]entities.Expense{
			{ID: "e1", Status: entities.ExpenseStatusPaid, Amount: decimal.RequireFromString("300.00"), JobCardID: "jc-1"},
			{ID: "e2", Status: entities.ExpenseStatusPending, Amount: decimal.RequireFromString("200.00"), JobCardID: "jc-1"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/jobcards/jc-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var body struct {
			Financial struct {
				LinkedExpenseCount   int    `json:"linked_expense_count"`
				ResolvedExpenseCount int    `json:"resolved_expense_count"`
				TotalAmount          string `json:"total_amount"`
				PaidAmount           string `json:"paid_amount"`
			} `json:"financial"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Financial.LinkedExpenseCount != 2 || body.Financial.ResolvedExpenseCount != 1 {
			t.Fatalf("unexpected counts: %+v", body.Financial)
		}
		if body.Financial.TotalAmount != "500.00" || body.Financial.PaidAmount != "300.00" {
			t.Fatalf("unexpected amounts: %+v", body.Financial)
		}
	})

	t.Run("summary failure degrades to empty rollup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIJobCardRollupUseCase(ctrl)
		expenses := mocks.NewMockIExpenseUseCase(ctrl)
		r := jobCardRouter(NewJobCardHandler(uc, expenses))

		uc.EXPECT().GetByID(gomock.Any(), "jc-1").
			Return(entities.JobCard{ID: "jc-1", Status: entities.JobCardStatusInProgress}, nil)
		expenses.EXPECT().ListByJobCardID(gomock.Any(), "jc-1").
			Return(nil, errors.New("index unavailable"))

		req := httptest.NewRequest(http.MethodGet, "/v1/jobcards/jc-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 despite summary failure, got %d", w.Code)
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIJobCardRollupUseCase(ctrl)
		r := jobCardRouter(NewJobCardHandler(uc, nil))

		uc.EXPECT().GetByID(gomock.Any(), "missing").
			Return(entities.JobCard{}, usecase.ErrJobCardNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/jobcards/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
