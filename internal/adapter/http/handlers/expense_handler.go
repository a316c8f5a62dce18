package handlers

import (
	"context"
	"net/http"

	request "biashara_backoffice/internal/adapter/http/dto/request"
	response "biashara_backoffice/internal/adapter/http/dto/response"
	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles HTTP requests for the expense approval workflow.

type ExpenseHandler struct {
	usecase usecase.IExpenseUseCase
}

func NewExpenseHandler(uc usecase.IExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{usecase: uc}
}

// CreateExpense submits a new expense in DRAFT or PENDING.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var payload request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Submit(c.Request.Context(), usecase.SubmitExpenseCommand{
		CategoryID:      payload.CategoryID,
		Description:     payload.Description,
		Amount:          payload.Amount,
		ExpenseDate:     payload.ResolveExpenseDate(),
		Vendor:          payload.Vendor,
		ReferenceNumber: payload.ReferenceNumber,
		PaymentMethod:   payload.PaymentMethod,
		HasReceipt:      payload.HasReceipt,
		ReceiptURL:      payload.ReceiptURL,
		Notes:           payload.Notes,
		SubmittedByID:   payload.SubmittedByID,
		JobCardID:       payload.JobCardID,
		Status:          payload.Status,
	})
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromExpense(created))
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	e, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromExpense(e))
}

// UpdateExpense patches mutable fields while the expense is still DRAFT or
// PENDING. Status is never patched here.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var payload request.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	if payload.Empty() {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.Edit(c.Request.Context(), c.Param("id"), usecase.ExpensePatch{
		CategoryID:      payload.CategoryID,
		Description:     payload.Description,
		Amount:          payload.Amount,
		ExpenseDate:     payload.ExpenseDate,
		Vendor:          payload.Vendor,
		ReferenceNumber: payload.ReferenceNumber,
		PaymentMethod:   payload.PaymentMethod,
		HasReceipt:      payload.HasReceipt,
		ReceiptURL:      payload.ReceiptURL,
		Notes:           payload.Notes,
	})
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromExpense(updated))
}

func (h *ExpenseHandler) ApproveExpense(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id string, payload request.ExpenseActionRequest) (entities.Expense, error) {
		return h.usecase.Approve(ctx, id, entities.Role(payload.ResolveActorRole()))
	})
}

func (h *ExpenseHandler) PayExpense(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id string, payload request.ExpenseActionRequest) (entities.Expense, error) {
		return h.usecase.MarkPaid(ctx, id, entities.Role(payload.ResolveActorRole()))
	})
}

func (h *ExpenseHandler) RejectExpense(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id string, payload request.ExpenseActionRequest) (entities.Expense, error) {
		return h.usecase.Reject(ctx, id, entities.Role(payload.ResolveActorRole()), payload.Reason)
	})
}

func (h *ExpenseHandler) CancelExpense(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id string, payload request.ExpenseActionRequest) (entities.Expense, error) {
		return h.usecase.Cancel(ctx, id, payload.ActorID, entities.Role(payload.ResolveActorRole()))
	})
}

func (h *ExpenseHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, id string, payload request.ExpenseActionRequest) (entities.Expense, error),
) {
	var payload request.ExpenseActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	e, err := apply(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromExpense(e))
}
