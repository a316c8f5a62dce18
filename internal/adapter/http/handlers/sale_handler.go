package handlers

import (
	"net/http"

	request "biashara_backoffice/internal/adapter/http/dto/request"
	response "biashara_backoffice/internal/adapter/http/dto/response"
	"biashara_backoffice/internal/usecase"

	"github.com/gin-gonic/gin"
)

// SaleHandler handles HTTP requests for the sale payment ledger.

type SaleHandler struct {
	usecase usecase.ISaleUseCase
}

func NewSaleHandler(uc usecase.ISaleUseCase) *SaleHandler {
	return &SaleHandler{usecase: uc}
}

// CreateSale creates a sale with at least one item and optionally records
// the first installment.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var payload request.CreateSaleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	cmd := usecase.CreateSaleCommand{
		ClientID:                       payload.ClientID,
		SaleDate:                       payload.ResolveSaleDate(),
		Notes:                          payload.Notes,
		AgreedMonthlyInstallmentAmount: payload.AgreedMonthlyInstallmentAmount,
	}
	for _, it := range payload.Items {
		cmd.Items = append(cmd.Items, usecase.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	if payload.FirstInstallment != nil {
		cmd.FirstInstallment = &usecase.FirstInstallmentInput{
			Amount: payload.FirstInstallment.Amount,
			PaidAt: payload.FirstInstallment.ResolvePaidAt(),
			Notes:  payload.FirstInstallment.Notes,
		}
	}

	created, err := h.usecase.CreateSale(c.Request.Context(), cmd)
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromSale(created))
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	s, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromSale(s))
}

func (h *SaleHandler) AddSaleItem(c *gin.Context) {
	var payload request.SaleItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	s, err := h.usecase.AddItem(c.Request.Context(), c.Param("id"), usecase.SaleItemInput{
		ProductID: payload.ProductID,
		Quantity:  payload.Quantity,
		UnitPrice: payload.UnitPrice,
	})
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSale(s))
}

func (h *SaleHandler) UpdateSaleItem(c *gin.Context) {
	var payload request.SaleItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	s, err := h.usecase.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("item_id"), usecase.SaleItemInput{
		ProductID: payload.ProductID,
		Quantity:  payload.Quantity,
		UnitPrice: payload.UnitPrice,
	})
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSale(s))
}

func (h *SaleHandler) RemoveSaleItem(c *gin.Context) {
	s, err := h.usecase.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("item_id"))
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromSale(s))
}

// RecordInstallment records a payment against the sale's remaining balance.
func (h *SaleHandler) RecordInstallment(c *gin.Context) {
	var payload request.RecordInstallmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	s, err := h.usecase.RecordInstallment(c.Request.Context(), c.Param("id"), payload.Amount, payload.ResolvePaidAt(), payload.Notes)
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSale(s))
}

func (h *SaleHandler) RequestExtension(c *gin.Context) {
	var payload request.RequestExtensionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	s, err := h.usecase.RequestExtension(c.Request.Context(), c.Param("id"), payload.DueDate)
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSale(s))
}

func (h *SaleHandler) CancelSale(c *gin.Context) {
	s, err := h.usecase.CancelSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromSale(s))
}
