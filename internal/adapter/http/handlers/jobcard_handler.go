package handlers

import (
	"net/http"

	request "biashara_backoffice/internal/adapter/http/dto/request"
	response "biashara_backoffice/internal/adapter/http/dto/response"
	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/infrastructure/logging"
	"biashara_backoffice/internal/usecase"

	"github.com/gin-gonic/gin"
)

// JobCardHandler exposes the minimal job card surface the financial core
// needs: creating a card for expenses to link against and reading it back
// with its financial rollup.

type JobCardHandler struct {
	usecase  usecase.IJobCardRollupUseCase
	expenses usecase.IExpenseUseCase
}

func NewJobCardHandler(uc usecase.IJobCardRollupUseCase, expenses usecase.IExpenseUseCase) *JobCardHandler {
	return &JobCardHandler{usecase: uc, expenses: expenses}
}

func (h *JobCardHandler) CreateJobCard(c *gin.Context) {
	var payload request.CreateJobCardRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateJobCard(c.Request.Context(), usecase.CreateJobCardCommand{
		ClientID:  payload.ClientID,
		VisitDate: payload.ResolveVisitDate(),
		Notes:     payload.Notes,
		Tasks:     payload.Tasks,
	})
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromJobCard(created, nil))
}

// GetJobCard returns the card together with the financial summary of its
// linked top-level expenses.
func (h *JobCardHandler) GetJobCard(c *gin.Context) {
	card, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	linked, err := h.expenses.ListByJobCardID(c.Request.Context(), card.ID)
	if err != nil {
		// The card itself is the primary read; a summary failure degrades
		// to an empty rollup rather than failing the request.
		logging.GetLogger().WithError(err).WithField("job_card_id", card.ID).
			Warn("failed listing linked expenses for job card summary")
		linked = []entities.Expense{}
	}

	c.JSON(http.StatusOK, response.FromJobCard(card, linked))
}
