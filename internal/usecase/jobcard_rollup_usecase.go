package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/domain/faults"
	"biashara_backoffice/internal/infrastructure/logging"
	"biashara_backoffice/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrJobCardNotFound  = errors.New("job card not found")
	ErrInvalidJobCardID = errors.New("invalid job card id")
)

// ShouldAutoComplete decides whether a job card is financially complete:
// every top-level expense referencing the card is PAID or CANCELLED, at
// least one such expense exists, and the card itself is still open. Pure
// function so the rule is testable apart from the expense state machine
// that triggers it.
func ShouldAutoComplete(card entities.JobCard, expenses []entities.Expense) bool {
	if !card.Status.Open() {
		return false
	}
	if len(expenses) == 0 {
		return false
	}
	for _, e := range expenses {
		if !e.Status.IsResolved() {
			return false
		}
	}
	return true
}

// CreateJobCardCommand creates a minimal field-visit record so linked
// expenses have a card to roll up into.

type CreateJobCardCommand struct {
	ClientID  string
	VisitDate time.Time
	Notes     string
	Tasks     []string
}

// IJobCardRollupUseCase observes expense-state changes for expenses attached
// to a job card and auto-completes the card once every linked expense is
// resolved. The side effect is one-way and idempotent.

type IJobCardRollupUseCase interface {
	interfaces.IJobCardRollup
	CreateJobCard(ctx context.Context, cmd CreateJobCardCommand) (entities.JobCard, error)
	GetByID(ctx context.Context, id string) (entities.JobCard, error)
}

type JobCardRollupUseCase struct {
	cards    interfaces.IJobCardRepository
	expenses interfaces.IExpenseRepository
}

var _ IJobCardRollupUseCase = (*JobCardRollupUseCase)(nil)

func NewJobCardRollupUseCase(cards interfaces.IJobCardRepository, expenses interfaces.IExpenseRepository) *JobCardRollupUseCase {
	return &JobCardRollupUseCase{cards: cards, expenses: expenses}
}

// OnExpenseResolved re-evaluates the card after a linked expense reached
// PAID or CANCELLED. Re-evaluating an already-COMPLETED card is a no-op.
func (u *JobCardRollupUseCase) OnExpenseResolved(ctx context.Context, jobCardID string) error {
	jobCardID = strings.TrimSpace(jobCardID)
	if jobCardID == "" {
		return ErrInvalidJobCardID
	}

	card, err := u.cards.GetByID(ctx, jobCardID)
	if err != nil {
		return err
	}
	if card.ID == "" {
		return ErrJobCardNotFound
	}
	if !card.Status.Open() {
		return nil
	}

	linked, err := u.expenses.ListByJobCardID(ctx, jobCardID)
	if err != nil {
		return err
	}
	if !ShouldAutoComplete(card, linked) {
		return nil
	}

	// Conditional write: a concurrent completion or cancellation simply
	// makes this a no-op.
	completed, err := u.cards.CompleteIfOpen(ctx, jobCardID)
	if err != nil {
		return err
	}
	if completed.ID != "" {
		logging.GetLogger().WithFields(logrus.Fields{
			"job_card_id": completed.ID,
			"job_number":  completed.JobNumber,
		}).Info("job card auto-completed")
	}
	return nil
}

func (u *JobCardRollupUseCase) CreateJobCard(ctx context.Context, cmd CreateJobCardCommand) (entities.JobCard, error) {
	if strings.TrimSpace(cmd.ClientID) == "" {
		return entities.JobCard{}, faults.NewValidation("client_id", "required")
	}
	visitDate := cmd.VisitDate
	if visitDate.IsZero() {
		visitDate = time.Now().UTC()
	}

	tasks := make([]entities.JobTask, 0, len(cmd.Tasks))
	for _, desc := range cmd.Tasks {
		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		tasks = append(tasks, entities.JobTask{ID: uuid.NewString(), Description: desc})
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	c := entities.JobCard{
		ID:        id,
		JobNumber: documentNumber("JOB", now, id),
		ClientID:  strings.TrimSpace(cmd.ClientID),
		VisitDate: visitDate,
		Status:    entities.JobCardStatusDraft,
		Tasks:     tasks,
		Notes:     cmd.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return u.cards.Create(ctx, c)
}

func (u *JobCardRollupUseCase) GetByID(ctx context.Context, id string) (entities.JobCard, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.JobCard{}, ErrInvalidJobCardID
	}
	c, err := u.cards.GetByID(ctx, id)
	if err != nil {
		return entities.JobCard{}, err
	}
	if c.ID == "" {
		return entities.JobCard{}, ErrJobCardNotFound
	}
	return c, nil
}
