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
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrInvalidExpenseID = errors.New("invalid expense id")
)

// SubmitExpenseCommand carries everything needed to create an expense. The
// caller chooses whether the expense starts in DRAFT or goes straight to
// PENDING.

type SubmitExpenseCommand struct {
	CategoryID      string
	Description     string
	Amount          string
	ExpenseDate     time.Time
	Vendor          string
	ReferenceNumber string
	PaymentMethod   string
	HasReceipt      bool
	ReceiptURL      string
	Notes           string
	SubmittedByID   string
	JobCardID       string
	Status          string
}

// ExpensePatch holds the mutable fields of an expense. Nil pointers leave
// the stored value untouched. Status never changes through a patch; status
// changes only go through the dedicated transition operations.

type ExpensePatch struct {
	CategoryID      *string
	Description     *string
	Amount          *string
	ExpenseDate     *time.Time
	Vendor          *string
	ReferenceNumber *string
	PaymentMethod   *string
	HasReceipt      *bool
	ReceiptURL      *string
	Notes           *string
}

// IExpenseUseCase owns the expense approval state machine.
//
// DRAFT -> PENDING -> APPROVED -> PAID, with REJECTED reachable from
// PENDING/APPROVED and CANCELLED from DRAFT/PENDING. Approve, MarkPaid and
// Reject are DIRECTOR-only; Cancel is open to the submitting employee as
// well. Every transition re-checks legality against current stored state at
// write time.

type IExpenseUseCase interface {
	Submit(ctx context.Context, cmd SubmitExpenseCommand) (entities.Expense, error)
	Edit(ctx context.Context, id string, patch ExpensePatch) (entities.Expense, error)
	Approve(ctx context.Context, id string, actorRole entities.Role) (entities.Expense, error)
	MarkPaid(ctx context.Context, id string, actorRole entities.Role) (entities.Expense, error)
	Reject(ctx context.Context, id string, actorRole entities.Role, reason string) (entities.Expense, error)
	Cancel(ctx context.Context, id, actorID string, actorRole entities.Role) (entities.Expense, error)
	GetByID(ctx context.Context, id string) (entities.Expense, error)
	ListByJobCardID(ctx context.Context, jobCardID string) ([]entities.Expense, error)
}

type ExpenseUseCase struct {
	repo   interfaces.IExpenseRepository
	rollup interfaces.IJobCardRollup
}

var _ IExpenseUseCase = (*ExpenseUseCase)(nil)

func NewExpenseUseCase(repo interfaces.IExpenseRepository, rollup interfaces.IJobCardRollup) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, rollup: rollup}
}

func (u *ExpenseUseCase) Submit(ctx context.Context, cmd SubmitExpenseCommand) (entities.Expense, error) {
	if strings.TrimSpace(cmd.CategoryID) == "" {
		return entities.Expense{}, faults.NewValidation("category_id", "required")
	}
	if strings.TrimSpace(cmd.Description) == "" {
		return entities.Expense{}, faults.NewValidation("description", "required")
	}
	if strings.TrimSpace(cmd.SubmittedByID) == "" {
		return entities.Expense{}, faults.NewValidation("submitted_by_id", "required")
	}
	amount, err := money.ParsePositive(cmd.Amount)
	if err != nil {
		return entities.Expense{}, faults.NewValidation("amount", err.Error())
	}

	status := entities.ExpenseStatus(strings.ToUpper(strings.TrimSpace(cmd.Status)))
	if status == "" {
		status = entities.ExpenseStatusDraft
	}
	if status != entities.ExpenseStatusDraft && status != entities.ExpenseStatusPending {
		return entities.Expense{}, faults.NewValidation("status", "new expenses start in DRAFT or PENDING")
	}

	method := entities.PaymentMethod(strings.ToUpper(strings.TrimSpace(cmd.PaymentMethod)))
	if method == "" {
		method = entities.PaymentMethodOther
	}
	if !method.Valid() {
		return entities.Expense{}, faults.NewValidation("payment_method", "unknown payment method")
	}

	expenseDate := cmd.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	e := entities.Expense{
		ID:              id,
		ExpenseNumber:   documentNumber("EXP", now, id),
		CategoryID:      strings.TrimSpace(cmd.CategoryID),
		Description:     strings.TrimSpace(cmd.Description),
		Amount:          amount,
		ExpenseDate:     expenseDate,
		Vendor:          strings.TrimSpace(cmd.Vendor),
		ReferenceNumber: strings.TrimSpace(cmd.ReferenceNumber),
		PaymentMethod:   method,
		Status:          status,
		HasReceipt:      cmd.HasReceipt,
		ReceiptURL:      strings.TrimSpace(cmd.ReceiptURL),
		Notes:           cmd.Notes,
		SubmittedByID:   strings.TrimSpace(cmd.SubmittedByID),
		JobCardID:       strings.TrimSpace(cmd.JobCardID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		return entities.Expense{}, err
	}
	logging.GetLogger().WithFields(logrus.Fields{
		"expense_id":     created.ID,
		"expense_number": created.ExpenseNumber,
		"status":         created.Status,
	}).Info("expense submitted")
	return created, nil
}

func (u *ExpenseUseCase) Edit(ctx context.Context, id string, patch ExpensePatch) (entities.Expense, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Expense{}, err
	}
	if !e.Status.Editable() {
		return entities.Expense{}, faults.NewInvalidState("expense", e.ID, string(e.Status), "edit")
	}

	if patch.CategoryID != nil {
		if strings.TrimSpace(*patch.CategoryID) == "" {
			return entities.Expense{}, faults.NewValidation("category_id", "required")
		}
		e.CategoryID = strings.TrimSpace(*patch.CategoryID)
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return entities.Expense{}, faults.NewValidation("description", "required")
		}
		e.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Amount != nil {
		amount, err := money.ParsePositive(*patch.Amount)
		if err != nil {
			return entities.Expense{}, faults.NewValidation("amount", err.Error())
		}
		e.Amount = amount
	}
	if patch.ExpenseDate != nil {
		e.ExpenseDate = *patch.ExpenseDate
	}
	if patch.Vendor != nil {
		e.Vendor = strings.TrimSpace(*patch.Vendor)
	}
	if patch.ReferenceNumber != nil {
		e.ReferenceNumber = strings.TrimSpace(*patch.ReferenceNumber)
	}
	if patch.PaymentMethod != nil {
		method := entities.PaymentMethod(strings.ToUpper(strings.TrimSpace(*patch.PaymentMethod)))
		if !method.Valid() {
			return entities.Expense{}, faults.NewValidation("payment_method", "unknown payment method")
		}
		e.PaymentMethod = method
	}
	if patch.HasReceipt != nil {
		e.HasReceipt = *patch.HasReceipt
	}
	if patch.ReceiptURL != nil {
		e.ReceiptURL = strings.TrimSpace(*patch.ReceiptURL)
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	e.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.UpdateFields(ctx, e)
	if err != nil {
		return entities.Expense{}, err
	}
	if updated.ID == "" {
		// The editability precondition failed at write time: a transition
		// landed between our read and this write.
		return entities.Expense{}, u.staleStateError(ctx, e.ID, "edit")
	}
	return updated, nil
}

func (u *ExpenseUseCase) Approve(ctx context.Context, id string, actorRole entities.Role) (entities.Expense, error) {
	if !actorRole.IsDirector() {
		return entities.Expense{}, faults.NewPermission(string(actorRole), "approve expense")
	}
	return u.transition(ctx, id, "approve", entities.ExpenseStatusApproved, "",
		entities.ExpenseStatusPending)
}

func (u *ExpenseUseCase) MarkPaid(ctx context.Context, id string, actorRole entities.Role) (entities.Expense, error) {
	if !actorRole.IsDirector() {
		return entities.Expense{}, faults.NewPermission(string(actorRole), "mark expense paid")
	}
	paid, err := u.transition(ctx, id, "pay", entities.ExpenseStatusPaid, "",
		entities.ExpenseStatusApproved)
	if err != nil {
		return entities.Expense{}, err
	}
	u.notifyRollup(ctx, paid)
	return paid, nil
}

func (u *ExpenseUseCase) Reject(ctx context.Context, id string, actorRole entities.Role, reason string) (entities.Expense, error) {
	if !actorRole.IsDirector() {
		return entities.Expense{}, faults.NewPermission(string(actorRole), "reject expense")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Expense{}, faults.NewValidation("reason", "required when rejecting")
	}
	return u.transition(ctx, id, "reject", entities.ExpenseStatusRejected, reason,
		entities.ExpenseStatusPending, entities.ExpenseStatusApproved)
}

func (u *ExpenseUseCase) Cancel(ctx context.Context, id, actorID string, actorRole entities.Role) (entities.Expense, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Expense{}, err
	}
	if !actorRole.IsDirector() && strings.TrimSpace(actorID) != e.SubmittedByID {
		return entities.Expense{}, faults.NewPermission(string(actorRole), "cancel an expense submitted by someone else")
	}
	cancelled, err := u.transitionLoaded(ctx, e, "cancel", entities.ExpenseStatusCancelled, "",
		entities.ExpenseStatusDraft, entities.ExpenseStatusPending)
	if err != nil {
		return entities.Expense{}, err
	}
	u.notifyRollup(ctx, cancelled)
	return cancelled, nil
}

func (u *ExpenseUseCase) GetByID(ctx context.Context, id string) (entities.Expense, error) {
	return u.load(ctx, id)
}

func (u *ExpenseUseCase) ListByJobCardID(ctx context.Context, jobCardID string) ([]entities.Expense, error) {
	jobCardID = strings.TrimSpace(jobCardID)
	if jobCardID == "" {
		return nil, faults.NewValidation("job_card_id", "required")
	}
	return u.repo.ListByJobCardID(ctx, jobCardID)
}

func (u *ExpenseUseCase) load(ctx context.Context, id string) (entities.Expense, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Expense{}, ErrInvalidExpenseID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Expense{}, err
	}
	if e.ID == "" {
		return entities.Expense{}, ErrExpenseNotFound
	}
	return e, nil
}

func (u *ExpenseUseCase) transition(ctx context.Context, id, action string, to entities.ExpenseStatus, rejectionReason string, legalFrom ...entities.ExpenseStatus) (entities.Expense, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Expense{}, err
	}
	return u.transitionLoaded(ctx, e, action, to, rejectionReason, legalFrom...)
}

func (u *ExpenseUseCase) transitionLoaded(ctx context.Context, e entities.Expense, action string, to entities.ExpenseStatus, rejectionReason string, legalFrom ...entities.ExpenseStatus) (entities.Expense, error) {
	legal := false
	for _, from := range legalFrom {
		if e.Status == from {
			legal = true
			break
		}
	}
	if !legal || !e.Status.CanTransitionTo(to) {
		return entities.Expense{}, faults.NewInvalidState("expense", e.ID, string(e.Status), action)
	}

	updated, err := u.repo.TransitionStatus(ctx, e.ID, e.Status, to, rejectionReason)
	if err != nil {
		return entities.Expense{}, err
	}
	if updated.ID == "" {
		// Lost the conditional write to a concurrent transition.
		return entities.Expense{}, u.staleStateError(ctx, e.ID, action)
	}
	logging.GetLogger().WithFields(logrus.Fields{
		"expense_id": updated.ID,
		"from":       e.Status,
		"to":         updated.Status,
	}).Info("expense transitioned")
	return updated, nil
}

// staleStateError rebuilds an accurate InvalidStateError after a conditional
// write failed, using the status another writer left behind.
func (u *ExpenseUseCase) staleStateError(ctx context.Context, id, action string) error {
	current, err := u.repo.GetByID(ctx, id)
	if err != nil || current.ID == "" {
		return ErrExpenseNotFound
	}
	return faults.NewInvalidState("expense", id, string(current.Status), action)
}

func (u *ExpenseUseCase) notifyRollup(ctx context.Context, e entities.Expense) {
	if e.JobCardID == "" || u.rollup == nil {
		return
	}
	// The expense transition is already durable; a rollup failure is logged
	// and reported separately, never propagated.
	if err := u.rollup.OnExpenseResolved(ctx, e.JobCardID); err != nil {
		logging.GetLogger().WithFields(logrus.Fields{
			"expense_id":  e.ID,
			"job_card_id": e.JobCardID,
		}).WithError(err).Error("job card rollup failed after expense resolution")
	}
}

// documentNumber builds a human-readable number like EXP-20260830-1A2B3C4D.
func documentNumber(prefix string, at time.Time, id string) string {
	frag := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(frag) > 8 {
		frag = frag[:8]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), frag)
}
