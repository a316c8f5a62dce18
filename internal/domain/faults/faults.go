// Package faults defines the domain error taxonomy shared by the financial
// services. All four kinds are raised synchronously from service calls and
// surfaced to the caller verbatim; none are transient-infrastructure
// failures, so nothing here is retried automatically.
package faults

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. Recoverable by
// resubmitting corrected input.

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// PermissionError reports that the actor's role does not allow the
// requested transition.

type PermissionError struct {
	Role   string
	Action string
}

func NewPermission(role, action string) *PermissionError {
	return &PermissionError{Role: role, Action: action}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission: role %q may not %s", e.Role, e.Action)
}

// InvalidStateError reports a transition that is illegal from the entity's
// current status, including any attempt to transition out of a terminal
// state.

type InvalidStateError struct {
	Entity string
	ID     string
	Status string
	Action string
}

func NewInvalidState(entity, id, status, action string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, ID: id, Status: status, Action: action}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: cannot %s %s %s in status %s", e.Action, e.Entity, e.ID, e.Status)
}

// InvariantViolation reports a mutation that would break a computed
// invariant, e.g. an installment exceeding the remaining balance.

type InvariantViolation struct {
	Rule   string
	Detail string
}

func NewInvariant(rule, detail string) *InvariantViolation {
	return &InvariantViolation{Rule: rule, Detail: detail}
}

func (e *InvariantViolation) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invariant violation: %s", e.Rule)
	}
	return fmt.Sprintf("invariant violation: %s: %s", e.Rule, e.Detail)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

func IsInvalidState(err error) bool {
	var se *InvalidStateError
	return errors.As(err, &se)
}

func IsInvariant(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}
