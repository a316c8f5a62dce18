package handlers

import (
	"errors"
	"net/http"

	"biashara_backoffice/internal/domain/faults"
	"biashara_backoffice/internal/usecase"
	"biashara_backoffice/pkg"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)

// mapDomainError translates the domain error taxonomy into transport
// errors. The four domain kinds map to stable codes and statuses; anything
// unrecognized is an internal error.
func mapDomainError(err error) *pkg.AppError {
	switch {
	case faults.IsValidation(err):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	case faults.IsPermission(err):
		return pkg.NewDomainErrorSimple("PERMISSION_DENIED", err.Error(), http.StatusForbidden)
	case faults.IsInvalidState(err):
		return pkg.NewDomainErrorSimple("INVALID_STATE", err.Error(), http.StatusConflict)
	case faults.IsInvariant(err):
		return pkg.NewDomainErrorSimple("INVARIANT_VIOLATION", err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrExpenseNotFound):
		return pkg.NewDomainErrorSimple("EXPENSE_NOT_FOUND", "Expense not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSaleNotFound):
		return pkg.NewDomainErrorSimple("SALE_NOT_FOUND", "Sale not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSaleItemNotFound):
		return pkg.NewDomainErrorSimple("SALE_ITEM_NOT_FOUND", "Sale item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrJobCardNotFound):
		return pkg.NewDomainErrorSimple("JOB_CARD_NOT_FOUND", "Job card not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidExpenseID),
		errors.Is(err, usecase.ErrInvalidSaleID),
		errors.Is(err, usecase.ErrInvalidJobCardID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONFLICT", "Record was modified concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
