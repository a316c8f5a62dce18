package request

import "time"

// CreateJobCardRequest creates a minimal field-visit record for expenses to
// link against.

type CreateJobCardRequest struct {
	ClientID  string     `json:"client_id" binding:"required"`
	VisitDate *time.Time `json:"visit_date"`
	Notes     string     `json:"notes"`
	Tasks     []string   `json:"tasks"`
}

func (r CreateJobCardRequest) ResolveVisitDate() time.Time { return resolveTime(r.VisitDate) }
