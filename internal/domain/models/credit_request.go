package models

import "time"

// RequestStatus is the lifecycle of a credit request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

// CreditRequest is an actor's petition for additional credits, processed by
// an administrator.
type CreditRequest struct {
	ID               int64         `json:"id" db:"id"`
	AccountID        int64         `json:"account_id" db:"account_id"`
	RequestedCredits int           `json:"requested_credits" db:"requested_credits"`
	Reason           string        `json:"reason,omitempty" db:"reason"`
	Status           RequestStatus `json:"status" db:"status"`
	AdminResponse    *string       `json:"admin_response,omitempty" db:"admin_response"`
	ProcessedBy      *int64        `json:"processed_by,omitempty" db:"processed_by"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}
