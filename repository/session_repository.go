package repository

import (
	"errors"

	"emi-calculator/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps the loan parameters of live interactive sessions.
// Sessions live only as long as the process and their idle TTL.
type SessionRepository interface {
	Create(params domain.LoanParameters) (string, error)
	Get(id string) (domain.LoanParameters, error)
	// Update runs fn on the session's parameters and stores what it returns.
	// fn runs under the session lock, so edits to one session never interleave.
	Update(id string, fn func(domain.LoanParameters) domain.LoanParameters) (domain.LoanParameters, error)
	Delete(id string) error
}
