package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"emi-calculator/domain"
	"emi-calculator/repository"
)

var ErrInvalidEdit = errors.New("invalid edit")

// SessionService drives one Calculator per interactive session. Session state
// is the calculator's parameters; the presentation layer never keeps a copy.
type SessionService struct {
	repo   repository.SessionRepository
	loans  *LoanService
	logger *zap.Logger
}

func NewSessionService(
	repo repository.SessionRepository,
	loans *LoanService,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{repo: repo, loans: loans, logger: logger}
}

// Start opens a session seeded with the configured defaults.
func (s *SessionService) Start(ctx context.Context) (string, domain.Summary, error) {
	params := s.loans.Defaults()

	id, err := s.repo.Create(params)
	if err != nil {
		return "", domain.Summary{}, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("session started", zap.String("session_id", id))

	return id, s.loans.Summary(ctx, params), nil
}

func (s *SessionService) Summary(ctx context.Context, id string) (domain.Summary, error) {
	params, err := s.repo.Get(id)
	if err != nil {
		return domain.Summary{}, err
	}
	return s.loans.Summary(ctx, params), nil
}

// Edit applies one edit to the session. A value that fails sanitizing or
// range checks is not an error: the parameters stay as they were and
// accepted is false. ErrInvalidEdit is reserved for malformed edits, such as
// an unknown field or a missing text/value.
func (s *SessionService) Edit(
	ctx context.Context,
	id string,
	edit domain.Edit,
) (bool, domain.Summary, error) {
	if (edit.Text == nil) == (edit.Value == nil) {
		return false, domain.Summary{}, fmt.Errorf("%w: exactly one of text or value is required", ErrInvalidEdit)
	}

	var (
		accepted bool
		editErr  error
	)
	params, err := s.repo.Update(id, func(current domain.LoanParameters) domain.LoanParameters {
		calc, err := NewCalculator(current)
		if err != nil {
			editErr = err
			return current
		}
		if edit.Text != nil {
			accepted, editErr = calc.Set(edit.Field, *edit.Text)
		} else {
			accepted, editErr = calc.Slide(edit.Field, *edit.Value)
		}
		return calc.Parameters()
	})
	if err != nil {
		return false, domain.Summary{}, err
	}
	if errors.Is(editErr, errUnknownField) {
		return false, domain.Summary{}, fmt.Errorf("%w: %v", ErrInvalidEdit, editErr)
	}
	if editErr != nil {
		return false, domain.Summary{}, fmt.Errorf("session %s: %w", id, editErr)
	}

	channel := "slider"
	if edit.Text != nil {
		channel = "text"
	}
	recordEdit(edit.Field, channel, accepted)
	if !accepted {
		s.logger.Debug("edit ignored",
			zap.String("session_id", id),
			zap.String("field", edit.Field),
			zap.String("channel", channel))
	}

	return accepted, s.loans.Summary(ctx, params), nil
}

func (s *SessionService) End(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("session ended", zap.String("session_id", id))
	return nil
}
