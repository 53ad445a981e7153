package reservations

import (
	"context"
	"strings"
	"time"

	"sabor/models"
	"sabor/utils"
)

// CreateInput is the booking form payload.
type CreateInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // HH:MM, from the availability endpoint
	Guests  int    `json:"guests"`
	Message string `json:"message"`
}

// Service owns reservation validation and the status lifecycle. All reads
// and writes go through the Repo; a create followed by an immediate list may
// not observe the new record if the store has read-after-write lag.
type Service struct {
	repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) validate(in CreateInput) error {
	if len(strings.TrimSpace(in.Name)) < 3 {
		return &models.ValidationError{Field: "name", Reason: "must be at least 3 characters"}
	}
	if !utils.IsValidEmail(in.Email) {
		return &models.ValidationError{Field: "email", Reason: "invalid email address"}
	}
	if len(strings.TrimSpace(in.Phone)) < 10 {
		return &models.ValidationError{Field: "phone", Reason: "must be at least 10 characters"}
	}
	day, err := time.ParseInLocation("2006-01-02", in.Date, s.now().Location())
	if err != nil {
		return &models.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return &models.ValidationError{Field: "date", Reason: "cannot be in the past"}
	}
	if strings.TrimSpace(in.Time) == "" {
		return &models.ValidationError{Field: "time", Reason: "required"}
	}
	if in.Guests < 1 || in.Guests > 10 {
		return &models.ValidationError{Field: "guests", Reason: "must be between 1 and 10"}
	}
	return nil
}

// Create validates the input and persists a pending reservation.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Reservation, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	res := &models.Reservation{
		ID:        utils.GenerateRandomDigitString(16),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Date:      in.Date,
		Time:      in.Time,
		Guests:    in.Guests,
		Message:   strings.TrimSpace(in.Message),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListByEmail returns a customer's own reservations, newest first.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]models.Reservation, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// ListAll returns every reservation, newest first. Admin only; callers run
// the access gate before getting here.
func (s *Service) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return s.repo.FindAll(ctx)
}

// UpdateStatus applies a lifecycle transition and stamps updatedAt. Illegal
// moves fail with ErrInvalidTransition and leave the record untouched.
// Two admins racing on the same reservation resolve as last-write-wins.
func (s *Service) UpdateStatus(ctx context.Context, id, newStatus string) (*models.Reservation, error) {
	if !ValidStatus(newStatus) {
		return nil, &models.ValidationError{Field: "status", Reason: "unknown status"}
	}

	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(res.Status, newStatus) {
		return nil, models.ErrInvalidTransition
	}

	at := s.now()
	if err := s.repo.SetStatus(ctx, id, newStatus, at); err != nil {
		return nil, err
	}
	res.Status = newStatus
	res.UpdatedAt = at
	return res, nil
}

// Delete removes a reservation outright, from any status. Admin only.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
