package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"time"

	"sabor/mailer"
	"sabor/models"
	"sabor/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// Customers manages registered customer credentials and profiles.
type Customers struct {
	creds     CredentialRepo
	profiles  ProfileRepo
	mail      mailer.Mailer
	broker    *Broker
	now       func() time.Time
	resetBase string
}

func NewCustomers(creds CredentialRepo, profiles ProfileRepo, mail mailer.Mailer, broker *Broker) *Customers {
	base := os.Getenv("RESET_LINK_BASE")
	if base == "" {
		base = "http://localhost:8080/reset"
	}
	return &Customers{
		creds:     creds,
		profiles:  profiles,
		mail:      mail,
		broker:    broker,
		now:       time.Now,
		resetBase: base,
	}
}

// Register creates a credential plus its profile record. New profiles always
// start with isAdmin=0; elevation happens only through an already elevated
// actor.
func (s *Customers) Register(ctx context.Context, email, password, name, phone string) (*models.Session, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return nil, "", &models.ValidationError{Field: "email", Reason: "invalid email address"}
	}
	if len(password) < 6 {
		return nil, "", &models.ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	if strings.TrimSpace(name) == "" {
		return nil, "", &models.ValidationError{Field: "name", Reason: "required"}
	}

	_, err := s.creds.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", &models.ValidationError{Field: "email", Reason: "already registered"}
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", &models.CollaboratorError{Op: "customers.hash", Err: err}
	}

	now := s.now()
	cred := &models.CustomerCredential{
		CredentialID: uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	profile := &models.CustomerProfile{
		CredentialID: cred.CredentialID,
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		IsAdmin:      0,
		CreatedAt:    now,
	}

	if err := s.creds.Insert(ctx, cred); err != nil {
		return nil, "", err
	}
	if err := s.profiles.Insert(ctx, profile); err != nil {
		return nil, "", err
	}

	session := &models.Session{Kind: models.KindCustomer, CredentialID: cred.CredentialID, Profile: profile}
	token, err := IssueToken(models.KindCustomer, cred.CredentialID, now)
	if err != nil {
		return nil, "", &models.CollaboratorError{Op: "customers.token", Err: err}
	}

	s.broker.Publish(session)
	return session, token, nil
}

// SignIn validates customer credentials and loads the profile. A missing
// profile record still yields a session; the access gate treats it as
// non-admin.
func (s *Customers) SignIn(ctx context.Context, email, password string) (*models.Session, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	cred, err := s.creds.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrUnauthorized
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, "", models.ErrUnauthorized
	}

	session := &models.Session{Kind: models.KindCustomer, CredentialID: cred.CredentialID}
	if profile, err := s.profiles.FindByCredentialID(ctx, cred.CredentialID); err == nil {
		session.Profile = profile
	}

	token, err := IssueToken(models.KindCustomer, cred.CredentialID, s.now())
	if err != nil {
		return nil, "", &models.CollaboratorError{Op: "customers.token", Err: err}
	}

	s.broker.Publish(session)
	return session, token, nil
}

// SignOut publishes the empty session to observers.
func (s *Customers) SignOut() {
	s.broker.Publish(nil)
}

// ResetPassword sends a reset link when the email is registered and reports
// success either way, so responses never reveal whether an account exists.
// Collaborator failures still propagate.
func (s *Customers) ResetPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return &models.ValidationError{Field: "email", Reason: "invalid email address"}
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expiry := s.now().Add(resetTokenTTL)
	if err := s.creds.SetResetToken(ctx, cred.CredentialID, hashToken(token), expiry); err != nil {
		return err
	}

	link := s.resetBase + "?token=" + token
	if err := s.mail.SendPasswordReset(email, link); err != nil {
		return &models.CollaboratorError{Op: "customers.resetMail", Err: err}
	}
	return nil
}

// ConfirmReset exchanges a valid, unexpired reset token for a new password.
func (s *Customers) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return &models.ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}

	cred, err := s.creds.FindByResetToken(ctx, hashToken(token))
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	if s.now().After(cred.ResetExpiry) {
		return models.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return &models.CollaboratorError{Op: "customers.hash", Err: err}
	}
	return s.creds.SetPassword(ctx, cred.CredentialID, string(hash))
}

// SetAdminFlag flips the dashboard-access flag on a profile. Routes gate this
// behind an elevated session.
func (s *Customers) SetAdminFlag(ctx context.Context, credentialID string, flag int) error {
	if flag != 0 && flag != 1 {
		return &models.ValidationError{Field: "isAdmin", Reason: "must be 0 or 1"}
	}
	return s.profiles.SetAdminFlag(ctx, credentialID, flag)
}

// Hashes a given token
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
