package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"sabor/models"
	"sabor/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Owners manages the bootstrap principal. Setup may succeed exactly once per
// deployment; after that only sign-in is possible.
type Owners struct {
	repo   OwnerRepo
	broker *Broker
	now    func() time.Time
}

func NewOwners(repo OwnerRepo, broker *Broker) *Owners {
	return &Owners{repo: repo, broker: broker, now: time.Now}
}

// Setup creates the single owner account. Fails with ErrAlreadyConfigured
// once the setup flag exists. The check and the flag write are colocated
// here; nothing else touches the flag.
func (s *Owners) Setup(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return &models.ValidationError{Field: "email", Reason: "invalid email address"}
	}
	if len(password) < 6 {
		return &models.ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	if strings.TrimSpace(name) == "" {
		return &models.ValidationError{Field: "name", Reason: "required"}
	}

	configured, err := s.repo.Configured(ctx)
	if err != nil {
		return err
	}
	if configured {
		return models.ErrAlreadyConfigured
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return &models.CollaboratorError{Op: "owners.hash", Err: err}
	}

	acct := &models.OwnerAccount{
		CredentialID: uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         "owner",
		CreatedAt:    s.now(),
	}
	if err := s.repo.Insert(ctx, acct); err != nil {
		return err
	}
	return s.repo.MarkConfigured(ctx)
}

// SignIn validates owner credentials. Unknown email, wrong password and a
// stored role other than "owner" all come back as the same ErrUnauthorized so
// callers cannot probe which check failed.
func (s *Owners) SignIn(ctx context.Context, email, password string) (*models.Session, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	acct, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrUnauthorized
	}
	if err != nil {
		return nil, "", err
	}
	if acct.Role != "owner" {
		return nil, "", models.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, "", models.ErrUnauthorized
	}

	session := &models.Session{Kind: models.KindOwner, CredentialID: acct.CredentialID}
	token, err := IssueToken(models.KindOwner, acct.CredentialID, s.now())
	if err != nil {
		return nil, "", &models.CollaboratorError{Op: "owners.token", Err: err}
	}

	s.broker.Publish(session)
	return session, token, nil
}
