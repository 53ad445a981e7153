package access

import (
	"context"
	"errors"
	"testing"

	"sabor/models"

	"github.com/stretchr/testify/assert"
)

type fakeProfiles struct {
	byID map[string]*models.CustomerProfile
	err  error
}

func (f *fakeProfiles) FindByCredentialID(_ context.Context, id string) (*models.CustomerProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return p, nil
}

func TestIsAdminFailsClosed(t *testing.T) {
	ctx := context.Background()

	profiles := &fakeProfiles{byID: map[string]*models.CustomerProfile{
		"c-admin":   {CredentialID: "c-admin", IsAdmin: 1},
		"c-regular": {CredentialID: "c-regular", IsAdmin: 0},
	}}
	gate := NewGate(profiles)

	assert.False(t, gate.IsAdmin(ctx, nil), "nil session")
	assert.False(t, gate.IsAdmin(ctx, &models.Session{Kind: models.KindOwner, CredentialID: "o1"}), "owner kind")
	assert.False(t, gate.IsAdmin(ctx, &models.Session{Kind: models.KindCustomer, CredentialID: "c-missing"}), "no profile record")
	assert.False(t, gate.IsAdmin(ctx, &models.Session{Kind: models.KindCustomer, CredentialID: "c-regular"}), "flag not set")
	assert.True(t, gate.IsAdmin(ctx, &models.Session{Kind: models.KindCustomer, CredentialID: "c-admin"}))
}

func TestIsAdminOnStoreError(t *testing.T) {
	gate := NewGate(&fakeProfiles{err: errors.New("connection reset")})
	session := &models.Session{Kind: models.KindCustomer, CredentialID: "c-admin"}
	assert.False(t, gate.IsAdmin(context.Background(), session))
}

func TestIsOwnerSession(t *testing.T) {
	gate := NewGate(&fakeProfiles{})
	assert.False(t, gate.IsOwnerSession(nil))
	assert.False(t, gate.IsOwnerSession(&models.Session{Kind: models.KindCustomer, CredentialID: "c1"}))
	assert.True(t, gate.IsOwnerSession(&models.Session{Kind: models.KindOwner, CredentialID: "o1"}))
}
