package identity

import (
	"context"
	"errors"
	"time"

	"sabor/db"
	"sabor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

// setupFlagID is the fixed document guarding "exactly one owner, set up once".
const setupFlagID = "owner-setup"

// OwnerRepo persists the bootstrap owner account and its singleton setup flag.
type OwnerRepo interface {
	Configured(ctx context.Context) (bool, error)
	MarkConfigured(ctx context.Context) error
	Insert(ctx context.Context, acct *models.OwnerAccount) error
	FindByEmail(ctx context.Context, email string) (*models.OwnerAccount, error)
}

// CredentialRepo persists customer sign-in records.
type CredentialRepo interface {
	Insert(ctx context.Context, cred *models.CustomerCredential) error
	FindByEmail(ctx context.Context, email string) (*models.CustomerCredential, error)
	SetResetToken(ctx context.Context, credentialID, tokenHash string, expiry time.Time) error
	FindByResetToken(ctx context.Context, tokenHash string) (*models.CustomerCredential, error)
	SetPassword(ctx context.Context, credentialID, passwordHash string) error
}

// ProfileRepo persists customer profiles, keyed by credential id.
type ProfileRepo interface {
	Insert(ctx context.Context, p *models.CustomerProfile) error
	FindByCredentialID(ctx context.Context, credentialID string) (*models.CustomerProfile, error)
	SetAdminFlag(ctx context.Context, credentialID string, flag int) error
}

// --- Mongo implementations ---

type mongoOwnerRepo struct{ col *mongo.Collection }

func NewMongoOwnerRepo() OwnerRepo {
	return &mongoOwnerRepo{col: db.OwnersCollection}
}

func (r *mongoOwnerRepo) Configured(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.col.FindOne(ctx, bson.M{"id": setupFlagID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, &models.CollaboratorError{Op: "owners.configured", Err: err}
	}
	return true, nil
}

func (r *mongoOwnerRepo) MarkConfigured(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"id": setupFlagID},
		bson.M{"$set": bson.M{"id": setupFlagID, "configured": true}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return &models.CollaboratorError{Op: "owners.markConfigured", Err: err}
	}
	return nil
}

func (r *mongoOwnerRepo) Insert(ctx context.Context, acct *models.OwnerAccount) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, acct); err != nil {
		return &models.CollaboratorError{Op: "owners.insert", Err: err}
	}
	return nil
}

func (r *mongoOwnerRepo) FindByEmail(ctx context.Context, email string) (*models.OwnerAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var acct models.OwnerAccount
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&acct)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.CollaboratorError{Op: "owners.findByEmail", Err: err}
	}
	return &acct, nil
}

type mongoCredentialRepo struct{ col *mongo.Collection }

func NewMongoCredentialRepo() CredentialRepo {
	return &mongoCredentialRepo{col: db.CustomersCollection}
}

func (r *mongoCredentialRepo) Insert(ctx context.Context, cred *models.CustomerCredential) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, cred); err != nil {
		return &models.CollaboratorError{Op: "customers.insert", Err: err}
	}
	return nil
}

func (r *mongoCredentialRepo) FindByEmail(ctx context.Context, email string) (*models.CustomerCredential, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var cred models.CustomerCredential
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&cred)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.CollaboratorError{Op: "customers.findByEmail", Err: err}
	}
	return &cred, nil
}

func (r *mongoCredentialRepo) SetResetToken(ctx context.Context, credentialID, tokenHash string, expiry time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"credentialId": credentialID},
		bson.M{"$set": bson.M{"resetTokenHash": tokenHash, "resetExpiry": expiry}},
	)
	if err != nil {
		return &models.CollaboratorError{Op: "customers.setResetToken", Err: err}
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *mongoCredentialRepo) FindByResetToken(ctx context.Context, tokenHash string) (*models.CustomerCredential, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var cred models.CustomerCredential
	err := r.col.FindOne(ctx, bson.M{"resetTokenHash": tokenHash}).Decode(&cred)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.CollaboratorError{Op: "customers.findByResetToken", Err: err}
	}
	return &cred, nil
}

func (r *mongoCredentialRepo) SetPassword(ctx context.Context, credentialID, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"credentialId": credentialID},
		bson.M{
			"$set":   bson.M{"passwordHash": passwordHash},
			"$unset": bson.M{"resetTokenHash": "", "resetExpiry": ""},
		},
	)
	if err != nil {
		return &models.CollaboratorError{Op: "customers.setPassword", Err: err}
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

type mongoProfileRepo struct{ col *mongo.Collection }

func NewMongoProfileRepo() ProfileRepo {
	return &mongoProfileRepo{col: db.ProfilesCollection}
}

func (r *mongoProfileRepo) Insert(ctx context.Context, p *models.CustomerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return &models.CollaboratorError{Op: "profiles.insert", Err: err}
	}
	return nil
}

func (r *mongoProfileRepo) FindByCredentialID(ctx context.Context, credentialID string) (*models.CustomerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p models.CustomerProfile
	err := r.col.FindOne(ctx, bson.M{"credentialId": credentialID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.CollaboratorError{Op: "profiles.findByCredentialId", Err: err}
	}
	return &p, nil
}

func (r *mongoProfileRepo) SetAdminFlag(ctx context.Context, credentialID string, flag int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"credentialId": credentialID},
		bson.M{"$set": bson.M{"isAdmin": flag}},
	)
	if err != nil {
		return &models.CollaboratorError{Op: "profiles.setAdminFlag", Err: err}
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
