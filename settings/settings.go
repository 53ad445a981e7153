package settings

import (
	"context"
	"time"

	"sabor/db"
	"sabor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

// settingsID is the fixed id of the single establishment document.
const settingsID = "establishment"

// Repo persists the establishment operating-hours settings.
type Repo interface {
	Get(ctx context.Context) (*models.EstablishmentSettings, error)
	Put(ctx context.Context, s *models.EstablishmentSettings) error
}

type mongoRepo struct{ col *mongo.Collection }

func NewMongoRepo() Repo {
	return &mongoRepo{col: db.SettingsCollection}
}

// Get returns the stored schedule, or an empty one when nothing has been
// saved yet. The availability engine degrades an empty schedule to an empty
// slot list.
func (r *mongoRepo) Get(ctx context.Context) (*models.EstablishmentSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var s models.EstablishmentSettings
	err := r.col.FindOne(ctx, bson.M{"id": settingsID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return &models.EstablishmentSettings{ID: settingsID}, nil
	}
	if err != nil {
		return nil, &models.CollaboratorError{Op: "settings.get", Err: err}
	}
	return &s, nil
}

func (r *mongoRepo) Put(ctx context.Context, s *models.EstablishmentSettings) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	s.ID = settingsID
	_, err := r.col.UpdateOne(ctx,
		bson.M{"id": settingsID},
		bson.M{"$set": s},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return &models.CollaboratorError{Op: "settings.put", Err: err}
	}
	return nil
}
