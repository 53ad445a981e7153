package reservations

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

// Repo is the persistence contract for reservations. Listings come back
// newest first; ordering is done by the store, not in memory.
type Repo interface {
	Insert(ctx context.Context, r *models.Reservation) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	FindByEmail(ctx context.Context, email string) ([]models.Reservation, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
	SetStatus(ctx context.Context, id, status string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type mongoRepo struct{ col *mongo.Collection }

func NewMongoRepo() Repo {
	return &mongoRepo{col: db.ReservationsCollection}
}

func (r *mongoRepo) Insert(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, res); err != nil {
		return &models.CollaboratorError{Op: "reservations.insert", Err: err}
	}
	return nil
}

func (r *mongoRepo) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var res models.Reservation
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.CollaboratorError{Op: "reservations.findById", Err: err}
	}
	return &res, nil
}

func (r *mongoRepo) FindByEmail(ctx context.Context, email string) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{"email": email}, "reservations.findByEmail")
}

func (r *mongoRepo) FindAll(ctx context.Context) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{}, "reservations.findAll")
}

func (r *mongoRepo) find(ctx context.Context, filter bson.M, op string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, &models.CollaboratorError{Op: op, Err: err}
	}
	defer cur.Close(ctx)

	var out []models.Reservation
	if err := cur.All(ctx, &out); err != nil {
		return nil, &models.CollaboratorError{Op: op, Err: err}
	}
	return out, nil
}

func (r *mongoRepo) SetStatus(ctx context.Context, id, status string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": at}},
	)
	if err != nil {
		return &models.CollaboratorError{Op: "reservations.setStatus", Err: err}
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *mongoRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return &models.CollaboratorError{Op: "reservations.delete", Err: err}
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
