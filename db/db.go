package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ReservationsCollection *mongo.Collection
	CustomersCollection    *mongo.Collection
	ProfilesCollection     *mongo.Collection
	OwnersCollection       *mongo.Collection
	SettingsCollection     *mongo.Collection
	Client                 *mongo.Client
)

// Init connects to MongoDB and binds the collections. Called once from main;
// tests never touch it.
func Init() error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "sabordb"
	}

	ReservationsCollection = client.Database(dbName).Collection("reservations")
	CustomersCollection = client.Database(dbName).Collection("customers")
	ProfilesCollection = client.Database(dbName).Collection("profiles")
	OwnersCollection = client.Database(dbName).Collection("owners")
	SettingsCollection = client.Database(dbName).Collection("settings")

	log.Printf("Connected to MongoDB at %s (db=%s)", uri, dbName)
	return nil
}

// Close disconnects the client on shutdown.
func Close(ctx context.Context) {
	if Client != nil {
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}
}
