package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the repositories.
const (
	usersCollection     = "users"
	wishlistsCollection = "wishlists"
	templatesCollection = "saved_templates"
	exportsCollection   = "exported_templates"
)

// Connect opens a client, pings the deployment, and returns the database handle.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client.Database(dbName), nil
}

// EnsureIndexes creates the uniqueness indexes the application relies on.
// Creation is idempotent; failures are logged and tolerated since the
// indexes usually already exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, users); err != nil {
		logger.WithError(err).Warn("failed to ensure users indexes")
	}

	wishlist := mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "template_slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(wishlistsCollection).Indexes().CreateOne(ctx, wishlist); err != nil {
		logger.WithError(err).Warn("failed to ensure wishlists index")
	}
}

// isDuplicateKey reports whether err is a unique-index violation (code 11000)
// on the named index.
func isDuplicateKey(err error, indexName string) bool {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if e.Code == 11000 && (indexName == "" || strings.Contains(e.Message, indexName)) {
			return true
		}
	}
	return false
}
