// Package store implements the persistent document store on MongoDB.
// Collection layout mirrors the logical model: top level collections for
// users, private records, pending registrations, products, archived
// products and trades, with per-parent comment and draft collections
// flattened to top level and keyed by the parent id.
package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/unimarket/unimarket/model"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Store is a thin wrapper over a mongo database, constructed once at
// process start and injected into every component that needs durable
// state.
type Store struct {
	client *mongo.Client

	users          *mongo.Collection
	userPrivates   *mongo.Collection
	pendingUsers   *mongo.Collection
	pendingVerifs  *mongo.Collection
	products       *mongo.Collection
	productDeleted *mongo.Collection
	productComment *mongo.Collection
	drafts         *mongo.Collection
	trades         *mongo.Collection
	tradeComment   *mongo.Collection
}

// NewStore connects to the given mongo URI and binds the collection
// handles.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "ping mongo")
	}

	db := client.Database(dbName)
	return &Store{
		client:         client,
		users:          db.Collection("user"),
		userPrivates:   db.Collection("userPrivate"),
		pendingUsers:   db.Collection("userBeforeInput"),
		pendingVerifs:  db.Collection("userBeforeEmailVerification"),
		products:       db.Collection("product"),
		productDeleted: db.Collection("productDeleted"),
		productComment: db.Collection("productComment"),
		drafts:         db.Collection("draftProduct"),
		trades:         db.Collection("trade"),
		tradeComment:   db.Collection("tradeComment"),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// notFoundIfNoDocuments translates the driver's miss into the domain
// sentinel so callers can errors.Is against model.ErrNotFound.
func notFoundIfNoDocuments(err error, wrap string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errors.Wrapf(model.ErrNotFound, wrap, args...)
	}
	return errors.Wrapf(err, wrap, args...)
}
