package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/unimarket/unimarket/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) PutPendingUser(ctx context.Context, pending model.PendingUser) error {
	_, err := s.pendingUsers.ReplaceOne(ctx, bson.M{"_id": pending.Key}, pending,
		options.Replace().SetUpsert(true))
	return errors.Wrapf(err, "put pending user %s", pending.Key)
}

// TakePendingUser reads and deletes the pending record in one round
// trip, so a sign-up token can only be redeemed once.
func (s *Store) TakePendingUser(ctx context.Context, key string) (model.PendingUser, error) {
	var pending model.PendingUser
	err := s.pendingUsers.FindOneAndDelete(ctx, bson.M{"_id": key}).Decode(&pending)
	return pending, notFoundIfNoDocuments(err, "take pending user %s", key)
}

func (s *Store) PutPendingVerification(ctx context.Context, pending model.PendingVerification) error {
	_, err := s.pendingVerifs.ReplaceOne(ctx, bson.M{"_id": pending.Key}, pending,
		options.Replace().SetUpsert(true))
	return errors.Wrapf(err, "put pending verification %s", pending.Key)
}

func (s *Store) GetPendingVerification(ctx context.Context, key string) (model.PendingVerification, error) {
	var pending model.PendingVerification
	err := s.pendingVerifs.FindOne(ctx, bson.M{"_id": key}).Decode(&pending)
	return pending, notFoundIfNoDocuments(err, "get pending verification %s", key)
}

func (s *Store) MarkEmailVerified(ctx context.Context, key string) error {
	_, err := s.pendingVerifs.UpdateOne(ctx, bson.M{"_id": key},
		bson.M{"$set": bson.M{"emailVerified": true}})
	return errors.Wrapf(err, "mark email verified %s", key)
}

func (s *Store) DeletePendingVerification(ctx context.Context, key string) error {
	_, err := s.pendingVerifs.DeleteOne(ctx, bson.M{"_id": key})
	return errors.Wrapf(err, "delete pending verification %s", key)
}
