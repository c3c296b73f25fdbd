package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/unimarket/unimarket/model"
	"go.mongodb.org/mongo-driver/bson"
)

func (s *Store) CreateUser(ctx context.Context, user model.User) (string, error) {
	user.ID = uuid.NewString()
	if user.SoldProducts == nil {
		user.SoldProducts = []string{}
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return "", errors.Wrap(err, "insert user")
	}
	return user.ID, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (model.User, error) {
	var user model.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, notFoundIfNoDocuments(err, "get user %s", id)
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	cur, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	return users, nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, id string, displayName, imageID, introduction string, department *model.Department, graduate *model.Graduate) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"displayName":  displayName,
		"imageId":      imageID,
		"introduction": introduction,
		"department":   department,
		"graduate":     graduate,
	}})
	return errors.Wrapf(err, "update profile of %s", id)
}

func (s *Store) AppendSoldProduct(ctx context.Context, userID, productID string) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"soldProducts": productID}})
	return errors.Wrapf(err, "append sold product to %s", userID)
}

func (s *Store) CreateUserPrivate(ctx context.Context, private model.UserPrivate) error {
	_, err := s.userPrivates.InsertOne(ctx, private)
	return errors.Wrap(err, "insert user private")
}

func (s *Store) GetUserPrivate(ctx context.Context, id string) (model.UserPrivate, error) {
	var private model.UserPrivate
	err := s.userPrivates.FindOne(ctx, bson.M{"_id": id}).Decode(&private)
	return private, notFoundIfNoDocuments(err, "get user private %s", id)
}

func (s *Store) GetUserIDByLogInService(ctx context.Context, serviceAndID string) (string, error) {
	var private model.UserPrivate
	err := s.userPrivates.FindOne(ctx, bson.M{"logInServiceAndId": serviceAndID}).Decode(&private)
	if err != nil {
		return "", notFoundIfNoDocuments(err, "find user by login service %s", serviceAndID)
	}
	return private.ID, nil
}

func (s *Store) SetLastAccessTokenID(ctx context.Context, userID, tokenID string) error {
	_, err := s.userPrivates.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"lastAccessTokenId": tokenID}})
	return errors.Wrapf(err, "set last access token of %s", userID)
}

func (s *Store) SetNotifyToken(ctx context.Context, userID, token string) error {
	_, err := s.userPrivates.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"notifyToken": token}})
	return errors.Wrapf(err, "set notify token of %s", userID)
}

func (s *Store) AddLikedProduct(ctx context.Context, userID, productID string) error {
	return s.addToPrivateList(ctx, userID, "likedProducts", productID)
}

func (s *Store) RemoveLikedProduct(ctx context.Context, userID, productID string) error {
	_, err := s.userPrivates.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"likedProducts": productID}})
	return errors.Wrapf(err, "remove liked product of %s", userID)
}

func (s *Store) AddHistoryViewProduct(ctx context.Context, userID, productID string) error {
	return s.addToPrivateList(ctx, userID, "historyViewProducts", productID)
}

func (s *Store) AddCommentedProduct(ctx context.Context, userID, productID string) error {
	return s.addToPrivateList(ctx, userID, "commentedProducts", productID)
}

func (s *Store) AppendTrading(ctx context.Context, userID, tradeID string) error {
	return s.addToPrivateList(ctx, userID, "trading", tradeID)
}

// MoveTradeToTraded atomically pulls the trade out of the open list and
// unions it into the terminal one, keeping the two lists disjoint.
func (s *Store) MoveTradeToTraded(ctx context.Context, userID, tradeID string) error {
	_, err := s.userPrivates.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull":     bson.M{"trading": tradeID},
		"$addToSet": bson.M{"traded": tradeID},
	})
	return errors.Wrapf(err, "move trade %s to traded for %s", tradeID, userID)
}

func (s *Store) addToPrivateList(ctx context.Context, userID, field, id string) error {
	_, err := s.userPrivates.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{field: id}})
	return errors.Wrapf(err, "add to %s of %s", field, userID)
}
