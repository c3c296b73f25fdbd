package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/unimarket/unimarket/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateTrade(ctx context.Context, trade model.Trade) (string, error) {
	trade.ID = uuid.NewString()
	if _, err := s.trades.InsertOne(ctx, trade); err != nil {
		return "", errors.Wrap(err, "insert trade")
	}
	return trade.ID, nil
}

func (s *Store) GetTrade(ctx context.Context, id string) (model.Trade, error) {
	var trade model.Trade
	err := s.trades.FindOne(ctx, bson.M{"_id": id}).Decode(&trade)
	return trade, notFoundIfNoDocuments(err, "get trade %s", id)
}

func (s *Store) SetTradeStatus(ctx context.Context, id string, status model.TradeStatus, updatedAt time.Time) error {
	_, err := s.trades.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": updatedAt}})
	return errors.Wrapf(err, "set status of trade %s", id)
}

func (s *Store) AddTradeComment(ctx context.Context, comment model.TradeComment) (string, error) {
	comment.ID = uuid.NewString()
	if _, err := s.tradeComment.InsertOne(ctx, comment); err != nil {
		return "", errors.Wrapf(err, "insert comment on trade %s", comment.TradeID)
	}
	return comment.ID, nil
}

func (s *Store) ListTradeComments(ctx context.Context, tradeID string) ([]model.TradeComment, error) {
	cur, err := s.tradeComment.Find(ctx, bson.M{"tradeId": tradeID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, errors.Wrapf(err, "find comments of trade %s", tradeID)
	}
	var comments []model.TradeComment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, errors.Wrap(err, "decode trade comments")
	}
	return comments, nil
}

func (s *Store) TouchTrade(ctx context.Context, id string, t time.Time) error {
	_, err := s.trades.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"updatedAt": t}})
	return errors.Wrapf(err, "touch trade %s", id)
}
