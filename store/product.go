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

func (s *Store) CreateProduct(ctx context.Context, product model.Product) (string, error) {
	product.ID = uuid.NewString()
	if _, err := s.products.InsertOne(ctx, product); err != nil {
		return "", errors.Wrap(err, "insert product")
	}
	return product.ID, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var product model.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, notFoundIfNoDocuments(err, "get product %s", id)
}

func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.findProducts(ctx, bson.M{}, nil)
}

func (s *Store) ListRecentProducts(ctx context.Context) ([]model.Product, error) {
	return s.findProducts(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (s *Store) ListRecommendProducts(ctx context.Context) ([]model.Product, error) {
	return s.findProducts(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "likedCount", Value: -1}}))
}

func (s *Store) ListFreeProducts(ctx context.Context) ([]model.Product, error) {
	return s.findProducts(ctx, bson.M{"price": 0}, nil)
}

func (s *Store) findProducts(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Product, error) {
	var cur, err = s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	var products []model.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func (s *Store) UpdateProductListing(ctx context.Context, id string, update model.ProductUpdate) error {
	_, err := s.products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":             update.Name,
		"price":            update.Price,
		"description":      update.Description,
		"condition":        update.Condition,
		"category":         update.Category,
		"thumbnailImageId": update.ThumbnailImageID,
		"imageIds":         update.ImageIDs,
		"updatedAt":        update.UpdatedAt,
	}})
	return errors.Wrapf(err, "update product %s", id)
}

func (s *Store) SetProductStatus(ctx context.Context, id string, status model.ProductStatus) error {
	_, err := s.products.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	return errors.Wrapf(err, "set status of product %s", id)
}

func (s *Store) IncrementProductLiked(ctx context.Context, id string, delta int32) error {
	_, err := s.products.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likedCount": delta}})
	return errors.Wrapf(err, "increment liked count of product %s", id)
}

func (s *Store) IncrementProductViewed(ctx context.Context, id string) error {
	_, err := s.products.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"viewedCount": 1}})
	return errors.Wrapf(err, "increment viewed count of product %s", id)
}

func (s *Store) TouchProduct(ctx context.Context, id string, t time.Time) error {
	_, err := s.products.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"updatedAt": t}})
	return errors.Wrapf(err, "touch product %s", id)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrapf(err, "delete product %s", id)
}

func (s *Store) ArchiveProduct(ctx context.Context, archived model.DeletedProduct) error {
	_, err := s.productDeleted.InsertOne(ctx, archived)
	return errors.Wrapf(err, "archive product %s", archived.ID)
}

func (s *Store) AddProductComment(ctx context.Context, comment model.ProductComment) (string, error) {
	comment.ID = uuid.NewString()
	if _, err := s.productComment.InsertOne(ctx, comment); err != nil {
		return "", errors.Wrapf(err, "insert comment on product %s", comment.ProductID)
	}
	return comment.ID, nil
}

func (s *Store) ListProductComments(ctx context.Context, productID string) ([]model.ProductComment, error) {
	cur, err := s.productComment.Find(ctx, bson.M{"productId": productID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, errors.Wrapf(err, "find comments of product %s", productID)
	}
	var comments []model.ProductComment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, errors.Wrap(err, "decode product comments")
	}
	return comments, nil
}

func (s *Store) CreateDraftProduct(ctx context.Context, draft model.DraftProduct) (string, error) {
	draft.ID = uuid.NewString()
	if _, err := s.drafts.InsertOne(ctx, draft); err != nil {
		return "", errors.Wrap(err, "insert draft product")
	}
	return draft.ID, nil
}

func (s *Store) GetDraftProduct(ctx context.Context, userID, draftID string) (model.DraftProduct, error) {
	var draft model.DraftProduct
	err := s.drafts.FindOne(ctx, bson.M{"_id": draftID, "userId": userID}).Decode(&draft)
	return draft, notFoundIfNoDocuments(err, "get draft %s of %s", draftID, userID)
}

func (s *Store) ListDraftProducts(ctx context.Context, userID string) ([]model.DraftProduct, error) {
	cur, err := s.drafts.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: 1}}))
	if err != nil {
		return nil, errors.Wrapf(err, "find drafts of %s", userID)
	}
	var drafts []model.DraftProduct
	if err := cur.All(ctx, &drafts); err != nil {
		return nil, errors.Wrap(err, "decode drafts")
	}
	return drafts, nil
}

func (s *Store) UpdateDraftProduct(ctx context.Context, userID, draftID string, update model.DraftUpdate) error {
	_, err := s.drafts.UpdateOne(ctx, bson.M{"_id": draftID, "userId": userID},
		bson.M{"$set": bson.M{
			"name":             update.Name,
			"description":      update.Description,
			"price":            update.Price,
			"condition":        update.Condition,
			"category":         update.Category,
			"thumbnailImageId": update.ThumbnailImageID,
			"imageIds":         update.ImageIDs,
			"updatedAt":        update.UpdatedAt,
		}})
	return errors.Wrapf(err, "update draft %s of %s", draftID, userID)
}

func (s *Store) DeleteDraftProduct(ctx context.Context, userID, draftID string) error {
	_, err := s.drafts.DeleteOne(ctx, bson.M{"_id": draftID, "userId": userID})
	return errors.Wrapf(err, "delete draft %s of %s", draftID, userID)
}
