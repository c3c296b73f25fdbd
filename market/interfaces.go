// Package market holds the core of the service: the identity and token
// service, the trade engine, the product catalog and the profile
// manager. Every component takes its collaborators through constructor
// injection; durable state lives behind the Store interface, blobs
// behind ImageStore, push delivery behind Notifier and one-time OAuth
// states behind StateStore.
package market

import (
	"context"
	"io"
	"time"

	"github.com/unimarket/unimarket/model"
)

// Store is the persistent document store. Implementations must map a
// missing document to model.ErrNotFound and provide atomic semantics for
// the increment and array operations.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user model.User) (string, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserProfile(ctx context.Context, id string, displayName, imageID, introduction string, department *model.Department, graduate *model.Graduate) error
	AppendSoldProduct(ctx context.Context, userID, productID string) error

	// UserPrivate
	CreateUserPrivate(ctx context.Context, private model.UserPrivate) error
	GetUserPrivate(ctx context.Context, id string) (model.UserPrivate, error)
	GetUserIDByLogInService(ctx context.Context, serviceAndID string) (string, error)
	SetLastAccessTokenID(ctx context.Context, userID, tokenID string) error
	SetNotifyToken(ctx context.Context, userID, token string) error
	AddLikedProduct(ctx context.Context, userID, productID string) error
	RemoveLikedProduct(ctx context.Context, userID, productID string) error
	AddHistoryViewProduct(ctx context.Context, userID, productID string) error
	AddCommentedProduct(ctx context.Context, userID, productID string) error
	AppendTrading(ctx context.Context, userID, tradeID string) error
	MoveTradeToTraded(ctx context.Context, userID, tradeID string) error

	// Pending registrations
	PutPendingUser(ctx context.Context, pending model.PendingUser) error
	TakePendingUser(ctx context.Context, key string) (model.PendingUser, error)
	PutPendingVerification(ctx context.Context, pending model.PendingVerification) error
	GetPendingVerification(ctx context.Context, key string) (model.PendingVerification, error)
	MarkEmailVerified(ctx context.Context, key string) error
	DeletePendingVerification(ctx context.Context, key string) error

	// Products
	CreateProduct(ctx context.Context, product model.Product) (string, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListRecentProducts(ctx context.Context) ([]model.Product, error)
	ListRecommendProducts(ctx context.Context) ([]model.Product, error)
	ListFreeProducts(ctx context.Context) ([]model.Product, error)
	UpdateProductListing(ctx context.Context, id string, update model.ProductUpdate) error
	SetProductStatus(ctx context.Context, id string, status model.ProductStatus) error
	IncrementProductLiked(ctx context.Context, id string, delta int32) error
	IncrementProductViewed(ctx context.Context, id string) error
	TouchProduct(ctx context.Context, id string, t time.Time) error
	DeleteProduct(ctx context.Context, id string) error
	ArchiveProduct(ctx context.Context, archived model.DeletedProduct) error
	AddProductComment(ctx context.Context, comment model.ProductComment) (string, error)
	ListProductComments(ctx context.Context, productID string) ([]model.ProductComment, error)

	// Drafts
	CreateDraftProduct(ctx context.Context, draft model.DraftProduct) (string, error)
	GetDraftProduct(ctx context.Context, userID, draftID string) (model.DraftProduct, error)
	ListDraftProducts(ctx context.Context, userID string) ([]model.DraftProduct, error)
	UpdateDraftProduct(ctx context.Context, userID, draftID string, update model.DraftUpdate) error
	DeleteDraftProduct(ctx context.Context, userID, draftID string) error

	// Trades
	CreateTrade(ctx context.Context, trade model.Trade) (string, error)
	GetTrade(ctx context.Context, id string) (model.Trade, error)
	SetTradeStatus(ctx context.Context, id string, status model.TradeStatus, updatedAt time.Time) error
	AddTradeComment(ctx context.Context, comment model.TradeComment) (string, error)
	ListTradeComments(ctx context.Context, tradeID string) ([]model.TradeComment, error)
	TouchTrade(ctx context.Context, id string, t time.Time) error
}

// ImageStore stores image blobs addressed by opaque ids.
type ImageStore interface {
	// Save stores the blob and returns its new id.
	Save(ctx context.Context, data []byte, mimeType string) (string, error)
	// SaveThumbnail downscales the blob to thumbnail size before storing.
	SaveThumbnail(ctx context.Context, data []byte, mimeType string) (string, error)
	// ThumbnailFrom reads an already stored image and stores a downscaled
	// copy, returning the copy's id.
	ThumbnailFrom(ctx context.Context, imageID string) (string, error)
	// Open streams a stored blob and reports its mime type.
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, id string) error
}

// Notifier delivers a push message using a per-user delivery token.
// Delivery is best effort: callers log failures and move on.
type Notifier interface {
	Send(ctx context.Context, token, message string, sticker bool) error
}

// StateStore mints and consumes the one-time anti-replay states used by
// the OAuth redirect flows. Consume operations succeed at most once per
// state.
type StateStore interface {
	CreateLogInState(ctx context.Context) (string, error)
	ConsumeLogInState(ctx context.Context, state string) (bool, error)
	CreateNotifyState(ctx context.Context, userID string) (string, error)
	// ConsumeNotifyState returns the user id that minted the state, or
	// model.ErrNotFound when the state is unknown or already used.
	ConsumeNotifyState(ctx context.Context, state string) (string, error)
}
