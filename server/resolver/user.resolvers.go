package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
)

// UserResolver serves the public identity record.
type UserResolver struct {
	root *RootResolver
	user model.User
}

func (r *UserResolver) ID() graphql.ID       { return graphql.ID(r.user.ID) }
func (r *UserResolver) DisplayName() string  { return r.user.DisplayName }
func (r *UserResolver) ImageID() graphql.ID  { return graphql.ID(r.user.ImageID) }
func (r *UserResolver) Introduction() string { return r.user.Introduction }

func (r *UserResolver) Department() *string {
	if r.user.Department == nil {
		return nil
	}
	s := string(*r.user.Department)
	return &s
}

func (r *UserResolver) Graduate() *string {
	if r.user.Graduate == nil {
		return nil
	}
	s := string(*r.user.Graduate)
	return &s
}

func (r *UserResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.user.CreatedAt}
}

func (r *UserResolver) SoldProducts(ctx context.Context) ([]*ProductResolver, error) {
	return r.root.productsByIDs(ctx, r.user.SoldProducts)
}

// UserPrivateResolver serves the owner's combined public and private
// view.
type UserPrivateResolver struct {
	root    *RootResolver
	user    model.User
	private model.UserPrivate
}

func (r *UserPrivateResolver) ID() graphql.ID       { return graphql.ID(r.user.ID) }
func (r *UserPrivateResolver) DisplayName() string  { return r.user.DisplayName }
func (r *UserPrivateResolver) ImageID() graphql.ID  { return graphql.ID(r.user.ImageID) }
func (r *UserPrivateResolver) Introduction() string { return r.user.Introduction }

func (r *UserPrivateResolver) Department() *string {
	return (&UserResolver{user: r.user}).Department()
}

func (r *UserPrivateResolver) Graduate() *string {
	return (&UserResolver{user: r.user}).Graduate()
}

func (r *UserPrivateResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.user.CreatedAt}
}

func (r *UserPrivateResolver) SoldProducts(ctx context.Context) ([]*ProductResolver, error) {
	return r.root.productsByIDs(ctx, r.user.SoldProducts)
}

func (r *UserPrivateResolver) LikedProducts(ctx context.Context) ([]*ProductResolver, error) {
	return r.root.productsByIDs(ctx, r.private.LikedProducts)
}

func (r *UserPrivateResolver) HistoryViewProducts(ctx context.Context) ([]*ProductResolver, error) {
	return r.root.productsByIDs(ctx, r.private.HistoryViewProducts)
}

func (r *UserPrivateResolver) CommentedProducts(ctx context.Context) ([]*ProductResolver, error) {
	return r.root.productsByIDs(ctx, r.private.CommentedProducts)
}

func (r *UserPrivateResolver) Trading(ctx context.Context) ([]*TradeResolver, error) {
	return r.root.tradesByIDs(ctx, r.user.ID, r.private.Trading)
}

func (r *UserPrivateResolver) Traded(ctx context.Context) ([]*TradeResolver, error) {
	return r.root.tradesByIDs(ctx, r.user.ID, r.private.Traded)
}

// UserSnapshotResolver serves a denormalized user reference.
type UserSnapshotResolver struct {
	id          string
	displayName string
	imageID     string
}

func (r *UserSnapshotResolver) ID() graphql.ID      { return graphql.ID(r.id) }
func (r *UserSnapshotResolver) DisplayName() string { return r.displayName }
func (r *UserSnapshotResolver) ImageID() graphql.ID { return graphql.ID(r.imageID) }

func (r *RootResolver) User(ctx context.Context, args struct{ UserID graphql.ID }) (*UserResolver, error) {
	user, err := r.Profiles.User(ctx, string(args.UserID))
	if err != nil {
		return nil, err
	}
	return &UserResolver{root: r, user: user}, nil
}

func (r *RootResolver) UserPrivate(ctx context.Context, args struct{ AccessToken string }) (*UserPrivateResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	user, err := r.Profiles.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	private, err := r.Profiles.Private(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserPrivateResolver{root: r, user: user, private: private}, nil
}

func (r *RootResolver) UpdateProfile(ctx context.Context, args struct {
	AccessToken  string
	DisplayName  string
	Introduction string
	Image        *string
	University   UniversityInput
}) (*UserResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	university, err := args.University.toModel()
	if err != nil {
		return nil, err
	}
	image, err := parseOptionalImage(args.Image)
	if err != nil {
		return nil, err
	}
	user, err := r.Profiles.SetProfile(ctx, userID, args.DisplayName, args.Introduction, image, university)
	if err != nil {
		return nil, err
	}
	return &UserResolver{root: r, user: user}, nil
}

// productsByIDs resolves product ids, silently skipping ids whose
// products have since been archived.
func (r *RootResolver) productsByIDs(ctx context.Context, ids []string) ([]*ProductResolver, error) {
	resolvers := []*ProductResolver{}
	for _, id := range ids {
		product, err := r.Catalog.Product(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return nil, err
		}
		resolvers = append(resolvers, &ProductResolver{root: r, product: product})
	}
	return resolvers, nil
}

func (r *RootResolver) tradesByIDs(ctx context.Context, userID string, ids []string) ([]*TradeResolver, error) {
	resolvers := []*TradeResolver{}
	for _, id := range ids {
		trade, err := r.Trades.Trade(ctx, userID, id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return nil, err
		}
		resolvers = append(resolvers, &TradeResolver{root: r, trade: trade})
	}
	return resolvers, nil
}
