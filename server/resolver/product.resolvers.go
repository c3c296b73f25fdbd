package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/unimarket/unimarket/market"
	"github.com/unimarket/unimarket/model"
)

type ProductResolver struct {
	root    *RootResolver
	product model.Product
}

func (r *ProductResolver) ID() graphql.ID      { return graphql.ID(r.product.ID) }
func (r *ProductResolver) Name() string        { return r.product.Name }
func (r *ProductResolver) Price() int32        { return r.product.Price }
func (r *ProductResolver) Description() string { return r.product.Description }
func (r *ProductResolver) Condition() string   { return string(r.product.Condition) }
func (r *ProductResolver) Category() string    { return string(r.product.Category) }
func (r *ProductResolver) LikedCount() int32   { return r.product.LikedCount }
func (r *ProductResolver) ViewedCount() int32  { return r.product.ViewedCount }
func (r *ProductResolver) Status() string      { return string(r.product.Status) }

func (r *ProductResolver) ThumbnailImageID() graphql.ID {
	return graphql.ID(r.product.ThumbnailImageID)
}

func (r *ProductResolver) ImageIDs() []graphql.ID {
	ids := make([]graphql.ID, 0, len(r.product.ImageIDs))
	for _, id := range r.product.ImageIDs {
		ids = append(ids, graphql.ID(id))
	}
	return ids
}

func (r *ProductResolver) Seller() *UserSnapshotResolver {
	return &UserSnapshotResolver{
		id:          r.product.SellerID,
		displayName: r.product.SellerName,
		imageID:     r.product.SellerImageID,
	}
}

func (r *ProductResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.product.CreatedAt} }
func (r *ProductResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.product.UpdatedAt} }

type ProductCommentResolver struct {
	comment model.ProductComment
}

func (r *ProductCommentResolver) CommentID() graphql.ID { return graphql.ID(r.comment.ID) }
func (r *ProductCommentResolver) Body() string          { return r.comment.Body }

func (r *ProductCommentResolver) Speaker() *UserSnapshotResolver {
	return &UserSnapshotResolver{
		id:          r.comment.SpeakerID,
		displayName: r.comment.SpeakerName,
		imageID:     r.comment.SpeakerImageID,
	}
}

func (r *ProductCommentResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.comment.CreatedAt}
}

func (r *RootResolver) Product(ctx context.Context, args struct{ ProductID graphql.ID }) (*ProductResolver, error) {
	product, err := r.Catalog.Product(ctx, string(args.ProductID))
	if err != nil {
		return nil, err
	}
	return &ProductResolver{root: r, product: product}, nil
}

func (r *RootResolver) ProductAll(ctx context.Context) ([]*ProductResolver, error) {
	return r.wrapProducts(r.Catalog.AllProducts(ctx))
}

func (r *RootResolver) ProductRecentAll(ctx context.Context) ([]*ProductResolver, error) {
	return r.wrapProducts(r.Catalog.RecentProducts(ctx))
}

func (r *RootResolver) ProductRecommendAll(ctx context.Context) ([]*ProductResolver, error) {
	return r.wrapProducts(r.Catalog.RecommendProducts(ctx))
}

func (r *RootResolver) ProductFreeAll(ctx context.Context) ([]*ProductResolver, error) {
	return r.wrapProducts(r.Catalog.FreeProducts(ctx))
}

func (r *RootResolver) ProductSearch(ctx context.Context, args struct {
	Query         string
	Category      *string
	CategoryGroup *string
	Condition     *string
	School        *string
	Department    *string
	Graduate      *string
}) ([]*ProductResolver, error) {
	q := market.SearchQuery{
		Query:     args.Query,
		Category:  optionalCategory(args.Category),
		Condition: optionalCondition(args.Condition),
	}
	if args.CategoryGroup != nil {
		g := model.CategoryGroup(*args.CategoryGroup)
		q.CategoryGroup = &g
	}
	if args.School != nil {
		s := model.School(*args.School)
		q.School = &s
	}
	if args.Department != nil {
		d := model.Department(*args.Department)
		q.Department = &d
	}
	if args.Graduate != nil {
		g := model.Graduate(*args.Graduate)
		q.Graduate = &g
	}
	return r.wrapProducts(r.Catalog.ProductSearch(ctx, q))
}

func (r *RootResolver) ProductComments(ctx context.Context, args struct{ ProductID graphql.ID }) ([]*ProductCommentResolver, error) {
	return wrapProductComments(r.Catalog.ProductComments(ctx, string(args.ProductID)))
}

func (r *RootResolver) SellProduct(ctx context.Context, args struct {
	AccessToken string
	Name        string
	Price       int32
	Description string
	Condition   string
	Category    string
	Images      []string
}) (*ProductResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	images, err := parseImages(args.Images)
	if err != nil {
		return nil, err
	}
	product, err := r.Catalog.SellProduct(ctx, userID, market.ProductListing{
		Name:        args.Name,
		Price:       args.Price,
		Description: args.Description,
		Condition:   model.Condition(args.Condition),
		Category:    model.Category(args.Category),
	}, images)
	if err != nil {
		return nil, err
	}
	return &ProductResolver{root: r, product: product}, nil
}

func (r *RootResolver) UpdateProduct(ctx context.Context, args struct {
	AccessToken        string
	ProductID          graphql.ID
	Name               string
	Price              int32
	Description        string
	Condition          string
	Category           string
	AddImages          []string
	DeleteImageIndexes []int32
}) (*ProductResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	addImages, err := parseImages(args.AddImages)
	if err != nil {
		return nil, err
	}
	product, err := r.Catalog.UpdateProduct(ctx, userID, string(args.ProductID), market.ProductListing{
		Name:        args.Name,
		Price:       args.Price,
		Description: args.Description,
		Condition:   model.Condition(args.Condition),
		Category:    model.Category(args.Category),
	}, addImages, toIntSlice(args.DeleteImageIndexes))
	if err != nil {
		return nil, err
	}
	return &ProductResolver{root: r, product: product}, nil
}

func (r *RootResolver) DeleteProduct(ctx context.Context, args struct {
	AccessToken string
	ProductID   graphql.ID
}) (bool, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return false, err
	}
	if err := r.Catalog.DeleteProduct(ctx, userID, string(args.ProductID)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RootResolver) MarkProductInHistory(ctx context.Context, args struct {
	AccessToken string
	ProductID   graphql.ID
}) (*ProductResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	product, err := r.Catalog.MarkProductInHistory(ctx, userID, string(args.ProductID))
	if err != nil {
		return nil, err
	}
	return &ProductResolver{root: r, product: product}, nil
}

func (r *RootResolver) LikeProduct(ctx context.Context, args struct {
	AccessToken string
	ProductID   graphql.ID
}) (*ProductResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	product, err := r.Catalog.LikeProduct(ctx, userID, string(args.ProductID))
	if err != nil {
		return nil, err
	}
	return &ProductResolver{root: r, product: product}, nil
}

func (r *RootResolver) UnlikeProduct(ctx context.Context, args struct {
	AccessToken string
	ProductID   graphql.ID
}) (*ProductResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	product, err := r.Catalog.UnlikeProduct(ctx, userID, string(args.ProductID))
	if err != nil {
		return nil, err
	}
	return &ProductResolver{root: r, product: product}, nil
}

func (r *RootResolver) AddProductComment(ctx context.Context, args struct {
	AccessToken string
	ProductID   graphql.ID
	Body        string
}) ([]*ProductCommentResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	return wrapProductComments(r.Catalog.AddProductComment(ctx, userID, string(args.ProductID), args.Body))
}

func (r *RootResolver) wrapProducts(products []model.Product, err error) ([]*ProductResolver, error) {
	if err != nil {
		return nil, err
	}
	resolvers := make([]*ProductResolver, 0, len(products))
	for _, p := range products {
		resolvers = append(resolvers, &ProductResolver{root: r, product: p})
	}
	return resolvers, nil
}

func wrapProductComments(comments []model.ProductComment, err error) ([]*ProductCommentResolver, error) {
	if err != nil {
		return nil, err
	}
	resolvers := make([]*ProductCommentResolver, 0, len(comments))
	for _, c := range comments {
		resolvers = append(resolvers, &ProductCommentResolver{comment: c})
	}
	return resolvers, nil
}
