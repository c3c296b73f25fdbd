package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/unimarket/unimarket/market"
	"github.com/unimarket/unimarket/model"
)

type DraftProductResolver struct {
	draft model.DraftProduct
}

func (r *DraftProductResolver) DraftID() graphql.ID { return graphql.ID(r.draft.ID) }
func (r *DraftProductResolver) Name() string        { return r.draft.Name }
func (r *DraftProductResolver) Description() string { return r.draft.Description }
func (r *DraftProductResolver) Price() *int32       { return r.draft.Price }

func (r *DraftProductResolver) Condition() *string {
	if r.draft.Condition == nil {
		return nil
	}
	s := string(*r.draft.Condition)
	return &s
}

func (r *DraftProductResolver) Category() *string {
	if r.draft.Category == nil {
		return nil
	}
	s := string(*r.draft.Category)
	return &s
}

func (r *DraftProductResolver) ThumbnailImageID() graphql.ID {
	return graphql.ID(r.draft.ThumbnailImageID)
}

func (r *DraftProductResolver) ImageIDs() []graphql.ID {
	ids := make([]graphql.ID, 0, len(r.draft.ImageIDs))
	for _, id := range r.draft.ImageIDs {
		ids = append(ids, graphql.ID(id))
	}
	return ids
}

func (r *DraftProductResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.draft.CreatedAt} }
func (r *DraftProductResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.draft.UpdatedAt} }

func (r *RootResolver) DraftProducts(ctx context.Context, args struct{ AccessToken string }) ([]*DraftProductResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	drafts, err := r.Catalog.DraftProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*DraftProductResolver, 0, len(drafts))
	for _, d := range drafts {
		resolvers = append(resolvers, &DraftProductResolver{draft: d})
	}
	return resolvers, nil
}

func (r *RootResolver) AddDraftProduct(ctx context.Context, args struct {
	AccessToken string
	Name        string
	Price       *int32
	Description string
	Condition   *string
	Category    *string
	Images      []string
}) (*DraftProductResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	images, err := parseImages(args.Images)
	if err != nil {
		return nil, err
	}
	draft, err := r.Catalog.AddDraftProduct(ctx, userID, market.DraftListing{
		Name:        args.Name,
		Description: args.Description,
		Price:       args.Price,
		Condition:   optionalCondition(args.Condition),
		Category:    optionalCategory(args.Category),
	}, images)
	if err != nil {
		return nil, err
	}
	return &DraftProductResolver{draft: draft}, nil
}

func (r *RootResolver) UpdateDraftProduct(ctx context.Context, args struct {
	AccessToken        string
	DraftID            graphql.ID
	Name               string
	Price              *int32
	Description        string
	Condition          *string
	Category           *string
	AddImages          []string
	DeleteImageIndexes []int32
}) (*DraftProductResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	addImages, err := parseImages(args.AddImages)
	if err != nil {
		return nil, err
	}
	draft, err := r.Catalog.UpdateDraftProduct(ctx, userID, string(args.DraftID), market.DraftListing{
		Name:        args.Name,
		Description: args.Description,
		Price:       args.Price,
		Condition:   optionalCondition(args.Condition),
		Category:    optionalCategory(args.Category),
	}, addImages, toIntSlice(args.DeleteImageIndexes))
	if err != nil {
		return nil, err
	}
	return &DraftProductResolver{draft: draft}, nil
}

func (r *RootResolver) DeleteDraftProduct(ctx context.Context, args struct {
	AccessToken string
	DraftID     graphql.ID
}) (bool, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return false, err
	}
	if err := r.Catalog.DeleteDraftProduct(ctx, userID, string(args.DraftID)); err != nil {
		return false, err
	}
	return true, nil
}
