package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/unimarket/unimarket/model"
)

type TradeResolver struct {
	root  *RootResolver
	trade model.Trade
}

func (r *TradeResolver) ID() graphql.ID { return graphql.ID(r.trade.ID) }
func (r *TradeResolver) Status() string { return string(r.trade.Status) }

func (r *TradeResolver) Product(ctx context.Context) (*ProductResolver, error) {
	product, err := r.root.Catalog.Product(ctx, r.trade.ProductID)
	if err != nil {
		return nil, err
	}
	return &ProductResolver{root: r.root, product: product}, nil
}

func (r *TradeResolver) Buyer(ctx context.Context) (*UserSnapshotResolver, error) {
	buyer, err := r.root.Profiles.User(ctx, r.trade.BuyerUserID)
	if err != nil {
		return nil, err
	}
	return &UserSnapshotResolver{
		id:          buyer.ID,
		displayName: buyer.DisplayName,
		imageID:     buyer.ImageID,
	}, nil
}

func (r *TradeResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.trade.CreatedAt} }
func (r *TradeResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.trade.UpdatedAt} }

type TradeCommentResolver struct {
	comment model.TradeComment
}

func (r *TradeCommentResolver) CommentID() graphql.ID { return graphql.ID(r.comment.ID) }
func (r *TradeCommentResolver) Body() string          { return r.comment.Body }
func (r *TradeCommentResolver) Speaker() string       { return string(r.comment.Speaker) }

func (r *TradeCommentResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.comment.CreatedAt}
}

func (r *RootResolver) Trade(ctx context.Context, args struct {
	AccessToken string
	TradeID     graphql.ID
}) (*TradeResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	trade, err := r.Trades.Trade(ctx, userID, string(args.TradeID))
	if err != nil {
		return nil, err
	}
	return &TradeResolver{root: r, trade: trade}, nil
}

func (r *RootResolver) TradeComments(ctx context.Context, args struct {
	AccessToken string
	TradeID     graphql.ID
}) ([]*TradeCommentResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	return wrapTradeComments(r.Trades.TradeComments(ctx, userID, string(args.TradeID)))
}

func (r *RootResolver) StartTrade(ctx context.Context, args struct {
	AccessToken string
	ProductID   graphql.ID
}) (*TradeResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	trade, err := r.Trades.StartTrade(ctx, userID, string(args.ProductID))
	if err != nil {
		return nil, err
	}
	return &TradeResolver{root: r, trade: trade}, nil
}

func (r *RootResolver) AddTradeComment(ctx context.Context, args struct {
	AccessToken string
	TradeID     graphql.ID
	Body        string
}) ([]*TradeCommentResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	return wrapTradeComments(r.Trades.AddTradeComment(ctx, userID, string(args.TradeID), args.Body))
}

func (r *RootResolver) CancelTrade(ctx context.Context, args struct {
	AccessToken string
	TradeID     graphql.ID
}) (*TradeResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	trade, err := r.Trades.CancelTrade(ctx, userID, string(args.TradeID))
	if err != nil {
		return nil, err
	}
	return &TradeResolver{root: r, trade: trade}, nil
}

func (r *RootResolver) FinishTrade(ctx context.Context, args struct {
	AccessToken string
	TradeID     graphql.ID
}) (*TradeResolver, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return nil, err
	}
	trade, err := r.Trades.FinishTrade(ctx, userID, string(args.TradeID))
	if err != nil {
		return nil, err
	}
	return &TradeResolver{root: r, trade: trade}, nil
}

func wrapTradeComments(comments []model.TradeComment, err error) ([]*TradeCommentResolver, error) {
	if err != nil {
		return nil, err
	}
	resolvers := make([]*TradeCommentResolver, 0, len(comments))
	for _, c := range comments {
		resolvers = append(resolvers, &TradeCommentResolver{comment: c})
	}
	return resolvers, nil
}
