// Package resolver binds the GraphQL schema to the market components.
// Resolver methods follow the graph-gophers convention: one method per
// field, args as anonymous structs, int32 for Int.
package resolver

import (
	"context"
	goerrors "errors"

	"github.com/unimarket/unimarket/market"
	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/utils/log"
)

// RootResolver is the schema root; all queries and mutations hang off
// it.
type RootResolver struct {
	Identity *market.Identity
	Trades   *market.TradeEngine
	Catalog  *market.Catalog
	Profiles *market.Profiles
}

// Token verification failures collapse to this one error so callers
// cannot probe which check failed.
var errUnauthorized = goerrors.New("unauthorized")

func (r *RootResolver) auth(ctx context.Context, accessToken string) (string, error) {
	userID, err := r.Identity.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		log.Log.Infof("access token rejected: %v", err)
		return "", errUnauthorized
	}
	return userID, nil
}

func parseImages(images []string) ([]model.DataURL, error) {
	parsed := make([]model.DataURL, 0, len(images))
	for _, s := range images {
		d, err := model.ParseDataURL(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, d)
	}
	return parsed, nil
}

func parseOptionalImage(image *string) (*model.DataURL, error) {
	if image == nil {
		return nil, nil
	}
	d, err := model.ParseDataURL(*image)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UniversityInput mirrors the schema input type; validity is enforced
// by the sum-type constructor.
type UniversityInput struct {
	Department *string
	Graduate   *string
}

func (u UniversityInput) toModel() (model.University, error) {
	var department *model.Department
	var graduate *model.Graduate
	if u.Department != nil {
		d := model.Department(*u.Department)
		department = &d
	}
	if u.Graduate != nil {
		g := model.Graduate(*u.Graduate)
		graduate = &g
	}
	return model.NewUniversity(department, graduate)
}

func toIntSlice(v []int32) []int {
	out := make([]int, 0, len(v))
	for _, e := range v {
		out = append(out, int(e))
	}
	return out
}

func optionalCondition(s *string) *model.Condition {
	if s == nil {
		return nil
	}
	c := model.Condition(*s)
	return &c
}

func optionalCategory(s *string) *model.Category {
	if s == nil {
		return nil
	}
	c := model.Category(*s)
	return &c
}
