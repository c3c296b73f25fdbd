package market

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/utils"
)

// SearchQuery composes up to four optional filter axes with a free-text
// query. When both Category and CategoryGroup are set the category must
// belong to the group. Of the seller-affiliation fields School wins
// over Department which wins over Graduate.
type SearchQuery struct {
	Query         string
	Category      *model.Category
	CategoryGroup *model.CategoryGroup
	Condition     *model.Condition
	School        *model.School
	Department    *model.Department
	Graduate      *model.Graduate
}

// ProductSearch narrows the catalog by seller affiliation, then by
// category, then by a script-normalized substring match over name and
// description. Omitted filters pass everything through.
func (c *Catalog) ProductSearch(ctx context.Context, q SearchQuery) ([]model.Product, error) {
	categories, err := categoryFilter(q.Category, q.CategoryGroup)
	if err != nil {
		return nil, err
	}

	products, err := c.productsBySellerAffiliation(ctx, q)
	if err != nil {
		return nil, err
	}

	needle := utils.NormalizeForSearch(q.Query)
	matched := []model.Product{}
	for _, p := range products {
		if categories != nil && !containsCategory(categories, p.Category) {
			continue
		}
		if q.Condition != nil && p.Condition != *q.Condition {
			continue
		}
		if needle != "" &&
			!strings.Contains(utils.NormalizeForSearch(p.Name), needle) &&
			!strings.Contains(utils.NormalizeForSearch(p.Description), needle) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// categoryFilter resolves the category axis to an allow list, nil for
// no filtering.
func categoryFilter(category *model.Category, group *model.CategoryGroup) ([]model.Category, error) {
	switch {
	case category != nil && group != nil:
		if !containsCategory(model.CategoriesOfGroup(*group), *category) {
			return nil, errors.Errorf("category %s is not part of group %s", *category, *group)
		}
		return []model.Category{*category}, nil
	case category != nil:
		return []model.Category{*category}, nil
	case group != nil:
		return model.CategoriesOfGroup(*group), nil
	}
	return nil, nil
}

// productsBySellerAffiliation applies the university axis. Without one
// the whole catalog is the candidate set; with one the candidate set is
// the union of matching sellers' sold products.
func (c *Catalog) productsBySellerAffiliation(ctx context.Context, q SearchQuery) ([]model.Product, error) {
	if q.School == nil && q.Department == nil && q.Graduate == nil {
		return c.store.ListProducts(ctx)
	}

	users, err := c.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	for _, user := range users {
		university, err := user.University()
		if err != nil {
			continue
		}
		if !matchesAffiliation(university, q) {
			continue
		}
		for _, productID := range user.SoldProducts {
			product, err := c.store.GetProduct(ctx, productID)
			if err != nil {
				// Sold ids may reference archived products.
				if errors.Is(err, model.ErrNotFound) {
					continue
				}
				return nil, err
			}
			products = append(products, product)
		}
	}
	return products, nil
}

func matchesAffiliation(u model.University, q SearchQuery) bool {
	switch {
	case q.School != nil:
		department, ok := u.Department()
		if !ok {
			return false
		}
		for _, d := range model.DepartmentsOfSchool(*q.School) {
			if d == department {
				return true
			}
		}
		return false
	case q.Department != nil:
		department, ok := u.Department()
		return ok && department == *q.Department
	case q.Graduate != nil:
		graduate, ok := u.Graduate()
		return ok && graduate == *q.Graduate
	}
	return true
}

func containsCategory(categories []model.Category, category model.Category) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
