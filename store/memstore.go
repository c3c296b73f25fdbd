package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/utils"
)

// MemStore is an in-memory implementation of the store contract, used in
// tests and local development where no mongo instance is around. All
// operations copy on read so callers never alias internal state.
type MemStore struct {
	mu sync.Mutex

	users         map[string]model.User
	privates      map[string]model.UserPrivate
	pendingUsers  map[string]model.PendingUser
	pendingVerifs map[string]model.PendingVerification
	products      map[string]model.Product
	archived      []model.DeletedProduct
	prodComments  map[string][]model.ProductComment
	drafts        map[string]model.DraftProduct
	trades        map[string]model.Trade
	tradeComments map[string][]model.TradeComment
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:         map[string]model.User{},
		privates:      map[string]model.UserPrivate{},
		pendingUsers:  map[string]model.PendingUser{},
		pendingVerifs: map[string]model.PendingVerification{},
		products:      map[string]model.Product{},
		prodComments:  map[string][]model.ProductComment{},
		drafts:        map[string]model.DraftProduct{},
		trades:        map[string]model.Trade{},
		tradeComments: map[string][]model.TradeComment{},
	}
}

func addToSet(set []string, id string) []string {
	if utils.ContainsString(set, id) {
		return set
	}
	return append(set, id)
}

func (m *MemStore) CreateUser(_ context.Context, user model.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uuid.NewString()
	if user.SoldProducts == nil {
		user.SoldProducts = []string{}
	}
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *MemStore) GetUser(_ context.Context, id string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return model.User{}, errors.Wrapf(model.ErrNotFound, "get user %s", id)
	}
	return user, nil
}

func (m *MemStore) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *MemStore) UpdateUserProfile(_ context.Context, id string, displayName, imageID, introduction string, department *model.Department, graduate *model.Graduate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return errors.Wrapf(model.ErrNotFound, "update profile of %s", id)
	}
	user.DisplayName = displayName
	user.ImageID = imageID
	user.Introduction = introduction
	user.Department = department
	user.Graduate = graduate
	m.users[id] = user
	return nil
}

func (m *MemStore) AppendSoldProduct(_ context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return errors.Wrapf(model.ErrNotFound, "append sold product to %s", userID)
	}
	user.SoldProducts = addToSet(user.SoldProducts, productID)
	m.users[userID] = user
	return nil
}

func (m *MemStore) CreateUserPrivate(_ context.Context, private model.UserPrivate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.privates[private.ID] = private
	return nil
}

func (m *MemStore) GetUserPrivate(_ context.Context, id string) (model.UserPrivate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	private, ok := m.privates[id]
	if !ok {
		return model.UserPrivate{}, errors.Wrapf(model.ErrNotFound, "get user private %s", id)
	}
	return private, nil
}

func (m *MemStore) GetUserIDByLogInService(_ context.Context, serviceAndID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.privates {
		if p.LogInServiceAndID == serviceAndID {
			return id, nil
		}
	}
	return "", errors.Wrapf(model.ErrNotFound, "find user by login service %s", serviceAndID)
}

func (m *MemStore) SetLastAccessTokenID(_ context.Context, userID, tokenID string) error {
	return m.updatePrivate(userID, func(p *model.UserPrivate) {
		p.LastAccessTokenID = tokenID
	})
}

func (m *MemStore) SetNotifyToken(_ context.Context, userID, token string) error {
	return m.updatePrivate(userID, func(p *model.UserPrivate) {
		p.NotifyToken = &token
	})
}

func (m *MemStore) AddLikedProduct(_ context.Context, userID, productID string) error {
	return m.updatePrivate(userID, func(p *model.UserPrivate) {
		p.LikedProducts = addToSet(p.LikedProducts, productID)
	})
}

func (m *MemStore) RemoveLikedProduct(_ context.Context, userID, productID string) error {
	return m.updatePrivate(userID, func(p *model.UserPrivate) {
		p.LikedProducts = utils.RemoveString(p.LikedProducts, productID)
	})
}

func (m *MemStore) AddHistoryViewProduct(_ context.Context, userID, productID string) error {
	return m.updatePrivate(userID, func(p *model.UserPrivate) {
		p.HistoryViewProducts = addToSet(p.HistoryViewProducts, productID)
	})
}

func (m *MemStore) AddCommentedProduct(_ context.Context, userID, productID string) error {
	return m.updatePrivate(userID, func(p *model.UserPrivate) {
		p.CommentedProducts = addToSet(p.CommentedProducts, productID)
	})
}

func (m *MemStore) AppendTrading(_ context.Context, userID, tradeID string) error {
	return m.updatePrivate(userID, func(p *model.UserPrivate) {
		p.Trading = addToSet(p.Trading, tradeID)
	})
}

func (m *MemStore) MoveTradeToTraded(_ context.Context, userID, tradeID string) error {
	return m.updatePrivate(userID, func(p *model.UserPrivate) {
		p.Trading = utils.RemoveString(p.Trading, tradeID)
		p.Traded = addToSet(p.Traded, tradeID)
	})
}

func (m *MemStore) updatePrivate(userID string, f func(*model.UserPrivate)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	private, ok := m.privates[userID]
	if !ok {
		return errors.Wrapf(model.ErrNotFound, "update user private %s", userID)
	}
	f(&private)
	m.privates[userID] = private
	return nil
}

func (m *MemStore) PutPendingUser(_ context.Context, pending model.PendingUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingUsers[pending.Key] = pending
	return nil
}

func (m *MemStore) TakePendingUser(_ context.Context, key string) (model.PendingUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pending, ok := m.pendingUsers[key]
	if !ok {
		return model.PendingUser{}, errors.Wrapf(model.ErrNotFound, "take pending user %s", key)
	}
	delete(m.pendingUsers, key)
	return pending, nil
}

func (m *MemStore) PutPendingVerification(_ context.Context, pending model.PendingVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingVerifs[pending.Key] = pending
	return nil
}

func (m *MemStore) GetPendingVerification(_ context.Context, key string) (model.PendingVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pending, ok := m.pendingVerifs[key]
	if !ok {
		return model.PendingVerification{}, errors.Wrapf(model.ErrNotFound, "get pending verification %s", key)
	}
	return pending, nil
}

func (m *MemStore) MarkEmailVerified(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pending, ok := m.pendingVerifs[key]
	if !ok {
		return errors.Wrapf(model.ErrNotFound, "mark email verified %s", key)
	}
	pending.EmailVerified = true
	m.pendingVerifs[key] = pending
	return nil
}

func (m *MemStore) DeletePendingVerification(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pendingVerifs, key)
	return nil
}

func (m *MemStore) CreateProduct(_ context.Context, product model.Product) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = uuid.NewString()
	m.products[product.ID] = product
	return product.ID, nil
}

func (m *MemStore) GetProduct(_ context.Context, id string) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return model.Product{}, errors.Wrapf(model.ErrNotFound, "get product %s", id)
	}
	return product, nil
}

func (m *MemStore) ListProducts(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.productsLocked(func(model.Product) bool { return true }), nil
}

func (m *MemStore) ListRecentProducts(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := m.productsLocked(func(model.Product) bool { return true })
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (m *MemStore) ListRecommendProducts(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := m.productsLocked(func(model.Product) bool { return true })
	sort.Slice(products, func(i, j int) bool {
		return products[i].LikedCount > products[j].LikedCount
	})
	return products, nil
}

func (m *MemStore) ListFreeProducts(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.productsLocked(func(p model.Product) bool { return p.Price == 0 }), nil
}

func (m *MemStore) productsLocked(keep func(model.Product) bool) []model.Product {
	var products []model.Product
	for _, p := range m.products {
		if keep(p) {
			products = append(products, p)
		}
	}
	return products
}

func (m *MemStore) UpdateProductListing(_ context.Context, id string, update model.ProductUpdate) error {
	return m.updateProduct(id, func(p *model.Product) {
		p.Name = update.Name
		p.Price = update.Price
		p.Description = update.Description
		p.Condition = update.Condition
		p.Category = update.Category
		p.ThumbnailImageID = update.ThumbnailImageID
		p.ImageIDs = update.ImageIDs
		p.UpdatedAt = update.UpdatedAt
	})
}

func (m *MemStore) SetProductStatus(_ context.Context, id string, status model.ProductStatus) error {
	return m.updateProduct(id, func(p *model.Product) { p.Status = status })
}

func (m *MemStore) IncrementProductLiked(_ context.Context, id string, delta int32) error {
	return m.updateProduct(id, func(p *model.Product) { p.LikedCount += delta })
}

func (m *MemStore) IncrementProductViewed(_ context.Context, id string) error {
	return m.updateProduct(id, func(p *model.Product) { p.ViewedCount++ })
}

func (m *MemStore) TouchProduct(_ context.Context, id string, t time.Time) error {
	return m.updateProduct(id, func(p *model.Product) { p.UpdatedAt = t })
}

func (m *MemStore) updateProduct(id string, f func(*model.Product)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return errors.Wrapf(model.ErrNotFound, "update product %s", id)
	}
	f(&product)
	m.products[id] = product
	return nil
}

func (m *MemStore) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *MemStore) ArchiveProduct(_ context.Context, archived model.DeletedProduct) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archived = append(m.archived, archived)
	return nil
}

// ArchivedProducts exposes the archive for assertions in tests.
func (m *MemStore) ArchivedProducts() []model.DeletedProduct {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.DeletedProduct(nil), m.archived...)
}

func (m *MemStore) AddProductComment(_ context.Context, comment model.ProductComment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = uuid.NewString()
	m.prodComments[comment.ProductID] = append(m.prodComments[comment.ProductID], comment)
	return comment.ID, nil
}

func (m *MemStore) ListProductComments(_ context.Context, productID string) ([]model.ProductComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comments := append([]model.ProductComment(nil), m.prodComments[productID]...)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MemStore) CreateDraftProduct(_ context.Context, draft model.DraftProduct) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft.ID = uuid.NewString()
	m.drafts[draft.ID] = draft
	return draft.ID, nil
}

func (m *MemStore) GetDraftProduct(_ context.Context, userID, draftID string) (model.DraftProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[draftID]
	if !ok || draft.UserID != userID {
		return model.DraftProduct{}, errors.Wrapf(model.ErrNotFound, "get draft %s of %s", draftID, userID)
	}
	return draft, nil
}

func (m *MemStore) ListDraftProducts(_ context.Context, userID string) ([]model.DraftProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var drafts []model.DraftProduct
	for _, d := range m.drafts {
		if d.UserID == userID {
			drafts = append(drafts, d)
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.Before(drafts[j].UpdatedAt)
	})
	return drafts, nil
}

func (m *MemStore) UpdateDraftProduct(_ context.Context, userID, draftID string, update model.DraftUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[draftID]
	if !ok || draft.UserID != userID {
		return errors.Wrapf(model.ErrNotFound, "update draft %s of %s", draftID, userID)
	}
	draft.Name = update.Name
	draft.Description = update.Description
	draft.Price = update.Price
	draft.Condition = update.Condition
	draft.Category = update.Category
	draft.ThumbnailImageID = update.ThumbnailImageID
	draft.ImageIDs = update.ImageIDs
	draft.UpdatedAt = update.UpdatedAt
	m.drafts[draftID] = draft
	return nil
}

func (m *MemStore) DeleteDraftProduct(_ context.Context, userID, draftID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[draftID]
	if ok && draft.UserID == userID {
		delete(m.drafts, draftID)
	}
	return nil
}

func (m *MemStore) CreateTrade(_ context.Context, trade model.Trade) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trade.ID = uuid.NewString()
	m.trades[trade.ID] = trade
	return trade.ID, nil
}

func (m *MemStore) GetTrade(_ context.Context, id string) (model.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trade, ok := m.trades[id]
	if !ok {
		return model.Trade{}, errors.Wrapf(model.ErrNotFound, "get trade %s", id)
	}
	return trade, nil
}

func (m *MemStore) SetTradeStatus(_ context.Context, id string, status model.TradeStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trade, ok := m.trades[id]
	if !ok {
		return errors.Wrapf(model.ErrNotFound, "set status of trade %s", id)
	}
	trade.Status = status
	trade.UpdatedAt = updatedAt
	m.trades[id] = trade
	return nil
}

func (m *MemStore) AddTradeComment(_ context.Context, comment model.TradeComment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = uuid.NewString()
	m.tradeComments[comment.TradeID] = append(m.tradeComments[comment.TradeID], comment)
	return comment.ID, nil
}

func (m *MemStore) ListTradeComments(_ context.Context, tradeID string) ([]model.TradeComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comments := append([]model.TradeComment(nil), m.tradeComments[tradeID]...)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MemStore) TouchTrade(_ context.Context, id string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trade, ok := m.trades[id]
	if !ok {
		return errors.Wrapf(model.ErrNotFound, "touch trade %s", id)
	}
	trade.UpdatedAt = t
	m.trades[id] = trade
	return nil
}
