package market

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/notify"
	"github.com/unimarket/unimarket/storage"
	"github.com/unimarket/unimarket/store"
)

type catalogFixture struct {
	store    *store.MemStore
	images   *storage.MemImageStore
	notifier *notify.FakeNotifier
	catalog  *Catalog

	sellerID string
	buyerID  string
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	f := &catalogFixture{
		store:    store.NewMemStore(),
		images:   storage.NewMemImageStore(),
		notifier: notify.NewFakeNotifier(),
	}
	f.catalog = NewCatalog(f.store, f.images, f.notifier, "https://market.example")
	f.sellerID = seedUser(t, f.store, "Alice", model.DepartmentCoins)
	f.buyerID = seedUser(t, f.store, "Bob", model.DepartmentMath)
	return f
}

func pngImage(body string) model.DataURL {
	return model.DataURL{MimeType: "image/png", Data: []byte(body)}
}

func (f *catalogFixture) sell(t *testing.T, images ...model.DataURL) model.Product {
	t.Helper()
	product, err := f.catalog.SellProduct(context.Background(), f.sellerID, ProductListing{
		Name:      "road bike",
		Price:     12000,
		Condition: model.ConditionLikeNew,
		Category:  model.CategoryVehicleBicycle,
	}, images)
	require.NoError(t, err)
	return product
}

func TestSellProduct(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	product := f.sell(t, pngImage("a"), pngImage("b"))
	assert.Equal(t, model.ProductStatusSelling, product.Status)
	assert.Equal(t, "Alice", product.SellerName)
	assert.Len(t, product.ImageIDs, 2)
	assert.NotEmpty(t, product.ThumbnailImageID)
	// two images plus the thumbnail
	assert.Equal(t, 3, f.images.Len())

	seller, err := f.store.GetUser(ctx, f.sellerID)
	require.NoError(t, err)
	assert.Equal(t, []string{product.ID}, seller.SoldProducts)
}

func TestSellProductWithoutImages(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.catalog.SellProduct(context.Background(), f.sellerID, ProductListing{Name: "x"}, nil)
	assert.True(t, errors.Is(err, model.ErrImageListEmpty))
}

func TestUpdateProduct(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	product := f.sell(t, pngImage("a"), pngImage("b"), pngImage("c"))

	listing := ProductListing{
		Name:      "road bike (price drop)",
		Price:     9000,
		Condition: model.ConditionGood,
		Category:  model.CategoryVehicleBicycle,
	}
	after, err := f.catalog.UpdateProduct(ctx, f.sellerID, product.ID, listing,
		[]model.DataURL{pngImage("d")}, []int{1})
	require.NoError(t, err)
	assert.Equal(t, "road bike (price drop)", after.Name)
	assert.Equal(t, int32(9000), after.Price)
	require.Len(t, after.ImageIDs, 3)
	assert.Equal(t, product.ImageIDs[0], after.ImageIDs[0])
	assert.Equal(t, product.ImageIDs[2], after.ImageIDs[1])
	// index 0 survived so the thumbnail is untouched
	assert.Equal(t, product.ThumbnailImageID, after.ThumbnailImageID)

	stored, err := f.store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, after.ImageIDs, stored.ImageIDs)
}

func TestUpdateProductRegeneratesThumbnail(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.sell(t, pngImage("a"), pngImage("b"))

	after, err := f.catalog.UpdateProduct(context.Background(), f.sellerID, product.ID, ProductListing{
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
	}, nil, []int{0})
	require.NoError(t, err)
	require.Len(t, after.ImageIDs, 1)
	assert.Equal(t, product.ImageIDs[1], after.ImageIDs[0])
	assert.NotEqual(t, product.ThumbnailImageID, after.ThumbnailImageID)
}

func TestUpdateProductCannotDropAllImages(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.sell(t, pngImage("a"))

	_, err := f.catalog.UpdateProduct(context.Background(), f.sellerID, product.ID, ProductListing{}, nil, []int{0})
	assert.True(t, errors.Is(err, model.ErrImageListEmpty))
}

func TestUpdateProductForbiddenForOthers(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.sell(t, pngImage("a"))

	_, err := f.catalog.UpdateProduct(context.Background(), f.buyerID, product.ID, ProductListing{}, nil, nil)
	assert.True(t, errors.Is(err, model.ErrForbidden))
}

func TestUpdateProductRequiresSelling(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	product := f.sell(t, pngImage("a"))
	require.NoError(t, f.store.SetProductStatus(ctx, product.ID, model.ProductStatusTrading))

	_, err := f.catalog.UpdateProduct(ctx, f.sellerID, product.ID, ProductListing{}, nil, nil)
	assert.True(t, errors.Is(err, model.ErrProductNotAvailable))
}

func TestDeleteProduct(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	product := f.sell(t, pngImage("a"))

	assert.True(t, errors.Is(f.catalog.DeleteProduct(ctx, f.buyerID, product.ID), model.ErrForbidden))

	require.NoError(t, f.catalog.DeleteProduct(ctx, f.sellerID, product.ID))
	_, err := f.store.GetProduct(ctx, product.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	archived := f.store.ArchivedProducts()
	require.Len(t, archived, 1)
	assert.Equal(t, product.ID, archived[0].ID)
	assert.False(t, archived[0].DeletedAt.IsZero())
}

func TestDeleteProductRequiresSelling(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	product := f.sell(t, pngImage("a"))
	require.NoError(t, f.store.SetProductStatus(ctx, product.ID, model.ProductStatusTrading))

	err := f.catalog.DeleteProduct(ctx, f.sellerID, product.ID)
	assert.True(t, errors.Is(err, model.ErrProductNotAvailable))
}

func TestLikeUnlikeIdempotent(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	product := f.sell(t, pngImage("a"))

	for i := 0; i < 2; i++ {
		after, err := f.catalog.LikeProduct(ctx, f.buyerID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int32(1), after.LikedCount)
	}
	private, err := f.store.GetUserPrivate(ctx, f.buyerID)
	require.NoError(t, err)
	assert.Equal(t, []string{product.ID}, private.LikedProducts)

	for i := 0; i < 2; i++ {
		after, err := f.catalog.UnlikeProduct(ctx, f.buyerID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int32(0), after.LikedCount)
	}
	private, err = f.store.GetUserPrivate(ctx, f.buyerID)
	require.NoError(t, err)
	assert.Empty(t, private.LikedProducts)
}

func TestMarkProductInHistory(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	product := f.sell(t, pngImage("a"))

	// the counter moves on every view, the history list holds the id once
	for i := 0; i < 3; i++ {
		after, err := f.catalog.MarkProductInHistory(ctx, f.buyerID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int32(i+1), after.ViewedCount)
	}
	private, err := f.store.GetUserPrivate(ctx, f.buyerID)
	require.NoError(t, err)
	assert.Equal(t, []string{product.ID}, private.HistoryViewProducts)
}

func TestAddProductComment(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	product := f.sell(t, pngImage("a"))

	_, err := f.catalog.AddProductComment(ctx, f.buyerID, product.ID, " \n ")
	assert.True(t, errors.Is(err, model.ErrEmptyComment))

	comments, err := f.catalog.AddProductComment(ctx, f.buyerID, product.ID, "is this still available?")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Bob", comments[0].SpeakerName)
	assert.Equal(t, f.buyerID, comments[0].SpeakerID)

	private, err := f.store.GetUserPrivate(ctx, f.buyerID)
	require.NoError(t, err)
	assert.Equal(t, []string{product.ID}, private.CommentedProducts)

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "notify-"+f.sellerID, sent[0].Token)
	assert.Contains(t, sent[0].Message, "https://market.example/product/"+product.ID)
}

func TestProductListings(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	free, err := f.catalog.SellProduct(ctx, f.sellerID, ProductListing{
		Name:     "free desk",
		Price:    0,
		Category: model.CategoryFurnitureTable,
	}, []model.DataURL{pngImage("a")})
	require.NoError(t, err)
	paid := f.sell(t, pngImage("b"))

	all, err := f.catalog.AllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	freeList, err := f.catalog.FreeProducts(ctx)
	require.NoError(t, err)
	require.Len(t, freeList, 1)
	assert.Equal(t, free.ID, freeList[0].ID)

	_, err = f.catalog.LikeProduct(ctx, f.buyerID, paid.ID)
	require.NoError(t, err)
	recommend, err := f.catalog.RecommendProducts(ctx)
	require.NoError(t, err)
	require.Len(t, recommend, 2)
	assert.Equal(t, paid.ID, recommend[0].ID)
}
