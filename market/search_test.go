package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/notify"
	"github.com/unimarket/unimarket/storage"
	"github.com/unimarket/unimarket/store"
)

type searchFixture struct {
	store   *store.MemStore
	catalog *Catalog
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()
	st := store.NewMemStore()
	return &searchFixture{
		store:   st,
		catalog: NewCatalog(st, storage.NewMemImageStore(), notify.NewFakeNotifier(), "https://market.example"),
	}
}

func (f *searchFixture) seedProduct(t *testing.T, sellerID, name, description string, category model.Category, condition model.Condition) string {
	t.Helper()
	ctx := context.Background()
	id, err := f.store.CreateProduct(ctx, model.Product{
		Name:        name,
		Description: description,
		Category:    category,
		Condition:   condition,
		Status:      model.ProductStatusSelling,
		SellerID:    sellerID,
	})
	require.NoError(t, err)
	require.NoError(t, f.store.AppendSoldProduct(ctx, sellerID, id))
	return id
}

func seedGraduateUser(t *testing.T, st *store.MemStore, name string, graduate model.Graduate) string {
	t.Helper()
	id, err := st.CreateUser(context.Background(), model.User{
		DisplayName:  name,
		Graduate:     &graduate,
		SoldProducts: []string{},
	})
	require.NoError(t, err)
	return id
}

func searchIDs(products []model.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestProductSearchByText(t *testing.T) {
	f := newSearchFixture(t)
	seller := seedUser(t, f.store, "Alice", model.DepartmentCoins)
	bike := f.seedProduct(t, seller, "ロードバイク", "通学に最適なジテンシャです", model.CategoryVehicleBicycle, model.ConditionGood)
	f.seedProduct(t, seller, "電子レンジ", "単機能", model.CategoryApplianceMicrowave, model.ConditionGood)

	// hiragana query matches the katakana description
	got, err := f.catalog.ProductSearch(context.Background(), SearchQuery{Query: "じてんしゃ"})
	require.NoError(t, err)
	assert.Equal(t, []string{bike}, searchIDs(got))

	// empty query passes everything
	got, err = f.catalog.ProductSearch(context.Background(), SearchQuery{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductSearchByCategory(t *testing.T) {
	f := newSearchFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.store, "Alice", model.DepartmentCoins)
	bike := f.seedProduct(t, seller, "bike", "", model.CategoryVehicleBicycle, model.ConditionGood)
	car := f.seedProduct(t, seller, "car", "", model.CategoryVehicleCar, model.ConditionGood)
	f.seedProduct(t, seller, "desk", "", model.CategoryFurnitureTable, model.ConditionGood)

	category := model.CategoryVehicleBicycle
	got, err := f.catalog.ProductSearch(ctx, SearchQuery{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, []string{bike}, searchIDs(got))

	group := model.CategoryGroupVehicle
	got, err = f.catalog.ProductSearch(ctx, SearchQuery{CategoryGroup: &group})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{bike, car}, searchIDs(got))

	// a category inside its group narrows to the category
	got, err = f.catalog.ProductSearch(ctx, SearchQuery{Category: &category, CategoryGroup: &group})
	require.NoError(t, err)
	assert.Equal(t, []string{bike}, searchIDs(got))

	// a category outside the stated group is a request error
	wrongGroup := model.CategoryGroupBook
	_, err = f.catalog.ProductSearch(ctx, SearchQuery{Category: &category, CategoryGroup: &wrongGroup})
	assert.Error(t, err)
}

func TestProductSearchByCondition(t *testing.T) {
	f := newSearchFixture(t)
	seller := seedUser(t, f.store, "Alice", model.DepartmentCoins)
	junk := f.seedProduct(t, seller, "old tv", "", model.CategoryApplianceTv, model.ConditionJunk)
	f.seedProduct(t, seller, "new tv", "", model.CategoryApplianceTv, model.ConditionNew)

	condition := model.ConditionJunk
	got, err := f.catalog.ProductSearch(context.Background(), SearchQuery{Condition: &condition})
	require.NoError(t, err)
	assert.Equal(t, []string{junk}, searchIDs(got))
}

func TestProductSearchBySellerAffiliation(t *testing.T) {
	f := newSearchFixture(t)
	ctx := context.Background()
	coins := seedUser(t, f.store, "Alice", model.DepartmentCoins)
	math := seedUser(t, f.store, "Bob", model.DepartmentMath)
	slis := seedGraduateUser(t, f.store, "Carol", model.GraduateSlis)

	fromCoins := f.seedProduct(t, coins, "textbook a", "", model.CategoryBookTextbook, model.ConditionGood)
	fromMath := f.seedProduct(t, math, "textbook b", "", model.CategoryBookTextbook, model.ConditionGood)
	fromSlis := f.seedProduct(t, slis, "textbook c", "", model.CategoryBookTextbook, model.ConditionGood)

	department := model.DepartmentCoins
	got, err := f.catalog.ProductSearch(ctx, SearchQuery{Department: &department})
	require.NoError(t, err)
	assert.Equal(t, []string{fromCoins}, searchIDs(got))

	// the school of informatics covers coins but not math
	school := model.SchoolInfo
	got, err = f.catalog.ProductSearch(ctx, SearchQuery{School: &school})
	require.NoError(t, err)
	assert.Equal(t, []string{fromCoins}, searchIDs(got))

	graduate := model.GraduateSlis
	got, err = f.catalog.ProductSearch(ctx, SearchQuery{Graduate: &graduate})
	require.NoError(t, err)
	assert.Equal(t, []string{fromSlis}, searchIDs(got))

	// the school axis outranks a contradicting graduate axis
	sse := model.SchoolSse
	got, err = f.catalog.ProductSearch(ctx, SearchQuery{School: &sse, Graduate: &graduate})
	require.NoError(t, err)
	assert.Equal(t, []string{fromMath}, searchIDs(got))
}

func TestProductSearchSkipsArchivedSoldIDs(t *testing.T) {
	f := newSearchFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.store, "Alice", model.DepartmentCoins)
	kept := f.seedProduct(t, seller, "kept", "", model.CategoryBookBook, model.ConditionGood)
	gone := f.seedProduct(t, seller, "gone", "", model.CategoryBookBook, model.ConditionGood)
	require.NoError(t, f.store.DeleteProduct(ctx, gone))

	department := model.DepartmentCoins
	got, err := f.catalog.ProductSearch(ctx, SearchQuery{Department: &department})
	require.NoError(t, err)
	assert.Equal(t, []string{kept}, searchIDs(got))
}
