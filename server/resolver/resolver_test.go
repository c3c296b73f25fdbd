package resolver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimarket/unimarket/market"
	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/notify"
	"github.com/unimarket/unimarket/server/graphql"
	"github.com/unimarket/unimarket/statestore"
	"github.com/unimarket/unimarket/storage"
	"github.com/unimarket/unimarket/store"
	"github.com/unimarket/unimarket/utils"
)

type stubLogin struct{}

func (stubLogin) AuthCodeURL(state string) string { return "https://login.example/?state=" + state }
func (stubLogin) ExchangeProfile(context.Context, string) (market.SocialProfile, error) {
	return market.SocialProfile{}, nil
}

type stubNotifyAuth struct{}

func (stubNotifyAuth) AuthCodeURL(state string) string {
	return "https://notify.example/?state=" + state
}
func (stubNotifyAuth) ExchangeCode(context.Context, string) (string, error) { return "tok", nil }

type fixture struct {
	store *store.MemStore
	root  *RootResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemStore()
	images := storage.NewMemImageStore()
	notifier := notify.NewFakeNotifier()
	identity := market.NewIdentity(st, images, statestore.NewMemStateStore(), notifier,
		stubLogin{}, stubNotifyAuth{}, []byte("access"), []byte("signup"))
	return &fixture{
		store: st,
		root: &RootResolver{
			Identity: identity,
			Trades:   market.NewTradeEngine(st, notifier, "https://market.example"),
			Catalog:  market.NewCatalog(st, images, notifier, "https://market.example"),
			Profiles: market.NewProfiles(st, images),
		},
	}
}

func (f *fixture) seedUser(t *testing.T, name, serviceID string) (userID, accessToken string) {
	t.Helper()
	ctx := context.Background()
	department := model.DepartmentCoins
	userID, err := f.store.CreateUser(ctx, model.User{
		DisplayName:  name,
		Department:   &department,
		CreatedAt:    time.Now(),
		SoldProducts: []string{},
	})
	require.NoError(t, err)
	require.NoError(t, f.store.CreateUserPrivate(ctx, model.UserPrivate{
		ID:                  userID,
		LogInServiceAndID:   "line_" + serviceID,
		BoughtProducts:      []string{},
		Trading:             []string{},
		Traded:              []string{},
		LikedProducts:       []string{},
		HistoryViewProducts: []string{},
		CommentedProducts:   []string{},
	}))
	result, err := f.root.Identity.ResolveOrCreateUser(ctx, market.SocialProfile{
		Account: model.LogInServiceAndID{Service: model.AccountServiceLine, ServiceID: serviceID},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	return userID, result.AccessToken
}

// exec runs a query against the parsed schema and decodes the data.
func (f *fixture) exec(t *testing.T, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	schema := utils.ParseGraphQLSchema(graphql.GetGQLSchema(), f.root)
	resp := schema.Exec(context.Background(), query, "", vars)
	require.Empty(t, resp.Errors, "query %s", query)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

func TestSchemaMatchesResolvers(t *testing.T) {
	f := newFixture(t)
	// MustParseSchema panics on any schema/resolver mismatch.
	assert.NotNil(t, utils.ParseGraphQLSchema(graphql.GetGQLSchema(), f.root))
}

func TestSellAndQueryProduct(t *testing.T) {
	f := newFixture(t)
	_, token := f.seedUser(t, "Alice", "U1")

	data := f.exec(t, `
		mutation($token: String!, $images: [String!]!) {
			sellProduct(accessToken: $token, name: "desk", price: 3000, description: "solid wood",
				condition: good, category: furnitureTable, images: $images) {
				id
				name
				price
				condition
				status
				seller { displayName }
			}
		}`, map[string]interface{}{
		"token":  token,
		"images": []interface{}{"data:image/png;base64,aGVsbG8="},
	})
	sold := data["sellProduct"].(map[string]interface{})
	assert.Equal(t, "desk", sold["name"])
	assert.Equal(t, float64(3000), sold["price"])
	assert.Equal(t, "good", sold["condition"])
	assert.Equal(t, "selling", sold["status"])
	assert.Equal(t, "Alice", sold["seller"].(map[string]interface{})["displayName"])

	data = f.exec(t, `query { productAll { name } }`, nil)
	all := data["productAll"].([]interface{})
	require.Len(t, all, 1)
	assert.Equal(t, "desk", all[0].(map[string]interface{})["name"])
}

func TestTradeRoundTrip(t *testing.T) {
	f := newFixture(t)
	_, sellerToken := f.seedUser(t, "Alice", "U1")
	_, buyerToken := f.seedUser(t, "Bob", "U2")

	data := f.exec(t, `
		mutation($token: String!, $images: [String!]!) {
			sellProduct(accessToken: $token, name: "bike", price: 9000, description: "",
				condition: good, category: vehicleBicycle, images: $images) { id }
		}`, map[string]interface{}{
		"token":  sellerToken,
		"images": []interface{}{"data:image/png;base64,aGVsbG8="},
	})
	productID := data["sellProduct"].(map[string]interface{})["id"].(string)

	data = f.exec(t, `
		mutation($token: String!, $productId: ID!) {
			startTrade(accessToken: $token, productId: $productId) {
				id
				status
				product { status }
				buyer { displayName }
			}
		}`, map[string]interface{}{"token": buyerToken, "productId": productID})
	trade := data["startTrade"].(map[string]interface{})
	assert.Equal(t, "inProgress", trade["status"])
	assert.Equal(t, "trading", trade["product"].(map[string]interface{})["status"])
	assert.Equal(t, "Bob", trade["buyer"].(map[string]interface{})["displayName"])
	tradeID := trade["id"].(string)

	for i, expected := range []string{"waitBuyerFinish", "finish"} {
		token := sellerToken
		if i == 1 {
			token = buyerToken
		}
		data = f.exec(t, `
			mutation($token: String!, $tradeId: ID!) {
				finishTrade(accessToken: $token, tradeId: $tradeId) { status }
			}`, map[string]interface{}{"token": token, "tradeId": tradeID})
		assert.Equal(t, expected, data["finishTrade"].(map[string]interface{})["status"])
	}
}

func TestMutationRejectsBadToken(t *testing.T) {
	f := newFixture(t)
	schema := utils.ParseGraphQLSchema(graphql.GetGQLSchema(), f.root)

	resp := schema.Exec(context.Background(), `
		mutation {
			likeProduct(accessToken: "garbage", productId: "p1") { id }
		}`, "", nil)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Error(), "unauthorized")
}

func TestGetLogInURL(t *testing.T) {
	f := newFixture(t)
	data := f.exec(t, `mutation { getLogInUrl(service: line) }`, nil)
	assert.Contains(t, data["getLogInUrl"].(string), "https://login.example/?state=")
}
