package market

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/notify"
	"github.com/unimarket/unimarket/store"
)

type tradeFixture struct {
	store    *store.MemStore
	notifier *notify.FakeNotifier
	engine   *TradeEngine

	sellerID  string
	buyerID   string
	productID string
}

func newTradeFixture(t *testing.T) *tradeFixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemStore()
	notifier := notify.NewFakeNotifier()

	sellerID := seedUser(t, st, "Alice", model.DepartmentCoins)
	buyerID := seedUser(t, st, "Bob", model.DepartmentMath)

	productID, err := st.CreateProduct(ctx, model.Product{
		Name:     "linear algebra textbook",
		Price:    500,
		Status:   model.ProductStatusSelling,
		SellerID: sellerID,
	})
	require.NoError(t, err)
	require.NoError(t, st.AppendSoldProduct(ctx, sellerID, productID))

	return &tradeFixture{
		store:     st,
		notifier:  notifier,
		engine:    NewTradeEngine(st, notifier, "https://market.example"),
		sellerID:  sellerID,
		buyerID:   buyerID,
		productID: productID,
	}
}

func seedUser(t *testing.T, st *store.MemStore, name string, department model.Department) string {
	t.Helper()
	ctx := context.Background()
	id, err := st.CreateUser(ctx, model.User{
		DisplayName:  name,
		Department:   &department,
		CreatedAt:    time.Now(),
		SoldProducts: []string{},
	})
	require.NoError(t, err)
	token := "notify-" + id
	require.NoError(t, st.CreateUserPrivate(ctx, model.UserPrivate{
		ID:                  id,
		LogInServiceAndID:   "line_" + id,
		NotifyToken:         &token,
		BoughtProducts:      []string{},
		Trading:             []string{},
		Traded:              []string{},
		LikedProducts:       []string{},
		HistoryViewProducts: []string{},
		CommentedProducts:   []string{},
	}))
	return id
}

func (f *tradeFixture) start(t *testing.T) model.Trade {
	t.Helper()
	trade, err := f.engine.StartTrade(context.Background(), f.buyerID, f.productID)
	require.NoError(t, err)
	return trade
}

func TestStartTrade(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()

	trade := f.start(t)
	assert.Equal(t, model.TradeStatusInProgress, trade.Status)
	assert.Equal(t, f.buyerID, trade.BuyerUserID)
	assert.Equal(t, f.productID, trade.ProductID)

	product, err := f.store.GetProduct(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, model.ProductStatusTrading, product.Status)

	for _, userID := range []string{f.sellerID, f.buyerID} {
		private, err := f.store.GetUserPrivate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{trade.ID}, private.Trading)
		assert.Empty(t, private.Traded)
	}

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "notify-"+f.sellerID, sent[0].Token)
	assert.Contains(t, sent[0].Message, "Bob")
	assert.Contains(t, sent[0].Message, "https://market.example/trade/"+trade.ID)
}

func TestStartTradeOnTradingProduct(t *testing.T) {
	f := newTradeFixture(t)
	f.start(t)

	other := seedUser(t, f.store, "Carol", model.DepartmentPhys)
	_, err := f.engine.StartTrade(context.Background(), other, f.productID)
	assert.True(t, errors.Is(err, model.ErrProductNotAvailable))
}

func TestStartTradeOwnProduct(t *testing.T) {
	f := newTradeFixture(t)
	_, err := f.engine.StartTrade(context.Background(), f.sellerID, f.productID)
	assert.True(t, errors.Is(err, model.ErrSelfTradeForbidden))
}

func TestFinishHandshakeSellerFirst(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	trade := f.start(t)

	after, err := f.engine.FinishTrade(ctx, f.sellerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusWaitBuyerFinish, after.Status)

	after, err = f.engine.FinishTrade(ctx, f.buyerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusFinish, after.Status)

	product, err := f.store.GetProduct(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, model.ProductStatusSoldOut, product.Status)

	for _, userID := range []string{f.sellerID, f.buyerID} {
		private, err := f.store.GetUserPrivate(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, private.Trading)
		assert.Equal(t, []string{trade.ID}, private.Traded)
	}
}

func TestFinishHandshakeBuyerFirst(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	trade := f.start(t)

	after, err := f.engine.FinishTrade(ctx, f.buyerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusWaitSellerFinish, after.Status)

	after, err = f.engine.FinishTrade(ctx, f.sellerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusFinish, after.Status)
}

func TestFinishNotActionableIsNoOp(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	trade := f.start(t)

	// The seller already finished; finishing again must not advance.
	_, err := f.engine.FinishTrade(ctx, f.sellerID, trade.ID)
	require.NoError(t, err)
	again, err := f.engine.FinishTrade(ctx, f.sellerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusWaitBuyerFinish, again.Status)

	// A finished trade stays finished.
	_, err = f.engine.FinishTrade(ctx, f.buyerID, trade.ID)
	require.NoError(t, err)
	final, err := f.engine.FinishTrade(ctx, f.buyerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusFinish, final.Status)
}

func TestCancelTrade(t *testing.T) {
	for _, tc := range []struct {
		name     string
		byBuyer  bool
		expected model.TradeStatus
	}{
		{name: "by seller", byBuyer: false, expected: model.TradeStatusCancelBySeller},
		{name: "by buyer", byBuyer: true, expected: model.TradeStatusCancelByBuyer},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newTradeFixture(t)
			ctx := context.Background()
			trade := f.start(t)

			canceller := f.sellerID
			counterpartyToken := "notify-" + f.buyerID
			if tc.byBuyer {
				canceller = f.buyerID
				counterpartyToken = "notify-" + f.sellerID
			}

			after, err := f.engine.CancelTrade(ctx, canceller, trade.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, after.Status)

			product, err := f.store.GetProduct(ctx, f.productID)
			require.NoError(t, err)
			assert.Equal(t, model.ProductStatusSelling, product.Status)

			private, err := f.store.GetUserPrivate(ctx, f.buyerID)
			require.NoError(t, err)
			assert.Empty(t, private.Trading)
			assert.Equal(t, []string{trade.ID}, private.Traded)

			sent := f.notifier.Sent()
			require.NotEmpty(t, sent)
			last := sent[len(sent)-1]
			assert.Equal(t, counterpartyToken, last.Token)
			assert.Contains(t, last.Message, "キャンセル")
		})
	}
}

func TestCancelTerminalTradeIsNoOp(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	trade := f.start(t)

	_, err := f.engine.CancelTrade(ctx, f.buyerID, trade.ID)
	require.NoError(t, err)
	before := len(f.notifier.Sent())

	after, err := f.engine.CancelTrade(ctx, f.sellerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusCancelByBuyer, after.Status)
	assert.Len(t, f.notifier.Sent(), before)
}

func TestTradeThirdPartyForbidden(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	trade := f.start(t)
	intruder := seedUser(t, f.store, "Mallory", model.DepartmentChem)

	_, err := f.engine.FinishTrade(ctx, intruder, trade.ID)
	assert.True(t, errors.Is(err, model.ErrForbidden))
	_, err = f.engine.CancelTrade(ctx, intruder, trade.ID)
	assert.True(t, errors.Is(err, model.ErrForbidden))
	_, err = f.engine.Trade(ctx, intruder, trade.ID)
	assert.True(t, errors.Is(err, model.ErrForbidden))
	_, err = f.engine.TradeComments(ctx, intruder, trade.ID)
	assert.True(t, errors.Is(err, model.ErrForbidden))
	_, err = f.engine.AddTradeComment(ctx, intruder, trade.ID, "hi")
	assert.True(t, errors.Is(err, model.ErrForbidden))
}

func TestAddTradeComment(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	trade := f.start(t)

	_, err := f.engine.AddTradeComment(ctx, f.buyerID, trade.ID, "   ")
	assert.True(t, errors.Is(err, model.ErrEmptyComment))

	comments, err := f.engine.AddTradeComment(ctx, f.buyerID, trade.ID, "when can we meet?")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, model.SpeakerBuyer, comments[0].Speaker)
	assert.Equal(t, "when can we meet?", comments[0].Body)

	comments, err = f.engine.AddTradeComment(ctx, f.sellerID, trade.ID, "tomorrow noon")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, model.SpeakerSeller, comments[1].Speaker)

	sent := f.notifier.Sent()
	require.NotEmpty(t, sent)
	assert.Equal(t, "notify-"+f.buyerID, sent[len(sent)-1].Token)
}

func TestTradeVisibleToParties(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	trade := f.start(t)

	got, err := f.engine.Trade(ctx, f.sellerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.ID, got.ID)
	got, err = f.engine.Trade(ctx, f.buyerID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.ID, got.ID)
}

func TestConcurrentFinishConverges(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	trade := f.start(t)

	var wg sync.WaitGroup
	for _, userID := range []string{f.sellerID, f.buyerID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.engine.FinishTrade(ctx, id, trade.ID)
			assert.NoError(t, err)
		}(userID)
	}
	wg.Wait()

	got, err := f.store.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusFinish, got.Status)

	product, err := f.store.GetProduct(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, model.ProductStatusSoldOut, product.Status)
}

func TestNotifyFailureDoesNotFailTrade(t *testing.T) {
	f := newTradeFixture(t)
	f.notifier.Err = errors.New("provider down")
	trade, err := f.engine.StartTrade(context.Background(), f.buyerID, f.productID)
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusInProgress, trade.Status)
}
