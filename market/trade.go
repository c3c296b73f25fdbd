package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/utils/log"
)

// TradeEngine runs the trade state machine. Every state-mutating
// operation serializes per trade id (per product id for starts) so a
// concurrent finish and cancel on the same trade produce one winner and
// one no-op instead of interleaved half-writes.
type TradeEngine struct {
	store    Store
	notifier Notifier
	locks    *keyedMutex
	siteURL  string
	now      func() time.Time
}

func NewTradeEngine(store Store, notifier Notifier, siteURL string) *TradeEngine {
	return &TradeEngine{
		store:    store,
		notifier: notifier,
		locks:    newKeyedMutex(),
		siteURL:  strings.TrimSuffix(siteURL, "/"),
		now:      time.Now,
	}
}

type tradeRole int

const (
	roleNone tradeRole = iota
	roleSeller
	roleBuyer
)

func (e *TradeEngine) roleOf(userID string, trade model.Trade, product model.Product) tradeRole {
	switch userID {
	case product.SellerID:
		return roleSeller
	case trade.BuyerUserID:
		return roleBuyer
	}
	return roleNone
}

// StartTrade opens a trade between the caller and the product's seller.
func (e *TradeEngine) StartTrade(ctx context.Context, buyerID, productID string) (model.Trade, error) {
	unlock := e.locks.Lock("product_" + productID)
	defer unlock()

	product, err := e.store.GetProduct(ctx, productID)
	if err != nil {
		return model.Trade{}, err
	}
	if product.Status != model.ProductStatusSelling {
		return model.Trade{}, errors.Wrapf(model.ErrProductNotAvailable, "product %s is %s", productID, product.Status)
	}
	if product.SellerID == buyerID {
		return model.Trade{}, errors.Wrapf(model.ErrSelfTradeForbidden, "product %s", productID)
	}

	now := e.now()
	trade := model.Trade{
		ProductID:   productID,
		BuyerUserID: buyerID,
		Status:      model.TradeStatusInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tradeID, err := e.store.CreateTrade(ctx, trade)
	if err != nil {
		return model.Trade{}, err
	}
	trade.ID = tradeID

	if err := e.store.SetProductStatus(ctx, productID, model.ProductStatusTrading); err != nil {
		return model.Trade{}, err
	}
	if err := e.store.AppendTrading(ctx, buyerID, tradeID); err != nil {
		return model.Trade{}, err
	}
	if err := e.store.AppendTrading(ctx, product.SellerID, tradeID); err != nil {
		return model.Trade{}, err
	}

	buyer, err := e.store.GetUser(ctx, buyerID)
	if err != nil {
		return model.Trade{}, err
	}
	e.notifyUser(ctx, product.SellerID,
		fmt.Sprintf("%sさんが%sの取引を開始しました。\n\n%s/trade/%s", buyer.DisplayName, product.Name, e.siteURL, tradeID))
	return trade, nil
}

// FinishTrade advances the two-sided close handshake. Calls from a
// party whose finish is not actionable in the current state return the
// current snapshot unchanged.
func (e *TradeEngine) FinishTrade(ctx context.Context, userID, tradeID string) (model.Trade, error) {
	unlock := e.locks.Lock("trade_" + tradeID)
	defer unlock()

	trade, product, role, err := e.loadParties(ctx, userID, tradeID)
	if err != nil {
		return model.Trade{}, err
	}

	var next model.TradeStatus
	switch {
	case role == roleSeller && trade.Status == model.TradeStatusInProgress:
		next = model.TradeStatusWaitBuyerFinish
	case role == roleBuyer && trade.Status == model.TradeStatusInProgress:
		next = model.TradeStatusWaitSellerFinish
	case role == roleSeller && trade.Status == model.TradeStatusWaitSellerFinish,
		role == roleBuyer && trade.Status == model.TradeStatusWaitBuyerFinish:
		next = model.TradeStatusFinish
	default:
		return trade, nil
	}

	now := e.now()
	if err := e.store.SetTradeStatus(ctx, tradeID, next, now); err != nil {
		return model.Trade{}, err
	}
	trade.Status = next
	trade.UpdatedAt = now

	if next == model.TradeStatusFinish {
		if err := e.closeTrade(ctx, trade, product, model.ProductStatusSoldOut); err != nil {
			return model.Trade{}, err
		}
	}
	return trade, nil
}

// CancelTrade aborts a non-terminal trade. Either party may cancel; the
// counterparty is notified and the product goes back on sale. Cancelling
// a terminal trade is a no-op returning the snapshot.
func (e *TradeEngine) CancelTrade(ctx context.Context, userID, tradeID string) (model.Trade, error) {
	unlock := e.locks.Lock("trade_" + tradeID)
	defer unlock()

	trade, product, role, err := e.loadParties(ctx, userID, tradeID)
	if err != nil {
		return model.Trade{}, err
	}
	if trade.Status.Terminal() {
		return trade, nil
	}

	next := model.TradeStatusCancelBySeller
	counterparty := trade.BuyerUserID
	if role == roleBuyer {
		next = model.TradeStatusCancelByBuyer
		counterparty = product.SellerID
	}

	now := e.now()
	if err := e.store.SetTradeStatus(ctx, tradeID, next, now); err != nil {
		return model.Trade{}, err
	}
	trade.Status = next
	trade.UpdatedAt = now

	if err := e.closeTrade(ctx, trade, product, model.ProductStatusSelling); err != nil {
		return model.Trade{}, err
	}

	canceller, err := e.store.GetUser(ctx, userID)
	if err != nil {
		return model.Trade{}, err
	}
	e.notifyUser(ctx, counterparty,
		fmt.Sprintf("%sさんが%sの取引をキャンセルしました。\n\n%s/trade/%s", canceller.DisplayName, product.Name, e.siteURL, tradeID))
	return trade, nil
}

// AddTradeComment appends a role-tagged comment, bumps the trade's
// updatedAt and notifies the other party.
func (e *TradeEngine) AddTradeComment(ctx context.Context, userID, tradeID, body string) ([]model.TradeComment, error) {
	unlock := e.locks.Lock("trade_" + tradeID)
	defer unlock()

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.Wrap(model.ErrEmptyComment, "trade comment")
	}

	trade, product, role, err := e.loadParties(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	speaker := model.SpeakerSeller
	counterparty := trade.BuyerUserID
	if role == roleBuyer {
		speaker = model.SpeakerBuyer
		counterparty = product.SellerID
	}

	now := e.now()
	comment := model.TradeComment{
		TradeID:   tradeID,
		Body:      body,
		Speaker:   speaker,
		CreatedAt: now,
	}
	if _, err := e.store.AddTradeComment(ctx, comment); err != nil {
		return nil, err
	}
	if err := e.store.TouchTrade(ctx, tradeID, now); err != nil {
		return nil, err
	}

	author, err := e.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	e.notifyUser(ctx, counterparty,
		fmt.Sprintf("%sさんが%sの取引にコメントをつけました。\n\n%s\n\n%s/trade/%s", author.DisplayName, product.Name, body, e.siteURL, tradeID))
	return e.store.ListTradeComments(ctx, tradeID)
}

// Trade returns a trade to its parties only.
func (e *TradeEngine) Trade(ctx context.Context, userID, tradeID string) (model.Trade, error) {
	trade, _, _, err := e.loadParties(ctx, userID, tradeID)
	if err != nil {
		return model.Trade{}, err
	}
	return trade, nil
}

// TradeComments returns the comment thread to its parties only.
func (e *TradeEngine) TradeComments(ctx context.Context, userID, tradeID string) ([]model.TradeComment, error) {
	if _, _, _, err := e.loadParties(ctx, userID, tradeID); err != nil {
		return nil, err
	}
	return e.store.ListTradeComments(ctx, tradeID)
}

// loadParties reads the trade and its product and checks the caller is
// one of the two parties.
func (e *TradeEngine) loadParties(ctx context.Context, userID, tradeID string) (model.Trade, model.Product, tradeRole, error) {
	trade, err := e.store.GetTrade(ctx, tradeID)
	if err != nil {
		return model.Trade{}, model.Product{}, roleNone, err
	}
	product, err := e.store.GetProduct(ctx, trade.ProductID)
	if err != nil {
		return model.Trade{}, model.Product{}, roleNone, err
	}
	role := e.roleOf(userID, trade, product)
	if role == roleNone {
		return model.Trade{}, model.Product{}, roleNone, errors.Wrapf(model.ErrForbidden, "user %s is not a party of trade %s", userID, tradeID)
	}
	return trade, product, role, nil
}

// closeTrade moves the trade id from trading to traded for both parties
// and leaves the product in its post-trade status.
func (e *TradeEngine) closeTrade(ctx context.Context, trade model.Trade, product model.Product, productStatus model.ProductStatus) error {
	if err := e.store.MoveTradeToTraded(ctx, trade.BuyerUserID, trade.ID); err != nil {
		return err
	}
	if err := e.store.MoveTradeToTraded(ctx, product.SellerID, trade.ID); err != nil {
		return err
	}
	return e.store.SetProductStatus(ctx, trade.ProductID, productStatus)
}

// notifyUser delivers best effort: missing tokens and provider errors
// are logged, never returned.
func (e *TradeEngine) notifyUser(ctx context.Context, userID, message string) {
	private, err := e.store.GetUserPrivate(ctx, userID)
	if err != nil {
		log.Log.Warnf("skip notification for %s: %v", userID, err)
		return
	}
	if private.NotifyToken == nil {
		return
	}
	if err := e.notifier.Send(ctx, *private.NotifyToken, message, false); err != nil {
		log.Log.Warnf("notification to %s failed: %v", userID, err)
	}
}
