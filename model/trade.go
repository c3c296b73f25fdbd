package model

import "time"

// TradeStatus is the trade state machine position.
type TradeStatus string

const (
	TradeStatusInProgress       TradeStatus = "inProgress"
	TradeStatusWaitSellerFinish TradeStatus = "waitSellerFinish"
	TradeStatusWaitBuyerFinish  TradeStatus = "waitBuyerFinish"
	TradeStatusFinish           TradeStatus = "finish"
	TradeStatusCancelBySeller   TradeStatus = "cancelBySeller"
	TradeStatusCancelByBuyer    TradeStatus = "cancelByBuyer"
)

// Terminal reports whether the status ends the trade.
func (s TradeStatus) Terminal() bool {
	switch s {
	case TradeStatusFinish, TradeStatusCancelBySeller, TradeStatusCancelByBuyer:
		return true
	}
	return false
}

// Trade is a negotiation between exactly one buyer and the seller of one
// product. The seller is derived through the product, not stored here.
type Trade struct {
	ID          string      `bson:"_id"`
	ProductID   string      `bson:"productId"`
	BuyerUserID string      `bson:"buyerUserId"`
	Status      TradeStatus `bson:"status"`
	CreatedAt   time.Time   `bson:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt"`
}

// SellerOrBuyer tags which party wrote a trade comment.
type SellerOrBuyer string

const (
	SpeakerSeller SellerOrBuyer = "seller"
	SpeakerBuyer  SellerOrBuyer = "buyer"
)

// TradeComment is an append-only message inside a trade.
type TradeComment struct {
	ID        string        `bson:"_id"`
	TradeID   string        `bson:"tradeId"`
	Body      string        `bson:"body"`
	Speaker   SellerOrBuyer `bson:"speaker"`
	CreatedAt time.Time     `bson:"createdAt"`
}
