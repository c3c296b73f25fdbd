package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeStatusTerminal(t *testing.T) {
	assert.False(t, TradeStatusInProgress.Terminal())
	assert.False(t, TradeStatusWaitSellerFinish.Terminal())
	assert.False(t, TradeStatusWaitBuyerFinish.Terminal())
	assert.True(t, TradeStatusFinish.Terminal())
	assert.True(t, TradeStatusCancelBySeller.Terminal())
	assert.True(t, TradeStatusCancelByBuyer.Terminal())
}
