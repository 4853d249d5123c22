package confirm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for confirmations:
// - FilterByKind keeps only the requested kind, in place
// - FilterByTradeOfferIDs keeps matching trades and drops detail-less
//   confirmations, preserving order
// - HasTradeOfferID finds present IDs and rejects absent ones
// - ParseKind accepts the documented numeric kinds and rejects others
// - Method values match the confirmation endpoint's parameters

func tradeOffer(id int64) *Details {
	return &Details{TradeOfferID: &id}
}

func sampleConfirmations() Confirmations {
	return Confirmations{
		{ID: "7676451136", Key: "18064583892738866189", Kind: KindTrade, Details: tradeOffer(4009687284)},
		{ID: "7652515663", Key: "10704556181383316145", Kind: KindTrade, Details: tradeOffer(4000980011)},
		{ID: "7652555421", Key: "10704556181383323456", Kind: KindTrade, Details: tradeOffer(4000793103)},
		{ID: "7652515663", Key: "20845677815483316145", Kind: KindMarket},
	}
}

func TestFilterByKind(t *testing.T) {
	t.Parallel()

	confs := sampleConfirmations()
	require.Len(t, confs, 4)

	confs.FilterByKind(KindMarket)
	require.Len(t, confs, 1)
	assert.Equal(t, KindMarket, confs[0].Kind)
}

func TestFilterByTradeOfferIDs(t *testing.T) {
	t.Parallel()

	confs := sampleConfirmations()
	first, second := int64(4009687284), int64(4000793103)
	missing := int64(33311221)

	confs.FilterByTradeOfferIDs([]int64{first, second, missing})
	require.Len(t, confs, 2)
	assert.Equal(t, first, *confs[0].Details.TradeOfferID)
	assert.Equal(t, second, *confs[1].Details.TradeOfferID)
}

func TestHasTradeOfferID(t *testing.T) {
	t.Parallel()

	confs := sampleConfirmations()
	assert.True(t, confs.HasTradeOfferID(4000980011))
	assert.False(t, confs.HasTradeOfferID(4000793104))
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	kind, err := ParseKind("2")
	require.NoError(t, err)
	assert.Equal(t, KindTrade, kind)

	kind, err = ParseKind("6")
	require.NoError(t, err)
	assert.Equal(t, KindAccountRecovery, kind)

	_, err = ParseKind("4")
	assert.Error(t, err, "kind 4 is undocumented")

	_, err = ParseKind("trade")
	assert.Error(t, err)
}

func TestMethodValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "allow", Accept.Value())
	assert.Equal(t, "cancel", Deny.Value())
}
