package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) addOffer(t *testing.T, o models.Offer) models.Offer {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/user/offered", o, "")
	require.Equal(t, http.StatusOK, rec.Code)
	offers, err := e.stores.Offers.ByBuyer(context.Background(), o.BuyerID)
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	return offers[len(offers)-1]
}

func TestAddOfferForcesPending(t *testing.T) {
	e := newEnv(t)

	offer := e.addOffer(t, models.Offer{
		PropertyID:   "prop-1",
		AgentID:      "agent-1",
		BuyerID:      "buyer-1",
		OfferedPrice: 120000,
		Status:       models.OfferBought, // ignored
		TranxID:      "sneaky",           // ignored
	})

	assert.Equal(t, models.OfferPending, offer.Status)
	assert.Empty(t, offer.TranxID)
}

func TestOfferListings(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "agent-1", models.RoleAgent)

	e.addOffer(t, models.Offer{PropertyID: "p1", AgentID: "agent-1", BuyerID: "buyer-1", OfferedPrice: 100})
	sold := e.addOffer(t, models.Offer{PropertyID: "p2", AgentID: "agent-1", BuyerID: "buyer-2", OfferedPrice: 200})
	_, err := e.stores.Offers.Complete(context.Background(), sold.ID, models.Offer{TranxID: "tx-1"})
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/api/v1/user/get-offered-properties/buyer-1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Offer](t, rec), 1)

	rec = e.do(t, http.MethodGet, "/api/v1/agent/get-requested-properties/agent-1", nil, "agent-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Offer](t, rec), 2)

	rec = e.do(t, http.MethodGet, "/api/v1/agent/sold-properties/agent-1", nil, "agent-1")
	require.Equal(t, http.StatusOK, rec.Code)
	soldList := decodeBody[[]models.Offer](t, rec)
	require.Len(t, soldList, 1)
	assert.Equal(t, models.OfferBought, soldList[0].Status)
}

func TestChangeOfferStatus(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "agent-1", models.RoleAgent)
	offer := e.addOffer(t, models.Offer{PropertyID: "p1", AgentID: "agent-1", BuyerID: "buyer-1", OfferedPrice: 100})

	rec := e.do(t, http.MethodPatch, "/api/v1/agent/change-property-status/"+offer.ID.Hex()+"?status=accepted", nil, "agent-1")
	require.Equal(t, http.StatusOK, rec.Code)

	offers, err := e.stores.Offers.ByBuyer(context.Background(), "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, models.OfferAccepted, offers[0].Status)

	// only accepted/rejected are valid agent decisions
	rec = e.do(t, http.MethodPatch, "/api/v1/agent/change-property-status/"+offer.ID.Hex()+"?status=bought", nil, "agent-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangeOfferStatusKeepsBoughtFinal(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "agent-1", models.RoleAgent)
	offer := e.addOffer(t, models.Offer{PropertyID: "p1", AgentID: "agent-1", BuyerID: "buyer-1", OfferedPrice: 100})

	rec := e.do(t, http.MethodPut, "/api/v1/user/completed-transaction/"+offer.ID.Hex(), models.Offer{TranxID: "tx-1"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// a paid-for offer cannot be re-decided by the agent
	rec = e.do(t, http.MethodPatch, "/api/v1/agent/change-property-status/"+offer.ID.Hex()+"?status=rejected", nil, "agent-1")
	assert.Equal(t, http.StatusConflict, rec.Code)

	offers, err := e.stores.Offers.ByBuyer(context.Background(), "buyer-1")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, models.OfferBought, offers[0].Status)
	assert.Equal(t, "tx-1", offers[0].TranxID)
}

func TestChangeOfferStatusUnknownOffer(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "agent-1", models.RoleAgent)

	rec := e.do(t, http.MethodPatch, "/api/v1/agent/change-property-status/65b0c2f1a2b3c4d5e6f70809?status=rejected", nil, "agent-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decodeBody[models.UpdateResult](t, rec).MatchedCount)
}

func TestCompletedTransactionOverwrites(t *testing.T) {
	e := newEnv(t)
	offer := e.addOffer(t, models.Offer{PropertyID: "p1", AgentID: "agent-1", BuyerID: "buyer-1", OfferedPrice: 100})

	rec := e.do(t, http.MethodPut, "/api/v1/user/completed-transaction/"+offer.ID.Hex(), models.Offer{TranxID: "tx-1"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	offers, err := e.stores.Offers.ByBuyer(context.Background(), "buyer-1")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, models.OfferBought, offers[0].Status)
	assert.Equal(t, "tx-1", offers[0].TranxID)

	// no prior-state guard: a second completion overwrites the tranx id
	rec = e.do(t, http.MethodPut, "/api/v1/user/completed-transaction/"+offer.ID.Hex(), models.Offer{TranxID: "tx-2"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	offers, err = e.stores.Offers.ByBuyer(context.Background(), "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-2", offers[0].TranxID)
	assert.Equal(t, models.OfferBought, offers[0].Status)
}
