package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSearchFixtures(t *testing.T, e *env) {
	e.addProperty(t, models.Property{AgentID: "agent-1", Title: "Lakeview Cottage", VerificationStatus: models.VerificationVerified, PriceRange: []float64{100000, 150000}})
	e.addProperty(t, models.Property{AgentID: "agent-1", Title: "Downtown Loft", VerificationStatus: models.VerificationPending, PriceRange: []float64{250000, 300000}})
	e.addProperty(t, models.Property{AgentID: "agent-2", Title: "Seaside Bungalow", VerificationStatus: models.VerificationVerified, PriceRange: []float64{250000, 400000}})
	e.addProperty(t, models.Property{AgentID: "agent-2", Title: "Forest Cabin", VerificationStatus: models.VerificationVerified, PriceRange: []float64{50000, 80000}})
}

func TestVerifiedPropertiesFiltersAndSearch(t *testing.T) {
	e := newEnv(t)
	seedSearchFixtures(t, e)

	rec := e.do(t, http.MethodGet, "/api/v1/user/verified-properties", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Property](t, rec), 3)

	// case-insensitive substring, pending listings excluded
	rec = e.do(t, http.MethodGet, "/api/v1/user/verified-properties?search=lake", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[[]models.Property](t, rec)
	require.Len(t, result, 1)
	assert.Equal(t, "Lakeview Cottage", result[0].Title)

	rec = e.do(t, http.MethodGet, "/api/v1/user/verified-properties?search=loft", nil, "")
	assert.Empty(t, decodeBody[[]models.Property](t, rec))
}

func TestVerifiedPropertiesSort(t *testing.T) {
	e := newEnv(t)
	seedSearchFixtures(t, e)

	rec := e.do(t, http.MethodGet, "/api/v1/user/verified-properties?sort=asc", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[[]models.Property](t, rec)
	require.Len(t, result, 3)
	mins := []float64{result[0].PriceMin(), result[1].PriceMin(), result[2].PriceMin()}
	assert.Equal(t, []float64{50000, 100000, 250000}, mins)

	rec = e.do(t, http.MethodGet, "/api/v1/user/verified-properties?sort=desc", nil, "")
	result = decodeBody[[]models.Property](t, rec)
	require.Len(t, result, 3)
	mins = []float64{result[0].PriceMin(), result[1].PriceMin(), result[2].PriceMin()}
	assert.Equal(t, []float64{250000, 100000, 50000}, mins)
}

func TestAdvertisedPropertiesStringFlag(t *testing.T) {
	e := newEnv(t)
	e.addProperty(t, models.Property{AgentID: "agent-1", Title: "Promoted Place", VerificationStatus: models.VerificationVerified, IsAdvertised: "true", PriceRange: []float64{10, 20}})
	e.addProperty(t, models.Property{AgentID: "agent-1", Title: "Quiet Place", VerificationStatus: models.VerificationVerified, IsAdvertised: "false", PriceRange: []float64{10, 20}})

	rec := e.do(t, http.MethodGet, "/api/v1/user/advertised-properties", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[[]models.Property](t, rec)
	require.Len(t, result, 1)
	assert.Equal(t, "Promoted Place", result[0].Title)
}

func TestPropertyDetails(t *testing.T) {
	e := newEnv(t)
	p := e.addProperty(t, models.Property{AgentID: "agent-1", Title: "Lakeview Cottage", VerificationStatus: models.VerificationVerified, PriceRange: []float64{1, 2}})

	rec := e.do(t, http.MethodGet, "/api/v1/user/property/details/"+p.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.Property](t, rec)
	assert.Equal(t, p.ID, got.ID)

	// an unknown id is an empty 200 body, not an error
	rec = e.do(t, http.MethodGet, "/api/v1/user/property/details/65a000000000000000000000", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/v1/user/property/details/not-hex", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentAddPropertyGatedAndPending(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "agent-1", models.RoleAgent)
	e.seedUser(t, "user-1", models.RoleUser)

	payload := models.Property{Title: "New Build", PriceRange: []float64{1000, 2000}, VerificationStatus: models.VerificationVerified}

	rec := e.do(t, http.MethodPost, "/api/v1/agent/add-property", payload, "user-1")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/agent/add-property", payload, "agent-1")
	require.Equal(t, http.StatusOK, rec.Code)

	added, err := e.stores.Properties.ByAgent(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, added, 1)
	// listings always start pending, whatever the payload claimed
	assert.Equal(t, models.VerificationPending, added[0].VerificationStatus)
	assert.Equal(t, "agent-1", added[0].AgentID)
}

func TestAdminVerificationAndAdvertise(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "admin-1", models.RoleAdmin)
	p := e.addProperty(t, models.Property{AgentID: "agent-1", Title: "Pending Place", VerificationStatus: models.VerificationPending, PriceRange: []float64{1, 2}})

	rec := e.do(t, http.MethodPatch, "/api/v1/admin/update-property/"+p.ID.Hex()+"?status=verified", nil, "admin-1")
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := e.stores.Properties.ByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, got.VerificationStatus)

	rec = e.do(t, http.MethodPatch, "/api/v1/admin/update-property/"+p.ID.Hex()+"?status=bogus", nil, "admin-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPatch, "/api/v1/admin/advertise-property/"+p.ID.Hex()+"?status=true", nil, "admin-1")
	require.Equal(t, http.StatusOK, rec.Code)

	got, err = e.stores.Properties.ByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "true", got.IsAdvertised)
}

func TestAgentUpdatePropertyOwnership(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "agent-1", models.RoleAgent)
	e.seedUser(t, "agent-2", models.RoleAgent)
	p := e.addProperty(t, models.Property{AgentID: "agent-1", Title: "Old Title", VerificationStatus: models.VerificationVerified, PriceRange: []float64{1, 2}})

	rec := e.do(t, http.MethodPatch, "/api/v1/agent/update-property/"+p.ID.Hex(), map[string]string{"property_title": "New Title"}, "agent-2")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPatch, "/api/v1/agent/update-property/"+p.ID.Hex(), map[string]string{"property_title": "New Title"}, "agent-1")
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := e.stores.Properties.ByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
}

func TestDeleteProperty(t *testing.T) {
	e := newEnv(t)
	p := e.addProperty(t, models.Property{AgentID: "agent-1", Title: "Doomed", VerificationStatus: models.VerificationVerified, PriceRange: []float64{1, 2}})

	rec := e.do(t, http.MethodDelete, "/api/v1/user/delete-property/"+p.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decodeBody[models.DeleteResult](t, rec).DeletedCount)

	_, err := e.stores.Properties.ByID(context.Background(), p.ID)
	assert.Error(t, err)
}
