package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/mashfikur/Echo-Estates-Server/routes"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"github.com/mashfikur/Echo-Estates-Server/utils"
	"github.com/stretchr/testify/require"
)

type fakeBridge struct {
	lastAmount int64
	secret     string
	err        error
}

func (b *fakeBridge) CreateIntent(_ context.Context, amountMinor int64) (string, error) {
	b.lastAmount = amountMinor
	return b.secret, b.err
}

type env struct {
	router *mux.Router
	stores *store.Stores
	tokens *utils.TokenService
	bridge *fakeBridge
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		stores: store.NewMemoryStores(),
		tokens: utils.NewTokenService("test-secret", time.Hour),
		bridge: &fakeBridge{secret: "cs_test_123"},
	}
	e.router = mux.NewRouter()
	routes.Routes(e.router, e.stores, e.tokens, e.bridge, nil)
	return e
}

func (e *env) seedUser(t *testing.T, uid string, role models.Role) {
	t.Helper()
	_, created, err := e.stores.Users.EnsureUser(context.Background(), models.User{UserID: uid, Role: role})
	require.NoError(t, err)
	require.True(t, created)
}

// do issues a request through the full router. A non-empty uid attaches a
// freshly issued bearer token for that id.
func (e *env) do(t *testing.T, method, path string, body interface{}, uid string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if uid != "" {
		token, err := e.tokens.Issue(uid)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (e *env) addProperty(t *testing.T, p models.Property) models.Property {
	t.Helper()
	res, err := e.stores.Properties.Insert(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, res)
	inserted, _ := e.stores.Properties.ByAgent(context.Background(), p.AgentID)
	for _, got := range inserted {
		if got.Title == p.Title {
			return got
		}
	}
	t.Fatalf("inserted property %q not found", p.Title)
	return models.Property{}
}
