package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateToken(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/auth/create-token", map[string]string{"uid": "user-1", "email": "a@b.c"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	require.NotEmpty(t, body["token"])

	claims, err := e.tokens.Verify(body["token"])
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UID)
}

func TestCreateTokenRequiresUID(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/auth/create-token", map[string]string{"email": "a@b.c"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
