package testdata

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trouvetonpro/dalil/internal/directory"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a, b := Generate(20, 7), Generate(20, 7)
	require.Equal(t, a, b)
	require.Len(t, a, 20)
	require.NotEqual(t, a, Generate(20, 8))
}

func TestHandler(t *testing.T) {
	srv := httptest.NewServer(Handler(Workers()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/workers/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []directory.Worker
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Equal(t, Workers(), list)

	one, err := http.Get(srv.URL + "/api/workers/3/")
	require.NoError(t, err)
	defer one.Body.Close()
	var w directory.Worker
	require.NoError(t, json.NewDecoder(one.Body).Decode(&w))
	require.Equal(t, "تازي", w.LastName)

	missing, err := http.Get(srv.URL + "/api/workers/404/")
	require.NoError(t, err)
	defer missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}
