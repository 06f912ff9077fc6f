package appstate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ladderhq/ladder/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// favoriteServer mimics the favorites endpoints with toggle semantics
func favoriteServer(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()
	var favorites sync.Map

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/opportunities/{id}/favorite", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := favorites.Load(id); ok {
			favorites.Delete(id)
			fmt.Fprint(w, `{"data":{"active":false}}`)
			return
		}
		favorites.Store(id, struct{}{})
		fmt.Fprint(w, `{"data":{"active":true}}`)
	})
	mux.HandleFunc("GET /api/v1/favorites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":1},{"id":2}]}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &favorites
}

func TestFavoritesLoad(t *testing.T) {
	server, _ := favoriteServer(t)
	state := NewFavoritesState(apiclient.New(server.URL))

	assert.False(t, state.Loaded())
	require.NoError(t, state.Load(context.Background()))

	assert.True(t, state.Loaded())
	assert.Equal(t, 2, state.Count())
	assert.True(t, state.IsFavorited(1))
	assert.True(t, state.IsFavorited(2))
	assert.False(t, state.IsFavorited(3))
}

func TestFavoritesDoubleToggleRestoresState(t *testing.T) {
	server, _ := favoriteServer(t)
	state := NewFavoritesState(apiclient.New(server.URL))

	active, err := state.Toggle(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, active)
	assert.True(t, state.IsFavorited(7))

	active, err = state.Toggle(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, active)
	assert.False(t, state.IsFavorited(7))
}

func TestFavoritesToggleFailureLeavesStateUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"error":{"message":"Opportunity not found"}}`)
	}))
	defer server.Close()

	state := NewFavoritesState(apiclient.New(server.URL))
	_, err := state.Toggle(context.Background(), 99)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apiclient.ErrorTypeNotFound, apiErr.Type)
	assert.False(t, state.IsFavorited(99))
}

func TestFavoritesClose(t *testing.T) {
	server, _ := favoriteServer(t)
	state := NewFavoritesState(apiclient.New(server.URL))
	require.NoError(t, state.Load(context.Background()))

	state.Close()
	assert.False(t, state.Loaded())
	assert.Equal(t, 0, state.Count())
}
