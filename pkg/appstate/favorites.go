package appstate

import (
	"context"
	"sync"

	"github.com/ladderhq/ladder/pkg/apiclient"
)

// FavoritesState mirrors the signed-in user's favorited opportunities so
// list views can render the star state without a round trip per row. The
// server stays authoritative: every toggle goes through the API and the
// local set follows the server's answer.
type FavoritesState struct {
	mu     sync.RWMutex
	client *apiclient.Client
	ids    map[int64]struct{}
	loaded bool
}

// NewFavoritesState creates an empty favorites mirror bound to the client
func NewFavoritesState(client *apiclient.Client) *FavoritesState {
	return &FavoritesState{
		client: client,
		ids:    make(map[int64]struct{}),
	}
}

// Load fetches the user's favorites and replaces the local set
func (f *FavoritesState) Load(ctx context.Context) error {
	favorites, err := f.client.ListFavorites(ctx)
	if err != nil {
		return err
	}

	ids := make(map[int64]struct{}, len(favorites))
	for _, opp := range favorites {
		ids[opp.ID] = struct{}{}
	}

	f.mu.Lock()
	f.ids = ids
	f.loaded = true
	f.mu.Unlock()

	return nil
}

// Toggle flips the favorite state on the server and applies the result
// locally. Returns the resulting state.
func (f *FavoritesState) Toggle(ctx context.Context, opportunityID int64) (bool, error) {
	active, err := f.client.ToggleFavorite(ctx, opportunityID)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	if active {
		f.ids[opportunityID] = struct{}{}
	} else {
		delete(f.ids, opportunityID)
	}
	f.mu.Unlock()

	return active, nil
}

// IsFavorited reports the local state for one opportunity
func (f *FavoritesState) IsFavorited(opportunityID int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[opportunityID]
	return ok
}

// Loaded reports whether Load has completed at least once
func (f *FavoritesState) Loaded() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loaded
}

// Count returns the number of favorited opportunities
func (f *FavoritesState) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.ids)
}

// Close drops the local set, e.g. on sign-out
func (f *FavoritesState) Close() {
	f.mu.Lock()
	f.ids = make(map[int64]struct{})
	f.loaded = false
	f.mu.Unlock()
}
