package appstate

import (
	"context"
	"sync"

	"github.com/ladderhq/ladder/pkg/apiclient"
)

// SessionState holds the signed-in user for the lifetime of a client
// session. It is created once, passed by reference to the views that need
// it, and closed on teardown.
type SessionState struct {
	mu     sync.RWMutex
	client *apiclient.Client
	user   *apiclient.User
}

// NewSessionState creates an empty session bound to the given client
func NewSessionState(client *apiclient.Client) *SessionState {
	return &SessionState{client: client}
}

// SignIn authenticates and records the returned user
func (s *SessionState) SignIn(ctx context.Context, email, password string) (*apiclient.User, error) {
	result, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = result.User
	s.mu.Unlock()

	return result.User, nil
}

// SignUp registers an account and records the returned user
func (s *SessionState) SignUp(ctx context.Context, params apiclient.SignUpParams) (*apiclient.User, error) {
	result, err := s.client.SignUp(ctx, params)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = result.User
	s.mu.Unlock()

	return result.User, nil
}

// Restore refreshes the user from a token already present in the client's
// token store, e.g. after an app restart
func (s *SessionState) Restore(ctx context.Context) (*apiclient.User, error) {
	user, err := s.client.GetMe(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return user, nil
}

// SignOut clears the token and the cached user
func (s *SessionState) SignOut() {
	s.client.SignOut()

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// User returns the signed-in user, nil when signed out
func (s *SessionState) User() *apiclient.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SignedIn reports whether a user is recorded
func (s *SessionState) SignedIn() bool {
	return s.User() != nil
}

// Close releases the session. Equivalent to SignOut; kept separate so
// teardown reads as a lifecycle call.
func (s *SessionState) Close() {
	s.SignOut()
}
