package appstate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ladderhq/ladder/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSignInAndOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"user":{"id":3,"username":"jdoe"},"token":"tok-1","expiresIn":86400}}`)
	})
	mux.HandleFunc("GET /api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"success":false,"error":{"message":"Authentication required"}}`)
			return
		}
		fmt.Fprint(w, `{"data":{"user":{"id":3,"username":"jdoe"}}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiclient.New(server.URL)
	session := NewSessionState(client)

	assert.False(t, session.SignedIn())

	user, err := session.SignIn(context.Background(), "jdoe@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)
	assert.True(t, session.SignedIn())
	assert.Equal(t, "tok-1", client.Tokens().Token())

	restored, err := session.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), restored.ID)

	session.SignOut()
	assert.False(t, session.SignedIn())
	assert.Empty(t, client.Tokens().Token())

	_, err = session.Restore(context.Background())
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apiclient.ErrorTypeAuthentication, apiErr.Type)
}

func TestLanguageState(t *testing.T) {
	lang := NewLanguageState("tr", "de")

	assert.Equal(t, DefaultLanguage, lang.Language())
	assert.True(t, lang.Set("tr"))
	assert.Equal(t, "tr", lang.Language())

	assert.False(t, lang.Set("fr"))
	assert.Equal(t, "tr", lang.Language())

	lang.Close()
	assert.Equal(t, DefaultLanguage, lang.Language())
}

func TestNotificationState(t *testing.T) {
	notes := NewNotificationState()
	assert.Equal(t, 0, notes.UnreadCount())

	first := notes.Add("New message", "jdoe sent you a message")
	notes.Add("Application update", "Your application was accepted")
	assert.Equal(t, 2, notes.UnreadCount())

	all := notes.All()
	require.Len(t, all, 2)
	// Newest first
	assert.Equal(t, "Application update", all[0].Title)

	notes.MarkRead(first.ID)
	assert.Equal(t, 1, notes.UnreadCount())

	notes.MarkAllRead()
	assert.Equal(t, 0, notes.UnreadCount())

	notes.Close()
	assert.Empty(t, notes.All())
}
