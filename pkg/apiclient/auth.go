package apiclient

import (
	"context"
	"net/http"
	"time"
)

// User is the account payload returned by the API
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult is returned by SignUp and SignIn
type AuthResult struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// SignUpParams are the fields required to register
type SignUpParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// SignUp registers an account and persists the returned token to the store
func (c *Client) SignUp(ctx context.Context, params SignUpParams) (*AuthResult, error) {
	var result AuthResult
	if err := c.Do(ctx, http.MethodPost, "/api/v1/auth/signup", params, &result); err != nil {
		return nil, err
	}

	c.tokens.SetToken(result.Token)
	return &result, nil
}

// SignIn authenticates and persists the returned token to the store
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result AuthResult
	if err := c.Do(ctx, http.MethodPost, "/api/v1/auth/signin", body, &result); err != nil {
		return nil, err
	}

	c.tokens.SetToken(result.Token)
	return &result, nil
}

// SignOut clears the stored token. Purely client-side; the server keeps no
// session state.
func (c *Client) SignOut() {
	c.tokens.Clear()
}
