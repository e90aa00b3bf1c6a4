package backend

import (
	"context"
	"net/http"

	"storefront/internal/models"
)

// AccountsAPI is the facade over the accounts service.
type AccountsAPI struct {
	client *Client
}

func NewAccountsAPI(client *Client) *AccountsAPI {
	return &AccountsAPI{client: client}
}

// Login exchanges credentials for a bearer token and profile.
func (a *AccountsAPI) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	var out models.LoginResult
	err := a.client.fetch(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/login",
		body:   creds,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the token carried by ctx.
func (a *AccountsAPI) Logout(ctx context.Context) error {
	_, err := a.client.send(ctx, call{
		op:     "logout",
		method: http.MethodPost,
		path:   "/logout",
	})
	return err
}

// Profile fetches the profile of the token carried by ctx.
func (a *AccountsAPI) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	err := a.client.fetch(ctx, call{
		op:     "profile",
		method: http.MethodGet,
		path:   "/profile",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
