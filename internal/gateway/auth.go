package gateway

import (
	"context"
	"errors"
	"net/http"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"
)

// Login exchanges credentials for an auth payload. Rejected credentials
// surface as ErrAuthentication regardless of how the backend spells them.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.postJSON(ctx, "auth.login", "/api/auth/login", req, &resp); err != nil {
		var gwErr *Error
		if errors.As(err, &gwErr) {
			switch gwErr.Status {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
				return nil, &Error{Op: gwErr.Op, Status: gwErr.Status, Message: gwErr.Message, Err: apperrors.ErrAuthentication}
			}
		}
		return nil, err
	}
	return &resp, nil
}

// Register creates a new identity. Duplicate email/username surfaces as ErrConflict.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.postJSON(ctx, "auth.register", "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the identity behind the attached bearer token.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "auth.currentUser", "/api/auth/get-user", nil, &user); err != nil {
		return nil, err
	}
	if user.Roles == nil {
		user.Roles = []string{}
	}
	return &user, nil
}

// Logout invalidates the refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	req := models.LogoutRequest{RefreshToken: refreshToken}
	return c.postJSON(ctx, "auth.logout", "/api/auth/logout", req, nil)
}
