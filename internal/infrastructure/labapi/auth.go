package labapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/diaglab/labdesk/internal/core/ports"
)

// LoginUser is the user block of a login response.
type LoginUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	LabID   string `json:"labId"`
	LabName string `json:"labName"`
}

// LoginData is the data block of a successful login response. Backends
// deliver the identity either flat next to the token or nested under user.
type LoginData struct {
	Token string `json:"token"`
	LoginUser
	User *LoginUser `json:"user,omitempty"`
}

// identity returns the flat identity fields, or the nested user block when
// the flat ones carry no role or ID.
func (d LoginData) identity() LoginUser {
	if (d.Role == "" && d.ID == "") && d.User != nil {
		return *d.User
	}
	return d.LoginUser
}

// Login exchanges credentials for a token. A 2xx response that reports
// success=false yields a response carrying only the server message.
func (c *Client) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	env, status, err := c.send(ctx, http.MethodPost, "/auth/login", nil, req, "")
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &APIError{Status: status, Message: env.Message}
	}
	if !env.Success {
		return &ports.LoginResponse{Message: env.Message}, nil
	}

	var data LoginData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decode login response: %w", err)
		}
	}
	user := data.identity()

	return &ports.LoginResponse{
		Token:   data.Token,
		Role:    user.Role,
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		LabID:   user.LabID,
		LabName: user.LabName,
		Message: env.Message,
	}, nil
}

// Logout revokes token on the server.
func (c *Client) Logout(ctx context.Context, token string) error {
	env, status, err := c.send(ctx, http.MethodPost, "/auth/logout", nil, nil, token)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &APIError{Status: status, Message: env.Message}
	}
	return nil
}
