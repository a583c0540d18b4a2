package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// AuthUser is the identity record returned by the auth service.
type AuthUser struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Rol         string  `json:"rol"`
	ProveedorID *string `json:"proveedor_id,omitempty"`
}

// AuthClient resolves identities against the external auth service. Used as a
// fallback when the token does not carry a supplier binding; calls run behind
// the caller's circuit breaker.
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FindByEmail fetches the user record for a verified email address.
func (c *AuthClient) FindByEmail(ctx context.Context, email string) (*AuthUser, error) {
	endpoint := fmt.Sprintf("%s?email=%s", c.baseURL, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("auth: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("auth: user %s not found", email)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: service returned %d", resp.StatusCode)
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth: decode response: %w", err)
	}
	return &user, nil
}
