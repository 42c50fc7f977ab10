package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/yeabtsegataye/equb-system/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL. The refresh
// cookie set by signup/login is stored in an in-memory jar for the lifetime
// of the client.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

type credentialRequest struct {
	Email    string `json:"email"`
	Password string `json:"Password"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type verifyResponse struct {
	Verified bool `json:"verified"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, encryptedPassword string) (string, error) {
	return c.credentials(ctx, "/auth/signup", email, encryptedPassword)
}

func (c *HTTPClient) Login(ctx context.Context, email, encryptedPassword string) (string, error) {
	return c.credentials(ctx, "/auth/login", email, encryptedPassword)
}

func (c *HTTPClient) credentials(ctx context.Context, path, email, encryptedPassword string) (string, error) {
	body, err := json.Marshal(credentialRequest{Email: email, Password: encryptedPassword})
	if err != nil {
		return "", err
	}

	var resp accessTokenResponse
	if err := c.do(ctx, http.MethodPost, path, body, nil, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Refresh asks for a new access token using the stored refresh cookie.
func (c *HTTPClient) Refresh(ctx context.Context) (string, error) {
	var resp accessTokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Verify(ctx context.Context, accessToken string) (bool, error) {
	header := http.Header{}
	if accessToken != "" {
		header.Set(common.AuthorizationHeaderName, common.BearerPrefix+accessToken)
	}

	var resp verifyResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, header, &resp); err != nil {
		return false, err
	}
	return resp.Verified, nil
}

// Logout asks the server to clear the refresh cookie; the jar drops it.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, header http.Header, out any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return mapStatus(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// mapStatus converts a non-200 response into one of the package's sentinel errors.
func mapStatus(code int, body []byte) error {
	text := strings.TrimSpace(string(body))

	switch code {
	case http.StatusBadRequest:
		switch text {
		case "User already exists":
			return ErrUserExists
		case "Invalid encrypted password":
			return ErrInvalidPayload
		}
		return fmt.Errorf("bad request: %s", text)

	case http.StatusNotFound:
		return ErrUserNotFound

	case http.StatusUnauthorized:
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		switch e.Message {
		case "No token found":
			return ErrNoToken
		case "Refresh token expired, please log in again":
			return ErrRefreshExpired
		case "Invalid refresh token":
			return ErrInvalidToken
		}
		return ErrUnauthorized
	}

	if code >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %d %s", ErrServer, code, text)
	}
	return fmt.Errorf("unexpected status %d: %s", code, text)
}
