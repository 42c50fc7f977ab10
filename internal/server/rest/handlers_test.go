package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeabtsegataye/equb-system/internal/common"
	"github.com/yeabtsegataye/equb-system/internal/cryptox"
	"github.com/yeabtsegataye/equb-system/internal/logging"
	"github.com/yeabtsegataye/equb-system/internal/server/auth"
	"github.com/yeabtsegataye/equb-system/internal/server/passwords"
	"github.com/yeabtsegataye/equb-system/internal/server/repositories/repomanager"
	"github.com/yeabtsegataye/equb-system/internal/server/services"
	"golang.org/x/crypto/bcrypt"
)

const (
	testCipherKey  = "cipher-key"
	testRefreshTTL = 90 * 24 * time.Hour
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- helpers ---

func newTestRouter(t *testing.T) (*gin.Engine, *auth.Manager) {
	t.Helper()
	tm, err := auth.NewManager("access-secret", "refresh-secret", time.Hour, testRefreshTTL)
	require.NoError(t, err)

	svc := services.NewAuthService(nil, repomanager.NewInMemoryRepositoryManager(), tm,
		passwords.NewBcryptHasher(bcrypt.MinCost), testCipherKey, logging.NewNopLogger())

	h := NewHandler(svc, CookieOptions{Secure: true, MaxAge: testRefreshTTL}, logging.NewNopLogger())
	return NewRouter(h), tm
}

func performRequest(r http.Handler, method, path string, body io.Reader, cookies []*http.Cookie, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func credentials(t *testing.T, email, password string) io.Reader {
	t.Helper()
	enc, err := cryptox.Encrypt(password, testCipherKey)
	require.NoError(t, err)
	b, err := json.Marshal(map[string]string{"email": email, "Password": enc})
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.RefreshTokenCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", common.RefreshTokenCookieName)
	return nil
}

func decodeAccessToken(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body accessTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func decodeUnauthorized(t *testing.T, rec *httptest.ResponseRecorder) unauthorizedResponse {
	t.Helper()
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body unauthorizedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.Equal(t, "Unauthorized", body.Error)
	return body
}

// --- tests ---

func TestPing(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := performRequest(r, http.MethodGet, "/ping", nil, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}

func TestSignup_SetsCookieAndReturnsAccessToken(t *testing.T) {
	r, tm := newTestRouter(t)

	rec := performRequest(r, http.MethodPost, "/auth/signup", credentials(t, "a@b.com", "secret1"), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	access := decodeAccessToken(t, rec)
	p, err := tm.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", p.Email)

	c := refreshCookie(t, rec)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int(testRefreshTTL.Seconds()), c.MaxAge)

	rp, err := tm.VerifyRefreshToken(c.Value)
	require.NoError(t, err)
	assert.Equal(t, p, rp)
}

func TestSignup_Errors(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := performRequest(r, http.MethodPost, "/auth/signup", credentials(t, "a@b.com", "secret1"), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name     string
		body     io.Reader
		wantCode int
		wantBody string
	}{
		{name: "duplicate", body: credentials(t, "a@b.com", "other"), wantCode: http.StatusBadRequest, wantBody: "User already exists"},
		{name: "bad ciphertext", body: bytes.NewBufferString(`{"email":"c@d.com","Password":"nope"}`), wantCode: http.StatusBadRequest, wantBody: "Invalid encrypted password"},
		{name: "bad json", body: bytes.NewBufferString(`{`), wantCode: http.StatusBadRequest, wantBody: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performRequest(r, http.MethodPost, "/auth/signup", tt.body, nil, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := performRequest(r, http.MethodPost, "/auth/signup", credentials(t, "a@b.com", "secret1"), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("success", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/auth/login", credentials(t, "a@b.com", "secret1"), nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeAccessToken(t, rec)
		refreshCookie(t, rec)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/auth/login", credentials(t, "a@b.com", "wrong"), nil, nil)
		body := decodeUnauthorized(t, rec)
		assert.Equal(t, "Unauthorized", body.Message)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/auth/login", credentials(t, "x@y.com", "secret1"), nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "No user found", rec.Body.String())
	})

	t.Run("bad ciphertext", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@b.com","Password":"zzz"}`), nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid encrypted password", rec.Body.String())
	})
}

func TestRefresh(t *testing.T) {
	r, tm := newTestRouter(t)

	rec := performRequest(r, http.MethodPost, "/auth/signup", credentials(t, "a@b.com", "secret1"), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := refreshCookie(t, rec)

	t.Run("success", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/auth/refresh", nil, []*http.Cookie{cookie}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		access := decodeAccessToken(t, rec)
		_, err := tm.VerifyAccessToken(access)
		assert.NoError(t, err)
		assert.Empty(t, rec.Result().Cookies(), "refresh must not re-set the cookie")
	})

	t.Run("no cookie", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/auth/refresh", nil, nil, nil)
		assert.Equal(t, "No token found", decodeUnauthorized(t, rec).Message)
	})

	t.Run("expired", func(t *testing.T) {
		old := tm.WithClock(func() time.Time { return time.Now().Add(-91 * 24 * time.Hour) })
		expired, err := old.IssueRefreshToken(auth.Payload{ID: "u1", Email: "a@b.com"})
		require.NoError(t, err)

		rec := performRequest(r, http.MethodPost, "/auth/refresh", nil,
			[]*http.Cookie{{Name: common.RefreshTokenCookieName, Value: expired}}, nil)
		assert.Equal(t, "Refresh token expired, please log in again", decodeUnauthorized(t, rec).Message)
	})

	t.Run("invalid", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/auth/refresh", nil,
			[]*http.Cookie{{Name: common.RefreshTokenCookieName, Value: "a.b.c"}}, nil)
		assert.Equal(t, "Invalid refresh token", decodeUnauthorized(t, rec).Message)
	})
}

func TestVerify(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := performRequest(r, http.MethodPost, "/auth/signup", credentials(t, "a@b.com", "secret1"), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	access := decodeAccessToken(t, rec)
	cookie := refreshCookie(t, rec)

	t.Run("verified", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/auth/verify", nil, []*http.Cookie{cookie},
			map[string]string{"Authorization": "Bearer " + access})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"verified":true}`, rec.Body.String())
	})

	t.Run("not verified", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/auth/verify", nil, []*http.Cookie{cookie},
			map[string]string{"Authorization": "Bearer " + cookie.Value})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"verified":false}`, rec.Body.String())
	})

	t.Run("missing bearer", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/auth/verify", nil, []*http.Cookie{cookie}, nil)
		assert.Equal(t, "No token found", decodeUnauthorized(t, rec).Message)
	})

	t.Run("missing cookie", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/auth/verify", nil, nil,
			map[string]string{"Authorization": "Bearer " + access})
		assert.Equal(t, "No token found", decodeUnauthorized(t, rec).Message)
	})
}

func TestLogout_ClearsCookieIdempotently(t *testing.T) {
	r, _ := newTestRouter(t)

	for i := 0; i < 2; i++ {
		rec := performRequest(r, http.MethodPost, "/auth/logout", nil, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		c := refreshCookie(t, rec)
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	}
}

type fakeService struct {
	err error
}

func (f *fakeService) Signup(context.Context, services.CredentialRequest) (*auth.TokenPair, error) {
	return nil, f.err
}
func (f *fakeService) Login(context.Context, services.CredentialRequest) (*auth.TokenPair, error) {
	return nil, f.err
}
func (f *fakeService) RefreshAccessToken(context.Context, string) (string, error) { return "", f.err }
func (f *fakeService) VerifyToken(context.Context, string, string) (services.VerifyResult, error) {
	return services.VerifyResult{}, f.err
}
func (f *fakeService) Logout(context.Context) {}

func TestInternalErrorsAreOpaque(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.Join(common.ErrorInternal, errors.New("pq: connection refused"))},
		CookieOptions{MaxAge: time.Hour}, logging.NewNopLogger())
	r := NewRouter(h)

	body := `{"email":"a@b.com","Password":"x"}`

	rec := performRequest(r, http.MethodPost, "/auth/signup", bytes.NewBufferString(body), nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error creating user", rec.Body.String())

	rec = performRequest(r, http.MethodPost, "/auth/login", bytes.NewBufferString(body), nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", rec.Body.String())

	rec = performRequest(r, http.MethodPost, "/auth/refresh", nil,
		[]*http.Cookie{{Name: common.RefreshTokenCookieName, Value: "t"}}, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
