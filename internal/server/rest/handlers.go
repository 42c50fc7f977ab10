package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeabtsegataye/equb-system/internal/common"
	"github.com/yeabtsegataye/equb-system/internal/server/services"
)

// Response texts. Signup and login failures other than 401 are plain text.
const (
	msgInvalidBody     = "Invalid request body"
	msgUserExists      = "User already exists"
	msgInvalidPassword = "Invalid encrypted password"
	msgUserNotFound    = "No user found"
	msgErrorCreating   = "Error creating user"
	msgInternal        = "Internal server error"
	msgUnauthorized    = "Unauthorized"
	msgNoToken         = "No token found"
	msgRefreshExpired  = "Refresh token expired, please log in again"
	msgInvalidRefresh  = "Invalid refresh token"
)

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type unauthorizedResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *Handler) signup(c *gin.Context) {
	var req services.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	pair, err := h.svc.Signup(c.Request.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrUserExists):
		c.String(http.StatusBadRequest, msgUserExists)
		return
	case errors.Is(err, common.ErrInvalidCredentialPayload):
		c.String(http.StatusBadRequest, msgInvalidPassword)
		return
	default:
		c.String(http.StatusInternalServerError, msgErrorCreating)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, accessTokenResponse{AccessToken: pair.AccessToken})
}

func (h *Handler) login(c *gin.Context) {
	var req services.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrInvalidCredentialPayload):
		c.String(http.StatusBadRequest, msgInvalidPassword)
		return
	case errors.Is(err, common.ErrUserNotFound):
		c.String(http.StatusNotFound, msgUserNotFound)
		return
	case errors.Is(err, common.ErrorUnauthorized):
		unauthorized(c, msgUnauthorized)
		return
	default:
		c.String(http.StatusInternalServerError, msgInternal)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, accessTokenResponse{AccessToken: pair.AccessToken})
}

func (h *Handler) refresh(c *gin.Context) {
	token, _ := c.Cookie(common.RefreshTokenCookieName)

	access, err := h.svc.RefreshAccessToken(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, accessTokenResponse{AccessToken: access})
	case errors.Is(err, common.ErrNoToken):
		unauthorized(c, msgNoToken)
	case errors.Is(err, common.ErrRefreshTokenExpired):
		unauthorized(c, msgRefreshExpired)
	case errors.Is(err, common.ErrInvalidToken):
		unauthorized(c, msgInvalidRefresh)
	default:
		c.String(http.StatusInternalServerError, msgInternal)
	}
}

func (h *Handler) verify(c *gin.Context) {
	token, _ := c.Cookie(common.RefreshTokenCookieName)

	res, err := h.svc.VerifyToken(c.Request.Context(), c.GetHeader(common.AuthorizationHeaderName), token)
	if err != nil {
		unauthorized(c, msgNoToken)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) logout(c *gin.Context) {
	h.svc.Logout(c.Request.Context())
	h.clearRefreshCookie(c)
	c.Status(http.StatusOK)
}

func unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, unauthorizedResponse{
		StatusCode: http.StatusUnauthorized,
		Message:    msg,
		Error:      "Unauthorized",
	})
}
