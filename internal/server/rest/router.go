// Package rest exposes AuthService over HTTP with gin. It owns the
// refresh-token cookie and the mapping from service errors to HTTP responses.
package rest

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeabtsegataye/equb-system/internal/logging"
	"github.com/yeabtsegataye/equb-system/internal/server/auth"
	"github.com/yeabtsegataye/equb-system/internal/server/services"
)

// AuthService is the subset of services.AuthService used by the handlers.
type AuthService interface {
	Signup(ctx context.Context, req services.CredentialRequest) (*auth.TokenPair, error)
	Login(ctx context.Context, req services.CredentialRequest) (*auth.TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	VerifyToken(ctx context.Context, bearerHeader, refreshCookie string) (services.VerifyResult, error)
	Logout(ctx context.Context)
}

// CookieOptions controls the refresh-token cookie attributes that vary by
// deployment. HttpOnly, SameSite=Strict and Path=/ are always set.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

type Handler struct {
	svc    AuthService
	cookie CookieOptions
	logger logging.Logger
}

func NewHandler(svc AuthService, cookie CookieOptions, l logging.Logger) *Handler {
	return &Handler{svc: svc, cookie: cookie, logger: l}
}

// NewRouter builds the gin engine with recovery, request logging and the
// auth routes.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/ping", h.ping)

	a := r.Group("/auth")
	a.POST("/signup", h.signup)
	a.POST("/login", h.login)
	a.POST("/refresh", h.refresh)
	a.GET("/verify", h.verify)
	a.POST("/logout", h.logout)

	return r
}
