package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeabtsegataye/equb-system/internal/common"
)

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(common.RefreshTokenCookieName, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

// clearRefreshCookie expires the cookie in the browser. It is safe to call
// when no cookie was set.
func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(common.RefreshTokenCookieName, "", -1, "/", "", h.cookie.Secure, true)
}
