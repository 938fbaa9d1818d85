package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"

// CookieManager keeps the refresh token in an HttpOnly cookie scoped to the
// refresh endpoint. Access tokens travel in the Authorization header only.
type CookieManager struct {
	Domain string
	Secure bool
	Path   string
}

func NewCookieManager(domain string, secure bool, path string) *CookieManager {
	if path == "" {
		path = "/"
	}
	return &CookieManager{Domain: domain, Secure: secure, Path: path}
}

func (m *CookieManager) SetRefresh(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, maxAgeFrom(exp), m.Path, m.Domain, m.Secure, true)
}

// Refresh returns the refresh token cookie, or "" when absent.
func (m *CookieManager) Refresh(c *gin.Context) string {
	v, err := c.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return v
}

func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, m.Path, m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
