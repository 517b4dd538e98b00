package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is fixed and shared by login, refresh and logout. Renaming it
// strands live refresh cookies in browsers until they expire.
const CookieName = "jwt"

// CookieManager binds the refresh token to a browser-held protected
// cookie. HttpOnly keeps scripts out, Secure keeps it on TLS, and
// SameSite=None lets the separate-origin SPA send it cross-site.
type CookieManager struct {
	maxAge int
}

func NewCookieManager(refreshTTL time.Duration) *CookieManager {
	return &CookieManager{maxAge: int(refreshTTL.Seconds())}
}

func (cm *CookieManager) Attach(c *gin.Context, refreshToken string) {
	cm.set(c, refreshToken, cm.maxAge)
}

// Clear expires the cookie. Attributes must match Attach exactly or some
// clients will not remove it.
func (cm *CookieManager) Clear(c *gin.Context) {
	cm.set(c, "", -1)
}

// Read is a pure lookup; it does not decode or verify the token.
func (cm *CookieManager) Read(c *gin.Context) (string, bool) {
	v, err := c.Cookie(CookieName)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (cm *CookieManager) set(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", true, true)
}
