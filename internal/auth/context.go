package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserID  = "userID"
	ctxEmail   = "userEmail"
	ctxIsAdmin = "userIsAdmin"
)

// Principal is the authenticated caller as carried by the access token.
type Principal struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// setPrincipal stores the caller on the gin context.
func setPrincipal(c *gin.Context, p Principal) {
	c.Set(ctxUserID, p.UserID)
	c.Set(ctxEmail, p.Email)
	c.Set(ctxIsAdmin, p.IsAdmin)
}

// CurrentPrincipal returns the authenticated caller, or the zero value when
// the request passed no auth middleware.
func CurrentPrincipal(c *gin.Context) Principal {
	return Principal{
		UserID:  c.GetString(ctxUserID),
		Email:   c.GetString(ctxEmail),
		IsAdmin: c.GetBool(ctxIsAdmin),
	}
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
