// internal/middleware/helpers.go
package middleware

import (
	"realty-service/internal/domain/admin"
	authsvc "realty-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// SetAdmin stores the signed-in account for later handlers.
func SetAdmin(c *gin.Context, a *admin.Admin) {
	c.Set(ctxAdminKey, a)
}

// GetAdmin returns the account loaded by Auth().
func GetAdmin(c *gin.Context) (*admin.Admin, bool) {
	v, exists := c.Get(ctxAdminKey)
	if !exists {
		return nil, false
	}
	a, ok := v.(*admin.Admin)
	return a, ok && a != nil
}

// MustGetAdmin gets the admin from context or panics
func MustGetAdmin(c *gin.Context) *admin.Admin {
	a, ok := GetAdmin(c)
	if !ok {
		panic("admin not found in context")
	}
	return a
}

// GetSession returns the refreshed session set by Auth().
func GetSession(c *gin.Context) (*authsvc.Session, bool) {
	v, exists := c.Get(ctxSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*authsvc.Session)
	return sess, ok
}
