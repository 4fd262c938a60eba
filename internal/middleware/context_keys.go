package middleware

import "github.com/gin-gonic/gin"

// identityIDKey is the key used to store the authenticated identity's ID in
// the request context. Using a custom type prevents collisions.
const identityIDKey = contextKey("identityID")

// GetIdentityIDFromContext retrieves the authenticated identity ID from the
// Gin context. It returns the identity ID and a boolean indicating if it was
// found.
func GetIdentityIDFromContext(c *gin.Context) (string, bool) {
	identityVal, exists := c.Get(string(identityIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(identityIDKey)
		if ctxVal != nil {
			return ctxVal.(string), true
		}
		return "", false
	}

	identityID, ok := identityVal.(string)
	if !ok {
		// This should not happen if the auth middleware sets it correctly
		return "", false
	}

	return identityID, true
}
