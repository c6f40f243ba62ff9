// Package ginmw adapts middleware.BodyValidator to gin.
package ginmw

import (
	"github.com/gin-gonic/gin"

	paranoia "github.com/emavok/paranoia"
	"github.com/emavok/paranoia/middleware"
)

// ValidateJSON validates the request body against schema, aborting with the
// shared error payload when it does not conform.
func ValidateJSON(schema *paranoia.Schema, opts ...middleware.Option) gin.HandlerFunc {
	bv := middleware.NewBodyValidator(schema, opts...)
	return func(c *gin.Context) {
		v, rej := bv.Check(c.Request)
		if rej != nil {
			middleware.SetNoCache(c.Writer.Header())
			c.AbortWithStatusJSON(rej.Status, rej.Body)
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), v))
		c.Next()
	}
}

// GetValue fetches the validated body from gin.Context.
func GetValue(c *gin.Context) (any, bool) {
	return middleware.ValueFromContext(c.Request.Context())
}
