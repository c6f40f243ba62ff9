// Package echomw adapts middleware.BodyValidator to echo.
package echomw

import (
	"github.com/labstack/echo/v4"

	paranoia "github.com/emavok/paranoia"
	"github.com/emavok/paranoia/middleware"
)

// ValidateJSON validates the request body against schema. A failing body is
// answered with the shared error payload; on success the decoded value is
// stored in the request context.
func ValidateJSON(schema *paranoia.Schema, opts ...middleware.Option) echo.MiddlewareFunc {
	bv := middleware.NewBodyValidator(schema, opts...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, rej := bv.Check(c.Request())
			if rej != nil {
				middleware.SetNoCache(c.Response().Header())
				return c.JSON(rej.Status, rej.Body)
			}
			ctx := middleware.ContextWithValue(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValue fetches the validated body from echo.Context.
func GetValue(c echo.Context) (any, bool) {
	return middleware.ValueFromContext(c.Request().Context())
}
