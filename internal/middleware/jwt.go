package middleware // package middleware holds the echo middleware shared by the routers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
	ctxSubject = "subject"
	ctxRole    = "role"
)

func hmacKey(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	}
}

// bearerClaims returns the claims of a valid bearer token, or a message
// saying why there are none.
func bearerClaims(c echo.Context, keyFunc jwt.Keyfunc) (jwt.MapClaims, string) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, "missing bearer token"
	}
	tok, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), keyFunc)
	if err != nil || !tok.Valid {
		return nil, "invalid token"
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "invalid claims"
	}
	return claims, ""
}

// JWTAuth validates a Bearer access token signed with secret and stores its
// sub and role claims in the echo context. Requests without a valid token
// are answered with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	keyFunc := hmacKey(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, msg := bearerClaims(c, keyFunc)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
			}
			c.Set(ctxSubject, claims["sub"])
			c.Set(ctxRole, claims["role"])
			return next(c)
		}
	}
}

// Identify records the subject of a valid bearer token without rejecting
// anything. Mounted ahead of the rate limiter it lets the user key
// strategies tell signed-in callers apart; routes still need JWTAuth.
func Identify(secret string) echo.MiddlewareFunc {
	keyFunc := hmacKey(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, _ := bearerClaims(c, keyFunc); claims != nil {
				c.Set(ctxSubject, claims["sub"])
			}
			return next(c)
		}
	}
}
