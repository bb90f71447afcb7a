package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// apiKeyLookup accepts either an X-API-Key header or a bearer token.
const apiKeyLookup = "header:X-API-Key,header:Authorization:Bearer "

func (s *Server) requireAPIKey() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: apiKeyLookup,
		Validator: func(key string, c echo.Context) (bool, error) {
			return s.keys.Verify(key), nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			authFailuresTotal.Inc()
			s.logger.Debug().
				Str("uri", c.Request().RequestURI).
				Str("remote_ip", c.RealIP()).
				Msg("rejected request without a valid API key")
			return failUnauthorized(c)
		},
	})
}
