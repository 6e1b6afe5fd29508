package httpapi

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/auth"
	"github.com/dmitrijs2005/recipex/internal/server/outcome"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID keeps a caller-supplied request id or generates one.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(requestIDKey, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			req := c.Request()
			c.SetRequest(req.WithContext(logging.ContextWith(req.Context(), "request_id", rid)))
			return next(c)
		}
	}
}

func Logger(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			var caller string
			if cl, ok := auth.CallerFromContext(c.Request().Context()); ok {
				caller = cl.Email
			}
			status := c.Response().Status
			args := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"caller", caller,
				"status", status,
				"latency", time.Since(start),
				"remote_ip", c.RealIP(),
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error(req.Context(), "request", args...)
			case status >= http.StatusBadRequest:
				logger.Warn(req.Context(), "request", args...)
			default:
				logger.Info(req.Context(), "request", args...)
			}
			return nil
		}
	}
}

func Recovery(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack [4096]byte
					n := runtime.Stack(stack[:], false)

					logger.Error(c.Request().Context(), "panic recovered",
						"panic", fmt.Sprintf("%v", r),
						"stack", string(stack[:n]),
					)

					err = echo.NewHTTPError(http.StatusInternalServerError, common.ErrorInternal.Error())
				}
			}()
			return next(c)
		}
	}
}

// Authenticate admits the caller of the Authorization bearer token, or of
// the access_token header, and stores it in the request context.
func Authenticate(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token := auth.BearerToken(req.Header.Get(echo.HeaderAuthorization))
			if token == "" {
				token = req.Header.Get(common.AccessTokenHeaderName)
			}

			ctx, _, err := gate.Admit(req.Context(), token)
			if err != nil {
				o := outcome.Of(err)
				return c.JSON(o.HTTP, rpcapi.Envelope{Code: o.Code(), Message: o.Message})
			}

			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
