package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/facility-booking/internal/handler"
)

// Middleware groups the optional Redis-backed middleware.  Nil entries are
// skipped.
type Middleware struct {
	RateLimit echo.MiddlewareFunc // applied to every route
	Cache     echo.MiddlewareFunc // applied to catalogue routes only
}

// Use installs recovery, access logging and CORS, followed by the rate
// limiter when one is configured.
func Use(e *echo.Echo, allowedOrigins []string, mw Middleware) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := log.JSON{
				"message":    "request",
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
				c.Logger().Errorj(fields)
				return nil
			}
			c.Logger().Infoj(fields)
			return nil
		},
	}))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	if mw.RateLimit != nil {
		e.Use(mw.RateLimit)
	}
}

// RegisterRoutes registers routes that need no database: the root greeting,
// the item echo and the health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/", handler.Root)
	e.GET("/items/:item_id", handler.GetItem)
	e.GET("/healthz", handler.Health(db))
}

// RegisterCatalogue registers the read-only company, facility and user
// lookups.  Companies and facilities change rarely and go through cache.
func RegisterCatalogue(e *echo.Echo, h *handler.CatalogueHandler, cache echo.MiddlewareFunc) {
	var mws []echo.MiddlewareFunc
	if cache != nil {
		mws = append(mws, cache)
	}
	e.GET("/companies", h.ListCompanies, mws...)
	e.GET("/companies/:id", h.GetCompany, mws...)
	e.GET("/facilities", h.ListFacilities, mws...)
	e.GET("/facilities/:id", h.GetFacility, mws...)
	e.GET("/users/:user_id", h.GetUser)
}

// RegisterReservations registers the booking endpoints.  They are never
// cached.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler) {
	e.GET("/reservations", h.ListReservations)
	e.POST("/reservations", h.CreateReservation)
}
