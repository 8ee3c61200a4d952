package main

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/prontuario/api/internal/config"
	"github.com/prontuario/api/internal/domain/record"
	"github.com/prontuario/api/internal/domain/user"
	"github.com/prontuario/api/internal/platform/middleware"
	"github.com/prontuario/api/internal/platform/store"
)

// newServer wires both services onto one echo instance backed by backend.
func newServer(cfg *config.Config, logger zerolog.Logger, backend store.Backend) *echo.Echo {
	userCol := store.NewCollection[user.User](cfg.UsersCollection, backend,
		logger.With().Str("collection", cfg.UsersCollection).Logger())
	recordCol := store.NewCollection[record.MedicalRecord](cfg.RecordsCollection, backend,
		logger.With().Str("collection", cfg.RecordsCollection).Logger())

	userSvc := user.NewService(userCol)
	userSvc.SetUniqueCPF(cfg.UniqueCPF)
	recordSvc := record.NewService(recordCol, userSvc)
	userSvc.SetRecordLinker(recordSvc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, middleware.RequestIDHeader},
	}))
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	api := e.Group("")
	user.NewHandler(userSvc).RegisterRoutes(api)
	record.NewHandler(recordSvc).RegisterRoutes(api)

	e.GET("/health", func(c echo.Context) error {
		if err := backend.Ping(c.Request().Context()); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable").SetInternal(err)
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
			"store":  backend.Driver(),
		})
	})

	return e
}

// jsonSerializer is echo's JSON serializer on goccy/go-json.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if ute, ok := err.(*json.UnmarshalTypeError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid value for field "+ute.Field).SetInternal(err)
	}
	if se, ok := err.(*json.SyntaxError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, se.Error()).SetInternal(err)
	}
	return err
}
