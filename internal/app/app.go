// Package app contains the HTTP API server.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/stolasapp/melete/internal/catalog"
	"github.com/stolasapp/melete/internal/config"
	"github.com/stolasapp/melete/internal/sec"
	"github.com/stolasapp/melete/internal/storage"
)

// New creates the API server. Routes that mutate courses or read the current
// user re-authenticate on every request via [sec.Middleware]; everything else
// is public.
func New(cfg *config.Config, logger *slog.Logger, store storage.Store) *echo.Echo {
	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.HTTPErrorHandler = errorHandler(cfg, logger)

	if cfg.DevMode {
		srv.Debug = true
		srv.Use(logRequests(logger))
	}

	srv.Use(
		middleware.Recover(),
		middleware.CORS(),
		middleware.RequestID(),
	)

	handler{catalog: catalog.New(store)}.register(srv, sec.Middleware(store))
	return srv
}

type messageBody struct {
	Message string `json:"message"`
}

// errorHandler is the process-wide fault handler. Domain errors that escape
// the handlers are translated here; anything unrecognized is normalized to a
// 500 with the upstream API's body shape.
func errorHandler(cfg *config.Config, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var writeErr error
		var verr *catalog.ValidationError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &verr):
			writeErr = c.JSON(http.StatusBadRequest, verr.Violations)
		case errors.Is(err, catalog.ErrForbidden):
			writeErr = c.NoContent(http.StatusForbidden)
		case errors.Is(err, storage.ErrNotFound):
			writeErr = c.JSON(http.StatusNotFound, messageBody{Message: "Course Not Found"})
		case errors.Is(err, echo.ErrNotFound):
			writeErr = c.JSON(http.StatusNotFound, messageBody{Message: "Route Not Found"})
		case errors.As(err, &httpErr):
			writeErr = c.JSON(httpErr.Code, messageBody{Message: fmt.Sprint(httpErr.Message)})
		default:
			if cfg.LogServerErrors {
				logger.ErrorContext(c.Request().Context(), "request failed",
					slog.String("uri", c.Request().RequestURI),
					slog.Any("error", err),
				)
			}
			writeErr = c.JSON(http.StatusInternalServerError, struct {
				Message string   `json:"message"`
				Error   struct{} `json:"error"`
			}{Message: err.Error()})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response",
				slog.Any("error", writeErr),
			)
		}
	}
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(
				req.Context(),
				slog.LevelDebug,
				"request handled",
				attrs...,
			)
			return err
		}
	}
}
