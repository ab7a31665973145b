package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/radioburst/catpower/internal/telemetry"
)

const (
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// CreateRestService builds the echo server exposing telemetry and the
// target power write endpoint. The apiKey is the shared secret required
// for writes; request metrics go to the given registerer.
func CreateRestService(store *telemetry.Store, apiKey string, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "catpower",
		Registerer: registerer,
	}))

	echoRest.GET("/alive/", isAlive)

	registerPowerEndpoints(echoRest, store, apiKey)
	registerHistoryEndpoints(echoRest, store)
	registerFrequencyEndpoints(echoRest, store)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func returnUnauthorized(c echo.Context) error {
	return c.JSONPretty(http.StatusUnauthorized, &Result{
		Name:    "Unauthorized",
		Message: "invalid api key",
	}, indentationChar)
}

func returnValidationError(c echo.Context, message string) error {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Validation Error",
		Message: message,
	}, indentationChar)
}
