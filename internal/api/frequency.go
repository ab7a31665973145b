package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/radioburst/catpower/internal/telemetry"
)

type FrequencyResult struct {
	FrequencyHz int    `json:"frequency_hz"`
	Band        string `json:"band"`
}

func registerFrequencyEndpoints(rest *echo.Echo, store *telemetry.Store) {
	group := rest.Group("/frequency")

	group.GET("/", getFrequency(store))
}

// returns the current frequency with its derived band label
func getFrequency(store *telemetry.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		hz, band := store.GetFrequency()
		return c.JSONPretty(http.StatusOK, &FrequencyResult{
			FrequencyHz: hz,
			Band:        band,
		}, indentationChar)
	}
}
