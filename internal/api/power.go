package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/radioburst/catpower/internal/telemetry"
)

type TargetPowerResult struct {
	TargetPower int `json:"target_power"`
}

type setTargetPowerRequest struct {
	TargetPower *int   `json:"target_power"`
	ApiKey      string `json:"api_key"`
}

func registerPowerEndpoints(rest *echo.Echo, store *telemetry.Store, apiKey string) {
	group := rest.Group("/power")

	group.GET("/target/", getTargetPower(store))
	group.POST("/target/", setTargetPower(store, apiKey))
}

// returns the currently configured target power
func getTargetPower(store *telemetry.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, &TargetPowerResult{
			TargetPower: store.GetTargetPower(),
		}, indentationChar)
	}
}

// updates the target power, guarded by the shared api key
func setTargetPower(store *telemetry.Store, apiKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var request setTargetPowerRequest
		if err := c.Bind(&request); err != nil {
			return returnValidationError(c, "target_power must be an integer")
		}

		if request.ApiKey != apiKey {
			return returnUnauthorized(c)
		}

		if request.TargetPower == nil {
			return returnValidationError(c, "missing field: target_power")
		}

		if err := store.SetTargetPower(*request.TargetPower); err != nil {
			return returnValidationError(c, fmt.Sprintf(
				"target_power must be in [%d, %d], got: %d",
				telemetry.MinTargetPower, telemetry.MaxTargetPower, *request.TargetPower))
		}

		return c.JSONPretty(http.StatusOK, &TargetPowerResult{
			TargetPower: store.GetTargetPower(),
		}, indentationChar)
	}
}
