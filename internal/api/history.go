package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/radioburst/catpower/internal/telemetry"
)

func registerHistoryEndpoints(rest *echo.Echo, store *telemetry.Store) {
	group := rest.Group("/history")

	group.GET("/", getHistory(store))
}

// returns the bounded reading history, oldest first
func getHistory(store *telemetry.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := reprint.This(store.HistorySnapshot())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}
