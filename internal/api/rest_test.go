package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/radioburst/catpower/internal/telemetry"
	"github.com/stretchr/testify/assert"
)

const testApiKey = "secret"

func createTestService() (*telemetry.Store, http.Handler) {
	store := telemetry.NewStore(25)
	return store, CreateRestService(store, testApiKey, prometheus.NewRegistry())
}

func performRequest(handler http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body != "" {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	} else {
		request = httptest.NewRequest(method, path, nil)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestIsAlive(t *testing.T) {
	_, handler := createTestService()

	recorder := performRequest(handler, http.MethodGet, "/alive/", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetTargetPower(t *testing.T) {
	// GIVEN
	_, handler := createTestService()

	// WHEN
	recorder := performRequest(handler, http.MethodGet, "/power/target/", "")

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	var result TargetPowerResult
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, 25, result.TargetPower)
}

func TestSetTargetPower(t *testing.T) {
	// GIVEN
	store, handler := createTestService()

	// WHEN
	recorder := performRequest(handler, http.MethodPost, "/power/target/",
		`{"target_power": 100, "api_key": "secret"}`)

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 100, store.GetTargetPower())
}

func TestSetTargetPowerWrongKey(t *testing.T) {
	// GIVEN
	store, handler := createTestService()

	// WHEN
	recorder := performRequest(handler, http.MethodPost, "/power/target/",
		`{"target_power": 100, "api_key": "wrong"}`)

	// THEN
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, 25, store.GetTargetPower())
}

func TestSetTargetPowerOutOfRange(t *testing.T) {
	// GIVEN
	store, handler := createTestService()

	for _, value := range []string{"-1", "12000"} {
		// WHEN
		recorder := performRequest(handler, http.MethodPost, "/power/target/",
			`{"target_power": `+value+`, "api_key": "secret"}`)

		// THEN
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "value: %s", value)
		assert.Equal(t, 25, store.GetTargetPower())
	}
}

func TestSetTargetPowerNotAnInteger(t *testing.T) {
	// GIVEN
	store, handler := createTestService()

	// WHEN
	recorder := performRequest(handler, http.MethodPost, "/power/target/",
		`{"target_power": 25.5, "api_key": "secret"}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 25, store.GetTargetPower())
}

func TestSetTargetPowerMissingField(t *testing.T) {
	// GIVEN
	store, handler := createTestService()

	// WHEN
	recorder := performRequest(handler, http.MethodPost, "/power/target/",
		`{"api_key": "secret"}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 25, store.GetTargetPower())
}

func TestGetHistory(t *testing.T) {
	// GIVEN
	store, handler := createTestService()
	store.AppendHistory(telemetry.Reading{Timestamp: 1, Power: 20, TargetPower: 25, Drive: 50, Swr: 1.3})
	store.AppendHistory(telemetry.Reading{Timestamp: 2, Power: 21, TargetPower: 25, Drive: 51, Swr: 1.3})

	// WHEN
	recorder := performRequest(handler, http.MethodGet, "/history/", "")

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	var readings []telemetry.Reading
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &readings))
	assert.Len(t, readings, 2)
	assert.Equal(t, int64(1), readings[0].Timestamp)
	assert.Equal(t, 21.0, readings[1].Power)
}

func TestGetFrequency(t *testing.T) {
	// GIVEN
	store, handler := createTestService()
	store.SetFrequency(14074000)

	// WHEN
	recorder := performRequest(handler, http.MethodGet, "/frequency/", "")

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	var result FrequencyResult
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, 14074000, result.FrequencyHz)
	assert.Equal(t, "20m", result.Band)
}
