package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Gin_redis_device_tracker/app"
	"Gin_redis_device_tracker/kvstore"
	"Gin_redis_device_tracker/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	a := &app.App{Router: r, KV: kvstore.NewMemory()}
	routes.RegisterRoutes(r, a)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestDeviceAPI(t *testing.T) {
	r := newTestRouter(t)

	t.Run("register", func(t *testing.T) {
		w, out := doJSON(t, r, http.MethodPost, "/api/devices",
			`{"name":"  Scanner A ","barcode":" ab-01 "}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, true, out["ok"])
		dev := out["device"].(map[string]any)
		assert.Equal(t, "Scanner A", dev["name"])
		assert.Equal(t, "AB-01", dev["barcode"])
		assert.Equal(t, "available", dev["status"])
	})

	t.Run("register validation maps to 400", func(t *testing.T) {
		w, out := doJSON(t, r, http.MethodPost, "/api/devices", `{"name":"  ","barcode":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Name and barcode are required", out["message"])
	})

	t.Run("duplicate barcode maps to 409", func(t *testing.T) {
		w, out := doJSON(t, r, http.MethodPost, "/api/devices",
			`{"name":"Scanner B","barcode":"AB-01"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, out["message"], "AB-01")
	})

	t.Run("scan without holder asks for one", func(t *testing.T) {
		w, out := doJSON(t, r, http.MethodPost, "/api/scan", `{"barcode":"ab-01"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, out["needsHolder"])
		assert.NotNil(t, out["device"])
	})

	t.Run("scan unknown barcode maps to 404", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/scan", `{"barcode":"ZZ-99","holder":"Maria"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("checkout then refuse delete then checkin", func(t *testing.T) {
		w, out := doJSON(t, r, http.MethodPost, "/api/scan", `{"barcode":"ab-01","holder":"Maria"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "checkout", out["action"])

		_, devs := doJSON(t, r, http.MethodGet, "/api/devices", "")
		id := devs["devices"].([]any)[0].(map[string]any)["id"].(string)

		w, _ = doJSON(t, r, http.MethodDelete, "/api/devices/"+id, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "lent device cannot be removed")

		w, out = doJSON(t, r, http.MethodPost, "/api/scan", `{"barcode":"AB-01"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "checkin", out["action"])
		assert.Contains(t, out["message"], "Maria")

		w, _ = doJSON(t, r, http.MethodDelete, "/api/devices/"+id, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logs outlive the device", func(t *testing.T) {
		w, out := doJSON(t, r, http.MethodGet, "/api/logs", "")
		assert.Equal(t, http.StatusOK, w.Code)
		logs := out["logs"].([]any)
		require.Len(t, logs, 2)
		assert.Equal(t, "checkin", logs[0].(map[string]any)["action"], "newest first")
		assert.Equal(t, "Scanner A", logs[0].(map[string]any)["deviceName"])
	})

	t.Run("stats", func(t *testing.T) {
		_, _ = doJSON(t, r, http.MethodPost, "/api/devices", `{"name":"Scanner C","barcode":"AB-03"}`)
		_, _ = doJSON(t, r, http.MethodPost, "/api/scan", `{"barcode":"AB-03","holder":"Jonas"}`)

		w, out := doJSON(t, r, http.MethodGet, "/api/stats", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), out["total"])
		assert.Equal(t, float64(1), out["lent"])
		assert.Equal(t, float64(0), out["available"])
	})

	t.Run("delete unknown id maps to 404", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/devices/%s", "missing"), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
