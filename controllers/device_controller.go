// controllers/device_controller.go
package controllers

import (
	"errors"
	"net/http"

	"Gin_redis_device_tracker/app"
	"Gin_redis_device_tracker/store"

	"github.com/gin-gonic/gin"
)

type DeviceController struct{ *Srv }

func NewDeviceController(s *Srv) *DeviceController { return &DeviceController{Srv: s} }

// POST /api/devices
// Blank name/barcode intentionally reaches the store so its validation
// message comes back, not a gin binding error.
func (dc *DeviceController) Register(c *gin.Context) {
	var in struct {
		Name    string `json:"name"`
		Barcode string `json:"barcode"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	dc.mu.Lock()
	res := dc.Store.Register(c.Request.Context(), in.Name, in.Barcode)
	dc.mu.Unlock()
	c.JSON(httpStatus(res, http.StatusCreated), res)
}

// DELETE /api/devices/:id
func (dc *DeviceController) Unregister(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing device id"})
		return
	}
	dc.mu.Lock()
	res := dc.Store.Unregister(c.Request.Context(), id)
	dc.mu.Unlock()
	c.JSON(httpStatus(res, http.StatusOK), res)
}

// POST /api/scan
func (dc *DeviceController) Scan(c *gin.Context) {
	var in struct {
		Barcode string `json:"barcode"`
		Holder  string `json:"holder"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	dc.mu.Lock()
	res := dc.Store.Scan(c.Request.Context(), in.Barcode, in.Holder)
	dc.mu.Unlock()
	c.JSON(httpStatus(res, http.StatusOK), res)
}

// GET /api/devices
func (dc *DeviceController) ListDevices(c *gin.Context) {
	dc.mu.Lock()
	devices := dc.Store.Devices()
	dc.mu.Unlock()
	c.JSON(http.StatusOK, app.H{"devices": devices})
}

// GET /api/logs — capped history, newest first
func (dc *DeviceController) ListLogs(c *gin.Context) {
	dc.mu.Lock()
	logs := dc.Store.Logs()
	dc.mu.Unlock()
	c.JSON(http.StatusOK, app.H{"logs": logs})
}

// GET /api/stats
func (dc *DeviceController) GetStats(c *gin.Context) {
	dc.mu.Lock()
	st := dc.Store.Stats()
	dc.mu.Unlock()
	c.JSON(http.StatusOK, st)
}

func httpStatus(res store.Result, success int) int {
	if res.Err == nil {
		return success
	}
	switch {
	case errors.Is(res.Err, store.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(res.Err, store.ErrDuplicateBarcode):
		return http.StatusConflict
	case errors.Is(res.Err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(res.Err, store.ErrInvalidState):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
