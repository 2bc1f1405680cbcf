// controllers/srv.go
package controllers

import (
	"sync"

	"Gin_redis_device_tracker/app"
	"Gin_redis_device_tracker/store"
)

// Srv holds the shared dependencies for all handlers. The device store is
// single-writer, so every store call is serialized through mu here at the
// HTTP boundary.
type Srv struct {
	mu    sync.Mutex
	Store *store.DeviceStore
}

func GetSrv(a *app.App) *Srv {
	return &Srv{Store: store.New(a.KV)}
}
