// store/store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"Gin_redis_device_tracker/kvstore"
	"Gin_redis_device_tracker/models"

	"github.com/google/uuid"
)

// Persisted snapshot keys.
const (
	DevicesKey = "devicetracker:devices"
	LogsKey    = "devicetracker:logs"
)

// LogRetention caps the history log; oldest entries beyond it are dropped
// on every insert.
const LogRetention = 100

// Error kinds carried inside a Result, inspectable with errors.Is. They
// never cross the store boundary as plain Go errors.
var (
	ErrValidation       = errors.New("name and barcode are required")
	ErrDuplicateBarcode = errors.New("duplicate barcode")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
)

// DeviceStore owns the device registry and the movement log. It is a
// single-writer store: one caller at a time, every mutation persisted
// synchronously before the operation returns.
type DeviceStore struct {
	kv      kvstore.KV
	devices []models.Device   // insertion order
	logs    []models.LogEntry // newest first
}

// New loads both collections from kv. A missing or unparsable entry starts
// empty; timestamps come back from their RFC 3339 form.
func New(kv kvstore.KV) *DeviceStore {
	s := &DeviceStore{kv: kv}
	ctx := context.Background()

	if raw, err := s.loadRaw(ctx, DevicesKey); err == nil {
		var ds []models.Device
		if err := json.Unmarshal([]byte(raw), &ds); err != nil {
			log.Printf("parse %s: %v, starting empty", DevicesKey, err)
		} else {
			s.devices = ds
		}
	}
	if raw, err := s.loadRaw(ctx, LogsKey); err == nil {
		var ls []models.LogEntry
		if err := json.Unmarshal([]byte(raw), &ls); err != nil {
			log.Printf("parse %s: %v, starting empty", LogsKey, err)
		} else {
			s.logs = ls
		}
	}
	return s
}

func (s *DeviceStore) loadRaw(ctx context.Context, key string) (string, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil && !errors.Is(err, kvstore.ErrNoKey) {
		log.Printf("kv get %s: %v", key, err)
	}
	return raw, err
}

// NormalizeBarcode trims and uppercases, the canonical stored form. All
// barcode comparison happens on normalized values.
func NormalizeBarcode(barcode string) string {
	return strings.ToUpper(strings.TrimSpace(barcode))
}

// Register adds a new available device.
func (s *DeviceStore) Register(ctx context.Context, name, barcode string) Result {
	name = strings.TrimSpace(name)
	code := NormalizeBarcode(barcode)
	if name == "" || code == "" {
		return Result{Err: ErrValidation, Message: "Name and barcode are required"}
	}
	if _, ok := s.indexByBarcode(code); ok {
		return Result{
			Err:     ErrDuplicateBarcode,
			Message: fmt.Sprintf("A device with barcode %s already exists", code),
		}
	}

	d := models.Device{
		ID:        uuid.NewString(),
		Name:      name,
		Barcode:   code,
		Status:    models.StatusAvailable,
		CreatedAt: time.Now(),
	}
	s.devices = append(s.devices, d)
	s.persistDevices(ctx)
	return Result{OK: true, Message: fmt.Sprintf("%s registered", name), Device: &d}
}

// Unregister removes an available device. Its log entries stay: history is
// a snapshot, independent of whether the device still exists.
func (s *DeviceStore) Unregister(ctx context.Context, id string) Result {
	idx := -1
	for i := range s.devices {
		if s.devices[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{Err: ErrNotFound, Message: "Device not found"}
	}
	d := s.devices[idx]
	if d.Lent() {
		return Result{
			Err:     ErrInvalidState,
			Message: fmt.Sprintf("%s is checked out to %s and cannot be removed", d.Name, d.CurrentHolder),
		}
	}
	s.devices = append(s.devices[:idx], s.devices[idx+1:]...)
	s.persistDevices(ctx)
	return Result{OK: true, Message: fmt.Sprintf("%s removed", d.Name)}
}

// Scan drives the two-state machine available ⇄ lent. An available device
// with no holder given is not mutated; the caller gets NeedsHolder plus the
// matched device and is expected to re-scan with a name.
func (s *DeviceStore) Scan(ctx context.Context, barcode, holder string) Result {
	code := NormalizeBarcode(barcode)
	idx, ok := s.indexByBarcode(code)
	if !ok {
		return Result{Err: ErrNotFound, Message: fmt.Sprintf("No device with barcode %s", code)}
	}
	d := &s.devices[idx]
	holder = strings.TrimSpace(holder)

	if !d.Lent() {
		if holder == "" {
			snap := *d
			return Result{NeedsHolder: true, Device: &snap}
		}
		d.Status = models.StatusLent
		d.CurrentHolder = holder
		s.persistDevices(ctx)
		s.appendLog(ctx, *d, models.ActionCheckout, holder)
		snap := *d
		return Result{
			OK:      true,
			Action:  models.ActionCheckout,
			Message: fmt.Sprintf("%s checked out to %s", d.Name, holder),
			Device:  &snap,
		}
	}

	prev := d.CurrentHolder
	if prev == "" {
		prev = models.UnknownHolder
	}
	d.Status = models.StatusAvailable
	d.CurrentHolder = ""
	s.persistDevices(ctx)
	s.appendLog(ctx, *d, models.ActionCheckin, prev)
	snap := *d
	return Result{
		OK:      true,
		Action:  models.ActionCheckin,
		Message: fmt.Sprintf("%s returned by %s", d.Name, prev),
		Device:  &snap,
	}
}

// Stats derives the aggregate counts. No mutation, no I/O.
func (s *DeviceStore) Stats() Stats {
	st := Stats{Total: len(s.devices)}
	for i := range s.devices {
		if s.devices[i].Lent() {
			st.Lent++
		}
	}
	st.Available = st.Total - st.Lent
	return st
}

// Devices returns a copy of the registry in insertion order.
func (s *DeviceStore) Devices() []models.Device {
	out := make([]models.Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// Logs returns a copy of the history, newest first.
func (s *DeviceStore) Logs() []models.LogEntry {
	out := make([]models.LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *DeviceStore) indexByBarcode(code string) (int, bool) {
	for i := range s.devices {
		if s.devices[i].Barcode == code {
			return i, true
		}
	}
	return -1, false
}

func (s *DeviceStore) appendLog(ctx context.Context, d models.Device, action, holder string) {
	e := models.LogEntry{
		ID:            uuid.NewString(),
		DeviceID:      d.ID,
		DeviceName:    d.Name,
		DeviceBarcode: d.Barcode,
		Action:        action,
		Holder:        holder,
		Timestamp:     time.Now(),
	}
	s.logs = append([]models.LogEntry{e}, s.logs...)
	if len(s.logs) > LogRetention {
		s.logs = s.logs[:LogRetention]
	}
	s.persistLogs(ctx)
}

// persist* write the full collection. A failed write is logged and
// swallowed: in-memory state stays authoritative for the session.
func (s *DeviceStore) persistDevices(ctx context.Context) { s.persist(ctx, DevicesKey, s.devices) }
func (s *DeviceStore) persistLogs(ctx context.Context)    { s.persist(ctx, LogsKey, s.logs) }

func (s *DeviceStore) persist(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("marshal %s: %v", key, err)
		return
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		log.Printf("kv set %s: %v", key, err)
	}
}
