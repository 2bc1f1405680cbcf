// models/device.go
package models

import "time"

// Device statuses: a device is either on the shelf or in someone's hands.
const (
	StatusAvailable = "available"
	StatusLent      = "lent"
)

type Device struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Barcode       string    `json:"barcode"` // stored normalized: trimmed, uppercase, unique
	Status        string    `json:"status"`
	CurrentHolder string    `json:"currentHolder,omitempty"` // non-empty iff Status == StatusLent
	CreatedAt     time.Time `json:"createdAt"`
}

func (d Device) Lent() bool { return d.Status == StatusLent }
