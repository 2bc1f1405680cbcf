package models

import "time"

const (
	ActionCheckout = "checkout"
	ActionCheckin  = "checkin"
)

// UnknownHolder is recorded on check-in when a lent device somehow has no
// holder on record.
const UnknownHolder = "Unknown"

// LogEntry snapshots the device at event time (name/barcode are copied, not
// referenced), so history stays readable after the device is removed.
type LogEntry struct {
	ID            string    `json:"id"`
	DeviceID      string    `json:"deviceId"`
	DeviceName    string    `json:"deviceName"`
	DeviceBarcode string    `json:"deviceBarcode"`
	Action        string    `json:"action"`
	Holder        string    `json:"holder"`
	Timestamp     time.Time `json:"timestamp"`
}
