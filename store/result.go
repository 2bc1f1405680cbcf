package store

import "Gin_redis_device_tracker/models"

// Result describes the outcome of one store operation. Operations never
// return Go errors; failures are folded into the descriptor so the caller
// always has something to render.
//
// For Scan the fields act as a tagged variant:
//
//	Err != nil            → no such barcode
//	NeedsHolder           → available device, caller must supply a holder
//	Action == "checkout"  → device lent, Message summarizes device → holder
//	Action == "checkin"   → device returned, Message summarizes device ← holder
type Result struct {
	OK          bool           `json:"ok"`
	Message     string         `json:"message,omitempty"`
	NeedsHolder bool           `json:"needsHolder,omitempty"`
	Action      string         `json:"action,omitempty"`
	Device      *models.Device `json:"device,omitempty"`
	Err         error          `json:"-"`
}

// Stats are the derived registry counts.
type Stats struct {
	Total     int `json:"total"`
	Lent      int `json:"lent"`
	Available int `json:"available"`
}
