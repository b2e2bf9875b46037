// internal/domain/blackout/dto.go
package blackout

import "time"

type CreateWindowRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason" binding:"max=255"`
}

// QuickFillRequest creates a window from a preset relative to a date.
type QuickFillRequest struct {
	Date   string `json:"date" binding:"required"`
	Preset string `json:"preset" binding:"required,oneof=full_day morning afternoon"`
	Reason string `json:"reason" binding:"max=255"`
}

// CreateWindowResponse returns the stored window plus the advisory
// conflict flag; creation is never blocked on conflict.
type CreateWindowResponse struct {
	Window    Window `json:"window"`
	Conflicts bool   `json:"conflicts"`
}
