// Package app provides the core application service for Wails bindings.
package app

// Event names for frontend communication. The two frame events carry
// render.Frame payloads; each window paints only its own stream.
const (
	EventPreviewFrame    = "projection-frame-preview"
	EventProjectorFrame  = "projection-frame-projector"
	EventTransportState  = "transport-state"
	EventProjectorStatus = "projector-status"
)

// ProjectorStatus is the payload of EventProjectorStatus.
type ProjectorStatus struct {
	Open      bool `json:"open"`
	Connected bool `json:"connected"`
}
