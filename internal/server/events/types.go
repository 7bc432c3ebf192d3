// Package events fans catalog events out to every connected transport.
//
// The fieldscope client reports reloads through its hooks; the server turns
// those into Events and publishes them on a Broker, which delivers each one
// to the WebSocket hub and the SSE broadcaster.
package events

import "time"

// EventType names a catalog event.
type EventType string

// Event types.
const (
	// CatalogReloaded fires after a new engine is installed.
	CatalogReloaded EventType = "catalog.reloaded"

	// StandardChanged fires once per standard whose compliance tallies
	// differ between the old and new engine.
	StandardChanged EventType = "standard.changed"

	// ClientConnected fires when an update subscriber connects.
	ClientConnected EventType = "client.connected"
)

// Event is one published catalog event.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
