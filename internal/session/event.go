package session

import (
	"encoding/json"
	"fmt"
)

// EventType names an inbound session event. The values double as the wire
// frame types clients send.
type EventType string

const (
	EventJoinGame   EventType = "joinGame"
	EventMoveToRoom EventType = "moveToRoom"
	EventCommand    EventType = "command"
	EventDisconnect EventType = "disconnect" // raised by the listener, never sent by clients
)

// Outbound frame types.
const (
	MessageGameState     = "gameState"
	MessageCommandResult = "commandResult"
)

// Event is a single inbound request from a connection.
type Event struct {
	Type   EventType
	ConnId string
	Arg    string
}

// Frame is the JSON envelope used on the wire in both directions.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EncodeFrame marshals data into a frame of the given type.
func EncodeFrame(typ string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s data: %w", typ, err)
	}
	return json.Marshal(Frame{Type: typ, Data: raw})
}

// DecodeEvent parses an inbound client frame into an event for connId.
// Only client-originated types are accepted and data must be a string.
func DecodeEvent(connId string, b []byte) (Event, error) {
	var f Frame
	if err := json.Unmarshal(b, &f); err != nil {
		return Event{}, fmt.Errorf("decoding frame: %w", err)
	}

	typ := EventType(f.Type)
	switch typ {
	case EventJoinGame, EventMoveToRoom, EventCommand:
	default:
		return Event{}, fmt.Errorf("unknown frame type %q", f.Type)
	}

	var arg string
	if len(f.Data) > 0 {
		if err := json.Unmarshal(f.Data, &arg); err != nil {
			return Event{}, fmt.Errorf("decoding %s data: %w", f.Type, err)
		}
	}

	return Event{Type: typ, ConnId: connId, Arg: arg}, nil
}
