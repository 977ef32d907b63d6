// Package taxonomy enumerates port data types and node kinds and binds each
// to its display color.
package taxonomy

import (
	"fmt"
	"strings"
)

// PortType is the data type carried by a port.
type PortType int

const (
	Any PortType = iota
	String
	Boolean
	Number
	Object
	Event
)

// PortTypes lists every port type in display order.
var PortTypes = []PortType{String, Boolean, Number, Object, Event, Any}

func (t PortType) String() string {
	switch t {
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case Object:
		return "object"
	case Event:
		return "event"
	case Any:
		return "any"
	}
	return "any"
}

// Color returns the stroke color used for edges and port dots of this type.
func (t PortType) Color() string {
	switch t {
	case String:
		return "#22c55e"
	case Boolean:
		return "#f59e0b"
	case Number:
		return "#3b82f6"
	case Object:
		return "#a855f7"
	case Event:
		return "#ef4444"
	case Any:
		return "#9ca3af"
	}
	return "#9ca3af"
}

// ParsePortType maps a type name to a PortType. Unknown names resolve to Any
// and report false.
func ParsePortType(s string) (PortType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return String, true
	case "boolean", "bool":
		return Boolean, true
	case "number":
		return Number, true
	case "object":
		return Object, true
	case "event":
		return Event, true
	case "any":
		return Any, true
	}
	return Any, false
}

// MarshalText implements encoding.TextMarshaler.
func (t PortType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// to Any so that a malformed definition still renders.
func (t *PortType) UnmarshalText(b []byte) error {
	*t, _ = ParsePortType(string(b))
	return nil
}

// Kind classifies a node. It only affects the border color and icon.
type Kind int

const (
	App Kind = iota
	Service
	Database
	API
	Function
	User
)

// Kinds lists every node kind.
var Kinds = []Kind{App, Service, Database, API, Function, User}

func (k Kind) String() string {
	switch k {
	case App:
		return "app"
	case Service:
		return "service"
	case Database:
		return "database"
	case API:
		return "api"
	case Function:
		return "function"
	case User:
		return "user"
	}
	return "app"
}

// Color returns the border color for nodes of this kind.
func (k Kind) Color() string {
	switch k {
	case App:
		return "#3b82f6"
	case Service:
		return "#10b981"
	case Database:
		return "#f59e0b"
	case API:
		return "#8b5cf6"
	case Function:
		return "#ec4899"
	case User:
		return "#06b6d4"
	}
	return "#3b82f6"
}

// Icon returns a single glyph used when the node has no explicit icon.
func (k Kind) Icon() string {
	switch k {
	case App:
		return "▣"
	case Service:
		return "⚙"
	case Database:
		return "⛁"
	case API:
		return "⇄"
	case Function:
		return "ƒ"
	case User:
		return "☺"
	}
	return "▣"
}

// ParseKind maps a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "app", "":
		return App, nil
	case "service":
		return Service, nil
	case "database", "db":
		return Database, nil
	case "api":
		return API, nil
	case "function", "fn":
		return Function, nil
	case "user":
		return User, nil
	}
	return App, fmt.Errorf("unknown node kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
