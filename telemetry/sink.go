// Package telemetry carries diagnostic point sets from the planner to whatever
// displays them. Data only flows outwards; nothing here feeds back into planning.
package telemetry

import "field-planner/field"

// Keys published by the planner.
const (
	KeyObstacles = "Field/Obstacles"
	KeyWaypoints = "Field/Waypoints"
	KeyStart     = "Planner/Start"
	KeyEnd       = "Planner/End"
	KeyRawPath   = "Planner/RawPath"
	KeyPath      = "Planner/Path"
)

// FieldKey names the record of a layout marking.
func FieldKey(name string) string {
	return "Field/" + name
}

// Sink receives named point sets. Implementations must be safe for concurrent use.
type Sink interface {
	RecordPoints(key string, points []field.Point)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordPoints(string, []field.Point) {}

type multi []Sink

// Multi fans every record out to all sinks in order.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) RecordPoints(key string, points []field.Point) {
	for _, s := range m {
		s.RecordPoints(key, points)
	}
}
