// Package store persists the history of applied theme switches.
package store

import "time"

// Event is a single applied theme switch.
type Event struct {
	ID        string    `db:"id"`
	Timestamp time.Time `db:"ts"`
	Theme     string    `db:"theme"`
	Mode      string    `db:"mode"`
	Trigger   string    `db:"trigger"`
}
