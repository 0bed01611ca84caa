package models

import "time"

// ServerWeekAndTime is the wire form of one window boundary: a weekday index
// plus the raw time-of-day offset.
type ServerWeekAndTime struct {
	Day int           `json:"day"`
	TS  time.Duration `json:"ts"`
}

type ServerPeriod struct {
	Start ServerWeekAndTime `json:"start"`
	End   ServerWeekAndTime `json:"end"`
}

// EventServerData is the persisted/uploaded state of one event config variant.
type EventServerData struct {
	UnlockLevelIndex int            `json:"UnlockLevelIndex"`
	ActivityPeriods  []ServerPeriod `json:"ActivityPeriods"`
}
