package models

import (
	"abconfig/internal/providers"
	"time"
)

type RewardType int

const (
	RewardSmall RewardType = iota
	RewardBig
	RewardMega
)

func (r RewardType) String() string {
	switch r {
	case RewardSmall:
		return "Small"
	case RewardBig:
		return "Big"
	case RewardMega:
		return "Mega"
	}
	return "?"
}

type Reward struct {
	Type  RewardType `json:"type"`
	Count int        `json:"count"`
}

// RewardTier maps an exact points score to its rewards.
type RewardTier struct {
	Points  int      `json:"points"`
	Rewards []Reward `json:"rewards"`
}

// IconData maps an exact points score to an icon asset name.
type IconData struct {
	Points int    `json:"points"`
	Icon   string `json:"icon"`
}

// EventAbData is the per-variant payload of the event config. UnlockLevel and
// ActivityPeriods are synchronized with the server; Rewards stay client-side.
type EventAbData struct {
	UnlockLevel     int               `json:"unlockLevelIndex"`
	ActivityPeriods []*ActivityPeriod `json:"activityPeriods"`
	Rewards         []RewardTier      `json:"rewards"`
}

// ApplyServer overwrites the synchronized fields from the server payload.
func (d *EventAbData) ApplyServer(s *EventServerData) {
	periods := make([]*ActivityPeriod, 0, len(s.ActivityPeriods))
	for _, p := range s.ActivityPeriods {
		periods = append(periods, &ActivityPeriod{
			Start: WeekAnchor{Day: time.Weekday(p.Start.Day), Time: NewTimeOfDay(p.Start.TS)},
			End:   WeekAnchor{Day: time.Weekday(p.End.Day), Time: NewTimeOfDay(p.End.TS)},
		})
	}

	d.UnlockLevel = s.UnlockLevelIndex
	d.ActivityPeriods = periods
}

// ToServer converts the synchronized fields into the wire payload.
func (d *EventAbData) ToServer() *EventServerData {
	periods := make([]ServerPeriod, 0, len(d.ActivityPeriods))
	for _, p := range d.ActivityPeriods {
		periods = append(periods, ServerPeriod{
			Start: ServerWeekAndTime{Day: int(p.Start.Day), TS: p.Start.Time.Offset()},
			End:   ServerWeekAndTime{Day: int(p.End.Day), TS: p.End.Time.Offset()},
		})
	}

	return &EventServerData{
		UnlockLevelIndex: d.UnlockLevel,
		ActivityPeriods:  periods,
	}
}

// EventConfig is an event gated by unlock level and weekly activity periods,
// with rewards tiered by points. The AB payload resolves through the embedded
// AbConfig; icons are shared by all variants.
type EventConfig struct {
	*AbConfig[*EventAbData]
	iconsByPoints []IconData
}

func NewEventConfig(ab *AbData[*EventAbData], icons []IconData, logger providers.Logger) *EventConfig {
	return &EventConfig{
		AbConfig:      NewAbConfig("Event", ab, logger),
		iconsByPoints: icons,
	}
}

func (c *EventConfig) MaxPoints() int {
	data := c.Data()
	if data == nil {
		return 0
	}
	max := 0
	for _, tier := range data.Rewards {
		if tier.Points > max {
			max = tier.Points
		}
	}
	return max
}

func (c *EventConfig) IsLocked(level int) bool {
	data := c.Data()
	if data == nil {
		return false
	}
	return level < data.UnlockLevel
}

// IsActive reports whether any activity period of the active variant covers t.
func (c *EventConfig) IsActive(t time.Time) bool {
	_, ok := c.ActivePeriod(t)
	return ok
}

// ActivePeriod returns the first period covering t, in declaration order.
func (c *EventConfig) ActivePeriod(t time.Time) (*ActivityPeriod, bool) {
	data := c.Data()
	if data == nil {
		return nil, false
	}
	for _, period := range data.ActivityPeriods {
		if period.IsActive(t) {
			return period, true
		}
	}
	return nil, false
}

// RewardsByPoints looks up the reward tier for an exact points score.
func (c *EventConfig) RewardsByPoints(points int) ([]Reward, bool) {
	data := c.Data()
	if data == nil {
		return nil, false
	}
	for _, tier := range data.Rewards {
		if tier.Points == points {
			return tier.Rewards, true
		}
	}
	return nil, false
}

// IconByPoints looks up the icon asset for an exact points score.
func (c *EventConfig) IconByPoints(points int) (string, bool) {
	for _, icon := range c.iconsByPoints {
		if icon.Points == points {
			return icon.Icon, true
		}
	}
	return "", false
}
