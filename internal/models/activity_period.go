package models

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock offset within a single day, no date component.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func NewTimeOfDay(offset time.Duration) TimeOfDay {
	return TimeOfDay{
		Hour:   int(offset.Hours()) % 24,
		Minute: int(offset.Minutes()) % 60,
	}
}

func (t TimeOfDay) Offset() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute
}

// WeekAnchor is a single point in the recurring week. Day numbering follows
// time.Weekday: 0 is Sunday.
type WeekAnchor struct {
	Day  time.Weekday `json:"day"`
	Time TimeOfDay    `json:"time"`
}

// ActivityPeriod is a recurring weekly interval. It starts at Start and ends
// at the next occurrence of End after Start, so End.Day numerically before
// Start.Day means the window wraps through the week rollover. A same-day
// window with Start.Time >= End.Time is empty and never active.
type ActivityPeriod struct {
	Start WeekAnchor `json:"start"`
	End   WeekAnchor `json:"end"`

	days []time.Weekday
}

// Days returns the weekdays the period spans, walking forward from Start.Day
// to End.Day inclusive mod 7. Equal days yield a single-day set.
func (p *ActivityPeriod) Days() []time.Weekday {
	if p.days == nil {
		d := p.Start.Day
		for d != p.End.Day {
			p.days = append(p.days, d)
			d = (d + 1) % 7
		}
		p.days = append(p.days, d)
	}
	return p.days
}

func (p *ActivityPeriod) containsDay(day time.Weekday) bool {
	for _, d := range p.Days() {
		if d == day {
			return true
		}
	}
	return false
}

func (p *ActivityPeriod) IsActive(t time.Time) bool {
	if !p.containsDay(t.Weekday()) {
		return false
	}

	tod := timeOfDay(t)
	within := true
	if t.Weekday() == p.Start.Day {
		within = tod >= p.Start.Time.Offset()
	}
	if t.Weekday() == p.End.Day {
		within = within && tod < p.End.Time.Offset()
	}
	return within
}

// TimeRemaining reports how long until the period's end boundary. Advisory
// countdown value, meaningful only while the period is active.
func (p *ActivityPeriod) TimeRemaining(t time.Time) time.Duration {
	daysRest := int(p.End.Day - t.Weekday())
	if daysRest < 0 {
		daysRest += 7
	}
	timeRest := p.End.Time.Offset() - timeOfDay(t)
	return time.Duration(daysRest)*24*time.Hour + timeRest
}

// String renders the period as "Mon 10:00 - Wed 18:00".
func (p *ActivityPeriod) String() string {
	return fmt.Sprintf("%s %02d:%02d - %s %02d:%02d",
		p.Start.Day.String()[:3], p.Start.Time.Hour, p.Start.Time.Minute,
		p.End.Day.String()[:3], p.End.Time.Hour, p.End.Time.Minute)
}

// ClosestOccurrence computes the occurrence of the anchor nearest to now by
// forward day walk. When the anchor's time of day has already passed on the
// computed day the result lands before now; callers that need a strictly
// future instant must filter, as ClosestDate does.
func ClosestOccurrence(a WeekAnchor, now time.Time) time.Time {
	days := int(a.Day - now.Weekday())
	if days < 0 {
		days += 7
	}
	return now.AddDate(0, 0, days).Add(a.Time.Offset() - timeOfDay(now))
}

// ClosestDate returns the earliest occurrence among the anchors that is not
// before now. The second result is false when anchors is empty or every
// occurrence was in the past.
func ClosestDate(anchors []WeekAnchor, now time.Time) (time.Time, bool) {
	var result time.Time
	found := false
	for _, a := range anchors {
		date := ClosestOccurrence(a, now)
		if date.Before(now) {
			continue
		}
		if !found || date.Before(result) {
			result = date
			found = true
		}
	}
	return result, found
}

func timeOfDay(t time.Time) time.Duration {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.Sub(midnight)
}
