package services

import "time"

// Clock supplies "now" and the location that decides what "today" means.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	return c.Now().In(c.Location)
}

// startOfDay returns local midnight of the calendar day t falls on.
func (c Clock) startOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location)
}

func (c Clock) today() time.Time {
	return c.startOfDay(c.Now())
}

// Day interprets a calendar date (only Y/M/D are read) in the clock's location.
func (c Clock) Day(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location)
}

// onDay keeps the time of day of t and moves it to the calendar day of day.
func (c Clock) onDay(day, t time.Time) time.Time {
	y, m, d := day.In(c.Location).Date()
	lt := t.In(c.Location)
	return time.Date(y, m, d, lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), c.Location)
}
