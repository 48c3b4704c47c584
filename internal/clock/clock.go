// Package clock decides which calendar day "today" is for the game.
//
// Every player shares one day boundary: midnight in the game's time zone
// (US Eastern by default), regardless of where the server or the client runs.
// Days are exchanged as ISO "YYYY-MM-DD" strings; see Day.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone database for minimal container images
)

// DefaultZone is the zone whose midnight rolls the game over to a new day.
const DefaultZone = "America/New_York"

// DayLayout is the storage and wire format of a calendar day.
const DayLayout = "2006-01-02"

// Policy maps instants to game days.
type Policy struct {
	Location *time.Location
	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// New loads zone and returns a Policy that reads the wall clock.
func New(zone string) (*Policy, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", zone, err)
	}
	return &Policy{Location: loc, Now: time.Now}, nil
}

// Fixed returns a Policy frozen at t, in t's location.
func Fixed(t time.Time) *Policy {
	return &Policy{Location: t.Location(), Now: func() time.Time { return t }}
}

func (p *Policy) now() time.Time {
	if p.Now == nil {
		return time.Now().In(p.loc())
	}
	return p.Now().In(p.loc())
}

func (p *Policy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Today is the current game day.
func (p *Policy) Today() string { return Day(p.now()) }

// Yesterday is the game day before Today. Votes are cast against it.
func (p *Policy) Yesterday() string { return AddDays(p.Today(), -1) }

// Day formats t's calendar date (in t's own location).
func Day(t time.Time) string { return t.Format(DayLayout) }

// ParseDay validates a "YYYY-MM-DD" string and returns it as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// AddDays shifts day by n calendar days. An unparsable day is returned as is.
func AddDays(day string, n int) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return Day(t.AddDate(0, 0, n))
}

// FirstOfMonth returns the first day of day's month.
func FirstOfMonth(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return Day(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC))
}

// NextAt returns the first instant strictly after now whose wall clock in
// the policy's zone reads hh:mm.
func (p *Policy) NextAt(hour, minute int) time.Time {
	now := p.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, p.loc())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
