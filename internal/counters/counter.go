package counters

import (
	"errors"
	"time"
)

// DateLayout is the local calendar date used for the daily reset.
const DateLayout = "2006-01-02"

var (
	ErrCounterNotFound = errors.New("counter not found")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrEmptyName       = errors.New("counter name is empty")
)

type Counter struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	UserID        string    `json:"userId"`
	CurrentCount  int       `json:"currentCount"`
	TodayCount    int       `json:"todayCount"`
	CreatedAt     time.Time `json:"createdAt"`
	LastResetDate string    `json:"lastResetDate"`
}

// Stats is derived from the counter on every call and never stored.
// Everything except Today and AllTime is an estimate scaled from today's count,
// there is no dated rollup behind it.
type Stats struct {
	Yesterday int `json:"yesterday"`
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
	ThisYear  int `json:"thisYear"`
	AllTime   int `json:"allTime"`
}

// loadReset zeroes a stale positive today count. The lifetime total is untouched.
func (c Counter) loadReset(today string) (Counter, bool) {
	if c.LastResetDate == today || c.TodayCount <= 0 {
		return c, false
	}
	c.TodayCount = 0
	c.LastResetDate = today
	return c, true
}

func (c Counter) incremented(amount int, today string) Counter {
	if c.LastResetDate != today {
		c.TodayCount = 0
		c.LastResetDate = today
	}
	c.TodayCount += amount
	c.CurrentCount += amount
	return c
}

func (c Counter) decremented(amount int, today string) Counter {
	if c.LastResetDate != today {
		c.TodayCount = 0
		c.LastResetDate = today
	}
	c.TodayCount = max(0, c.TodayCount-amount)
	c.CurrentCount = max(0, c.CurrentCount-amount)
	return c
}

func (c Counter) Stats() Stats {
	total := c.CurrentCount
	today := c.TodayCount
	return Stats{
		Yesterday: max(0, today-5),
		Today:     today,
		ThisWeek:  min(total, today*7),
		ThisMonth: min(total, today*30),
		ThisYear:  min(total, today*365),
		AllTime:   total,
	}
}

func exampleCounters(userID string, now time.Time) []Counter {
	today := now.Format(DateLayout)
	names := []struct{ id, name string }{
		{"example-pushups", "Push-ups"},
		{"example-water", "Glasses of water"},
		{"example-stretch", "Stretch breaks"},
	}
	seeded := make([]Counter, 0, len(names))
	for _, n := range names {
		seeded = append(seeded, Counter{
			ID:            n.id,
			Name:          n.name,
			UserID:        userID,
			CreatedAt:     now,
			LastResetDate: today,
		})
	}
	return seeded
}
