// Package daterange resolves named relative date buckets to calendar intervals.
package daterange

import (
	"time"

	"github.com/jinzhu/now"
)

type Bucket string

const (
	Today     Bucket = "today"
	Yesterday Bucket = "yesterday"
	ThisWeek  Bucket = "thisWeek"
	LastWeek  Bucket = "lastWeek"
	LastMonth Bucket = "lastMonth"
)

// Buckets lists every recognised bucket
var Buckets = []Bucket{Today, Yesterday, ThisWeek, LastWeek, LastMonth}

// Interval is a closed range [From, To]
type Interval struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the interval, bounds included
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.From) && !t.After(i.To)
}

// Resolve maps a bucket to its interval relative to now, in now's location.
// Weeks start on Monday. The second return is false for unknown buckets.
func Resolve(bucket Bucket, now time.Time) (Interval, bool) {
	switch bucket {
	case Today:
		return day(now), true
	case Yesterday:
		return day(now.AddDate(0, 0, -1)), true
	case ThisWeek:
		return week(now), true
	case LastWeek:
		return week(now.AddDate(0, 0, -7)), true
	case LastMonth:
		return month(now.AddDate(0, 0, -30)), true
	default:
		return Interval{}, false
	}
}

// calendar evaluates week boundaries with Monday as the first day
var calendar = now.Config{WeekStartDay: time.Monday}

func day(t time.Time) Interval {
	n := calendar.With(t)
	return Interval{From: n.BeginningOfDay(), To: n.EndOfDay()}
}

func week(t time.Time) Interval {
	n := calendar.With(t)
	return Interval{From: n.BeginningOfWeek(), To: n.EndOfWeek()}
}

func month(t time.Time) Interval {
	n := calendar.With(t)
	return Interval{From: n.BeginningOfMonth(), To: n.EndOfMonth()}
}
