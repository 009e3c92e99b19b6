// Copyright 2024-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package calendar provides business-day and holiday-aware date
// arithmetic for coupon schedules. All dates are timezone-naive
// calendar dates represented as UTC midnight; equality and ordering
// are by calendar date only.
package calendar

import (
	"math"
	"time"
)

const dayKeyFormat = "2006-01-02"

// Date constructs a calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates t to its calendar date at UTC midnight.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

// AddMonths performs calendar-month addition, clamping the day-of-month
// to the last valid day of the target month. Unlike time.AddDate it
// never normalizes Jan 31 + 1 month into March.
func AddMonths(t time.Time, months int) time.Time {
	t = Normalize(t)
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month())
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ActualDayCount returns the whole number of calendar days from d1 to
// d2. Negative when d2 precedes d1.
func ActualDayCount(d1, d2 time.Time) int {
	return int(math.Round(Normalize(d2).Sub(Normalize(d1)).Hours() / 24))
}

// YearFraction returns the Actual/365 fixed year fraction from d1 to d2.
func YearFraction(d1, d2 time.Time) float64 {
	return float64(ActualDayCount(d1, d2)) / 365.0
}

// HolidaySet is an expanded set of non-business calendar dates.
type HolidaySet map[string]struct{}

// NewHolidaySet expands (start, duration) holiday spans into the set of
// individual excluded dates. Durations below one day are treated as a
// single-day holiday.
func NewHolidaySet(spans []HolidaySpan) HolidaySet {
	set := make(HolidaySet)
	for _, span := range spans {
		days := span.DurationDays
		if days < 1 {
			days = 1
		}
		for i := 0; i < days; i++ {
			set.Add(Normalize(span.Start).AddDate(0, 0, i))
		}
	}
	return set
}

// HolidaySpan is a holiday start date with a duration in days.
type HolidaySpan struct {
	Start        time.Time
	DurationDays int
}

// Add inserts a single date into the set.
func (s HolidaySet) Add(t time.Time) {
	s[Normalize(t).Format(dayKeyFormat)] = struct{}{}
}

// Contains reports whether t is a holiday.
func (s HolidaySet) Contains(t time.Time) bool {
	_, ok := s[Normalize(t).Format(dayKeyFormat)]
	return ok
}

// IsBusinessDay reports whether t is neither a weekend nor a holiday.
func IsBusinessDay(t time.Time, holidays HolidaySet) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !holidays.Contains(t)
}

// RollForward advances t one day at a time until it lands on a
// business day. Saturday therefore resolves to the following Monday
// (holidays permitting) and Sunday to the Monday directly after it.
func RollForward(t time.Time, holidays HolidaySet) time.Time {
	t = Normalize(t)
	for !IsBusinessDay(t, holidays) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// SubtractWorkingDays steps backward one calendar day at a time,
// consuming a working day only on non-weekend, non-holiday dates,
// until n working days are consumed. The returned date is not itself
// guaranteed to be a business day beyond satisfying the count.
func SubtractWorkingDays(t time.Time, n int, holidays HolidaySet) time.Time {
	t = Normalize(t)
	for n > 0 {
		t = t.AddDate(0, 0, -1)
		if IsBusinessDay(t, holidays) {
			n--
		}
	}
	return t
}
