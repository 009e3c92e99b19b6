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

package bond

import (
	"time"

	"github.com/bond-desk/bondengine/calendar"
)

// BuildSchedule generates the coupon payment date sequence for a bond.
// The sequence starts at the issue date and every subsequent date is
// anchored to the issue date (issue + i*step months) rather than
// chained from the previous coupon, so a roll-forward adjustment on one
// coupon never drifts later targets. The final entry always equals the
// maturity date exactly, even when the stepped date overshoots it.
//
// The schedule is rebuilt on every call; holiday data may change
// between calls and cached schedules would not observe it.
func BuildSchedule(issue, maturity time.Time, frequency int, holidays calendar.HolidaySet, regime Regime) []time.Time {
	issue = calendar.Normalize(issue)
	maturity = calendar.Normalize(maturity)
	step := 12 / frequency

	dates := []time.Time{issue}
	for i := 1; ; i++ {
		cur := calendar.AddMonths(issue, i*step)
		if regime == RegimeCalendarAdjusted {
			cur = calendar.RollForward(cur, holidays)
		}
		dates = append(dates, cur)
		if !cur.Before(maturity) {
			dates[len(dates)-1] = maturity
			break
		}
	}
	return dates
}

// Schedule builds the bond's own coupon schedule.
func (b *Bond) Schedule(holidays calendar.HolidaySet) []time.Time {
	return BuildSchedule(b.IssueDate, b.MaturityDate, b.Frequency, holidays, b.Regime)
}

// PaymentIndex returns the 0-based position of date in the schedule, or
// the schedule length when absent. The index doubles as the coupon
// sequence number used by rate resolution.
func PaymentIndex(schedule []time.Time, date time.Time) int {
	for i, d := range schedule {
		if calendar.SameDate(d, date) {
			return i
		}
	}
	return len(schedule)
}

// PrevNext locates the latest coupon date at or before settle and the
// earliest one strictly after it. Either may be the zero time when no
// such date exists.
func PrevNext(schedule []time.Time, settle time.Time) (prev, next time.Time) {
	settle = calendar.Normalize(settle)
	for _, d := range schedule {
		if !d.After(settle) {
			prev = d
		}
		if d.After(settle) && next.IsZero() {
			next = d
		}
	}
	return prev, next
}
