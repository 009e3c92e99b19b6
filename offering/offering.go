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

// Package offering screens the bond universe for a desk's offering
// sheet: for each holding duration it lists the bonds suitable to quote
// on a given start date.
package offering

import (
	"sort"
	"time"

	"github.com/bond-desk/bondengine/bond"
	"github.com/bond-desk/bondengine/calendar"
)

// Duration is a quoted holding period.
type Duration string

const (
	OneMonth    Duration = "1M"
	TwoMonths   Duration = "2M"
	ThreeMonths Duration = "3M"
	SixMonths   Duration = "6M"
	OneYear     Duration = "1Y"
)

// Durations lists the quoted holding periods in display order.
var Durations = []Duration{OneMonth, TwoMonths, ThreeMonths, SixMonths, OneYear}

var durationMonths = map[Duration]int{
	OneMonth:    1,
	TwoMonths:   2,
	ThreeMonths: 3,
	SixMonths:   6,
	OneYear:     12,
}

// Months returns the duration's length in calendar months.
func (d Duration) Months() int {
	return durationMonths[d]
}

// RateCard maps a holding duration to an offered annual rate in percent.
type RateCard map[Duration]float64

// OfferedRates is the desk's quoted rate sheet by bond class.
var OfferedRates = map[string]RateCard{
	"corporate": {
		OneMonth:    4.7,
		TwoMonths:   5.9,
		ThreeMonths: 6.2,
		SixMonths:   6.4,
		OneYear:     6.8,
	},
	"bank": {
		OneMonth:    4.3,
		TwoMonths:   5.2,
		ThreeMonths: 5.4,
		SixMonths:   5.7,
		OneYear:     5.9,
	},
}

// Candidate is a bond suitable for a duration bucket.
type Candidate struct {
	Bond       *bond.Bond
	NextCoupon time.Time // zero when no coupon remains
	// HasCoupon reports whether a coupon payment (or its recording
	// window) intersects the holding period. Candidates for 1M and 2M
	// never have one.
	HasCoupon bool
}

// NextCoupon returns the earliest coupon date strictly after the given
// date, or the zero time when none remains.
func NextCoupon(b *bond.Bond, after time.Time, holidays calendar.HolidaySet) time.Time {
	after = calendar.Normalize(after)
	for _, d := range b.Schedule(holidays) {
		if d.After(after) {
			return d
		}
	}
	return time.Time{}
}

// couponInPeriod reports whether any coupon payment falls inside
// (start, end], or whether end lands inside an upcoming coupon's
// recording window.
func couponInPeriod(b *bond.Bond, start, end time.Time, holidays calendar.HolidaySet) bool {
	window := b.RecordingWindowDays()
	for _, couponDate := range b.Schedule(holidays) {
		if couponDate.After(start) && !couponDate.After(end) {
			return true
		}
		if couponDate.After(end) {
			if in, _ := bond.InRecordingPeriod(end, couponDate, window, holidays); in {
				return true
			}
		}
	}
	return false
}

// ForDuration screens bonds for one duration bucket starting at the
// given date. Matured bonds are skipped. For the 1M and 2M buckets only
// bonds with no coupon activity inside the period qualify; longer
// buckets include every bond, annotated with HasCoupon. Results are
// sorted by next coupon date, latest first, bonds without a remaining
// coupon last.
func ForDuration(bonds []*bond.Bond, start time.Time, d Duration, holidays calendar.HolidaySet) []Candidate {
	start = calendar.Normalize(start)
	end := calendar.AddMonths(start, d.Months())
	shortBucket := d == OneMonth || d == TwoMonths

	candidates := make([]Candidate, 0, len(bonds))
	for _, b := range bonds {
		if !calendar.Normalize(b.MaturityDate).After(start) {
			continue
		}

		hasCoupon := couponInPeriod(b, start, end, holidays)
		if shortBucket && hasCoupon {
			continue
		}
		candidates = append(candidates, Candidate{
			Bond:       b,
			NextCoupon: NextCoupon(b, start, holidays),
			HasCoupon:  hasCoupon,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].NextCoupon, candidates[j].NextCoupon
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})
	return candidates
}
