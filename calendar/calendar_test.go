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

package calendar_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bond-desk/bondengine/calendar"
)

var _ = Describe("Date math", func() {
	Describe("AddMonths", func() {
		It("steps plain calendar months", func() {
			d := calendar.AddMonths(calendar.Date(2026, time.March, 15), 6)
			Expect(d).To(Equal(calendar.Date(2026, time.September, 15)))
		})

		It("clamps to the last day of a shorter target month", func() {
			d := calendar.AddMonths(calendar.Date(2026, time.January, 31), 1)
			Expect(d).To(Equal(calendar.Date(2026, time.February, 28)))
		})

		It("keeps February 29 in a leap year", func() {
			d := calendar.AddMonths(calendar.Date(2023, time.November, 30), 3)
			Expect(d).To(Equal(calendar.Date(2024, time.February, 29)))
		})

		It("crosses year boundaries", func() {
			d := calendar.AddMonths(calendar.Date(2025, time.October, 15), 6)
			Expect(d).To(Equal(calendar.Date(2026, time.April, 15)))
		})
	})

	Describe("ActualDayCount and YearFraction", func() {
		It("counts whole calendar days", func() {
			n := calendar.ActualDayCount(calendar.Date(2026, time.January, 15), calendar.Date(2026, time.March, 1))
			Expect(n).To(Equal(45))
		})

		It("is negative when the dates are reversed", func() {
			n := calendar.ActualDayCount(calendar.Date(2026, time.March, 1), calendar.Date(2026, time.January, 15))
			Expect(n).To(Equal(-45))
		})

		It("uses an Actual/365 fixed denominator", func() {
			yf := calendar.YearFraction(calendar.Date(2025, time.January, 15), calendar.Date(2026, time.January, 15))
			Expect(yf).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("ignores any time-of-day component", func() {
			noon := time.Date(2026, time.January, 15, 12, 30, 0, 0, time.UTC)
			Expect(calendar.ActualDayCount(noon, calendar.Date(2026, time.January, 16))).To(Equal(1))
		})
	})
})

var _ = Describe("Business days", func() {
	var holidays calendar.HolidaySet

	BeforeEach(func() {
		holidays = make(calendar.HolidaySet)
	})

	Describe("RollForward", func() {
		It("leaves business days alone", func() {
			mon := calendar.Date(2026, time.January, 5)
			Expect(calendar.RollForward(mon, holidays)).To(Equal(mon))
		})

		It("rolls Saturday to Monday", func() {
			sat := calendar.Date(2026, time.January, 3)
			Expect(calendar.RollForward(sat, holidays)).To(Equal(calendar.Date(2026, time.January, 5)))
		})

		It("rolls Sunday to Monday", func() {
			sun := calendar.Date(2026, time.January, 4)
			Expect(calendar.RollForward(sun, holidays)).To(Equal(calendar.Date(2026, time.January, 5)))
		})

		It("iterates past holidays one day at a time", func() {
			holidays.Add(calendar.Date(2026, time.January, 5))
			holidays.Add(calendar.Date(2026, time.January, 6))
			sat := calendar.Date(2026, time.January, 3)
			Expect(calendar.RollForward(sat, holidays)).To(Equal(calendar.Date(2026, time.January, 7)))
		})
	})

	Describe("SubtractWorkingDays", func() {
		It("skips weekends while counting", func() {
			d := calendar.SubtractWorkingDays(calendar.Date(2026, time.January, 12), 5, holidays)
			Expect(d).To(Equal(calendar.Date(2026, time.January, 5)))
		})

		It("skips holidays while counting", func() {
			holidays.Add(calendar.Date(2026, time.January, 9))
			d := calendar.SubtractWorkingDays(calendar.Date(2026, time.January, 12), 5, holidays)
			Expect(d).To(Equal(calendar.Date(2026, time.January, 2)))
		})

		It("returns the date unchanged for a zero count", func() {
			sun := calendar.Date(2026, time.January, 4)
			Expect(calendar.SubtractWorkingDays(sun, 0, holidays)).To(Equal(sun))
		})
	})

	Describe("NewHolidaySet", func() {
		It("expands multi-day spans into individual dates", func() {
			set := calendar.NewHolidaySet([]calendar.HolidaySpan{
				{Start: calendar.Date(2026, time.February, 16), DurationDays: 3},
			})
			Expect(set.Contains(calendar.Date(2026, time.February, 16))).To(BeTrue())
			Expect(set.Contains(calendar.Date(2026, time.February, 17))).To(BeTrue())
			Expect(set.Contains(calendar.Date(2026, time.February, 18))).To(BeTrue())
			Expect(set.Contains(calendar.Date(2026, time.February, 19))).To(BeFalse())
		})

		It("treats durations below one day as a single day", func() {
			set := calendar.NewHolidaySet([]calendar.HolidaySpan{
				{Start: calendar.Date(2026, time.April, 30)},
			})
			Expect(set.Contains(calendar.Date(2026, time.April, 30))).To(BeTrue())
			Expect(set.Contains(calendar.Date(2026, time.May, 1))).To(BeFalse())
		})
	})
})
