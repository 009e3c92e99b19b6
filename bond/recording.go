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

// RecordingCutoff returns the first day of the recording window before
// a coupon: the coupon date minus the configured number of working
// days. From that day until the day before the coupon, the coupon is
// already earmarked for the previously recorded holder.
func RecordingCutoff(couponDate time.Time, workingDays int, holidays calendar.HolidaySet) time.Time {
	return calendar.SubtractWorkingDays(couponDate, workingDays, holidays)
}

// InRecordingPeriod reports whether a settlement date falls inside the
// recording window [cutoff, couponDate) for the given coupon, returning
// the window start alongside. A settlement inside the window cannot
// claim the coupon: it is excluded from both cash-flow valuation and
// accrued interest.
func InRecordingPeriod(settle, couponDate time.Time, workingDays int, holidays calendar.HolidaySet) (bool, time.Time) {
	if couponDate.IsZero() {
		return false, time.Time{}
	}
	settle = calendar.Normalize(settle)
	couponDate = calendar.Normalize(couponDate)
	start := RecordingCutoff(couponDate, workingDays, holidays)
	in := !settle.Before(start) && settle.Before(couponDate)
	return in, start
}
