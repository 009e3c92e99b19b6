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

// Package bond defines the floating-rate bond data model, coupon
// schedule construction, coupon-rate resolution against a reference
// bank index, and the pre-coupon recording-window policy.
package bond

import (
	"errors"
	"fmt"
	"time"
)

// Regime selects how coupon payment dates are adjusted during schedule
// generation.
type Regime int

const (
	// RegimeNormal steps plain calendar months from the issue date.
	RegimeNormal Regime = iota
	// RegimeCalendarAdjusted rolls each computed coupon date forward
	// over weekends and holidays.
	RegimeCalendarAdjusted
)

func (r Regime) String() string {
	switch r {
	case RegimeNormal:
		return "NORMAL"
	case RegimeCalendarAdjusted:
		return "CALENDAR_ADJUSTED"
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// listing classes
const (
	PublicListing  = "PUBLIC"
	PrivateListing = "PRIVATE"
)

// DefaultRecordingDays is the recording window applied when a bond does
// not carry its own.
const DefaultRecordingDays = 10

// RateStep is one entry of a bond's interest-rate step schedule. The
// step takes effect at coupon payment number FromPayment and remains in
// force until a later step supersedes it.
type RateStep struct {
	// FromPayment is the 0-based payment index the step applies from.
	FromPayment int
	// Rate is the base rate as a decimal (0.012 for a 1.2% spread).
	Rate float64
	// Floating adds the average reference bank deposit rate on top of
	// Rate when set.
	Floating bool
	// Floor, when positive, is the minimum effective rate for this
	// step. Floors only ever clamp upward.
	Floor float64
}

// Bond is a floating-rate bond definition. Instances are treated as
// immutable snapshots for the duration of any engine call.
type Bond struct {
	Code           string
	IssueDate      time.Time
	MaturityDate   time.Time
	Frequency      int // coupon payments per year
	FaceValue      float64
	RateSchedule   []RateStep
	ReferenceBanks []string
	RecordingDays  int
	Listing        string
	Regime         Regime
}

var validFrequencies = map[int]struct{}{1: {}, 2: {}, 3: {}, 4: {}, 6: {}, 12: {}}

var (
	ErrInvalidBond = errors.New("invalid bond")
)

// Validate checks the structural invariants of the bond definition.
// Violations are programming-contract errors, not domain conditions.
func (b *Bond) Validate() error {
	if b.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidBond)
	}
	if b.IssueDate.IsZero() || b.MaturityDate.IsZero() {
		return fmt.Errorf("%w %s: issue and maturity dates are required", ErrInvalidBond, b.Code)
	}
	if !b.IssueDate.Before(b.MaturityDate) {
		return fmt.Errorf("%w %s: issue date must precede maturity", ErrInvalidBond, b.Code)
	}
	if _, ok := validFrequencies[b.Frequency]; !ok {
		return fmt.Errorf("%w %s: unsupported payment frequency %d", ErrInvalidBond, b.Code, b.Frequency)
	}
	if b.FaceValue <= 0 {
		return fmt.Errorf("%w %s: face value must be positive", ErrInvalidBond, b.Code)
	}
	if len(b.RateSchedule) == 0 {
		return fmt.Errorf("%w %s: rate schedule is empty", ErrInvalidBond, b.Code)
	}
	if b.RateSchedule[0].FromPayment != 0 {
		return fmt.Errorf("%w %s: rate schedule must start at payment 0", ErrInvalidBond, b.Code)
	}
	for i := 1; i < len(b.RateSchedule); i++ {
		if b.RateSchedule[i].FromPayment <= b.RateSchedule[i-1].FromPayment {
			return fmt.Errorf("%w %s: rate schedule not sorted at entry %d", ErrInvalidBond, b.Code, i)
		}
	}
	return nil
}

// RecordingWindowDays returns the bond's recording window in working
// days, falling back to the default when unset.
func (b *Bond) RecordingWindowDays() int {
	if b.RecordingDays > 0 {
		return b.RecordingDays
	}
	return DefaultRecordingDays
}

// FeeRate returns the brokerage transaction fee rate for the bond's
// listing class.
func (b *Bond) FeeRate() float64 {
	if b.Listing == PrivateListing {
		return 0.00015
	}
	return 0.001
}
