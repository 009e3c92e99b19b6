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

// Package pricing computes dirty/clean prices, accrued interest and
// per-period cash flows for floating-rate bonds, and inverts the
// pricing function to solve for yield.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bond-desk/bondengine/bond"
	"github.com/bond-desk/bondengine/calendar"
)

// SkipReasonRecording marks a cash flow excluded because settlement
// falls inside the coupon's recording window.
const SkipReasonRecording = "coupon reserved for previously recorded holder"

var ErrMissingParams = errors.New("pricing: missing required parameters")

// CashFlow is a single coupon-period payment seen from the settlement
// date. Skipped flows carry zero amounts.
type CashFlow struct {
	PaymentDate  time.Time
	PaymentIndex int
	YearFraction float64
	Rate         float64
	Amount       float64
	PresentValue float64
	Skipped      bool
	Reason       string
}

// Result is the full pricing breakdown for one settlement date.
type Result struct {
	DirtyPrice        float64
	CleanPrice        float64
	AccruedInterest   float64
	PrevCoupon        time.Time
	NextCoupon        time.Time
	CashFlows         []CashFlow
	InRecordingPeriod bool
	UpcomingCoupon    time.Time
	RecordingStart    time.Time
}

// Params carries the pricing inputs. Bond, holiday and bank-rate data
// are treated as immutable snapshots for the duration of a call; the
// engine keeps no state across calls.
type Params struct {
	Bond            *bond.Bond
	Settlement      time.Time
	Holidays        calendar.HolidaySet
	BankRateAverage float64
}

func (p Params) validate() error {
	if p.Bond == nil {
		return fmt.Errorf("%w: bond", ErrMissingParams)
	}
	if p.Settlement.IsZero() {
		return fmt.Errorf("%w: settlement date", ErrMissingParams)
	}
	return p.Bond.Validate()
}

// Price computes the dirty price of the bond at the given settlement
// date and simple annual yield (in percent), discounting each cash flow
// by (1+y/100)^(-t) with t the Actual/365 year fraction from settlement
// to payment.
//
// When settlement falls inside the recording window of the next coupon,
// that coupon is excluded: accrued interest is zero and the flow is
// emitted with zero amounts and Skipped set. A settlement at or after
// maturity yields an empty cash-flow sequence and a zero dirty price.
func Price(p Params, yieldPct float64) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	b := p.Bond
	settle := calendar.Normalize(p.Settlement)
	schedule := b.Schedule(p.Holidays)
	prev, next := bond.PrevNext(schedule, settle)

	res := &Result{PrevCoupon: prev, NextCoupon: next}
	if !settle.Before(calendar.Normalize(b.MaturityDate)) {
		return res, nil
	}

	inRecording, recordingStart := bond.InRecordingPeriod(settle, next, b.RecordingWindowDays(), p.Holidays)
	if inRecording {
		res.InRecordingPeriod = true
		res.UpcomingCoupon = next
		res.RecordingStart = recordingStart
	}

	if !inRecording && !prev.IsZero() {
		step := bond.ResolveRate(b.RateSchedule, bond.PaymentIndex(schedule, prev))
		rate := bond.EffectiveRate(step, p.BankRateAverage)
		res.AccruedInterest = b.FaceValue * rate * calendar.YearFraction(prev, settle)
	}

	for i := 1; i < len(schedule); i++ {
		payDate := schedule[i]
		if !payDate.After(settle) {
			continue
		}

		yf := calendar.YearFraction(schedule[i-1], payDate)
		if inRecording && calendar.SameDate(payDate, next) {
			res.CashFlows = append(res.CashFlows, CashFlow{
				PaymentDate:  payDate,
				PaymentIndex: i,
				YearFraction: yf,
				Skipped:      true,
				Reason:       SkipReasonRecording,
			})
			continue
		}

		step := bond.ResolveRate(b.RateSchedule, i)
		rate := bond.EffectiveRate(step, p.BankRateAverage)
		amount := b.FaceValue * rate * yf
		if calendar.SameDate(payDate, b.MaturityDate) {
			amount += b.FaceValue
		}

		discount := math.Pow(1+yieldPct/100, -calendar.YearFraction(settle, payDate))
		pv := amount * discount

		res.DirtyPrice += pv
		res.CashFlows = append(res.CashFlows, CashFlow{
			PaymentDate:  payDate,
			PaymentIndex: i,
			YearFraction: yf,
			Rate:         rate,
			Amount:       amount,
			PresentValue: pv,
		})
	}

	res.CleanPrice = res.DirtyPrice - res.AccruedInterest
	return res, nil
}
