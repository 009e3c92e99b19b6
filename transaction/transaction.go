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

// Package transaction models a buy-then-sell round trip on a
// floating-rate bond: purchase pricing and fees, coupons collected
// while holding (net of tax), target-amount-driven sale pricing with
// two fee-allocation modes, and annualized profit.
package transaction

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/bond-desk/bondengine/bond"
	"github.com/bond-desk/bondengine/calendar"
	"github.com/bond-desk/bondengine/pricing"
)

// sale-side charges
const (
	TransferTaxRate    = 0.001
	CouponTaxRate      = 0.05
	transferFeeCeiling = 300_000
	transferFeePerBond = 0.3
)

var ErrInvalidParams = errors.New("transaction: invalid parameters")

// Params are the round-trip inputs. DiscountYield and HoldingRate are
// annual percentages.
type Params struct {
	Bond            *bond.Bond
	NumBonds        int
	BuyDate         time.Time
	DiscountYield   float64
	SellDate        time.Time
	HoldingRate     float64
	CoverFees       bool
	Institutional   bool
	Holidays        calendar.HolidaySet
	BankRateAverage float64
}

// Purchase is leg 1 of the round trip.
type Purchase struct {
	ID                uuid.UUID
	Date              time.Time
	Yield             float64
	PricePerBond      float64
	SettlementAmount  float64
	TransactionFee    float64
	TotalInvestment   float64
	InRecordingPeriod bool
	UpcomingCoupon    time.Time
	RecordingStart    time.Time
}

// Sale is leg 2 of the round trip. RemainingYield is informational
// only: the yield to maturity a buyer at the sale price would earn, or
// nil when the solve does not converge.
type Sale struct {
	ID                 uuid.UUID
	Date               time.Time
	PricePerBond       float64
	MarketPricePerBond float64
	SettlementAmount   float64
	TransactionFee     float64
	TransferTax        float64
	TransferFee        float64
	TotalReceived      float64
	InRecordingPeriod  bool
	UpcomingCoupon     time.Time
	RecordingStart     time.Time
	RemainingYield     *pricing.YieldResult
}

// Coupon is one coupon collected during the holding period.
type Coupon struct {
	Date         time.Time
	PaymentIndex int
	Gross        float64
	Tax          float64
	Net          float64
}

// Profit summarizes the round trip.
type Profit struct {
	DaysHolding      int
	TargetAmount     float64
	ExpectedInterest float64
	CouponsReceived  float64
	CouponTax        float64
	NetCoupons       float64
	TotalProfit      float64
	AnnualizedRate   float64 // percent
}

// Result is the full round-trip breakdown.
type Result struct {
	Purchase Purchase
	Sale     Sale
	Coupons  []Coupon
	Profit   Profit
}

func (p Params) validate() error {
	if p.Bond == nil {
		return fmt.Errorf("%w: bond is required", ErrInvalidParams)
	}
	if p.NumBonds <= 0 {
		return fmt.Errorf("%w: number of bonds must be positive", ErrInvalidParams)
	}
	if p.BuyDate.IsZero() || p.SellDate.IsZero() {
		return fmt.Errorf("%w: buy and sell dates are required", ErrInvalidParams)
	}
	if !calendar.Normalize(p.BuyDate).Before(calendar.Normalize(p.SellDate)) {
		return fmt.Errorf("%w: sell date must follow buy date", ErrInvalidParams)
	}
	return p.Bond.Validate()
}

// Calculate prices both legs of the round trip and derives the profit
// figures. Fees are allocated according to CoverFees: when set, the
// sale settlement is grossed up so net proceeds plus coupons hit the
// target amount; otherwise the sale-side charges are informational and
// deducted only from profit.
func Calculate(p Params) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	b := p.Bond
	buy := calendar.Normalize(p.BuyDate)
	sell := calendar.Normalize(p.SellDate)
	n := float64(p.NumBonds)
	feeRate := b.FeeRate()
	taxRate := CouponTaxRate
	if p.Institutional {
		taxRate = 0
	}

	// Leg 1: purchase at the discount yield.
	buyPricing, err := pricing.Price(pricing.Params{
		Bond:            b,
		Settlement:      buy,
		Holidays:        p.Holidays,
		BankRateAverage: p.BankRateAverage,
	}, p.DiscountYield)
	if err != nil {
		return nil, err
	}

	price1 := math.Ceil(buyPricing.DirtyPrice)
	settlement1 := price1 * n
	fee1 := settlement1 * feeRate
	totalInvestment := settlement1 + fee1

	purchase := Purchase{
		ID:                uuid.New(),
		Date:              buy,
		Yield:             p.DiscountYield,
		PricePerBond:      price1,
		SettlementAmount:  settlement1,
		TransactionFee:    fee1,
		TotalInvestment:   totalInvestment,
		InRecordingPeriod: buyPricing.InRecordingPeriod,
		UpcomingCoupon:    buyPricing.UpcomingCoupon,
		RecordingStart:    buyPricing.RecordingStart,
	}

	// Coupons collected while holding. Eligibility is judged on the
	// coupon's recording cutoff date, not the coupon date itself: the
	// coupon must already be locked in for the holder before the sale.
	schedule := b.Schedule(p.Holidays)
	window := b.RecordingWindowDays()

	coupons := make([]Coupon, 0, len(schedule))
	var grossTotal, taxTotal, netTotal float64
	for i := 1; i < len(schedule); i++ {
		cutoff := bond.RecordingCutoff(schedule[i], window, p.Holidays)
		if cutoff.Before(buy) || !cutoff.Before(sell) {
			continue
		}
		step := bond.ResolveRate(b.RateSchedule, i)
		rate := bond.EffectiveRate(step, p.BankRateAverage)
		gross := b.FaceValue * rate * calendar.YearFraction(schedule[i-1], schedule[i]) * n
		tax := gross * taxRate

		grossTotal += gross
		taxTotal += tax
		netTotal += gross - tax
		coupons = append(coupons, Coupon{
			Date:         schedule[i],
			PaymentIndex: i,
			Gross:        gross,
			Tax:          tax,
			Net:          gross - tax,
		})
	}

	// Target amount: total investment compounded at the holding rate
	// over the actual holding days, Actual/365 simple interest.
	daysHolding := calendar.ActualDayCount(buy, sell)
	targetAmount := totalInvestment * (1 + p.HoldingRate/100*float64(daysHolding)/365)
	transferFee := math.Min(transferFeeCeiling, n*transferFeePerBond)

	// Leg 2: sale priced off the target amount.
	var price2, settlement2, fee2, transferTax, totalReceived float64
	if p.CoverFees {
		// Gross up so that settlement - fee - transfer tax - transfer
		// fee + coupons lands on the target amount.
		settlement2 = (targetAmount - netTotal + transferFee) / (1 - feeRate - TransferTaxRate)
		price2 = math.Round(settlement2 / n)
		settlement2 = price2 * n
		fee2 = settlement2 * feeRate
		transferTax = settlement2 * TransferTaxRate
		totalReceived = settlement2 - fee2 - transferTax - transferFee + netTotal
	} else {
		settlement2 = targetAmount - netTotal
		price2 = settlement2 / n
		fee2 = settlement2 * feeRate
		transferTax = settlement2 * TransferTaxRate
		totalReceived = settlement2 + netTotal
	}

	// Market-reference valuation and recording state on the sale date.
	sellPricing, err := pricing.Price(pricing.Params{
		Bond:            b,
		Settlement:      sell,
		Holidays:        p.Holidays,
		BankRateAverage: p.BankRateAverage,
	}, p.DiscountYield)
	if err != nil {
		return nil, err
	}

	sale := Sale{
		ID:                 uuid.New(),
		Date:               sell,
		PricePerBond:       price2,
		MarketPricePerBond: sellPricing.DirtyPrice,
		SettlementAmount:   settlement2,
		TransactionFee:     fee2,
		TransferTax:        transferTax,
		TransferFee:        transferFee,
		TotalReceived:      totalReceived,
		InRecordingPeriod:  sellPricing.InRecordingPeriod,
		UpcomingCoupon:     sellPricing.UpcomingCoupon,
		RecordingStart:     sellPricing.RecordingStart,
	}

	// Remaining YTM at the sale price, for reporting only; the profit
	// figures do not depend on it.
	remaining, err := pricing.SolveYieldFrom(pricing.Params{
		Bond:            b,
		Settlement:      sell,
		Holidays:        p.Holidays,
		BankRateAverage: p.BankRateAverage,
	}, price2, p.HoldingRate)
	if err != nil {
		log.Warn().Err(err).Str("Bond", b.Code).Float64("SalePrice", price2).Msg("remaining-yield solve did not converge")
	} else {
		sale.RemainingYield = remaining
	}

	totalProfit := totalReceived - totalInvestment
	if !p.CoverFees {
		totalProfit -= fee2 + transferTax + transferFee
	}

	return &Result{
		Purchase: purchase,
		Sale:     sale,
		Coupons:  coupons,
		Profit: Profit{
			DaysHolding:      daysHolding,
			TargetAmount:     targetAmount,
			ExpectedInterest: targetAmount - totalInvestment,
			CouponsReceived:  grossTotal,
			CouponTax:        taxTotal,
			NetCoupons:       netTotal,
			TotalProfit:      totalProfit,
			AnnualizedRate:   totalProfit / totalInvestment * 365 / float64(daysHolding) * 100,
		},
	}, nil
}
