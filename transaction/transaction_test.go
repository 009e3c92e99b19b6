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

package transaction_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bond-desk/bondengine/bond"
	"github.com/bond-desk/bondengine/calendar"
	"github.com/bond-desk/bondengine/transaction"
)

// annualBond pays one 8% coupon each 15/01 through 15/01/2027.
func annualBond() *bond.Bond {
	return &bond.Bond{
		Code:         "BD2701",
		IssueDate:    calendar.Date(2024, time.January, 15),
		MaturityDate: calendar.Date(2027, time.January, 15),
		Frequency:    1,
		FaceValue:    100_000_000,
		RateSchedule: []bond.RateStep{{FromPayment: 0, Rate: 0.08}},
	}
}

// semiAnnualBond pays 8% on 15/01 and 15/07 through 15/01/2026.
func semiAnnualBond() *bond.Bond {
	return &bond.Bond{
		Code:         "BD2601",
		IssueDate:    calendar.Date(2024, time.January, 15),
		MaturityDate: calendar.Date(2026, time.January, 15),
		Frequency:    2,
		FaceValue:    100_000_000,
		RateSchedule: []bond.RateStep{{FromPayment: 0, Rate: 0.08}},
	}
}

var _ = Describe("Calculate", func() {
	holidays := calendar.HolidaySet{}

	It("rejects invalid parameters", func() {
		_, err := transaction.Calculate(transaction.Params{})
		Expect(err).To(MatchError(transaction.ErrInvalidParams))

		_, err = transaction.Calculate(transaction.Params{
			Bond:     annualBond(),
			NumBonds: 0,
			BuyDate:  calendar.Date(2026, time.February, 1),
			SellDate: calendar.Date(2026, time.July, 31),
		})
		Expect(err).To(MatchError(transaction.ErrInvalidParams))

		_, err = transaction.Calculate(transaction.Params{
			Bond:     annualBond(),
			NumBonds: 10,
			BuyDate:  calendar.Date(2026, time.July, 31),
			SellDate: calendar.Date(2026, time.February, 1),
		})
		Expect(err).To(MatchError(transaction.ErrInvalidParams))
	})

	Context("a six-month round trip with no coupon in between", func() {
		params := transaction.Params{
			Bond:          annualBond(),
			NumBonds:      10,
			BuyDate:       calendar.Date(2026, time.February, 1),
			DiscountYield: 6.2,
			SellDate:      calendar.Date(2026, time.July, 31),
			HoldingRate:   6.8,
			Holidays:      holidays,
		}

		It("prices leg 1 at the discount yield with the purchase price rounded up", func() {
			res, err := transaction.Calculate(params)
			Expect(err).ToNot(HaveOccurred())

			p := res.Purchase
			Expect(p.PricePerBond).To(Equal(math.Ceil(p.PricePerBond)))
			Expect(p.SettlementAmount).To(BeNumerically("~", p.PricePerBond*10, 1e-6))
			Expect(p.TransactionFee).To(BeNumerically("~", p.SettlementAmount*0.001, 1e-6))
			Expect(p.TotalInvestment).To(BeNumerically("~", p.SettlementAmount+p.TransactionFee, 1e-6))
			Expect(p.ID).ToNot(Equal(res.Sale.ID))
		})

		It("collects no coupons when no recording cutoff falls in the holding window", func() {
			res, err := transaction.Calculate(params)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Coupons).To(BeEmpty())
			Expect(res.Profit.NetCoupons).To(BeZero())
		})

		It("derives the target amount from simple interest over the holding days", func() {
			res, err := transaction.Calculate(params)
			Expect(err).ToNot(HaveOccurred())

			Expect(res.Profit.DaysHolding).To(Equal(180))
			want := res.Purchase.TotalInvestment * (1 + 6.8/100*180.0/365.0)
			Expect(res.Profit.TargetAmount).To(BeNumerically("~", want, 1e-6))
			Expect(res.Profit.ExpectedInterest).To(BeNumerically("~", want-res.Purchase.TotalInvestment, 1e-6))
		})

		It("charges the per-bond transfer fee below the ceiling", func() {
			res, err := transaction.Calculate(params)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Sale.TransferFee).To(BeNumerically("~", 3.0, 1e-9))
		})

		It("caps the transfer fee at the ceiling", func() {
			big := params
			big.NumBonds = 2_000_000
			res, err := transaction.Calculate(big)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Sale.TransferFee).To(Equal(300_000.0))
		})

		It("deducts sale charges from profit when the counterparty does not cover fees", func() {
			res, err := transaction.Calculate(params)
			Expect(err).ToNot(HaveOccurred())

			s := res.Sale
			Expect(s.SettlementAmount).To(BeNumerically("~", res.Profit.TargetAmount, 1e-6))
			Expect(s.TotalReceived).To(BeNumerically("~", s.SettlementAmount, 1e-6))

			wantProfit := s.TotalReceived - res.Purchase.TotalInvestment -
				s.TransactionFee - s.TransferTax - s.TransferFee
			Expect(res.Profit.TotalProfit).To(BeNumerically("~", wantProfit, 1e-6))
			Expect(res.Profit.AnnualizedRate).To(BeNumerically("~",
				wantProfit/res.Purchase.TotalInvestment*365/180*100, 1e-9))
		})

		It("grosses up the sale settlement when the counterparty covers fees", func() {
			covered := params
			covered.CoverFees = true
			res, err := transaction.Calculate(covered)
			Expect(err).ToNot(HaveOccurred())

			s := res.Sale
			Expect(s.SettlementAmount).To(BeNumerically("~", s.PricePerBond*10, 1e-6))
			Expect(s.TotalReceived).To(BeNumerically("~",
				s.SettlementAmount-s.TransactionFee-s.TransferTax-s.TransferFee, 1e-6))
			// net proceeds land on the target up to per-bond price rounding
			Expect(s.TotalReceived).To(BeNumerically("~", res.Profit.TargetAmount, 10))
			Expect(res.Profit.TotalProfit).To(BeNumerically("~",
				s.TotalReceived-res.Purchase.TotalInvestment, 1e-6))
		})

		It("reports the remaining yield a buyer at the sale price would earn", func() {
			res, err := transaction.Calculate(params)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Sale.RemainingYield).ToNot(BeNil())
			Expect(res.Sale.RemainingYield.Yield).To(BeNumerically(">", 0))
			Expect(res.Sale.RemainingYield.Yield).To(BeNumerically("<", 20))
			Expect(res.Sale.MarketPricePerBond).To(BeNumerically(">", 0))
		})
	})

	Context("coupon eligibility", func() {
		It("collects a coupon whose recording cutoff falls inside the holding window", func() {
			// cutoff for the 15/07/2025 coupon is 01/07/2025
			res, err := transaction.Calculate(transaction.Params{
				Bond:          semiAnnualBond(),
				NumBonds:      10,
				BuyDate:       calendar.Date(2025, time.June, 1),
				DiscountYield: 6.2,
				SellDate:      calendar.Date(2025, time.August, 1),
				HoldingRate:   6.8,
				Holidays:      holidays,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Coupons).To(HaveLen(1))

			c := res.Coupons[0]
			Expect(calendar.SameDate(c.Date, calendar.Date(2025, time.July, 15))).To(BeTrue())
			// 100,000,000 * 8% * 181/365 per bond, ten bonds
			Expect(c.Gross).To(BeNumerically("~", 100_000_000*0.08*181.0/365.0*10, 0.01))
			Expect(c.Tax).To(BeNumerically("~", c.Gross*0.05, 1e-6))
			Expect(c.Net).To(BeNumerically("~", c.Gross-c.Tax, 1e-6))
			Expect(res.Profit.NetCoupons).To(BeNumerically("~", c.Net, 1e-6))
		})

		It("skips a coupon whose cutoff predates the purchase", func() {
			// buying on 10/07/2025 is inside the recording window, so
			// the 15/07/2025 coupon belongs to the previous holder
			res, err := transaction.Calculate(transaction.Params{
				Bond:          semiAnnualBond(),
				NumBonds:      10,
				BuyDate:       calendar.Date(2025, time.July, 10),
				DiscountYield: 6.2,
				SellDate:      calendar.Date(2025, time.August, 1),
				HoldingRate:   6.8,
				Holidays:      holidays,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Coupons).To(BeEmpty())
			Expect(res.Purchase.InRecordingPeriod).To(BeTrue())
		})

		It("waives coupon tax for institutional holders", func() {
			res, err := transaction.Calculate(transaction.Params{
				Bond:          semiAnnualBond(),
				NumBonds:      10,
				BuyDate:       calendar.Date(2025, time.June, 1),
				DiscountYield: 6.2,
				SellDate:      calendar.Date(2025, time.August, 1),
				HoldingRate:   6.8,
				Institutional: true,
				Holidays:      holidays,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Coupons).To(HaveLen(1))
			Expect(res.Coupons[0].Tax).To(BeZero())
			Expect(res.Profit.NetCoupons).To(Equal(res.Profit.CouponsReceived))
		})
	})
})
