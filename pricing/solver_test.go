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

package pricing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bond-desk/bondengine/calendar"
	"github.com/bond-desk/bondengine/pricing"
)

var _ = Describe("SolveYield", func() {
	params := pricing.Params{
		Bond:       fixedBond(),
		Settlement: calendar.Date(2025, time.March, 1),
		Holidays:   calendar.HolidaySet{},
	}

	It("recovers the yield that produced a price", func() {
		priced, err := pricing.Price(params, 7)
		Expect(err).ToNot(HaveOccurred())

		solved, err := pricing.SolveYield(params, priced.DirtyPrice)
		Expect(err).ToNot(HaveOccurred())
		Expect(solved.Yield).To(BeNumerically("~", 7.0, 0.001))
		Expect(solved.Precision).To(BeNumerically("<=", pricing.DefaultTolerance))
		Expect(solved.Iterations).To(BeNumerically("<", pricing.DefaultMaxIterations))
		Expect(solved.Pricing.DirtyPrice).To(BeNumerically("~", priced.DirtyPrice, pricing.DefaultTolerance))
	})

	It("converges from a caller-provided seed", func() {
		priced, err := pricing.Price(params, 12)
		Expect(err).ToNot(HaveOccurred())

		solved, err := pricing.SolveYieldFrom(params, priced.DirtyPrice, 11)
		Expect(err).ToNot(HaveOccurred())
		Expect(solved.Yield).To(BeNumerically("~", 12.0, 0.001))
	})

	It("fails when the target price is unreachable inside the yield band", func() {
		_, err := pricing.SolveYield(params, 1)
		Expect(err).To(MatchError(pricing.ErrYieldOutOfRange))
	})

	It("fails on a degenerate derivative", func() {
		// At maturity every yield prices to zero, so the finite
		// difference vanishes.
		atMaturity := params
		atMaturity.Settlement = calendar.Date(2026, time.January, 15)
		_, err := pricing.SolveYield(atMaturity, 100)
		Expect(err).To(MatchError(pricing.ErrDegenerateDerivative))
	})

	It("propagates pricing parameter errors", func() {
		_, err := pricing.SolveYield(pricing.Params{}, 100_000_000)
		Expect(err).To(MatchError(pricing.ErrMissingParams))
	})
})
