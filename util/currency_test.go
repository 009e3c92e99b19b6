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

package util_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bond-desk/bondengine/util"
)

var _ = Describe("FormatAmount", func() {
	It("groups thousands with dots and drops decimals", func() {
		Expect(util.FormatAmount(1234567)).To(Equal("1.234.567"))
		Expect(util.FormatAmount(100000000)).To(Equal("100.000.000"))
		Expect(util.FormatAmount(999)).To(Equal("999"))
	})
})

var _ = Describe("FormatUnitAmount", func() {
	It("keeps six decimals with a comma separator", func() {
		Expect(util.FormatUnitAmount(0.5)).To(Equal("0,500000"))
		Expect(util.FormatUnitAmount(1234.5)).To(Equal("1.234,500000"))
	})
})

var _ = Describe("GroupThousands", func() {
	DescribeTable("normalizes typed amount text",
		func(in, want string) {
			Expect(util.GroupThousands(in)).To(Equal(want))
		},
		Entry("plain digits", "100000000", "100.000.000"),
		Entry("already grouped", "100.000.000", "100.000.000"),
		Entry("comma grouped", "1,234,567", "1.234.567"),
		Entry("short value", "999", "999"),
		Entry("four digits", "1000", "1.000"),
		Entry("mixed noise", "abc12x3", "123"),
		Entry("no digits", "abc", ""),
		Entry("empty", "", ""),
	)
})

var _ = Describe("ParseAmount", func() {
	It("accepts grouped input", func() {
		Expect(util.ParseAmount("100.000.000")).To(Equal(100000000.0))
		Expect(util.ParseAmount("1,234,567")).To(Equal(1234567.0))
		Expect(util.ParseAmount("1 000 000")).To(Equal(1000000.0))
	})

	It("accepts plain numbers", func() {
		Expect(util.ParseAmount("42")).To(Equal(42.0))
	})

	It("rejects text with no parseable value", func() {
		_, err := util.ParseAmount("")
		Expect(err).To(MatchError(util.ErrInvalidAmount))

		_, err = util.ParseAmount("abc")
		Expect(err).To(MatchError(util.ErrInvalidAmount))
	})
})
