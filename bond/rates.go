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

	"gonum.org/v1/gonum/stat"
)

// ResolveRate returns the rate-schedule step in force at the given
// payment index: scanning from the highest threshold downward, the
// first step whose FromPayment is at or below the index wins. Indexes
// preceding every threshold fall back to the first step. An empty
// schedule resolves to a zero fixed rate.
//
// The schedule is small and rebuilt rarely, so a linear scan is kept
// over a binary search.
func ResolveRate(schedule []RateStep, paymentIndex int) RateStep {
	for i := len(schedule) - 1; i >= 0; i-- {
		if paymentIndex >= schedule[i].FromPayment {
			return schedule[i]
		}
	}
	if len(schedule) > 0 {
		return schedule[0]
	}
	return RateStep{}
}

// EffectiveRate computes the coupon rate for a resolved step: the base
// rate plus the average reference bank rate when the step floats,
// clamped upward to the floor when one is set. Floors never clamp
// downward.
func EffectiveRate(step RateStep, averageBankRate float64) float64 {
	rate := step.Rate
	if step.Floating {
		rate += averageBankRate
	}
	if step.Floor > 0 && rate < step.Floor {
		rate = step.Floor
	}
	return rate
}

// BankRateTable holds the current deposit rate per reference bank.
type BankRateTable struct {
	Rates       map[string]float64
	LastUpdated time.Time
}

// Average returns the arithmetic mean deposit rate over the given
// reference bank set. Banks absent from the table contribute nothing;
// the average is 0 when no bank matches.
func (t *BankRateTable) Average(banks []string) float64 {
	if t == nil || len(banks) == 0 {
		return 0
	}
	matched := make([]float64, 0, len(banks))
	for _, bank := range banks {
		if rate, ok := t.Rates[bank]; ok {
			matched = append(matched, rate)
		}
	}
	if len(matched) == 0 {
		return 0
	}
	return stat.Mean(matched, nil)
}
