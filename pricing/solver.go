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

package pricing

import (
	"errors"
	"fmt"
	"math"
)

// solver defaults and bounds
const (
	DefaultInitialGuess  = 8.0    // percent
	DefaultTolerance     = 0.0001 // currency units
	DefaultMaxIterations = 100

	derivativeStep    = 0.001 // percentage points, forward difference
	derivativeEpsilon = 1e-10
	yieldFloor        = -50.0
	yieldCeiling      = 100.0
)

// Convergence failures are expected, recoverable conditions; callers
// wanting a retry re-seed with a different initial guess themselves.
var (
	ErrDegenerateDerivative = errors.New("yield solver: derivative vanished")
	ErrYieldOutOfRange      = errors.New("yield solver: yield outside plausible range")
	ErrMaxIterations        = errors.New("yield solver: did not converge")
)

// YieldResult is a converged yield together with the pricing breakdown
// at that yield.
type YieldResult struct {
	Yield      float64 // percent
	Iterations int
	Precision  float64 // absolute residual in currency units
	Pricing    *Result
}

// SolveYield finds the yield whose dirty price matches targetPrice,
// seeded with the default initial guess.
func SolveYield(p Params, targetPrice float64) (*YieldResult, error) {
	return SolveYieldFrom(p, targetPrice, DefaultInitialGuess)
}

// SolveYieldFrom runs Newton-Raphson on f(y) = price(y) - targetPrice
// from the given initial yield (percent). The derivative is estimated
// by forward finite difference. The search fails when the derivative
// degenerates, when a step leaves the [-50%, 100%] band, or when the
// iteration budget runs out; each failure reports enough context to
// explain itself to an end user.
func SolveYieldFrom(p Params, targetPrice, initialGuess float64) (*YieldResult, error) {
	y := initialGuess
	residual := math.NaN()

	for iter := 1; iter <= DefaultMaxIterations; iter++ {
		res, err := Price(p, y)
		if err != nil {
			return nil, err
		}

		residual = res.DirtyPrice - targetPrice
		if math.Abs(residual) <= DefaultTolerance {
			return &YieldResult{
				Yield:      y,
				Iterations: iter,
				Precision:  math.Abs(residual),
				Pricing:    res,
			}, nil
		}

		bumped, err := Price(p, y+derivativeStep)
		if err != nil {
			return nil, err
		}
		derivative := (bumped.DirtyPrice - res.DirtyPrice) / derivativeStep
		if math.Abs(derivative) < derivativeEpsilon {
			return nil, fmt.Errorf("%w at %.4f%% (iteration %d, residual %.6f)", ErrDegenerateDerivative, y, iter, residual)
		}

		next := y - residual/derivative
		if next < yieldFloor || next > yieldCeiling {
			return nil, fmt.Errorf("%w: step to %.4f%% left [%.0f%%, %.0f%%] at iteration %d", ErrYieldOutOfRange, next, yieldFloor, yieldCeiling, iter)
		}
		y = next
	}

	return nil, fmt.Errorf("%w after %d iterations (last residual %.6f)", ErrMaxIterations, DefaultMaxIterations, residual)
}
