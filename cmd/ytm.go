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

package cmd

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bond-desk/bondengine/common"
	"github.com/bond-desk/bondengine/pricing"
	"github.com/bond-desk/bondengine/util"
)

var (
	ytmCmdSettlement string
	ytmCmdPrice      string
	ytmCmdGuess      float64
)

func init() {
	ytmCmd.Flags().StringVar(&ytmCmdSettlement, "settlement", "", "Settlement date (DD/MM/YYYY)")
	ytmCmd.Flags().StringVar(&ytmCmdPrice, "price", "", "Target dirty price (grouped thousands accepted)")
	ytmCmd.Flags().Float64Var(&ytmCmdGuess, "guess", pricing.DefaultInitialGuess, "Initial yield guess in percent")
	ytmCmd.MarkFlagRequired("settlement")
	ytmCmd.MarkFlagRequired("price")
	rootCmd.AddCommand(ytmCmd)
}

var ytmCmd = &cobra.Command{
	Use:        "ytm [flags] BondCode",
	Short:      "Solve the yield to maturity matching a target dirty price",
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"BondCode"},
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		in := loadInputs()
		b := in.findBond(args[0])
		settle := parseDateArg("settlement", ytmCmdSettlement)

		targetPrice, err := util.ParseAmount(ytmCmdPrice)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid target price")
		}

		res, err := pricing.SolveYieldFrom(pricing.Params{
			Bond:            b,
			Settlement:      settle,
			Holidays:        in.holidays,
			BankRateAverage: in.rates.Average(b.ReferenceBanks),
		}, targetPrice, ytmCmdGuess)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to calculate yield, check inputs")
		}

		warnRecordingPeriod(res.Pricing)

		fmt.Printf("converged in %d iterations (precision %.2e)\n\n", res.Iterations, res.Precision)
		resultTable([][]string{
			{"Yield to maturity", fmt.Sprintf("%.4f%%", res.Yield)},
			{"Prev coupon", dateOrDash(res.Pricing.PrevCoupon)},
			{"Next coupon", dateOrDash(res.Pricing.NextCoupon)},
			{"Accrued interest", util.FormatAmount(res.Pricing.AccruedInterest)},
			{"Target price", util.FormatAmount(targetPrice)},
			{"Calculated price", util.FormatAmount(res.Pricing.DirtyPrice)},
			{"Price difference", util.FormatAmount(math.Abs(res.Pricing.DirtyPrice - targetPrice))},
		})
		fmt.Println()
		cashFlowTable(res.Pricing.CashFlows)
	},
}
