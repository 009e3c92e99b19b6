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
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bond-desk/bondengine/common"
	"github.com/bond-desk/bondengine/data"
	"github.com/bond-desk/bondengine/pricing"
	"github.com/bond-desk/bondengine/util"
)

var (
	priceCmdSettlement string
	priceCmdYield      float64
	priceCmdFaceValue  string
)

func init() {
	priceCmd.Flags().StringVar(&priceCmdSettlement, "settlement", "", "Settlement date (DD/MM/YYYY)")
	priceCmd.Flags().Float64Var(&priceCmdYield, "yield", pricing.DefaultInitialGuess, "Annual yield in percent")
	priceCmd.Flags().StringVar(&priceCmdFaceValue, "face-value", "", "Override face value (grouped thousands accepted)")
	priceCmd.MarkFlagRequired("settlement")
	rootCmd.AddCommand(priceCmd)
}

var priceCmd = &cobra.Command{
	Use:        "price [flags] BondCode",
	Short:      "Price a floating-rate bond at a given yield",
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"BondCode"},
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		in := loadInputs()
		b := in.findBond(args[0])
		settle := parseDateArg("settlement", priceCmdSettlement)

		if priceCmdFaceValue != "" {
			fv, err := util.ParseAmount(priceCmdFaceValue)
			if err != nil {
				log.Fatal().Err(err).Msg("invalid face value")
			}
			override := *b
			override.FaceValue = fv
			b = &override
		}

		avg := in.rates.Average(b.ReferenceBanks)
		res, err := pricing.Price(pricing.Params{
			Bond:            b,
			Settlement:      settle,
			Holidays:        in.holidays,
			BankRateAverage: avg,
		}, priceCmdYield)
		if err != nil {
			log.Fatal().Err(err).Msg("could not price bond")
		}

		warnRecordingPeriod(res)

		fmt.Printf("%s  fv %s  adr %s%%  yield %.2f%%\n\n", b.Code,
			util.GroupThousands(strconv.FormatFloat(b.FaceValue, 'f', 0, 64)),
			percent3(avg*100), priceCmdYield)
		resultTable([][]string{
			{"Prev coupon", dateOrDash(res.PrevCoupon)},
			{"Next coupon", dateOrDash(res.NextCoupon)},
			{"Accrued interest", util.FormatAmount(res.AccruedInterest)},
			{"Clean price", util.FormatAmount(res.CleanPrice)},
			{"Dirty price", util.FormatAmount(res.DirtyPrice)},
		})
		fmt.Println()
		cashFlowTable(res.CashFlows)
	},
}

func dateOrDash(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return data.FormatDate(t)
}
