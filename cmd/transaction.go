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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bond-desk/bondengine/common"
	"github.com/bond-desk/bondengine/data"
	"github.com/bond-desk/bondengine/transaction"
	"github.com/bond-desk/bondengine/util"
)

var (
	txCmdNumBonds      int
	txCmdBuyDate       string
	txCmdBuyYield      float64
	txCmdSellDate      string
	txCmdHoldingRate   float64
	txCmdCoverFees     bool
	txCmdInstitutional bool
)

func init() {
	transactionCmd.Flags().IntVar(&txCmdNumBonds, "num-bonds", 1, "Number of bonds to buy")
	transactionCmd.Flags().StringVar(&txCmdBuyDate, "buy-date", "", "Purchase payment date (DD/MM/YYYY)")
	transactionCmd.Flags().Float64Var(&txCmdBuyYield, "buy-yield", 0, "Discount yield at purchase in percent")
	transactionCmd.Flags().StringVar(&txCmdSellDate, "sell-date", "", "Expected sale payment date (DD/MM/YYYY)")
	transactionCmd.Flags().Float64Var(&txCmdHoldingRate, "holding-rate", 0, "Target annualized holding rate in percent")
	transactionCmd.Flags().BoolVar(&txCmdCoverFees, "cover-fees", false, "Gross up the sale price to cover sale-side fees and taxes")
	transactionCmd.Flags().BoolVar(&txCmdInstitutional, "institutional", false, "Institutional holder, exempt from coupon tax")
	transactionCmd.MarkFlagRequired("buy-date")
	transactionCmd.MarkFlagRequired("sell-date")
	rootCmd.AddCommand(transactionCmd)
}

var transactionCmd = &cobra.Command{
	Use:        "transaction [flags] BondCode",
	Short:      "Evaluate a buy-then-sell round trip",
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"BondCode"},
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		in := loadInputs()
		b := in.findBond(args[0])

		res, err := transaction.Calculate(transaction.Params{
			Bond:            b,
			NumBonds:        txCmdNumBonds,
			BuyDate:         parseDateArg("buy-date", txCmdBuyDate),
			DiscountYield:   txCmdBuyYield,
			SellDate:        parseDateArg("sell-date", txCmdSellDate),
			HoldingRate:     txCmdHoldingRate,
			CoverFees:       txCmdCoverFees,
			Institutional:   txCmdInstitutional,
			Holidays:        in.holidays,
			BankRateAverage: in.rates.Average(b.ReferenceBanks),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("could not evaluate transaction")
		}

		if res.Purchase.InRecordingPeriod {
			log.Warn().
				Str("UpcomingCoupon", data.FormatDate(res.Purchase.UpcomingCoupon)).
				Msg("purchase date falls inside a recording period")
		}
		if res.Sale.InRecordingPeriod {
			log.Warn().
				Str("UpcomingCoupon", data.FormatDate(res.Sale.UpcomingCoupon)).
				Msg("sale date falls inside a recording period")
		}

		fmt.Println("Leg 1 - Purchase")
		resultTable([][]string{
			{"Payment date", data.FormatDate(res.Purchase.Date)},
			{"Discount yield", fmt.Sprintf("%.2f%%", res.Purchase.Yield)},
			{"Price per bond", util.FormatAmount(res.Purchase.PricePerBond)},
			{"Settlement amount", util.FormatAmount(res.Purchase.SettlementAmount)},
			{"Transaction fee", util.FormatAmount(res.Purchase.TransactionFee)},
			{"Total investment", util.FormatAmount(res.Purchase.TotalInvestment)},
		})

		fmt.Println("\nLeg 2 - Expected sale")
		saleRows := [][]string{
			{"Payment date", data.FormatDate(res.Sale.Date)},
			{"Target amount", util.FormatAmount(res.Profit.TargetAmount)},
			{"Price per bond", util.FormatAmount(res.Sale.PricePerBond)},
			{"Market price (reference)", util.FormatAmount(res.Sale.MarketPricePerBond)},
			{"Settlement amount", util.FormatAmount(res.Sale.SettlementAmount)},
			{"Transaction fee", util.FormatAmount(res.Sale.TransactionFee)},
			{"Transfer tax", util.FormatAmount(res.Sale.TransferTax)},
			{"Transfer fee", util.FormatAmount(res.Sale.TransferFee)},
			{"Total received", util.FormatAmount(res.Sale.TotalReceived)},
		}
		if res.Sale.RemainingYield != nil {
			saleRows = append(saleRows, []string{"Remaining YTM at sale", fmt.Sprintf("%.4f%%", res.Sale.RemainingYield.Yield)})
		}
		resultTable(saleRows)

		if len(res.Coupons) > 0 {
			fmt.Println("\nCoupons collected while holding")
			rows := make([][]string, 0, len(res.Coupons))
			for _, c := range res.Coupons {
				rows = append(rows, []string{
					data.FormatDate(c.Date),
					util.FormatAmount(c.Gross),
					util.FormatAmount(c.Tax),
					util.FormatAmount(c.Net),
				})
			}
			resultTable(rows)
		}

		fmt.Println("\nProfit")
		resultTable([][]string{
			{"Days holding", itoa(res.Profit.DaysHolding)},
			{"Expected interest", util.FormatAmount(res.Profit.ExpectedInterest)},
			{"Coupons received", util.FormatAmount(res.Profit.CouponsReceived)},
			{"Coupon tax", util.FormatAmount(res.Profit.CouponTax)},
			{"Net coupons", util.FormatAmount(res.Profit.NetCoupons)},
			{"Total profit", util.FormatAmount(res.Profit.TotalProfit)},
			{"Annualized holding rate", fmt.Sprintf("%.3f%%", res.Profit.AnnualizedRate)},
		})
	},
}
