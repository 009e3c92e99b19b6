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
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bond-desk/bondengine/common"
	"github.com/bond-desk/bondengine/data"
	"github.com/bond-desk/bondengine/offering"
)

var offeringCmdDate string

func init() {
	offeringCmd.Flags().StringVar(&offeringCmdDate, "date", "", "Offering start date (DD/MM/YYYY)")
	offeringCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(offeringCmd)
}

var offeringCmd = &cobra.Command{
	Use:   "offering [flags]",
	Short: "List bonds suitable for each quoted holding duration",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		in := loadInputs()
		start := parseDateArg("date", offeringCmdDate)

		fmt.Println("Offered rates")
		rates := tablewriter.NewWriter(os.Stdout)
		rates.SetHeader([]string{"Class", "1M", "2M", "3M", "6M", "1Y"})
		for _, class := range []string{"corporate", "bank"} {
			card := offering.OfferedRates[class]
			row := []string{class}
			for _, d := range offering.Durations {
				row = append(row, fmt.Sprintf("%.1f%%", card[d]))
			}
			rates.Append(row)
		}
		rates.Render()

		fmt.Printf("\nAvailable bonds on %s (1M and 2M exclude bonds with coupon activity in the period)\n", data.FormatDate(start))
		for _, d := range offering.Durations {
			candidates := offering.ForDuration(in.bonds, start, d, in.holidays)

			fmt.Printf("\n%s\n", d)
			if len(candidates) == 0 {
				fmt.Println("  (none)")
				continue
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Code", "Next Coupon", "Coupon In Period"})
			for _, c := range candidates {
				next := "-"
				if !c.NextCoupon.IsZero() {
					next = data.FormatDate(c.NextCoupon)
				}
				inPeriod := ""
				if c.HasCoupon {
					inPeriod = "yes"
				}
				table.Append([]string{c.Bond.Code, next, inPeriod})
			}
			table.Render()
		}
	},
}
