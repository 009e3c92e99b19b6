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
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/bond-desk/bondengine/bond"
	"github.com/bond-desk/bondengine/calendar"
	"github.com/bond-desk/bondengine/data"
	"github.com/bond-desk/bondengine/pricing"
	"github.com/bond-desk/bondengine/util"
)

// inputs is the data snapshot every calculator runs against.
type inputs struct {
	bonds    []*bond.Bond
	rates    *bond.BankRateTable
	holidays calendar.HolidaySet
}

// loadInputs reads the bond, bank-rate and holiday files named in the
// configuration. Malformed files are hard input errors.
func loadInputs() *inputs {
	bonds, err := data.LoadBonds(viper.GetString("data.bonds"))
	if err != nil {
		log.Fatal().Err(err).Msg("could not load bond definitions")
	}

	rates, err := data.LoadBankRates(viper.GetString("data.bank_rates"))
	if err != nil {
		log.Fatal().Err(err).Msg("could not load bank deposit rates")
	}

	holidays := make(calendar.HolidaySet)
	if path := viper.GetString("data.holidays"); path != "" {
		if holidays, err = data.LoadHolidays(path); err != nil {
			log.Fatal().Err(err).Msg("could not load holiday calendar")
		}
	}

	return &inputs{bonds: bonds, rates: rates, holidays: holidays}
}

func (in *inputs) findBond(code string) *bond.Bond {
	for _, b := range in.bonds {
		if b.Code == code {
			return b
		}
	}
	log.Fatal().Str("Code", code).Msg("unknown bond code")
	return nil
}

func parseDateArg(name, value string) time.Time {
	t, err := data.ParseDate(value)
	if err != nil {
		log.Fatal().Err(err).Str("Flag", name).Str("Value", value).Msg("invalid date, expected DD/MM/YYYY")
	}
	return t
}

// resultTable renders two-column key/value tables the way the desk's
// worksheet panels lay them out.
func resultTable(rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

func cashFlowTable(flows []pricing.CashFlow) {
	if len(flows) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "#", "Rate", "Cash Flow", "PV"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, cf := range flows {
		if cf.Skipped {
			table.Append([]string{
				data.FormatDate(cf.PaymentDate) + " (SKIPPED)",
				itoa(cf.PaymentIndex), "-", "-", "-",
			})
			continue
		}
		table.Append([]string{
			data.FormatDate(cf.PaymentDate),
			itoa(cf.PaymentIndex),
			percent3(cf.Rate * 100),
			util.FormatUnitAmount(cf.Amount),
			util.FormatUnitAmount(cf.PresentValue),
		})
	}
	table.Render()
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// percent3 renders a percentage with three decimals, matching the
// worksheet's rate columns.
func percent3(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func warnRecordingPeriod(res *pricing.Result) {
	if !res.InRecordingPeriod {
		return
	}
	log.Warn().
		Str("UpcomingCoupon", data.FormatDate(res.UpcomingCoupon)).
		Str("RecordingStart", data.FormatDate(res.RecordingStart)).
		Msg("settlement falls inside the recording period; the upcoming coupon is excluded from the price")
}
