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

	"github.com/bond-desk/bondengine/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Data files
	viper.BindEnv("data.bonds", "BOND_DESK_BONDS")
	rootCmd.PersistentFlags().String("bonds", "bonds.json", "Bond definition file")
	viper.BindPFlag("data.bonds", rootCmd.PersistentFlags().Lookup("bonds"))

	viper.BindEnv("data.bank_rates", "BOND_DESK_BANK_RATES")
	rootCmd.PersistentFlags().String("bank-rates", "bankRates.json", "Bank deposit rate file")
	viper.BindPFlag("data.bank_rates", rootCmd.PersistentFlags().Lookup("bank-rates"))

	viper.BindEnv("data.holidays", "BOND_DESK_HOLIDAYS")
	rootCmd.PersistentFlags().String("holidays", "", "Holiday calendar file, if blank only weekends are observed")
	viper.BindPFlag("data.holidays", rootCmd.PersistentFlags().Lookup("holidays"))

	// Logging configuration
	viper.BindEnv("log.level", "BOND_DESK_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "BOND_DESK_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "BOND_DESK_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "BOND_DESK_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", true, "Use the console writer for log output")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

var rootCmd = &cobra.Command{
	Use:     "bondengine",
	Version: common.Version(),
	Short:   "Bond desk calculators for floating-rate bonds",
	Long: `Prices floating-rate bonds under a business-day/holiday calendar and a
recording-period convention, solves yields and evaluates buy/sell
round-trip profitability.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
