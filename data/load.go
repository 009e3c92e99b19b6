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

package data

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/bond-desk/bondengine/bond"
	"github.com/bond-desk/bondengine/calendar"
)

// bondJSON mirrors one entry of the bonds interchange file; dates are
// DD/MM/YYYY text.
type bondJSON struct {
	Code             string         `json:"code"`
	IssueDate        string         `json:"issueDate"`
	Maturity         string         `json:"maturity"`
	Frequency        int            `json:"frequency"`
	FaceValue        float64        `json:"faceValue"`
	InterestSchedule []rateStepJSON `json:"interestSchedule"`
	ReferenceBank    []string       `json:"referenceBank"`
	RecordDays       int            `json:"recordDays"`
	Listing          string         `json:"listing"`
	Regime           string         `json:"regime"`
}

type rateStepJSON struct {
	Payment   int     `json:"payment"`
	Rate      float64 `json:"rate"`
	IsFloat   bool    `json:"isFloat"`
	FloorRate float64 `json:"floorRate"`
}

type bondFileJSON struct {
	Bonds []bondJSON `json:"bonds"`
}

type bankRateFileJSON struct {
	Rates       map[string]float64 `json:"rates"`
	LastUpdated string             `json:"lastUpdated"`
}

type holidayJSON struct {
	DurationDays int `json:"durationDays"`
}

// LoadBonds reads the bonds interchange file and validates every entry.
func LoadBonds(path string) ([]*bond.Bond, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read bond file %s: %w", path, err)
	}

	var file bondFileJSON
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("could not parse bond file %s: %w", path, err)
	}

	bonds := make([]*bond.Bond, 0, len(file.Bonds))
	for _, entry := range file.Bonds {
		b, err := entry.toBond()
		if err != nil {
			return nil, err
		}
		bonds = append(bonds, b)
	}
	log.Debug().Int("NumBonds", len(bonds)).Str("Path", path).Msg("loaded bond universe")
	return bonds, nil
}

func (j bondJSON) toBond() (*bond.Bond, error) {
	issue, err := ParseDate(j.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("bond %s issue date: %w", j.Code, err)
	}
	maturity, err := ParseDate(j.Maturity)
	if err != nil {
		return nil, fmt.Errorf("bond %s maturity date: %w", j.Code, err)
	}

	regime := bond.RegimeNormal
	if strings.EqualFold(j.Regime, "CALENDAR_ADJUSTED") {
		regime = bond.RegimeCalendarAdjusted
	}

	listing := bond.PublicListing
	if strings.EqualFold(j.Listing, bond.PrivateListing) {
		listing = bond.PrivateListing
	}

	schedule := make([]bond.RateStep, 0, len(j.InterestSchedule))
	for _, s := range j.InterestSchedule {
		schedule = append(schedule, bond.RateStep{
			FromPayment: s.Payment,
			Rate:        s.Rate,
			Floating:    s.IsFloat,
			Floor:       s.FloorRate,
		})
	}

	b := &bond.Bond{
		Code:           j.Code,
		IssueDate:      issue,
		MaturityDate:   maturity,
		Frequency:      j.Frequency,
		FaceValue:      j.FaceValue,
		RateSchedule:   schedule,
		ReferenceBanks: j.ReferenceBank,
		RecordingDays:  j.RecordDays,
		Listing:        listing,
		Regime:         regime,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadBankRates reads the bank deposit rate table.
func LoadBankRates(path string) (*bond.BankRateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read bank rate file %s: %w", path, err)
	}

	var file bankRateFileJSON
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("could not parse bank rate file %s: %w", path, err)
	}

	table := &bond.BankRateTable{Rates: file.Rates}
	if file.LastUpdated != "" {
		updated, err := ParseDate(file.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("bank rate file %s lastUpdated: %w", path, err)
		}
		table.LastUpdated = updated
	}
	return table, nil
}

// LoadHolidays reads the holiday calendar, keyed by DD/MM/YYYY start
// date with a duration in days, and expands it into the set of
// individual excluded dates.
func LoadHolidays(path string) (calendar.HolidaySet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read holiday file %s: %w", path, err)
	}

	var file map[string]holidayJSON
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("could not parse holiday file %s: %w", path, err)
	}

	spans := make([]calendar.HolidaySpan, 0, len(file))
	for key, h := range file {
		start, err := ParseDate(key)
		if err != nil {
			return nil, fmt.Errorf("holiday file %s: %w", path, err)
		}
		spans = append(spans, calendar.HolidaySpan{Start: start, DurationDays: h.DurationDays})
	}
	return calendar.NewHolidaySet(spans), nil
}
