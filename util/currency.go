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

// Package util holds the currency text conventions shared by the CLI:
// grouped-thousands input echoing and locale-style display formatting.
package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidAmount marks amount text with no parseable digits.
var ErrInvalidAmount = errors.New("invalid amount")

// display amounts use the Vietnamese locale: "." groups thousands
var printer = message.NewPrinter(language.Vietnamese)

// FormatAmount renders a display amount with grouped thousands and no
// decimals.
func FormatAmount(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// FormatUnitAmount renders a per-unit cash-flow figure with six
// decimals.
func FormatUnitAmount(v float64) string {
	return printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(6), number.MaxFractionDigits(6)))
}

// GroupThousands normalizes typed amount text into grouped-thousands
// form: non-digits are stripped and "." inserted every three digits
// ("100000000" -> "100.000.000").
func GroupThousands(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	raw := digits.String()
	if raw == "" {
		return ""
	}

	var grouped strings.Builder
	lead := len(raw) % 3
	if lead > 0 {
		grouped.WriteString(raw[:lead])
	}
	for i := lead; i < len(raw); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteString(raw[i : i+3])
	}
	return grouped.String()
}

// ParseAmount parses user-entered currency text, ignoring "." and ","
// group separators.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.NewReplacer(".", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}
