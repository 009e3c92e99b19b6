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

// Package data loads bond definitions, bank deposit rates and holiday
// calendars from their JSON interchange files and parses the date and
// amount text formats they use.
package data

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bond-desk/bondengine/calendar"
)

// date text formats, primary first
const (
	dateFormatPrimary  = "02/01/2006" // DD/MM/YYYY
	dateFormatFallback = "2006-01-02" // YYYY-MM-DD
)

// ErrInvalidDate marks date text that parses under neither accepted
// format. Callers must treat it as a hard input error.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses DD/MM/YYYY date text, accepting YYYY-MM-DD as a
// fallback. The result is a timezone-naive calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidDate)
	}

	layout := dateFormatPrimary
	if !strings.Contains(s, "/") && strings.Contains(s, "-") {
		layout = dateFormatFallback
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return calendar.Normalize(t), nil
}

// FormatDate renders a date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(dateFormatPrimary)
}
