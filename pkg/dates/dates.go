/*
 *   Copyright 2023 Martin Proffitt <mproffitt@choclab.net>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultWeekFormat renders as e.g. "2024-W01"
const DefaultWeekFormat = "yyyy-Wcc"

// ISOWeek returns the ISO-8601 week number of t, 1 through 53
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// ISOYear returns the ISO-8601 week-numbering year of t. It differs from
// t.Year() for days at the very start or end of a calendar year.
func ISOYear(t time.Time) int {
	year, _ := t.ISOWeek()
	return year
}

// WeekWithYear substitutes "yyyy" in format with the ISO year of t and "cc"
// with its two digit ISO week.
func WeekWithYear(t time.Time, format string) string {
	year, week := t.ISOWeek()
	return strings.NewReplacer(
		"yyyy", strconv.Itoa(year),
		"cc", fmt.Sprintf("%02d", week),
	).Replace(format)
}

// FirstDayOfWeek returns midnight of the first day of the week containing t,
// where weeks start on first.
func FirstDayOfWeek(t time.Time, first time.Weekday) time.Time {
	day := midnight(t)
	offset := (int(day.Weekday()) - int(first) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// FirstDayOfMonth returns midnight of the first day of t's month
func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// LastDayOfMonth returns midnight of the last day of t's month
func LastDayOfMonth(t time.Time) time.Time {
	return FirstDayOfMonth(t).AddDate(0, 1, -1)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseWeekday accepts English day names or their three letter abbreviation
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("unknown weekday %q", name)
}
