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
package cmd

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"
)

func TestWeekCmdJSON(t *testing.T) {
	teardownSuite := setupSuite(t, "")
	defer teardownSuite(t)

	out, _, err := execute(t, "", "--json", "week", "2021-01-03", "2024-12-30")
	if err != nil {
		t.Fatalf("Expected nil error but got %v", err)
	}

	var actual []weekInfo
	if err = json.Unmarshal([]byte(out), &actual); err != nil {
		t.Fatalf("Expected JSON output but got %q: %v", out, err)
	}

	expected := []weekInfo{
		{
			Date:         "2021-01-03",
			Week:         53,
			Year:         2020,
			Label:        "2020-W53",
			WeekStart:    "2020-12-28",
			MonthStart:   "2021-01-01",
			MonthEnd:     "2021-01-31",
			FirstWeekday: "Monday",
		},
		{
			Date:         "2024-12-30",
			Week:         1,
			Year:         2025,
			Label:        "2025-W01",
			WeekStart:    "2024-12-30",
			MonthStart:   "2024-12-01",
			MonthEnd:     "2024-12-31",
			FirstWeekday: "Monday",
		},
	}
	if diff := pretty.Compare(expected, actual); diff != "" {
		t.Errorf("unexpected weeks (-want +got):\n%s", diff)
	}
}

func TestWeekCmdTable(t *testing.T) {
	teardownSuite := setupSuite(t, "firstWeekday: sunday\n")
	defer teardownSuite(t)

	onow := now
	defer func() {
		now = onow
	}()
	now = func() time.Time {
		return time.Date(2024, time.February, 14, 12, 0, 0, 0, time.Local)
	}

	out, _, err := execute(t, "", "week", "--format", "Wcc yyyy")
	if err != nil {
		t.Fatalf("Expected nil error but got %v", err)
	}

	for _, expected := range []string{"WEEK START", "2024-02-14", "W07 2024", "2024-02-11", "2024-02-29"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected output to contain %q but got:\n%s", expected, out)
		}
	}
}

func TestWeekCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "invalid date",
			args: []string{"week", "14.02.2024"},
		},
		{
			name: "invalid weekday",
			args: []string{"week", "--first-weekday", "someday", "2024-02-14"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			teardownSuite := setupSuite(t, "")
			defer teardownSuite(t)

			if _, _, err := execute(t, "", test.args...); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
