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
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notapipeline/extensions/pkg/dates"
	"github.com/notapipeline/extensions/pkg/types"
)

// DateLayout is the layout accepted for dates on the command line
const DateLayout = "2006-01-02"

var weekFlags types.WeekCmd

var now func() time.Time = time.Now

type weekInfo struct {
	Date         string `json:"date"`
	Week         int    `json:"week"`
	Year         int    `json:"year"`
	Label        string `json:"label"`
	WeekStart    string `json:"weekStart"`
	MonthStart   string `json:"monthStart"`
	MonthEnd     string `json:"monthEnd"`
	FirstWeekday string `json:"firstWeekday"`
}

// weekCmd represents the week command
var weekCmd = &cobra.Command{
	Use:   "week [date...]",
	Short: "Show ISO week numbers",
	Long: `Show the ISO-8601 week and week-numbering year for one or more dates
	given as YYYY-MM-DD. Without arguments today is used.

	The label is rendered from --format where "yyyy" is replaced with the ISO
	year and "cc" with the two digit week, e.g. the default "yyyy-Wcc" gives
	"2024-W01". The first day of the week used for the week start column is
	taken from --first-weekday.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.MergeWeekCmd(weekFlags)
		first, err := cfg.Weekday()
		if err != nil {
			return err
		}

		var days []time.Time
		if len(args) == 0 {
			days = append(days, now())
		}
		for _, arg := range args {
			d, err := time.ParseInLocation(DateLayout, arg, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", arg)
			}
			days = append(days, d)
		}

		var weeks []weekInfo = make([]weekInfo, 0, len(days))
		for _, d := range days {
			weeks = append(weeks, weekInfo{
				Date:         d.Format(DateLayout),
				Week:         dates.ISOWeek(d),
				Year:         dates.ISOYear(d),
				Label:        dates.WeekWithYear(d, cfg.WeekFormat),
				WeekStart:    dates.FirstDayOfWeek(d, first).Format(DateLayout),
				MonthStart:   dates.FirstDayOfMonth(d).Format(DateLayout),
				MonthEnd:     dates.LastDayOfMonth(d).Format(DateLayout),
				FirstWeekday: first.String(),
			})
		}

		if rootFlags.JSON {
			return output(cmd, weeks)
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Date", "Week", "Year", "Label", "Week start", "Month start", "Month end"})
		for _, w := range weeks {
			t.AppendRow(table.Row{w.Date, w.Week, w.Year, w.Label, w.WeekStart, w.MonthStart, w.MonthEnd})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weekCmd)
	weekCmd.Flags().StringVarP(&weekFlags.Format, "format", "f", "", "label format (default \"yyyy-Wcc\")")
	weekCmd.Flags().StringVar(&weekFlags.FirstWeekday, "first-weekday", "", "first day of the week (default \"monday\")")
}
