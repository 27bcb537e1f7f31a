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
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/notapipeline/extensions/pkg/seq"
	"github.com/notapipeline/extensions/pkg/text"
)

var (
	truncateLength int
	truncateSuffix string
	wrapWidth      int
	wrapNewline    string
	splitDelimiter string
	validateAs     string
	queryParams    []string
)

// validators are looked up case insensitively by --as
var validators = map[string]func(string) bool{
	"url":     text.IsValidURL,
	"email":   text.IsEmail,
	"phone":   text.IsPhoneNumber,
	"byte":    text.IsParsableByte,
	"int":     text.IsParsableInt,
	"long":    text.IsParsableLong,
	"bool":    text.IsParsableBool,
	"float":   text.IsParsableFloat,
	"double":  text.IsParsableDouble,
	"decimal": text.IsParsableDecimal,
}

type validation struct {
	Input string `json:"input"`
	Kind  string `json:"kind"`
	Valid bool   `json:"valid"`
}

func (v validation) String() string {
	return fmt.Sprintf("%t", v.Valid)
}

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Apply common string transformations",
	Long: `Apply a transformation to every argument and print one result per
	line. When no arguments are given the text is read from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var truncateCmd = &cobra.Command{
	Use:   "truncate [text...]",
	Short: "Shorten text to a maximum length",
	RunE: transform(func(s string) string {
		return text.Truncate(s, truncateLength, truncateSuffix)
	}),
}

var wrapCmd = &cobra.Command{
	Use:   "wrap [text...]",
	Short: "Break text into lines at blanks",
	RunE: transform(func(s string) string {
		return text.BreakLines(s, wrapWidth, wrapNewline)
	}),
}

var camelCmd = &cobra.Command{
	Use:   "camel [text...]",
	Short: "Convert words separated by blanks, dashes or underscores to camelCase",
	RunE:  transform(text.ToCamelCase),
}

var splitCamelCmd = &cobra.Command{
	Use:   "split-camel [text...]",
	Short: "Separate the words of a CamelCase text",
	RunE: func(cmd *cobra.Command, args []string) error {
		if utf8.RuneCountInString(splitDelimiter) != 1 {
			return fmt.Errorf("delimiter must be a single character, got %q", splitDelimiter)
		}
		delimiter, _ := utf8.DecodeRuneInString(splitDelimiter)
		return transform(func(s string) string {
			return text.SplitCamelCase(s, delimiter)
		})(cmd, args)
	},
}

var umlautsCmd = &cobra.Command{
	Use:   "umlauts [text...]",
	Short: "Replace German umlauts and sharp s with their two letter forms",
	RunE:  transform(text.ReplaceUmlauts),
}

var stripHTMLCmd = &cobra.Command{
	Use:   "strip-html [text...]",
	Short: "Remove HTML tags",
	RunE:  transform(text.StripHTML),
}

var queryCmd = &cobra.Command{
	Use:   "query <url>",
	Short: "Append query parameters to a URL",
	Long: `Append every --param key=value pair to the URL, starting the query
	string with "?" when the URL has none yet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var u string = args[0]
		for _, p := range queryParams {
			key, value, ok := strings.Cut(p, "=")
			if !ok {
				u = text.AppendQuery(u, p)
				continue
			}
			u = text.AppendQueryParameter(u, key, value)
		}
		return output(cmd, u)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [text...]",
	Short: "Check text against a known format",
	Long: fmt.Sprintf(`Print true or false for every input depending on whether it
	matches the format given by --as. Known formats are: %s.`, strings.Join(validatorNames(), ", ")),
	RunE: func(cmd *cobra.Command, args []string) error {
		check, err := text.ToEnum(validateAs, validators)
		if err != nil {
			return fmt.Errorf("unknown format %q, expected one of %s", validateAs, strings.Join(validatorNames(), ", "))
		}

		values, err := inputs(cmd, args)
		if err != nil {
			return err
		}

		results, err := seq.Select(values, func(s string) validation {
			return validation{Input: s, Kind: strings.ToLower(validateAs), Valid: check(s)}
		})
		if err != nil {
			return err
		}
		return outputAll(cmd, results)
	},
}

// transform builds a command that maps every input through fn
func transform(fn func(string) string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		values, err := inputs(cmd, args)
		if err != nil {
			return err
		}

		results, err := seq.Select(values, fn)
		if err != nil {
			return err
		}
		return outputAll(cmd, results)
	}
}

func inputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	s, err := input(cmd, nil)
	return []string{s}, err
}

// outputAll prints one result per line, or a single JSON array
func outputAll[T any](cmd *cobra.Command, results []T) error {
	if rootFlags.JSON {
		return output(cmd, results)
	}
	for _, r := range results {
		if err := output(cmd, r); err != nil {
			return err
		}
	}
	return nil
}

func validatorNames() []string {
	names := make([]string, 0, len(validators))
	for k := range validators {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.AddCommand(truncateCmd, wrapCmd, camelCmd, splitCamelCmd, umlautsCmd, stripHTMLCmd, queryCmd, validateCmd)

	truncateCmd.Flags().IntVarP(&truncateLength, "max", "m", 80, "maximum length including the suffix")
	truncateCmd.Flags().StringVarP(&truncateSuffix, "suffix", "s", text.DefaultTruncateSuffix, "appended to truncated text")

	wrapCmd.Flags().IntVarP(&wrapWidth, "width", "w", 80, "maximum line length including the newline")
	wrapCmd.Flags().StringVar(&wrapNewline, "newline", "\n", "line separator")

	splitCamelCmd.Flags().StringVarP(&splitDelimiter, "delimiter", "d", " ", "inserted between words")

	queryCmd.Flags().StringArrayVarP(&queryParams, "param", "p", []string{}, "key=value pair to append (may be specified multiple times)")

	validateCmd.Flags().StringVar(&validateAs, "as", "", "format to check against")
	if err := validateCmd.MarkFlagRequired("as"); err != nil {
		logs.Errorf("%s", err)
	}
}
