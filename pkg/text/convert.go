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
package text

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToFloat and friends accept only an invariant "." decimal separator
var decimalPointPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// ConversionError is returned when a string cannot be converted to the
// requested type.
type ConversionError struct {
	Input string
	Type  string
	Err   error
}

func (e ConversionError) Error() string {
	return fmt.Sprintf("%q cannot be converted as %s", e.Input, e.Type)
}

func (e ConversionError) Unwrap() error {
	return e.Err
}

// ToFloat parses digits with an optional "." decimal point. Signs, exponents
// and group separators are rejected.
func ToFloat(s string) (float64, error) {
	if !decimalPointPattern.MatchString(s) {
		return 0, ConversionError{Input: s, Type: "double"}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ConversionError{Input: s, Type: "double", Err: err}
	}
	return f, nil
}

// ToDecimal parses s as an arbitrary precision decimal
func ToDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ConversionError{Input: s, Type: "decimal", Err: err}
	}
	return d, nil
}

// ToInt parses a signed 32 bit integer, ignoring surrounding whitespace
func ToInt(s string) (int, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, ConversionError{Input: s, Type: "int", Err: err}
	}
	return int(i), nil
}

// ToIntOr returns def when s is not an integer
func ToIntOr(s string, def int) int {
	if i, err := ToInt(s); err == nil {
		return i
	}
	return def
}

// ToNullableInt returns nil when s is not an integer
func ToNullableInt(s string) *int {
	if i, err := ToInt(s); err == nil {
		return &i
	}
	return nil
}

// ToBool accepts "true" or "false" in any case, ignoring surrounding
// whitespace. Unlike strconv.ParseBool it rejects "1", "t" and similar.
func ToBool(s string) (bool, error) {
	switch v := strings.TrimSpace(s); {
	case strings.EqualFold(v, "true"):
		return true, nil
	case strings.EqualFold(v, "false"):
		return false, nil
	}
	return false, ConversionError{Input: s, Type: "bool"}
}

// ToBoolOr returns def when s is not a boolean
func ToBoolOr(s string, def bool) bool {
	if b, err := ToBool(s); err == nil {
		return b
	}
	return def
}

// ToNullableBool returns nil when s is not a boolean
func ToNullableBool(s string) *bool {
	if b, err := ToBool(s); err == nil {
		return &b
	}
	return nil
}

func IsParsableByte(s string) bool {
	_, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	return err == nil
}

func IsParsableInt(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	return err == nil
}

func IsParsableLong(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

func IsParsableBool(s string) bool {
	_, err := ToBool(s)
	return err == nil
}

func IsParsableFloat(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return err == nil
}

func IsParsableDouble(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func IsParsableDecimal(s string) bool {
	_, err := ToDecimal(s)
	return err == nil
}

// ToEnum looks value up in values ignoring case. An exact match wins,
// otherwise the first matching name in sorted order is used.
func ToEnum[T any](value string, values map[string]T) (T, error) {
	if v, ok := values[value]; ok {
		return v, nil
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.EqualFold(name, value) {
			return values[name], nil
		}
	}
	var zero T
	return zero, ConversionError{Input: value, Type: fmt.Sprintf("%T", zero)}
}

// AsEnum looks value up in values using an exact match, returning nil if it
// is not present.
func AsEnum[T any](value string, values map[string]T) *T {
	if v, ok := values[value]; ok {
		return &v
	}
	return nil
}
