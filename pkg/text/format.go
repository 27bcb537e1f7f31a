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
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultTruncateSuffix = "..."

var umlauts = map[rune]string{
	'ä': "ae",
	'ö': "oe",
	'ü': "ue",
	'Ä': "Ae",
	'Ö': "Oe",
	'Ü': "Ue",
	'ß': "ss",
}

// NullIfBlank returns nil if s is empty or only whitespace, otherwise a
// pointer to the trimmed string.
func NullIfBlank(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Truncate shortens text to at most maxLength runes including suffix.
//
// The text is returned unchanged if it already fits, if maxLength is not
// positive or if the suffix alone would fill maxLength. Trailing whitespace
// left by the cut is removed before the suffix is appended.
func Truncate(text string, maxLength int, suffix string) string {
	if maxLength <= 0 {
		return text
	}

	keep := maxLength - utf8.RuneCountInString(suffix)
	if keep <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimRightFunc(string(runes[:keep]), unicode.IsSpace) + suffix
}

// BreakLines wraps text at blanks so that no line plus its newline marker
// exceeds maxLength runes.
//
// The trimmed text is returned unwrapped when it already fits, when
// maxLength leaves no room next to newline, or when some chunk contains no
// blank to break at.
func BreakLines(text string, maxLength int, newline string) string {
	text = strings.TrimSpace(text)

	maxLength -= utf8.RuneCountInString(newline)
	runes := []rune(text)
	if maxLength <= 0 || len(runes) <= maxLength {
		return text
	}

	var (
		b       strings.Builder
		current int
	)
	for current < len(runes) {
		end := current + maxLength
		if end >= len(runes) {
			b.WriteString(string(runes[current:]))
			return b.String()
		}

		chunk := runes[current:end]
		last := lastBlank(chunk)
		if last == -1 {
			return text
		}
		b.WriteString(string(chunk[:last]))
		b.WriteString(newline)
		current += last + 1
	}
	return b.String()
}

func lastBlank(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == ' ' {
			return i
		}
	}
	return -1
}

// ReplaceUmlauts transliterates German umlauts and sharp s
func ReplaceUmlauts(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := umlauts[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AppendQueryParameter treats s as a URL or query string and appends
// key=value to it. Neither key nor value is escaped.
func AppendQueryParameter(s, key, value string) string {
	return AppendQuery(s, key+"="+value)
}

// AppendQuery appends a raw query parameter, starting the query if needed
func AppendQuery(s, param string) string {
	if strings.Contains(s, "?") {
		return s + "&" + param
	}
	return s + "?" + param
}

// SplitCamelCase inserts delimiter before every upper-case ASCII letter,
// turning "EventName" into "Event.Name" for a delimiter of '.'.
func SplitCamelCase(s string, delimiter rune) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(delimiter)
		}
		b.WriteRune(r)
	}
	return strings.TrimLeft(b.String(), string(delimiter))
}

// ToCamelCase joins words separated by blanks, dashes or underscores into
// camel case: "secret-string" becomes "secretString". Strings of fewer than
// two runes are returned as is.
func ToCamelCase(s string) string {
	if utf8.RuneCountInString(s) < 2 {
		return s
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	if len(words) == 0 {
		return ""
	}

	var (
		lower = cases.Lower(language.Und)
		upper = cases.Upper(language.Und)
		b     strings.Builder
	)
	b.WriteString(lower.String(words[0]))
	for _, word := range words[1:] {
		first, size := utf8.DecodeRuneInString(word)
		b.WriteString(upper.String(string(first)))
		b.WriteString(word[size:])
	}
	return b.String()
}
