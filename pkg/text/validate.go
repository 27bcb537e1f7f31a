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
	"regexp"
)

var (
	urlPattern   = regexp.MustCompile(`http(s)?://([\w-]+\.)+[\w-]+(/[\w\- ./?%&=]*)?`)
	phonePattern = regexp.MustCompile(`(?i)^\+?(\d[\d\-. ]+)?(\([\d\-. ]+\))?[\d\-. ]+\d$`)
	emailPattern = regexp.MustCompile(`(?i)\w+([-+.']\w+)*@\w+([-.]\w+)*\.\w+([-.]\w+)*`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// IsValidURL reports whether s contains an http or https URL
func IsValidURL(s string) bool {
	return urlPattern.MatchString(s)
}

// IsMatch reports whether pattern finds a match anywhere in s
func IsMatch(s, pattern string) (bool, error) {
	return regexp.MatchString(pattern, s)
}

// IsPhoneNumber reports whether the whole of s looks like a phone number,
// allowing a leading +, an optional bracketed area code and . - or blank as
// separators.
func IsPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// IsEmail reports whether s contains something shaped like a mail address
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// StripHTML removes anything that looks like a tag
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	return tagPattern.ReplaceAllString(s, "")
}
