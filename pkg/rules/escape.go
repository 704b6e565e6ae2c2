// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rules

import "strings"

// patternMeta is every character with special meaning in the RE2 dialect
// the substitution engine accepts. Backslash must stay first so that the
// escapes this function emits are never themselves re-escaped.
const patternMeta = `\.+*?()|[]{}^$`

// EscapePattern neutralizes every regex metacharacter in s so the compiled
// expression matches s as literal text only.
func EscapePattern(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(patternMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeReplacement neutralizes the whole-match/back-reference marker in a
// replacement template. In RE2 templates only '$' is special; backslash is
// already literal, so no further escaping is needed there.
func EscapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
