// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package markdown

import "strings"

// NormalizeLabel implements the label-matching rule used to resolve
// reference links and images against [Document.References]: case-fold
// and collapse interior whitespace to single spaces, so "Foo  bar",
// "foo bar", and "FOO\nBAR" all address the same definition. An empty
// (or all-whitespace) label normalizes to "", which never matches.
func NormalizeLabel(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// extractReferenceDefinitions implements spec.md §4.2.2: it repeatedly
// strips a complete link reference definition from the front of a
// paragraph's raw text, registering each in refs (the first definition
// for a given normalized label wins; later ones are parsed only to be
// discarded, as CommonMark requires). It returns whatever raw lines
// remain once no further definition can be parsed at the front; a nil
// result means the paragraph was definitions all the way down and
// evaporates entirely.
func extractReferenceDefinitions(lines []string, refs map[string]ReferenceDefinition) []string {
	if len(lines) == 0 {
		return lines
	}
	text := joinRawLines(lines)
	for {
		label, dest, title, titlePresent, n, ok := extractOneReferenceDefinition(text)
		if !ok {
			break
		}
		if norm := NormalizeLabel(label); norm != "" {
			if _, exists := refs[norm]; !exists {
				refs[norm] = ReferenceDefinition{
					Destination:  dest,
					Title:        title,
					TitlePresent: titlePresent,
				}
			}
		}
		text = text[n:]
	}
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// extractOneReferenceDefinition attempts to parse a single link reference
// definition starting at text[0:], per spec.md's data model entry for
// reference definitions: `[label]: destination "title"` with the title
// optional and the whole thing preceded by 0-3 spaces of indentation.
// consumed is the number of bytes (including the trailing newline, if
// any) occupied by the definition.
func extractOneReferenceDefinition(text string) (label, destination, title string, titlePresent bool, consumed int, ok bool) {
	i := 0
	for i < len(text) && i < 3 && text[i] == ' ' {
		i++
	}

	lbl, end, okLabel := parseRefLabel(text, i)
	if !okLabel {
		return "", "", "", false, 0, false
	}
	i = end
	if i >= len(text) || text[i] != ':' {
		return "", "", "", false, 0, false
	}
	i++
	i = skipRefSpace(text, i)

	dest, end, okDest := parseRefDestination(text, i)
	if !okDest {
		return "", "", "", false, 0, false
	}
	afterDest := end

	spaceEnd := skipRefSpace(text, afterDest)
	if t, titleEnd, okTitle := parseRefTitle(text, spaceEnd); okTitle && spaceEnd > afterDest && restOfLineBlank(text, titleEnd) {
		return lbl, dest, t, true, advanceToLineEnd(text, titleEnd), true
	}
	if restOfLineBlank(text, afterDest) {
		return lbl, dest, "", false, advanceToLineEnd(text, afterDest), true
	}
	return "", "", "", false, 0, false
}

// parseRefLabel parses a `[...]` link label starting at s[i], returning
// its raw (un-unescaped) interior text. A label consisting only of
// whitespace, or containing an unescaped `[`, is rejected.
func parseRefLabel(s string, i int) (content string, end int, ok bool) {
	if i >= len(s) || s[i] != '[' {
		return "", i, false
	}
	var sb strings.Builder
	j := i + 1
	for j < len(s) {
		c := s[j]
		switch {
		case c == '\\' && j+1 < len(s):
			sb.WriteByte(c)
			sb.WriteByte(s[j+1])
			j += 2
		case c == ']':
			if strings.TrimSpace(sb.String()) == "" {
				return "", i, false
			}
			return sb.String(), j + 1, true
		case c == '[':
			return "", i, false
		default:
			sb.WriteByte(c)
			j++
		}
	}
	return "", i, false
}

// parseRefDestination parses a link destination at s[i]: either a
// `<...>`-delimited form or a bare run of non-whitespace characters with
// balanced parentheses. Backslash-escaped ASCII punctuation is resolved
// to the punctuation itself.
func parseRefDestination(s string, i int) (dest string, end int, ok bool) {
	if i < len(s) && s[i] == '<' {
		var sb strings.Builder
		j := i + 1
		for j < len(s) {
			c := s[j]
			switch {
			case c == '\\' && j+1 < len(s) && isASCIIPunctuation(s[j+1]):
				sb.WriteByte(s[j+1])
				j += 2
			case c == '>':
				return sb.String(), j + 1, true
			case c == '<' || c == '\n':
				return "", i, false
			default:
				sb.WriteByte(c)
				j++
			}
		}
		return "", i, false
	}

	var sb strings.Builder
	depth := 0
	j := i
loop:
	for j < len(s) {
		c := s[j]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c < 0x20:
			break loop
		case c == '\\' && j+1 < len(s) && isASCIIPunctuation(s[j+1]):
			sb.WriteByte(s[j+1])
			j += 2
		case c == '(':
			depth++
			sb.WriteByte(c)
			j++
		case c == ')':
			if depth == 0 {
				break loop
			}
			depth--
			sb.WriteByte(c)
			j++
		default:
			sb.WriteByte(c)
			j++
		}
	}
	if j == i {
		return "", i, false
	}
	return sb.String(), j, true
}

// parseRefTitle parses a title in any of its three delimited forms
// (`"..."`, `'...'`, `(...)`) starting at s[i]. A blank line inside the
// title (two consecutive newlines) invalidates it.
func parseRefTitle(s string, i int) (title string, end int, ok bool) {
	if i >= len(s) {
		return "", i, false
	}
	var closeChar byte
	switch s[i] {
	case '"':
		closeChar = '"'
	case '\'':
		closeChar = '\''
	case '(':
		closeChar = ')'
	default:
		return "", i, false
	}
	var sb strings.Builder
	j := i + 1
	consecutiveNewlines := 0
	for j < len(s) {
		c := s[j]
		switch {
		case c == '\\' && j+1 < len(s) && isASCIIPunctuation(s[j+1]):
			sb.WriteByte(s[j+1])
			j += 2
			consecutiveNewlines = 0
		case c == closeChar:
			return sb.String(), j + 1, true
		case c == '\n':
			consecutiveNewlines++
			if consecutiveNewlines > 1 {
				return "", i, false
			}
			sb.WriteByte(c)
			j++
		default:
			if c != ' ' && c != '\t' {
				consecutiveNewlines = 0
			}
			sb.WriteByte(c)
			j++
		}
	}
	return "", i, false
}

// skipRefSpace consumes spaces, tabs, and at most one line break,
// matching the whitespace CommonMark allows between a reference
// definition's label/colon, destination, and title.
func skipRefSpace(s string, i int) int {
	j := i
	sawNewline := false
	for j < len(s) {
		switch s[j] {
		case ' ', '\t':
			j++
		case '\n':
			if sawNewline {
				return j
			}
			sawNewline = true
			j++
		default:
			return j
		}
	}
	return j
}

func restOfLineBlank(s string, i int) bool {
	j := i
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	return j >= len(s) || s[j] == '\n'
}

func advanceToLineEnd(s string, i int) int {
	j := i
	for j < len(s) && s[j] != '\n' {
		j++
	}
	if j < len(s) {
		j++
	}
	return j
}
