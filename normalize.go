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

// tabStopSize is the multiple of columns that a tab advances to.
// https://spec.commonmark.org/0.30/#tabs
const tabStopSize = 4

// splitLines normalizes line endings (CR and CRLF both become LF),
// expands tabs to spaces on 4-column tab stops, and splits the result
// into lines with the line terminators stripped.
//
// Tabs are expanded eagerly across the whole line rather than only in
// leading whitespace. This is simpler than tracking virtual tab stops
// through the block parser and produces identical results for every
// construct this engine recognizes.
func splitLines(src string) []string {
	src = normalizeNewlines(src)
	// A final line terminator ends the last line; it does not start an
	// empty one.
	src = strings.TrimSuffix(src, "\n")
	rawLines := strings.Split(src, "\n")
	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = expandTabs(l)
	}
	return lines
}

func normalizeNewlines(src string) string {
	if !strings.ContainsAny(src, "\r") {
		return src
	}
	sb := new(strings.Builder)
	sb.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\r' {
			sb.WriteByte('\n')
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	sb := new(strings.Builder)
	sb.Grow(len(line) + 8)
	col := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\t' {
			spaces := tabStopSize - col%tabStopSize
			for j := 0; j < spaces; j++ {
				sb.WriteByte(' ')
			}
			col += spaces
			continue
		}
		sb.WriteByte(c)
		col++
	}
	return sb.String()
}

func isBlankLine(line string) bool {
	return strings.TrimLeft(line, " \t") == ""
}

func indentWidth(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func isASCIIDigit(c byte) bool { return '0' <= c && c <= '9' }
func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
func isASCIIAlnum(c byte) bool { return isASCIILetter(c) || isASCIIDigit(c) }

func isASCIIPunctuation(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	}
	return false
}
