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

// trySetextHeading implements spec.md §4.2 Pass B item 1.
func trySetextHeading(p *blockParser, cur *lineCursor) bool {
	if len(p.open) == 0 {
		return false
	}
	tip := p.open[len(p.open)-1]
	if tip.kind != ParagraphKind || len(tip.text.raw) == 0 {
		return false
	}
	rest := cur.rest()
	indent := indentWidth(rest)
	if indent > 3 {
		return false
	}
	line := rest[indent:]
	if line == "" {
		return false
	}
	c := line[0]
	if c != '=' && c != '-' {
		return false
	}
	i := 0
	for i < len(line) && line[i] == c {
		i++
	}
	if strings.Trim(line[i:], " \t") != "" {
		return false
	}

	tip.kind = HeadingKind
	if c == '=' {
		tip.level = 1
	} else {
		tip.level = 2
	}
	p.closeFrom(len(p.open) - 1)
	cur.advance(len(cur.rest()))
	return true
}

// tryThematicBreak implements spec.md §4.2 Pass B item 2.
func tryThematicBreak(p *blockParser, cur *lineCursor, indent int) bool {
	if indent > 3 {
		return false
	}
	line := cur.rest()[indent:]
	if line == "" {
		return false
	}
	c := line[0]
	if c != '*' && c != '-' && c != '_' {
		return false
	}
	count := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case c:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	if count < 3 {
		return false
	}
	tb := &Block{kind: ThematicBreakKind, ps: &blockParseState{}}
	p.pushBlock(tb)
	p.closeFrom(len(p.open) - 1)
	cur.advance(len(cur.rest()))
	return true
}

// tryATXHeading implements spec.md §4.2 Pass B item 3.
func tryATXHeading(p *blockParser, cur *lineCursor, indent int) bool {
	if indent > 3 {
		return false
	}
	line := cur.rest()[indent:]
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	after := line[n:]
	if after != "" && after[0] != ' ' && after[0] != '\t' {
		return false
	}
	text := strings.Trim(after, " \t")
	if trimmed := strings.TrimRight(text, "#"); trimmed != text {
		if trimmed == "" || strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
			text = strings.TrimRight(trimmed, " \t")
		}
	}
	h := &Block{
		kind:  HeadingKind,
		level: n,
		text:  textBuffer{raw: []string{text}},
		ps:    &blockParseState{},
	}
	p.pushBlock(h)
	p.closeFrom(len(p.open) - 1)
	cur.advance(len(cur.rest()))
	return true
}

// tryFencedCodeOpen implements spec.md §4.2 Pass B item 4.
func tryFencedCodeOpen(p *blockParser, cur *lineCursor, indent int) bool {
	if indent > 3 {
		return false
	}
	line := cur.rest()[indent:]
	if line == "" {
		return false
	}
	c := line[0]
	if c != '`' && c != '~' {
		return false
	}
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	if n < 3 {
		return false
	}
	info := strings.Trim(line[n:], " \t")
	if c == '`' && strings.ContainsRune(info, '`') {
		return false
	}
	block := &Block{
		kind:  CodeBlockKind,
		info:  info,
		fence: &Fence{Char: c, Length: n, openIndent: indent},
		ps:    &blockParseState{fenceChar: c, fenceLen: n},
	}
	p.pushBlock(block)
	cur.advance(len(cur.rest()))
	return true
}

// matchClosingFence reports whether line closes a fence of the given
// character and minimum length, per spec.md §4.2.3.
func matchClosingFence(line string, char byte, minLen int) (closed bool, length int) {
	indent := indentWidth(line)
	if indent > 3 {
		return false, 0
	}
	rest := line[indent:]
	n := 0
	for n < len(rest) && rest[n] == char {
		n++
	}
	if n < minLen || n == 0 {
		return false, 0
	}
	if strings.Trim(rest[n:], " \t") != "" {
		return false, 0
	}
	return true, n
}

// tryBlockquoteOpen implements spec.md §4.2 Pass B item 5.
func tryBlockquoteOpen(p *blockParser, cur *lineCursor, indent int) bool {
	if indent > 3 {
		return false
	}
	rest := cur.rest()[indent:]
	if rest == "" || rest[0] != '>' {
		return false
	}
	n := indent + 1
	if n < len(cur.rest()) && cur.rest()[n] == ' ' {
		n++
	}
	bq := &Block{kind: BlockquoteKind, ps: &blockParseState{}}
	p.pushBlock(bq)
	cur.advance(n)
	return true
}

type listMarker struct {
	ordered    bool
	bulletChar byte
	start      int
	width      int // number of bytes the marker itself (digits+delim, or the bullet) occupies
}

// parseListMarker recognizes a list marker at the start of line, per
// spec.md §4.2 Pass B item 6: a bullet character followed by
// space/tab/EOL, or 1-9 ASCII digits followed by `.`/`)` then
// space/tab/EOL.
func parseListMarker(line string) (m listMarker, ok bool) {
	if line == "" {
		return m, false
	}
	switch line[0] {
	case '-', '+', '*':
		if len(line) > 1 && line[1] != ' ' && line[1] != '\t' {
			return m, false
		}
		return listMarker{bulletChar: line[0], width: 1}, true
	}
	digitsEnd := 0
	for digitsEnd < len(line) && digitsEnd < 9 && isASCIIDigit(line[digitsEnd]) {
		digitsEnd++
	}
	if digitsEnd == 0 || digitsEnd >= len(line) {
		return m, false
	}
	if line[digitsEnd] != '.' && line[digitsEnd] != ')' {
		return m, false
	}
	delim := line[digitsEnd]
	afterDelim := digitsEnd + 1
	if afterDelim < len(line) && line[afterDelim] != ' ' && line[afterDelim] != '\t' {
		return m, false
	}
	start := 0
	for _, c := range []byte(line[:digitsEnd]) {
		start = start*10 + int(c-'0')
	}
	return listMarker{ordered: true, bulletChar: delim, start: start, width: afterDelim}, true
}

// tryListOpen implements spec.md §4.2 Pass B item 6.
func tryListOpen(p *blockParser, cur *lineCursor, indent int) bool {
	if indent > 3 {
		return false
	}
	line := cur.rest()[indent:]
	marker, ok := parseListMarker(line)
	if !ok {
		return false
	}

	sameList := false
	if len(p.open) > 0 {
		top := p.open[len(p.open)-1]
		if top.kind == ListKind && top.ordered == marker.ordered && top.bulletChar == marker.bulletChar {
			sameList = true
		}
	}

	var list *Block
	if sameList {
		list = p.open[len(p.open)-1]
	} else {
		var start *int
		if marker.ordered && marker.start != 1 {
			s := marker.start
			start = &s
		}
		list = &Block{
			kind:       ListKind,
			ordered:    marker.ordered,
			bulletChar: marker.bulletChar,
			start:      start,
			tight:      true,
			ps:         &blockParseState{},
		}
		p.pushBlock(list)
	}

	afterMarker := line[marker.width:]
	spacesAfter := 0
	for spacesAfter < len(afterMarker) && afterMarker[spacesAfter] == ' ' {
		spacesAfter++
	}
	restAfterSpaces := afterMarker[spacesAfter:]

	var contentIndent int
	switch {
	case restAfterSpaces == "":
		contentIndent = indent + marker.width + 1
	case spacesAfter >= 1 && spacesAfter <= 4:
		contentIndent = indent + marker.width + spacesAfter
	default: // spacesAfter >= 5
		contentIndent = indent + marker.width + 1
	}

	item := &Block{kind: ListItemKind, ps: &blockParseState{contentIndent: contentIndent}}
	p.pushBlock(item)
	cur.advance(min(contentIndent, len(cur.rest())))
	return true
}

func openIndentedCodeBlock(p *blockParser, cur *lineCursor) {
	block := &Block{kind: CodeBlockKind, ps: &blockParseState{}}
	p.pushBlock(block)
	block.literal = stripIndent(cur.rest(), 4) + "\n"
	cur.advance(len(cur.rest()))
}

// tryHTMLBlockOpen implements spec.md §4.2 Pass B item 8.
func tryHTMLBlockOpen(p *blockParser, cur *lineCursor, indent int) bool {
	if indent > 3 {
		return false
	}
	line := cur.rest()[indent:]
	cond, ok := matchHTMLBlockStart(line)
	if !ok {
		return false
	}
	block := &Block{kind: HTMLBlockKind, ps: &blockParseState{htmlCond: cond}}
	p.pushBlock(block)
	block.htmlLiteral = line + "\n"
	cur.advance(len(cur.rest()))
	if htmlBlockCloses(cond, line) {
		p.closeFrom(len(p.open) - 1)
	}
	return true
}
