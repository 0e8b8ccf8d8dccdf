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

// maxContainerDepth bounds the number of nested containers the block
// parser will open, guarding against unbounded recursion/allocation on
// pathological input (see the package's concurrency & resource notes).
// Exceeding it stops opening new containers; already-open ones still
// close normally, so parsing always terminates with a (truncated) tree
// rather than failing outright.
const maxContainerDepth = 1000

// blockParseState is the parser's scratch bookkeeping for a still-open
// block. See [Block.ps].
type blockParseState struct {
	// ListItem: column where the item's content begins.
	contentIndent int

	// FencedCodeBlock
	fenceChar byte
	fenceLen  int

	// HTMLBlock: which of the seven CommonMark conditions opened it.
	htmlCond int
}

// parseBlocks runs the block phase over already-normalized lines and
// returns the resulting top-level blocks along with the reference
// definitions collected while closing paragraphs.
func parseBlocks(lines []string) ([]*Block, map[string]ReferenceDefinition) {
	p := &blockParser{
		refs: make(map[string]ReferenceDefinition),
	}
	for _, line := range lines {
		p.processLine(line)
	}
	p.closeAll()
	return p.top, p.refs
}

type blockParser struct {
	top  []*Block // finished top-level blocks, in document order
	open []*Block // stack of currently open containers/leaf, root to tip
	refs map[string]ReferenceDefinition
}

// appendChild appends child to the children of the block at open[idx],
// or to the document's top-level blocks if idx < 0.
func (p *blockParser) appendChild(idx int, child *Block) {
	if idx < 0 {
		p.top = append(p.top, child)
		return
	}
	parent := p.open[idx]
	parent.children = append(parent.children, child)
}

// closeFrom closes every open block from index idx to the tip, in LIFO
// order, running any kind-specific close logic (paragraph reference
// extraction, trimming an indented code block's trailing blank lines)
// and appending each to its parent.
func (p *blockParser) closeFrom(idx int) {
	for i := len(p.open) - 1; i >= idx; i-- {
		b := p.open[i]
		p.finishBlock(b)
		kept := resolvedOrNil(b)
		b.ps = nil
		if i == 0 {
			p.top = append(p.top, kept...)
		} else {
			parent := p.open[i-1]
			parent.children = append(parent.children, kept...)
		}
	}
	p.open = p.open[:idx]
}

func (p *blockParser) closeAll() {
	p.closeFrom(0)
}

// resolvedOrNil returns a one-element slice containing b,
// or no elements if b is a reference-only paragraph that evaporated.
func resolvedOrNil(b *Block) []*Block {
	if b.kind == ParagraphKind && b.ps != nil && b.ps.contentIndent == paragraphEvaporated {
		return nil
	}
	return []*Block{b}
}

const paragraphEvaporated = -1

// finishBlock runs kind-specific close logic for b, which is about to
// leave the open stack.
func (p *blockParser) finishBlock(b *Block) {
	switch b.kind {
	case ParagraphKind:
		remaining := extractReferenceDefinitions(b.text.raw, p.refs)
		if len(remaining) == 0 {
			b.ps.contentIndent = paragraphEvaporated
			return
		}
		b.text.raw = remaining
	case CodeBlockKind:
		if b.fence == nil {
			// Trailing blank lines are not part of an indented code block.
			b.literal = strings.TrimRight(b.literal, "\n") + "\n"
		}
	}
}

// processLine runs both parser passes for a single line of input.
func (p *blockParser) processLine(line string) {
	cur := lineCursor{text: line}

	// Pass A: match existing open containers as far as possible.
	matched := p.matchContainers(&cur)

	// Pass B: open new containers on the unconsumed remainder, or feed
	// the remainder to the deepest matched container.
	p.openNewBlocks(&cur, matched)
}

// lineCursor tracks the unconsumed remainder of the current line as
// containers consume their prefixes.
type lineCursor struct {
	text string // full original line
	pos  int    // index into text of the first unconsumed byte
}

func (c *lineCursor) rest() string  { return c.text[c.pos:] }
func (c *lineCursor) blank() bool   { return isBlankLine(c.rest()) }
func (c *lineCursor) advance(n int) { c.pos += n }

// matchContainers implements CommonMark "Phase 1, step 1": descend the
// open container stack as far as the current line continues each one,
// consuming container-marker prefixes (blockquote markers, list-item
// indentation) as it goes. It returns the number of containers matched;
// callers must close anything beyond that before opening new blocks.
func (p *blockParser) matchContainers(cur *lineCursor) int {
	matched := 0
	for matched < len(p.open) {
		b := p.open[matched]
		switch b.kind {
		case BlockquoteKind:
			if !consumeBlockquoteMarker(cur) {
				return matched
			}
		case ListItemKind:
			if cur.blank() {
				// Blank lines continue a list item without consuming indentation.
			} else if indentWidth(cur.rest()) >= b.ps.contentIndent {
				cur.advance(b.ps.contentIndent)
			} else {
				return matched
			}
		case ListKind:
			// Lists themselves impose no continuation test; their open
			// ListItem child (matched separately) does.
		case CodeBlockKind:
			if b.fence != nil {
				// Fenced code blocks swallow every line until their
				// closing fence; that's handled in openNewBlocks once
				// we know this is the deepest matched container.
			} else if !(cur.blank() || indentWidth(cur.rest()) >= 4) {
				return matched
			}
		case ParagraphKind:
			if cur.blank() {
				return matched
			}
			// Whether a non-blank line continues the paragraph (lazy
			// continuation) is decided by openNewBlocks, since it
			// depends on whether the line opens a new block first.
		case HTMLBlockKind:
			// Whether this line continues or closes the block depends
			// on its content, not a prefix this pass can consume;
			// openNewBlocks decides once it's confirmed to be the
			// deepest matched container, mirroring fenced code blocks.
		}
		matched++
	}
	return matched
}

func consumeBlockquoteMarker(cur *lineCursor) bool {
	rest := cur.rest()
	indent := indentWidth(rest)
	if indent > 3 {
		return false
	}
	rest = rest[indent:]
	if len(rest) == 0 || rest[0] != '>' {
		return false
	}
	n := indent + 1
	if n < len(cur.text)-cur.pos && cur.text[cur.pos+n] == ' ' {
		n++
	}
	cur.advance(n)
	return true
}

// openNewBlocks implements CommonMark "Phase 1, step 2": having matched
// `matched` containers, try to open new block starts on the remainder;
// if a fenced/indented code block is the deepest matched container, or
// nothing new opens, the remainder is fed to it (or to a paragraph) as text.
func (p *blockParser) openNewBlocks(cur *lineCursor, matched int) {
	deepestIdx := matched - 1

	// A fenced code block absorbs every line verbatim until its closing
	// fence, without ever considering new block starts.
	if deepestIdx >= 0 && p.open[deepestIdx].kind == CodeBlockKind && p.open[deepestIdx].fence != nil {
		p.feedFencedCode(cur, deepestIdx)
		return
	}

	// An open HTML block absorbs every line verbatim until its own
	// closing condition fires, without ever considering new block starts.
	if deepestIdx >= 0 && p.open[deepestIdx].kind == HTMLBlockKind {
		p.feedHTMLBlock(cur, deepestIdx)
		return
	}

	// An open indented code block takes each further non-blank line,
	// which matchContainers has already found to be indented 4+ columns.
	if deepestIdx >= 0 && p.open[deepestIdx].kind == CodeBlockKind && !cur.blank() {
		p.open[deepestIdx].literal += stripIndent(cur.rest(), 4) + "\n"
		return
	}

	lazyParagraph := matched < len(p.open) && !cur.blank() &&
		findTipKind(p.open) == ParagraphKind
	if lazyParagraph {
		// A line that starts a new block is not a continuation line. The
		// block starts are tried on a scratch parser so nothing is mutated.
		probe, pc := &blockParser{}, *cur
		indent := indentWidth(pc.rest())
		lazyParagraph = !(tryThematicBreak(probe, &pc, indent) || tryATXHeading(probe, &pc, indent) ||
			tryFencedCodeOpen(probe, &pc, indent) || tryBlockquoteOpen(probe, &pc, indent) ||
			tryListOpen(probe, &pc, indent) || tryHTMLBlockOpen(probe, &pc, indent))
	}
	if lazyParagraph {
		// Paragraph continuation text: a non-blank line that failed to
		// continue some container still continues the innermost open
		// paragraph, without closing anything.
		p.appendParagraphLine(cur.rest())
		return
	}

	p.closeFrom(matched)
	deepestIdx = len(p.open) - 1

	if cur.blank() {
		p.handleBlankLine(deepestIdx)
		return
	}

	// Indented code can only start when no paragraph is currently open
	// (lazy continuation owns that case) and the remainder is indented
	// at least 4 columns.
	for {
		if len(p.open) >= maxContainerDepth {
			break
		}
		rest := cur.rest()
		indent := indentWidth(rest)

		switch {
		case trySetextHeading(p, cur):
			return
		case tryThematicBreak(p, cur, indent):
			return
		case tryATXHeading(p, cur, indent):
			return
		case tryFencedCodeOpen(p, cur, indent):
			return
		case tryBlockquoteOpen(p, cur, indent):
			continue
		case tryListOpen(p, cur, indent):
			continue
		case indent >= 4 && !hasOpenParagraph(p.open):
			openIndentedCodeBlock(p, cur)
			return
		case tryHTMLBlockOpen(p, cur, indent):
			return
		}
		break
	}

	// Nothing opened: the line becomes paragraph text.
	p.appendParagraphLine(strings.TrimLeft(cur.rest(), " "))
}

func findTipKind(open []*Block) BlockKind {
	if len(open) == 0 {
		return 0
	}
	return open[len(open)-1].kind
}

func hasOpenParagraph(open []*Block) bool {
	return findTipKind(open) == ParagraphKind
}

// handleBlankLine implements §4.2.1: a blank line closes an open
// paragraph, is absorbed by an open indented code block (fenced code
// blocks take their blank lines in feedFencedCode), and otherwise
// just marks the enclosing list (if any) as loose without closing anything.
//
// A list is loose if a blank line separates two of its blocks: either
// between successive items, or between two blocks inside the same item.
// This is approximated here by marking a List loose as soon as a blank
// line is seen while that list (or its currently open item) already
// holds some content; a blank line immediately before the whole list
// ends is the one case this over-counts as loose, a simplification this
// engine accepts.
func (p *blockParser) handleBlankLine(deepestIdx int) {
	if deepestIdx < 0 {
		return
	}
	tip := p.open[deepestIdx]
	switch tip.kind {
	case ParagraphKind:
		p.closeFrom(deepestIdx)
		deepestIdx = len(p.open) - 1
	case CodeBlockKind:
		tip.literal += "\n"
	}
	for i := deepestIdx; i >= 0; i-- {
		list := p.open[i]
		if list.kind != ListKind {
			continue
		}
		hasPriorItem := len(list.children) > 0
		hasContentInCurrentItem := false
		if i+1 < len(p.open) && p.open[i+1].kind == ListItemKind {
			item := p.open[i+1]
			hasContentInCurrentItem = len(item.children) > 0 || i+2 < len(p.open)
		}
		if hasPriorItem || hasContentInCurrentItem {
			list.tight = false
		}
	}
}

func (p *blockParser) appendParagraphLine(text string) {
	if len(p.open) == 0 || p.open[len(p.open)-1].kind != ParagraphKind {
		p.pushBlock(&Block{
			kind: ParagraphKind,
			text: textBuffer{raw: []string{}},
			ps:   &blockParseState{},
		})
	}
	tip := p.open[len(p.open)-1]
	tip.text.raw = append(tip.text.raw, text)
}

func (p *blockParser) pushBlock(b *Block) {
	// Opening any new block ends an open paragraph: a paragraph never
	// holds block children.
	if n := len(p.open); n > 0 && p.open[n-1].kind == ParagraphKind {
		p.closeFrom(n - 1)
	}
	p.open = append(p.open, b)
}

func (p *blockParser) feedFencedCode(cur *lineCursor, idx int) {
	tip := p.open[idx]
	rest := cur.rest()
	if closed, _ := matchClosingFence(rest, tip.ps.fenceChar, tip.ps.fenceLen); closed {
		p.closeFrom(idx)
		return
	}
	// Strip up to the fence's own indentation, if present.
	stripped := stripIndent(rest, fenceOpenIndent(tip))
	tip.literal += stripped + "\n"
}

func fenceOpenIndent(b *Block) int { return b.fence.openIndent }

// feedHTMLBlock appends the current line to an open HTML block and closes
// it if the line satisfies the block's condition-specific closing rule
// (see htmlBlockCloses). Conditions 4, 6, and 7 close on a blank line that
// itself is not part of the block's content; the other conditions close
// on a line that is included verbatim before the block ends.
func (p *blockParser) feedHTMLBlock(cur *lineCursor, idx int) {
	tip := p.open[idx]
	line := cur.rest()
	cond := tip.ps.htmlCond
	if isBlankLine(line) && htmlBlockCloses(cond, line) {
		p.closeFrom(idx)
		return
	}
	tip.htmlLiteral += line + "\n"
	if htmlBlockCloses(cond, line) {
		p.closeFrom(idx)
	}
}

func stripIndent(line string, n int) string {
	i := 0
	for i < n && i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}
