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

// Package markdown provides a CommonMark-compatible Markdown engine:
// a block parser, an inline parser, and an HTML renderer, organized as
// the two pure entry points [Parse] and [Render].
package markdown

import "fmt"

// BlockKind is an enumeration of the kinds of [Block] a [Document] can hold.
type BlockKind uint8

const (
	BlockquoteKind BlockKind = 1 + iota
	ListKind
	ListItemKind
	ParagraphKind
	HeadingKind
	CodeBlockKind
	ThematicBreakKind
	HTMLBlockKind
)

//go:generate stringer -type=BlockKind -output=kind_string.go

// Block is a node of the block tree.
// Its exact set of meaningful fields depends on its [Kind]:
// see the package documentation's data model for the mapping.
//
// A Paragraph or Heading block is created by the block parser holding
// raw, unparsed text (see [Block.Raw]); the inline parser replaces that
// raw text with inline children in a single, explicit transition (see
// [Block.Finalize]). A Block that has not yet been finalized and one
// that has are never ambiguous: [Block.IsRaw] tells you which state
// you're looking at.
type Block struct {
	kind BlockKind

	// children holds block children for container kinds
	// (Blockquote, List, ListItem) and leaf children for the Document
	// root, which is represented as a bare *Block slice owned by Document.
	children []*Block

	// text holds the two-state raw/parsed text buffer for Paragraph and
	// Heading blocks.
	text textBuffer

	// Heading
	level int

	// List
	ordered    bool
	start      *int
	tight      bool
	bulletChar byte // '-', '+', '*' for bullets; '.' or ')' for ordered delimiters

	// CodeBlock
	info    string
	literal string
	fence   *Fence

	// HTMLBlock
	htmlLiteral string

	// ps holds parse-time-only bookkeeping. It is non-nil while the block
	// parser still considers the block open and is discarded (set to nil)
	// once the block closes, so a finished [Document]'s tree carries no
	// parser internals.
	ps *blockParseState
}

// Fence describes the fence marker that opened a fenced [CodeBlock].
// Indented code blocks have a nil Fence.
type Fence struct {
	Char   byte // '`' or '~'
	Length int

	// openIndent is the column (0-3) at which the opening fence itself
	// was indented; the same amount is stripped from each content line.
	openIndent int
}

// Kind reports the block's variant.
func (b *Block) Kind() BlockKind { return b.kind }

// Children returns the block's block children.
// It panics if called on a leaf block (Paragraph, Heading, CodeBlock,
// ThematicBreak, HTMLBlock); for a Paragraph or Heading use
// [Block.InlineChildren] instead.
func (b *Block) Children() []*Block {
	switch b.kind {
	case ParagraphKind, HeadingKind, CodeBlockKind, ThematicBreakKind, HTMLBlockKind:
		panic(fmt.Sprintf("markdown: Children called on %v block", b.kind))
	}
	return b.children
}

// IsRaw reports whether the block still holds unparsed raw text
// (true for a freshly block-parsed Paragraph or Heading).
// It is always false for non-text-bearing kinds.
func (b *Block) IsRaw() bool {
	return b.text.raw != nil
}

// Raw returns the accumulated raw text of a Paragraph or Heading
// that has not yet gone through the inline phase.
// It panics if the block has already been finalized or is not text-bearing.
func (b *Block) Raw() string {
	if b.text.raw == nil {
		panic("markdown: Raw called on finalized or non-text-bearing block")
	}
	return joinRawLines(b.text.raw)
}

// RawLines returns the individual accumulated source lines of a
// Paragraph or Heading that has not yet gone through the inline phase.
func (b *Block) RawLines() []string {
	return b.text.raw
}

// Finalize replaces a Paragraph or Heading's raw buffer with its parsed
// inline children. It panics if called twice.
func (b *Block) Finalize(children []*Inline) {
	b.text.finalize(children)
}

// InlineChildren returns the parsed inline children of a Paragraph or
// Heading. It panics if the block has not been finalized.
func (b *Block) InlineChildren() []*Inline {
	if b.text.raw != nil {
		panic("markdown: InlineChildren called before Finalize")
	}
	return b.text.children
}

// HeadingLevel returns the heading level (1-6) of a Heading block.
func (b *Block) HeadingLevel() int { return b.level }

// IsOrdered reports whether a List block is an ordered list.
func (b *Block) IsOrdered() bool { return b.ordered }

// Start returns the starting number of an ordered List,
// or nil if the list is unordered or starts at 1 implicitly.
func (b *Block) Start() *int { return b.start }

// IsTight reports whether a List is tight.
func (b *Block) IsTight() bool { return b.tight }

// BulletChar returns the bullet character ('-', '+', '*') of an
// unordered List, or the ordered delimiter ('.' or ')') of an ordered one.
func (b *Block) BulletChar() byte { return b.bulletChar }

// InfoString returns a CodeBlock's info string (the text after the
// opening fence, or empty for indented code blocks).
func (b *Block) InfoString() string { return b.info }

// Literal returns the literal text content of a CodeBlock or HTMLBlock.
func (b *Block) Literal() string {
	if b.kind == HTMLBlockKind {
		return b.htmlLiteral
	}
	return b.literal
}

// CodeFence returns the fence marker that opened a fenced CodeBlock,
// or nil for an indented code block.
func (b *Block) CodeFence() *Fence { return b.fence }

// textBuffer implements the explicit raw-to-inline state transition
// described by the package's data model: a Paragraph or Heading is raw
// (text.raw != nil) until Finalize is called exactly once, after which
// it is parsed (text.children holds the result) and can never return to
// the raw state.
type textBuffer struct {
	raw      []string
	children []*Inline
}

func (t *textBuffer) finalize(children []*Inline) {
	if t.raw == nil {
		panic("markdown: textBuffer already finalized")
	}
	t.raw = nil
	t.children = children
}

func joinRawLines(lines []string) string {
	n := 0
	for i, l := range lines {
		n += len(l)
		if i > 0 {
			n++
		}
	}
	buf := make([]byte, 0, n)
	for i, l := range lines {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, l...)
	}
	return string(buf)
}

// InlineKind is an enumeration of the kinds of [Inline] node.
type InlineKind uint8

const (
	TextKind InlineKind = 1 + iota
	EmphasisKind
	StrongKind
	CodeSpanKind
	LinkKind
	ImageKind
	LineBreakKind
	RawHTMLKind
)

//go:generate stringer -type=InlineKind -output=inline_kind_string.go

// Inline is a node of the inline tree, produced by the inline phase
// from a Paragraph or Heading's raw text.
type Inline struct {
	kind InlineKind

	text string // Text, CodeSpan, RawHTML literal content

	children []*Inline // Emphasis, Strong, Link (link text)

	// Link, Image
	url          string
	title        string
	titlePresent bool
	alt          string // Image only: the flattened plain-text of its children

	// LineBreak
	hard bool
}

// Kind reports the inline node's variant.
func (in *Inline) Kind() InlineKind { return in.kind }

// Text returns the literal text of a Text, CodeSpan, or RawHTML node.
func (in *Inline) Text() string { return in.text }

// Children returns the child inline nodes of an Emphasis, Strong, or Link.
func (in *Inline) Children() []*Inline { return in.children }

// Destination returns the link/image destination URL.
func (in *Inline) Destination() string { return in.url }

// Title returns the link/image title, and whether one was present at all
// (an empty title and no title are distinct: `[a](u "")` vs `[a](u)`).
func (in *Inline) Title() (title string, ok bool) { return in.title, in.titlePresent }

// Alt returns the flattened alt text of an Image.
func (in *Inline) Alt() string { return in.alt }

// Hard reports whether a LineBreak node is a hard line break
// (as opposed to a soft one).
func (in *Inline) Hard() bool { return in.hard }

// ReferenceDefinition is the destination and title of a
// link reference definition, as recorded in a [Document]'s References map.
type ReferenceDefinition struct {
	Destination  string
	Title        string
	TitlePresent bool
}

// Document is the root of a parsed Markdown AST, as returned by [Parse].
type Document struct {
	// Children holds the document's top-level block nodes.
	Children []*Block
	// References maps normalized reference labels (see [NormalizeLabel])
	// to the link reference definitions found while parsing.
	References map[string]ReferenceDefinition
}
