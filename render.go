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

import (
	"strconv"
	"strings"
)

// RenderAST walks doc depth-first and emits HTML. It never fails:
// malformed or incomplete nodes fall back to their best reasonable
// literal rendering, per the package's never-fail error-handling policy.
func RenderAST(doc *Document) string {
	sb := new(strings.Builder)
	r := &htmlRenderer{dst: sb}
	r.blocks(doc.Children)
	return sb.String()
}

type htmlRenderer struct {
	dst *strings.Builder
}

func (r *htmlRenderer) blocks(blocks []*Block) {
	for i, b := range blocks {
		if i > 0 {
			r.dst.WriteByte('\n')
		}
		r.block(b)
	}
}

func (r *htmlRenderer) block(b *Block) {
	switch b.kind {
	case ParagraphKind:
		r.dst.WriteString("<p>")
		r.inlines(b.InlineChildren())
		r.dst.WriteString("</p>")
	case HeadingKind:
		tag := "h" + strconv.Itoa(b.level)
		r.dst.WriteByte('<')
		r.dst.WriteString(tag)
		r.dst.WriteByte('>')
		r.inlines(b.InlineChildren())
		r.dst.WriteString("</")
		r.dst.WriteString(tag)
		r.dst.WriteByte('>')
	case BlockquoteKind:
		r.dst.WriteString("<blockquote>\n")
		r.children(b.children, false)
		if len(b.children) > 0 {
			r.dst.WriteByte('\n')
		}
		r.dst.WriteString("</blockquote>")
	case ListKind:
		if b.ordered {
			r.dst.WriteString("<ol")
			if b.start != nil {
				r.dst.WriteString(` start="`)
				r.dst.WriteString(strconv.Itoa(*b.start))
				r.dst.WriteByte('"')
			}
			r.dst.WriteString(">\n")
		} else {
			r.dst.WriteString("<ul>\n")
		}
		for i, item := range b.children {
			if i > 0 {
				r.dst.WriteByte('\n')
			}
			// Block content sits on its own lines inside <li>; a tight
			// item's bare paragraph text stays on the tag's line.
			r.dst.WriteString("<li>")
			if n := len(item.children); n > 0 && !(b.tight && item.children[0].kind == ParagraphKind) {
				r.dst.WriteByte('\n')
			}
			r.children(item.children, b.tight)
			if n := len(item.children); n > 0 && !(b.tight && item.children[n-1].kind == ParagraphKind) {
				r.dst.WriteByte('\n')
			}
			r.dst.WriteString("</li>")
		}
		r.dst.WriteByte('\n')
		if b.ordered {
			r.dst.WriteString("</ol>")
		} else {
			r.dst.WriteString("</ul>")
		}
	case ListItemKind:
		// Reached only if a ListItem is rendered outside of its
		// enclosing List's loop above; render it loose, since
		// tightness is meaningless without that context.
		r.dst.WriteString("<li>")
		r.children(b.children, false)
		r.dst.WriteString("</li>")
	case CodeBlockKind:
		r.dst.WriteString("<pre><code")
		if lang := fenceLanguage(b.info); lang != "" {
			r.dst.WriteString(` class="language-`)
			escapeAttribute(r.dst, lang)
			r.dst.WriteByte('"')
		}
		r.dst.WriteByte('>')
		escapeHTML(r.dst, b.literal)
		r.dst.WriteString("</code></pre>")
	case ThematicBreakKind:
		r.dst.WriteString("<hr />")
	case HTMLBlockKind:
		r.dst.WriteString(b.htmlLiteral)
	}
}

// children renders b's block children wrapped in their own lines. When
// tight is true and a child is a bare Paragraph, its inline content is
// emitted without the surrounding <p>, per the tight-list rendering
// rule (spec.md §4.4).
func (r *htmlRenderer) children(blocks []*Block, tight bool) {
	for i, c := range blocks {
		if i > 0 {
			r.dst.WriteByte('\n')
		}
		if tight && c.kind == ParagraphKind {
			r.inlines(c.InlineChildren())
		} else {
			r.block(c)
		}
	}
}

func fenceLanguage(info string) string {
	info = strings.TrimSpace(info)
	if info == "" {
		return ""
	}
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		return info[:i]
	}
	return info
}

func (r *htmlRenderer) inlines(inlines []*Inline) {
	for _, in := range inlines {
		r.inline(in)
	}
}

func (r *htmlRenderer) inline(in *Inline) {
	switch in.kind {
	case TextKind:
		escapeHTML(r.dst, in.text)
	case EmphasisKind:
		r.dst.WriteString("<em>")
		r.inlines(in.children)
		r.dst.WriteString("</em>")
	case StrongKind:
		r.dst.WriteString("<strong>")
		r.inlines(in.children)
		r.dst.WriteString("</strong>")
	case CodeSpanKind:
		r.dst.WriteString("<code>")
		escapeHTML(r.dst, in.text)
		r.dst.WriteString("</code>")
	case LinkKind:
		r.dst.WriteString(`<a href="`)
		escapeAttribute(r.dst, NormalizeURL(in.url))
		r.dst.WriteByte('"')
		if in.titlePresent {
			r.dst.WriteString(` title="`)
			escapeAttribute(r.dst, in.title)
			r.dst.WriteByte('"')
		}
		r.dst.WriteByte('>')
		r.inlines(in.children)
		r.dst.WriteString("</a>")
	case ImageKind:
		r.dst.WriteString(`<img src="`)
		escapeAttribute(r.dst, NormalizeURL(in.url))
		r.dst.WriteString(`" alt="`)
		escapeAttribute(r.dst, in.alt)
		r.dst.WriteByte('"')
		if in.titlePresent {
			r.dst.WriteString(` title="`)
			escapeAttribute(r.dst, in.title)
			r.dst.WriteByte('"')
		}
		r.dst.WriteString(" />")
	case LineBreakKind:
		if in.hard {
			r.dst.WriteString("<br />\n")
		} else {
			r.dst.WriteByte('\n')
		}
	case RawHTMLKind:
		r.dst.WriteString(in.text)
	}
}
