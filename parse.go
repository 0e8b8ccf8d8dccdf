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

import "sort"

// Parse runs the block phase followed by the inline phase over markdown
// and returns the resulting [Document]. It is a pure function: it reads
// no global state, and two calls with the same input always produce
// equal trees.
func Parse(markdown string) *Document {
	lines := splitLines(markdown)
	topBlocks, refs := parseBlocks(lines)
	if refs == nil {
		refs = make(map[string]ReferenceDefinition)
	}
	finalizeInlines(topBlocks, refs)
	return &Document{Children: topBlocks, References: refs}
}

// Render parses markdown and renders it straight to HTML, equivalent to
// RenderAST(Parse(markdown)) but named for the common case that doesn't
// need the intermediate [Document].
func Render(markdown string) string {
	return RenderAST(Parse(markdown))
}

// finalizeInlines walks the freshly block-parsed tree and runs the
// inline phase over every raw Paragraph and Heading it finds, using an
// explicit stack rather than recursion so a pathologically deep
// document can't grow the Go call stack. Finalize order between
// siblings doesn't matter: no block's inline parse depends on another's.
func finalizeInlines(top []*Block, refs map[string]ReferenceDefinition) {
	stack := append([]*Block(nil), top...)
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch b.kind {
		case ParagraphKind, HeadingKind:
			b.Finalize(parseInlines(b.Raw(), refs))
		default:
			stack = append(stack, b.children...)
		}
	}
}

// defaultPriority is the priority a [Transform] or [PostProcess] runs at
// when its Priority field is left at its zero value.
const defaultPriority = 50

// Transform is an AST transform hook: a pure function from one Document
// to another, run by [ApplyTransforms]. A plugin registers one of these
// per tree-level rewrite it wants to make (adding IDs to headings,
// rewriting image URLs, stripping a section, and so on) instead of
// reaching into package-level state, so the rewrite stays composable and
// order-controlled by Priority alone.
type Transform struct {
	Fn func(*Document) *Document
	// Priority controls ordering when several transforms run together:
	// lower values run first. The zero value means defaultPriority.
	Priority int
}

// ApplyTransforms runs each of transforms over doc in priority order
// (lower first; equal priorities keep their slice order) and returns the
// final Document. It does not mutate the transforms slice.
func ApplyTransforms(doc *Document, transforms []Transform) *Document {
	ordered := make([]Transform, len(transforms))
	copy(ordered, transforms)
	sort.SliceStable(ordered, func(i, j int) bool {
		return transformPriority(ordered[i]) < transformPriority(ordered[j])
	})
	for _, t := range ordered {
		doc = t.Fn(doc)
	}
	return doc
}

func transformPriority(t Transform) int {
	if t.Priority == 0 {
		return defaultPriority
	}
	return t.Priority
}

// PostProcess is a renderer post-process hook: a pure function from
// rendered HTML to rewritten HTML, run by [ApplyPostProcess] after
// [RenderAST]. Use this for output-level rewrites (wrapping code blocks
// in a custom container, rewriting relative links) that are easier to
// express as string surgery than as an AST transform.
type PostProcess struct {
	Fn func(string) string
	// Priority controls ordering the same way as [Transform.Priority].
	Priority int
}

// ApplyPostProcess runs each of hooks over html in priority order (lower
// first; equal priorities keep their slice order) and returns the final
// string. It does not mutate the hooks slice.
func ApplyPostProcess(html string, hooks []PostProcess) string {
	ordered := make([]PostProcess, len(hooks))
	copy(ordered, hooks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return postProcessPriority(ordered[i]) < postProcessPriority(ordered[j])
	})
	for _, h := range ordered {
		html = h.Fn(html)
	}
	return html
}

func postProcessPriority(h PostProcess) int {
	if h.Priority == 0 {
		return defaultPriority
	}
	return h.Priority
}
