// Copyright 2024 Ross Light
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

// Node is either a *Block or an *Inline, the two node kinds a [Document]
// is built from. It lets [Walk] traverse both halves of the tree with a
// single iterative algorithm instead of heavy recursion through each
// kind's own children accessor.
type Node interface {
	childCount() int
	child(i int) Node
}

func (b *Block) childCount() int {
	if b.IsRaw() {
		return 0
	}
	switch b.kind {
	case ParagraphKind, HeadingKind:
		return len(b.InlineChildren())
	case CodeBlockKind, ThematicBreakKind, HTMLBlockKind:
		return 0
	default:
		return len(b.children)
	}
}

func (b *Block) child(i int) Node {
	switch b.kind {
	case ParagraphKind, HeadingKind:
		return b.InlineChildren()[i]
	default:
		return b.children[i]
	}
}

func (in *Inline) childCount() int { return len(in.children) }
func (in *Inline) child(i int) Node { return in.children[i] }

// documentNode adapts a [Document]'s top-level block slice to [Node] so
// [Walk] can start from the document root.
type documentNode struct {
	doc *Document
}

func (d documentNode) childCount() int  { return len(d.doc.Children) }
func (d documentNode) child(i int) Node { return d.doc.Children[i] }

// Cursor describes the [Node] currently visited by [Walk].
type Cursor struct {
	node   Node
	parent Node
	index  int
}

// Node returns the node currently being visited.
func (c *Cursor) Node() Node { return c.node }

// Parent returns the parent of the current node, or nil at the root.
func (c *Cursor) Parent() Node { return c.parent }

// Index returns the current node's position among its parent's
// children, or -1 at the root.
func (c *Cursor) Index() int { return c.index }

// WalkOptions configures [Walk].
type WalkOptions struct {
	// Pre, if non-nil, runs before a node's children are visited
	// (pre-order). Returning false skips the node's children and Post.
	Pre func(c *Cursor) bool
	// Post, if non-nil, runs after a node's children are visited
	// (post-order). Returning false stops the walk entirely.
	Post func(c *Cursor) bool
}

// Walk traverses a [Document], starting from its root, depth-first using an
// explicit stack, so that even pathologically deep trees (see the
// package's nesting-depth cap) never grow the Go call stack.
func Walk(doc *Document, opts WalkOptions) {
	walk(documentNode{doc}, opts)
}

func walk(root Node, opts WalkOptions) {
	type frame struct {
		Cursor
		post bool
	}
	stack := []frame{{Cursor: Cursor{node: root, index: -1}}}
	cur := new(Cursor)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.post {
			if opts.Post != nil {
				*cur = top.Cursor
				if !opts.Post(cur) {
					return
				}
			}
			continue
		}
		if opts.Pre != nil {
			*cur = top.Cursor
			if !opts.Pre(cur) {
				continue
			}
		}
		top.post = true
		stack = append(stack, top)
		for i := top.node.childCount() - 1; i >= 0; i-- {
			stack = append(stack, frame{Cursor: Cursor{
				parent: top.node,
				node:   top.node.child(i),
				index:  i,
			}})
		}
	}
}
