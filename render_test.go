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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/brandon-schabel/notey-md/internal/htmltest"
)

func TestRenderEscaping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"AngleBrackets", "a < b > c", "<p>a &lt; b &gt; c</p>"},
		{"Ampersand", "Tom & Jerry", "<p>Tom &amp; Jerry</p>"},
		{"CodeBlockEscaping", "```\n<b>&</b>\n```\n", "<pre><code>&lt;b&gt;&amp;&lt;/b&gt;\n</code></pre>"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Render(test.input); got != test.want {
				t.Errorf("Render(%q) = %q; want %q", test.input, got, test.want)
			}
		})
	}
}

func TestRenderFenceLanguage(t *testing.T) {
	got := Render("```go\nfunc main() {}\n```\n")
	want := `<pre><code class="language-go">func main() {}` + "\n</code></pre>"
	if got != want {
		t.Errorf("Render = %q; want %q", got, want)
	}
}

func TestRenderHeadingLevels(t *testing.T) {
	for level := 1; level <= 6; level++ {
		input := ""
		for i := 0; i < level; i++ {
			input += "#"
		}
		input += " Title\n"
		got := Render(input)
		tag := "h" + string(rune('0'+level))
		want := "<" + tag + ">Title</" + tag + ">"
		if got != want {
			t.Errorf("Render(%q) = %q; want %q", input, got, want)
		}
	}
}

func TestRenderBlockquote(t *testing.T) {
	got := Render("> quoted text\n")
	want := "<blockquote>\n<p>quoted text</p>\n</blockquote>"
	if got != want {
		t.Errorf("Render = %q; want %q", got, want)
	}
}

func TestRenderThematicBreak(t *testing.T) {
	if got, want := Render("---\n"), "<hr />"; got != want {
		t.Errorf("Render = %q; want %q", got, want)
	}
}

func TestRenderMultiLineHTMLBlock(t *testing.T) {
	got := Render("<div>\nhi\n</div>\n")
	want := "<div>\nhi\n</div>\n"
	if got != want {
		t.Errorf("Render = %q; want %q", got, want)
	}
}

// TestRenderNormalizedAgainstLooseWhitespace uses the htmltest package's
// CommonMark-style normalizer to compare output that is allowed to
// differ in insignificant whitespace but must agree once normalized,
// the same technique the teacher's harder HTML-renderer tests use.
func TestRenderNormalizedAgainstLooseWhitespace(t *testing.T) {
	got := Render("Hello  \t  World\n")
	want := "<p>Hello World</p>"
	gotNorm := htmltest.NormalizeHTML([]byte(got))
	wantNorm := htmltest.NormalizeHTML([]byte(want))
	if diff := cmp.Diff(wantNorm, gotNorm, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("-want +got:\n%s", diff)
	}
}
