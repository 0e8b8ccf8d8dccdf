package markdown

import "testing"

func TestLinkResolution(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "InlineLink",
			input: "[foo](/url)",
			want:  `<p><a href="/url">foo</a></p>`,
		},
		{
			name:  "InlineLinkWithTitle",
			input: `[foo](/url "title")`,
			want:  `<p><a href="/url" title="title">foo</a></p>`,
		},
		{
			name:  "FullReference",
			input: "[foo][bar]\n\n[bar]: /url\n",
			want:  `<p><a href="/url">foo</a></p>`,
		},
		{
			name:  "CollapsedReference",
			input: "[foo][]\n\n[foo]: /url\n",
			want:  `<p><a href="/url">foo</a></p>`,
		},
		{
			name:  "ShortcutReference",
			input: "[foo]\n\n[foo]: /url\n",
			want:  `<p><a href="/url">foo</a></p>`,
		},
		{
			name:  "Image",
			input: "![alt](/img.png)",
			want:  `<p><img src="/img.png" alt="alt" /></p>`,
		},
		{
			name:  "NoLinksInsideLinks",
			input: "[a [b](/url2) c](/url1)",
			want:  `<p>[a <a href="/url2">b</a> c](/url1)</p>`,
		},
		{
			name:  "EmphasisInsideLinkText",
			input: "[*foo*](/url)",
			want:  `<p><a href="/url"><em>foo</em></a></p>`,
		},
		{
			name:  "UnresolvedBracketStaysLiteral",
			input: "[not a link]",
			want:  "<p>[not a link]</p>",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Render(test.input); got != test.want {
				t.Errorf("Render(%q) = %q; want %q", test.input, got, test.want)
			}
		})
	}
}

func TestFlattenText(t *testing.T) {
	children := []*Inline{
		{kind: TextKind, text: "a "},
		{kind: EmphasisKind, children: []*Inline{{kind: TextKind, text: "b"}}},
		{kind: CodeSpanKind, text: " c"},
	}
	if got, want := flattenText(children), "a b c"; got != want {
		t.Errorf("flattenText = %q; want %q", got, want)
	}
}
