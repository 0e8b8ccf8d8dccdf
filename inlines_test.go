package markdown

import "testing"

func TestParseInlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"PlainText", "hello", "<p>hello</p>"},
		{"Emphasis", "*hi*", "<p><em>hi</em></p>"},
		{"Strong", "**hi**", "<p><strong>hi</strong></p>"},
		{"NestedStrongInEmphasis", "*a **b** c*", "<p><em>a <strong>b</strong> c</em></p>"},
		{"UnderscoreEmphasisMidWord", "foo_bar_baz", "<p>foo_bar_baz</p>"},
		{"CodeSpan", "`code`", "<p><code>code</code></p>"},
		{"CodeSpanStripsOneLeadTrailSpace", "` code `", "<p><code>code</code></p>"},
		{"BackslashEscape", `\*not emphasis\*`, "<p>*not emphasis*</p>"},
		{"HardBreakBackslash", "line1\\\nline2", "<p>line1<br />\nline2</p>"},
		{"HardBreakTrailingSpaces", "line1  \nline2", "<p>line1<br />\nline2</p>"},
		{"SoftBreak", "line1\nline2", "<p>line1\nline2</p>"},
		{"AutolinkURI", "<https://example.com>", `<p><a href="https://example.com">https://example.com</a></p>`},
		{"AutolinkEmail", "<foo@example.com>", `<p><a href="mailto:foo@example.com">foo@example.com</a></p>`},
		{"RawInlineHTML", "<span>hi</span>", "<p><span>hi</span></p>"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Render(test.input); got != test.want {
				t.Errorf("Render(%q) = %q; want %q", test.input, got, test.want)
			}
		})
	}
}

func TestParseInlinesMergesAdjacentText(t *testing.T) {
	nodes := parseInlines(`foo\*bar`, nil)
	if len(nodes) != 1 || nodes[0].kind != TextKind {
		t.Fatalf("nodes = %+v; want a single merged Text node", nodes)
	}
	if nodes[0].text != "foo*bar" {
		t.Errorf("text = %q; want %q", nodes[0].text, "foo*bar")
	}
}

func TestParseInlinesMergesAdjacentTextInsideEmphasis(t *testing.T) {
	nodes := parseInlines(`*a\*b*`, nil)
	if len(nodes) != 1 || nodes[0].kind != EmphasisKind {
		t.Fatalf("nodes = %+v; want a single Emphasis node", nodes)
	}
	children := nodes[0].children
	if len(children) != 1 || children[0].kind != TextKind || children[0].text != "a*b" {
		t.Errorf("children = %+v; want a single merged Text node %q", children, "a*b")
	}
}

func TestFlankingRules(t *testing.T) {
	tests := []struct {
		name        string
		delim       byte
		before      rune
		after       rune
		wantOpen    bool
		wantClose   bool
	}{
		{"StarBetweenSpaces", '*', ' ', ' ', false, false},
		{"StarOpenBeforeWord", '*', ' ', 'a', true, false},
		{"StarCloseAfterWord", '*', 'a', ' ', false, true},
		{"StarBothSidesWord", '*', 'a', 'a', true, true},
		{"UnderscoreIntraword", '_', 'a', 'a', false, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gotOpen, gotClose := flankingRules(test.delim, test.before, test.after)
			if gotOpen != test.wantOpen || gotClose != test.wantClose {
				t.Errorf("flankingRules(%q, %q, %q) = %v, %v; want %v, %v",
					test.delim, test.before, test.after, gotOpen, gotClose, test.wantOpen, test.wantClose)
			}
		})
	}
}

func TestScanCodeSpan(t *testing.T) {
	tests := []struct {
		input       string
		wantOK      bool
		wantContent string
	}{
		{"`abc`", true, "abc"},
		{"``a`b``", true, "a`b"},
		{"`abc", false, ""},
		{"`` `abc` ``", true, "`abc`"},
	}
	for _, test := range tests {
		_, content, ok := scanCodeSpan(test.input, 0)
		if ok != test.wantOK {
			t.Errorf("scanCodeSpan(%q) ok = %v; want %v", test.input, ok, test.wantOK)
			continue
		}
		if ok && content != test.wantContent {
			t.Errorf("scanCodeSpan(%q) content = %q; want %q", test.input, content, test.wantContent)
		}
	}
}

func TestScanAutolink(t *testing.T) {
	tests := []struct {
		input    string
		wantOK   bool
		wantDest string
		wantText string
	}{
		{"<https://example.com>", true, "https://example.com", "https://example.com"},
		{"<foo@bar.com>", true, "mailto:foo@bar.com", "foo@bar.com"},
		{"<not a url>", false, "", ""},
		{"<>", false, "", ""},
	}
	for _, test := range tests {
		_, dest, text, ok := scanAutolink(test.input, 0)
		if ok != test.wantOK {
			t.Errorf("scanAutolink(%q) ok = %v; want %v", test.input, ok, test.wantOK)
			continue
		}
		if ok && (dest != test.wantDest || text != test.wantText) {
			t.Errorf("scanAutolink(%q) = %q, %q; want %q, %q", test.input, dest, text, test.wantDest, test.wantText)
		}
	}
}
