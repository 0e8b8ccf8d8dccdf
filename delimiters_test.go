package markdown

import "testing"

func TestEmphasisMatching(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"SimpleEmphasis", "*foo*", "<p><em>foo</em></p>"},
		{"SimpleStrong", "**foo**", "<p><strong>foo</strong></p>"},
		{"UnmatchedOpener", "*foo", "<p>*foo</p>"},
		{"UnmatchedCloser", "foo*", "<p>foo*</p>"},
		{"EmptyEmphasisNotAllowed", "a ** ** b", "<p>a ** ** b</p>"},
		{"MultipleOfThreeRule", "*foo**bar**baz*", "<p><em>foo<strong>bar</strong>baz</em></p>"},
		{"AdjacentStrongAndEmphasis", "***foo***", "<p><em><strong>foo</strong></em></p>"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Render(test.input); got != test.want {
				t.Errorf("Render(%q) = %q; want %q", test.input, got, test.want)
			}
		})
	}
}

func TestOddRuleBlocks(t *testing.T) {
	tests := []struct {
		name    string
		opener  *delimRun
		closer  *delimRun
		blocked bool
	}{
		{
			name:    "NeitherFlexible",
			opener:  &delimRun{count: 3, canClose: false},
			closer:  &delimRun{count: 3, canOpen: false},
			blocked: false,
		},
		{
			name:    "SumNotMultipleOfThree",
			opener:  &delimRun{count: 2, canClose: true},
			closer:  &delimRun{count: 2, canOpen: true},
			blocked: false,
		},
		{
			name:    "SumMultipleOfThreeBothDivisible",
			opener:  &delimRun{count: 3, canClose: true},
			closer:  &delimRun{count: 3, canOpen: true},
			blocked: false,
		},
		{
			name:    "SumMultipleOfThreeNotBothDivisible",
			opener:  &delimRun{count: 1, canClose: true},
			closer:  &delimRun{count: 2, canOpen: true},
			blocked: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := oddRuleBlocks(test.opener, test.closer); got != test.blocked {
				t.Errorf("oddRuleBlocks() = %v; want %v", got, test.blocked)
			}
		})
	}
}
