package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// parseInlines runs the inline phase over a Paragraph or Heading's raw
// text, producing the parsed tree later retrieved via
// [Block.InlineChildren]. refs is consulted to resolve reference-style
// links and images.
func parseInlines(text string, refs map[string]ReferenceDefinition) []*Inline {
	ip := &inlineParser{
		text: text,
		refs: refs,
		head: listEnd,
		tail: listEnd,
	}
	ip.tokenize()
	processEmphasis(ip, 0)
	return mergeAdjacentText(ip.collect(ip.head))
}

// mergeAdjacentText merges runs of sibling Text nodes into one, per the
// inline phase's finalization step, and drops empty Text nodes (the
// placeholders left by fully consumed delimiter runs and by bracket
// markers). It recurses into every composite node's children so the
// "no two adjacent Text siblings" contract holds throughout the tree and
// not just at the top level.
func mergeAdjacentText(nodes []*Inline) []*Inline {
	merged := make([]*Inline, 0, len(nodes))
	for _, n := range nodes {
		if len(n.children) > 0 {
			n.children = mergeAdjacentText(n.children)
		}
		if n.kind == TextKind && n.text == "" {
			continue
		}
		if n.kind == TextKind && len(merged) > 0 && merged[len(merged)-1].kind == TextKind {
			merged[len(merged)-1].text += n.text
			continue
		}
		merged = append(merged, n)
	}
	return merged
}

// inlineParser holds an arena of inline nodes linked together as a
// doubly linked list addressed by index ("handle"), so that collapsing a
// matched emphasis/strong/link/image span into a single composite node
// is an O(1) splice rather than a slice shift. The delimiter and bracket
// stacks reference nodes by the same handles.
type inlineParser struct {
	text string
	refs map[string]ReferenceDefinition

	nodes []*Inline
	next  []int
	prev  []int
	head  int
	tail  int

	delims   []*delimRun
	brackets []*bracketMarker
}

const listEnd = -1

func (ip *inlineParser) newHandle(n *Inline) int {
	h := len(ip.nodes)
	ip.nodes = append(ip.nodes, n)
	ip.next = append(ip.next, listEnd)
	ip.prev = append(ip.prev, listEnd)
	return h
}

// append adds n to the end of the list and returns its handle.
func (ip *inlineParser) append(n *Inline) int {
	h := ip.newHandle(n)
	if ip.tail == listEnd {
		ip.head = h
	} else {
		ip.next[ip.tail] = h
		ip.prev[h] = ip.tail
	}
	ip.tail = h
	return h
}

// replaceRange collapses every node strictly between a and b (both of
// which stay in the list) into a single new composite node holding them
// as children, splicing it in place of the removed span. a or b may be
// listEnd to mean "start of list" / "end of list".
func (ip *inlineParser) replaceRange(a, b int, composite *Inline) int {
	var children []*Inline
	for i := ip.nextOf(a); i != b; i = ip.next[i] {
		children = append(children, ip.nodes[i])
	}
	composite.children = children
	h := ip.newHandle(composite)

	if a == listEnd {
		ip.head = h
	} else {
		ip.next[a] = h
	}
	ip.prev[h] = a

	if b == listEnd {
		ip.tail = h
	} else {
		ip.prev[b] = h
	}
	ip.next[h] = b
	return h
}

func (ip *inlineParser) nextOf(h int) int {
	if h == listEnd {
		return ip.head
	}
	return ip.next[h]
}

func (ip *inlineParser) collect(start int) []*Inline {
	var out []*Inline
	for i := start; i != listEnd; i = ip.next[i] {
		out = append(out, ip.nodes[i])
	}
	return out
}

// delimRun tracks a run of '*' or '_' characters that may still resolve
// into Emphasis/Strong markers.
type delimRun struct {
	node     int // handle of the Text node holding the run's literal characters
	char     byte
	count    int // delimiters still available to be consumed
	canOpen  bool
	canClose bool
}

// bracketMarker tracks an unresolved '[' or '![' that may still resolve
// into a Link or Image.
type bracketMarker struct {
	node          int // handle of the Text node holding "[" or "!["
	image         bool
	active        bool // false once "no links inside links" has ruled it out
	delimPosition int  // len(ip.delims) at the time this bracket was pushed
	textStart     int  // offset into ip.text right after the opening marker
}

// tokenize scans ip.text once, building the initial linked list along
// with the delimiter and bracket stacks. Matched constructs that don't
// interact with emphasis or links (code spans, autolinks, raw HTML,
// escapes, line breaks) are resolved immediately into their final node
// kind; everything else becomes literal Text or a stack entry to be
// resolved in a later pass.
func (ip *inlineParser) tokenize() {
	s := ip.text
	i := 0
	var textStart int
	flushText := func(end int) {
		if end > textStart {
			ip.append(&Inline{kind: TextKind, text: s[textStart:end]})
		}
	}

	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == '\n':
			flushText(i)
			ip.append(&Inline{kind: LineBreakKind, hard: true})
			i += 2
			textStart = i
		case c == '\\' && i+1 < len(s) && isASCIIPunctuation(s[i+1]):
			flushText(i)
			ip.append(&Inline{kind: TextKind, text: s[i+1 : i+2]})
			i += 2
			textStart = i
		case c == ' ' && hardBreakTrailingSpaces(s, i):
			flushText(i)
			j := i
			for j < len(s) && s[j] == ' ' {
				j++
			}
			j++ // the newline itself
			ip.append(&Inline{kind: LineBreakKind, hard: true})
			i = j
			textStart = i
		case c == '\n':
			flushText(i)
			ip.append(&Inline{kind: LineBreakKind, hard: false})
			i++
			for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
				i++
			}
			textStart = i
		case c == '`':
			if end, content, ok := scanCodeSpan(s, i); ok {
				flushText(i)
				ip.append(&Inline{kind: CodeSpanKind, text: content})
				i = end
				textStart = i
			} else {
				i++
			}
		case c == '<':
			if end, dest, text, ok := scanAutolink(s, i); ok {
				flushText(i)
				ip.append(&Inline{kind: LinkKind, url: dest, children: []*Inline{{kind: TextKind, text: text}}})
				i = end
				textStart = i
			} else if end, ok := matchInlineHTMLTag(s[i:]); ok {
				flushText(i)
				ip.append(&Inline{kind: RawHTMLKind, text: s[i : i+end]})
				i += end
				textStart = i
			} else {
				i++
			}
		case c == '*' || c == '_':
			flushText(i)
			start := i
			for i < len(s) && s[i] == c {
				i++
			}
			run := s[start:i]
			before, _ := utf8.DecodeLastRuneInString(s[:start])
			after, _ := utf8.DecodeRuneInString(s[i:])
			canOpen, canClose := flankingRules(c, before, after)
			node := ip.append(&Inline{kind: TextKind, text: run})
			ip.delims = append(ip.delims, &delimRun{
				node: node, char: c, count: len(run),
				canOpen: canOpen, canClose: canClose,
			})
			textStart = i
		case c == '[':
			flushText(i)
			node := ip.append(&Inline{kind: TextKind, text: "["})
			i++
			ip.brackets = append(ip.brackets, &bracketMarker{node: node, active: true, delimPosition: len(ip.delims), textStart: i})
			textStart = i
		case c == '!' && i+1 < len(s) && s[i+1] == '[':
			flushText(i)
			node := ip.append(&Inline{kind: TextKind, text: "!["})
			i += 2
			ip.brackets = append(ip.brackets, &bracketMarker{node: node, image: true, active: true, delimPosition: len(ip.delims), textStart: i})
			textStart = i
		case c == ']':
			flushText(i)
			i = ip.resolveBracket(i)
			textStart = i
		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
	}
	flushText(i)
}

// hardBreakTrailingSpaces reports whether a hard line break (two or more
// trailing spaces before a newline) starts at i.
func hardBreakTrailingSpaces(s string, i int) bool {
	j := i
	for j < len(s) && s[j] == ' ' {
		j++
	}
	return j-i >= 2 && j < len(s) && s[j] == '\n'
}

func flankingRules(delim byte, before, after rune) (canOpen, canClose bool) {
	leftFlanking := !isUnicodeWhitespace(after) &&
		(!isUnicodePunct(after) || isUnicodeWhitespace(before) || isUnicodePunct(before))
	rightFlanking := !isUnicodeWhitespace(before) &&
		(!isUnicodePunct(before) || isUnicodeWhitespace(after) || isUnicodePunct(after))
	if delim == '*' {
		return leftFlanking, rightFlanking
	}
	canOpen = leftFlanking && (!rightFlanking || isUnicodePunct(before))
	canClose = rightFlanking && (!leftFlanking || isUnicodePunct(after))
	return canOpen, canClose
}

func isUnicodeWhitespace(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return true // start/end of line counts as whitespace for flanking purposes
	}
	return unicode.IsSpace(r)
}

func isUnicodePunct(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// scanCodeSpan recognizes a code span starting at the backtick run
// s[i:]: a run of N backticks, content, then a run of exactly N
// backticks. Returns the resolved (trimmed/collapsed) content.
func scanCodeSpan(s string, i int) (end int, content string, ok bool) {
	start := i
	for i < len(s) && s[i] == '`' {
		i++
	}
	openLen := i - start
	searchFrom := i
	for {
		j := strings.IndexByte(s[searchFrom:], '`')
		if j < 0 {
			return 0, "", false
		}
		runStart := searchFrom + j
		k := runStart
		for k < len(s) && s[k] == '`' {
			k++
		}
		if k-runStart == openLen {
			inner := s[i:runStart]
			return k, normalizeCodeSpanContent(inner), true
		}
		searchFrom = k
	}
}

func normalizeCodeSpanContent(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) >= 2 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.TrimLeft(s, " ") != "" {
		s = s[1 : len(s)-1]
	}
	return s
}

// scanAutolink recognizes `<scheme:…>` and `<user@host>` autolinks,
// returning both the href (dest) and the literal text to display.
func scanAutolink(s string, i int) (end int, dest, text string, ok bool) {
	close := strings.IndexByte(s[i:], '>')
	if close < 0 {
		return 0, "", "", false
	}
	inner := s[i+1 : i+close]
	if inner == "" || strings.ContainsAny(inner, " \t\n<") {
		return 0, "", "", false
	}
	if isAutolinkURI(inner) {
		return i + close + 1, inner, inner, true
	}
	if isAutolinkEmail(inner) {
		return i + close + 1, "mailto:" + inner, inner, true
	}
	return 0, "", "", false
}

func isAutolinkURI(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 2 || colon > 32 {
		return false
	}
	scheme := s[:colon]
	if !isASCIILetter(scheme[0]) {
		return false
	}
	for i := 1; i < len(scheme); i++ {
		c := scheme[i]
		if !isASCIIAlnum(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isAutolinkEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	for i := 0; i < len(local); i++ {
		c := local[i]
		if c <= ' ' || c == '<' || c == '>' {
			return false
		}
	}
	labels := strings.Split(domain, ".")
	if len(labels) == 0 {
		return false
	}
	for _, label := range labels {
		if label == "" || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !isASCIIAlnum(c) && c != '-' {
				return false
			}
		}
	}
	return true
}
