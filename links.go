package markdown

import "strings"

// resolveBracket handles a ']' encountered at ip.text[i]: it looks for
// the innermost active bracket marker and tries, in order, an inline
// destination, a full reference, a collapsed reference, and a shortcut
// reference. On success it splices the bracketed span into a Link or
// Image node; on failure the ']' (and the '[' / '![' that opened it)
// stay as literal text. It returns the index just past whatever was
// consumed.
func (ip *inlineParser) resolveBracket(i int) int {
	idx := ip.lastActiveBracket()
	if idx < 0 {
		ip.append(&Inline{kind: TextKind, text: "]"})
		return i + 1
	}
	mark := ip.brackets[idx]

	dest, title, titlePresent, end, ok := parseInlineLinkTail(ip.text, i+1)
	if !ok {
		dest, title, titlePresent, end, ok = ip.resolveReferenceTail(mark, i, i+1)
	}
	if !ok {
		ip.brackets = ip.brackets[:idx]
		ip.append(&Inline{kind: TextKind, text: "]"})
		return i + 1
	}

	// Resolve emphasis within the bracketed content before it gets
	// frozen into the link/image's children; anything pushed onto the
	// delimiter stack before this bracket opened is left untouched.
	processEmphasis(ip, mark.delimPosition)

	composite := &Inline{
		kind:         LinkKind,
		url:          dest,
		title:        title,
		titlePresent: titlePresent,
	}
	if mark.image {
		composite.kind = ImageKind
	}
	// The marker node held the literal "[" or "![" text; it gets
	// folded into the composite's children as an empty node rather
	// than spliced out, to avoid an extra list-surgery step.
	ip.nodes[mark.node].text = ""
	ip.replaceRange(ip.prev[mark.node], listEnd, composite)

	if mark.image {
		composite.alt = flattenText(composite.children)
	} else {
		// No links inside links: every bracket opened before this one
		// that isn't an image marker can never become a link either.
		for _, b := range ip.brackets[:idx] {
			if !b.image {
				b.active = false
			}
		}
	}
	ip.brackets = ip.brackets[:idx]
	return end
}

// lastActiveBracket returns the index of the most recently pushed
// active bracket marker, or -1 if none is open.
func (ip *inlineParser) lastActiveBracket() int {
	for i := len(ip.brackets) - 1; i >= 0; i-- {
		if ip.brackets[i].active {
			return i
		}
	}
	return -1
}

// parseInlineLinkTail parses `(dest "title")` starting at s[i] (the
// byte right after the matched ']'). It fails (ok=false) unless s[i]
// is actually '('.
func parseInlineLinkTail(s string, i int) (dest, title string, titlePresent bool, end int, ok bool) {
	if i >= len(s) || s[i] != '(' {
		return "", "", false, 0, false
	}
	i++
	i = skipRefSpace(s, i)
	if i < len(s) && s[i] == ')' {
		return "", "", false, i + 1, true
	}
	d, dEnd, okDest := parseRefDestination(s, i)
	if !okDest {
		return "", "", false, 0, false
	}
	i = dEnd

	spaceEnd := skipRefSpace(s, i)
	if t, tEnd, okTitle := parseRefTitle(s, spaceEnd); okTitle && spaceEnd > i {
		after := skipRefSpace(s, tEnd)
		if after < len(s) && s[after] == ')' {
			return d, t, true, after + 1, true
		}
	}
	if i < len(s) && s[i] == ')' {
		return d, "", false, i + 1, true
	}
	if closeAt := skipRefSpace(s, i); closeAt < len(s) && s[closeAt] == ')' {
		return d, "", false, closeAt + 1, true
	}
	return "", "", false, 0, false
}

// resolveReferenceTail handles the full `[label]`, collapsed `[]`, and
// shortcut (bare `[text]`) reference forms, looking the normalized
// label up in ip.refs. i points just past the ']' that closed the link
// text; closeBracketPos is the index of that ']' itself, used to slice
// out the link text for the shortcut/collapsed forms.
func (ip *inlineParser) resolveReferenceTail(mark *bracketMarker, closeBracketPos, i int) (dest, title string, titlePresent bool, end int, ok bool) {
	linkText := ip.text[mark.textStart:closeBracketPos]

	if i < len(ip.text) && ip.text[i] == '[' {
		label, labelEnd, okLabel := parseRefLabel(ip.text, i)
		if !okLabel && strings.HasPrefix(ip.text[i:], "[]") {
			// parseRefLabel rejects an empty label; here it is the
			// collapsed form.
			label, labelEnd, okLabel = "", i+2, true
		}
		if okLabel {
			effective := label
			if effective == "" {
				effective = linkText // collapsed reference `[]`
			}
			if def, found := ip.refs[NormalizeLabel(effective)]; found {
				return def.Destination, def.Title, def.TitlePresent, labelEnd, true
			}
			return "", "", false, 0, false
		}
	}

	// Shortcut reference: the bracketed text itself is the label.
	if def, found := ip.refs[NormalizeLabel(linkText)]; found {
		return def.Destination, def.Title, def.TitlePresent, i, true
	}
	return "", "", false, 0, false
}

func flattenText(children []*Inline) string {
	var sb strings.Builder
	var walk func([]*Inline)
	walk = func(nodes []*Inline) {
		for _, n := range nodes {
			switch n.kind {
			case TextKind, CodeSpanKind, RawHTMLKind:
				sb.WriteString(n.text)
			default:
				walk(n.children)
			}
		}
	}
	walk(children)
	return sb.String()
}
