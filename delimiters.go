package markdown

import "strings"

// processEmphasis walks ip.delims[bottom:] looking for closer/opener
// pairs of matching '*'/'_' runs, converting each match into an
// Emphasis or Strong node that wraps everything between them. bottom is
// the delimiter-stack bookmark below which entries belong to an
// enclosing bracket scope and must not be touched (see spec.md §4.3's
// bracket/emphasis interaction rule): resolving a link or image
// processes emphasis only down to the bookmark recorded when its
// opening bracket was pushed.
//
// Entries consumed (or proven unmatchable) are dropped from
// ip.delims[bottom:]; callers that want the final pass over the whole
// buffer call this with bottom == 0.
func processEmphasis(ip *inlineParser, bottom int) {
	closerIdx := bottom
	for closerIdx < len(ip.delims) {
		closer := ip.delims[closerIdx]
		if !closer.canClose || closer.count == 0 {
			closerIdx++
			continue
		}

		openerIdx := -1
		for j := closerIdx - 1; j >= bottom; j-- {
			opener := ip.delims[j]
			if opener.char != closer.char || !opener.canOpen || opener.count == 0 {
				continue
			}
			if oddRuleBlocks(opener, closer) {
				continue
			}
			openerIdx = j
			break
		}

		if openerIdx < 0 {
			if !closer.canOpen {
				ip.delims = append(ip.delims[:closerIdx], ip.delims[closerIdx+1:]...)
			} else {
				closerIdx++
			}
			continue
		}

		opener := ip.delims[openerIdx]
		n := 1
		if opener.count >= 2 && closer.count >= 2 {
			n = 2
		}
		kind := EmphasisKind
		if n == 2 {
			kind = StrongKind
		}
		ip.replaceRange(opener.node, closer.node, &Inline{kind: kind})

		opener.count -= n
		closer.count -= n
		ip.nodes[opener.node].text = strings.Repeat(string(opener.char), opener.count)
		ip.nodes[closer.node].text = strings.Repeat(string(closer.char), closer.count)

		// Drop every delimiter strictly between opener and closer (they
		// were already inside the span that just became one node, so
		// they can never match anything outside it again), and drop
		// either end that's now fully consumed. Built into a fresh
		// slice to avoid aliasing ip.delims' backing array mid-append.
		kept := make([]*delimRun, 0, len(ip.delims))
		kept = append(kept, ip.delims[:openerIdx]...)
		if opener.count > 0 {
			kept = append(kept, opener)
		}
		newCloserIdx := len(kept)
		if closer.count > 0 {
			kept = append(kept, closer)
		}
		kept = append(kept, ip.delims[closerIdx+1:]...)
		ip.delims = kept
		closerIdx = newCloserIdx
	}
	ip.delims = ip.delims[:bottom]
}

// oddRuleBlocks implements CommonMark's "rule of three": when a
// delimiter can both open and close, a run whose length (and the other
// side's length) sum to a multiple of three can only close a run it
// also forms a multiple of three with.
func oddRuleBlocks(opener, closer *delimRun) bool {
	if !opener.canClose && !closer.canOpen {
		return false
	}
	if (opener.count+closer.count)%3 != 0 {
		return false
	}
	return !(opener.count%3 == 0 && closer.count%3 == 0)
}
