package reex

import (
	"strings"

	"github.com/coregx/coregex"
)

// Null in a syntax every RE2-compatible engine accepts: the empty class.
const re2Null = `[^\x00-\x{10FFFF}]`

// RE2 returns an unanchored pattern in RE2 syntax (as accepted by package
// regexp) that matches the same strings as r. Anchor it, e.g. with
// "^(?:" + r.RE2() + ")$", to compare whole-string matches.
func (r Regex) RE2() string {
	var b strings.Builder
	r.writeRE2To(&b)
	return b.String()
}

func (r Regex) writeRE2To(b *strings.Builder) {
	switch r.kind {
	case KindEmpty:
		b.WriteString("(?:)")
	case KindNull:
		b.WriteString(re2Null)
	case KindChar:
		b.WriteString(coregex.QuoteMeta(string(r.char)))
	case KindChoice:
		b.WriteString("(?:")
		r.subs[0].writeRE2To(b)
		b.WriteByte('|')
		r.subs[1].writeRE2To(b)
		b.WriteByte(')')
	case KindSequence:
		b.WriteString("(?:")
		for _, el := range r.subs {
			el.writeRE2To(b)
		}
		b.WriteByte(')')
	case KindRepeat:
		b.WriteString("(?:")
		r.subs[0].writeRE2To(b)
		b.WriteString(")*")
	default:
		panic("unreachable")
	}
}
