// Package reex is a regular expression engine based on Brzozowski
// derivatives.
//
// A pattern is parsed into an immutable [Regex] value. Matching a string
// repeatedly replaces the regex by its derivative with respect to the next
// character, and finally checks whether the remaining regex accepts the empty
// string. No automaton is built and nothing backtracks.
//
// The pattern syntax has literal characters, grouping with "(" and ")",
// alternation "|", Kleene star "*", one-or-more "+" and "\" to escape the next
// character.
package reex

import (
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the variant of a [Regex].
type Kind uint8

const (
	// Matches only the empty string. The zero Regex has this kind.
	KindEmpty Kind = iota
	// Matches nothing.
	KindNull
	// Matches exactly one character.
	KindChar
	// Matches whatever either of its two operands matches.
	KindChoice
	// Matches the concatenation of its elements.
	KindSequence
	// Matches zero or more repetitions of its operand.
	KindRepeat
)

var kindNames = [...]string{
	KindEmpty:    "Empty",
	KindNull:     "Null",
	KindChar:     "Char",
	KindChoice:   "Choice",
	KindSequence: "Sequence",
	KindRepeat:   "Repeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Regex is a regular expression in algebraic form.
//
// Regex values are immutable and safe for concurrent use by multiple
// goroutines. Every operation returns a fresh value and never modifies its
// receiver. The zero value is [Empty].
type Regex struct {
	kind Kind
	char rune
	// Choice: left, right. Sequence: elements. Repeat: operand.
	subs []Regex
}

// Empty returns the regex that matches only the empty string.
func Empty() Regex { return Regex{kind: KindEmpty} }

// Null returns the regex that matches nothing.
func Null() Regex { return Regex{kind: KindNull} }

// Char returns the regex that matches the one-character string c.
func Char(c rune) Regex { return Regex{kind: KindChar, char: c} }

// Choice returns the regex that matches what left or right matches.
func Choice(left, right Regex) Regex {
	return Regex{kind: KindChoice, subs: []Regex{left, right}}
}

// Sequence returns the regex that matches the concatenation of what each
// element matches, in order. The elements are copied.
//
// Sequence does not simplify; see [Regex.Simplify].
func Sequence(elements ...Regex) Regex {
	return Regex{kind: KindSequence, subs: slices.Clone(elements)}
}

// Repeat returns the Kleene star of r.
func Repeat(r Regex) Regex {
	return Regex{kind: KindRepeat, subs: []Regex{r}}
}

// Kind returns the variant of r.
func (r Regex) Kind() Kind { return r.kind }

// Rune returns the character matched by a [KindChar] regex, and 0 for every
// other kind.
func (r Regex) Rune() rune { return r.char }

// Subs returns a copy of the sub-expressions of r: the two operands of a
// Choice, the elements of a Sequence, the operand of a Repeat, nil otherwise.
func (r Regex) Subs() []Regex { return slices.Clone(r.subs) }

// Equal reports whether r and other are structurally equal: the same kinds
// with recursively equal payloads. Equal regexes match the same strings, but
// the converse does not hold.
func (r Regex) Equal(other Regex) bool {
	if r.kind != other.kind || r.char != other.char || len(r.subs) != len(other.subs) {
		return false
	}
	for i := range r.subs {
		if !r.subs[i].Equal(other.subs[i]) {
			return false
		}
	}
	return true
}

// MatchesEmpty reports whether r accepts the empty string.
func (r Regex) MatchesEmpty() bool {
	switch r.kind {
	case KindEmpty, KindRepeat:
		return true
	case KindNull, KindChar:
		return false
	case KindChoice:
		return r.subs[0].MatchesEmpty() || r.subs[1].MatchesEmpty()
	case KindSequence:
		for _, el := range r.subs {
			if !el.MatchesEmpty() {
				return false
			}
		}
		return true
	}
	panic("unreachable")
}

func (r Regex) head() Regex {
	if len(r.subs) == 0 {
		return Empty()
	}
	return r.subs[0]
}

func (r Regex) tail() Regex {
	if len(r.subs) < 2 {
		return Empty()
	}
	return Regex{kind: KindSequence, subs: r.subs[1:]}.Simplify()
}

// Derivative returns the regex that matches every string s such that r
// matches c followed by s. If r cannot match anything starting with c, the
// result matches nothing, although it is not necessarily [Null] itself.
func (r Regex) Derivative(c rune) Regex {
	switch r.kind {
	case KindEmpty, KindNull:
		return Null()
	case KindChar:
		if r.char == c {
			return Empty()
		}
		return Null()
	case KindChoice:
		return Choice(r.subs[0].Derivative(c), r.subs[1].Derivative(c))
	case KindSequence:
		head := r.head()
		tail := r.tail()
		headDerivative := Sequence(head.Derivative(c), tail).Simplify()
		if head.MatchesEmpty() {
			// Either head matches the empty prefix and tail consumes c, or
			// head consumes c itself.
			return Choice(tail.Derivative(c), headDerivative)
		}
		return headDerivative
	case KindRepeat:
		return Sequence(r.subs[0].Derivative(c), r)
	}
	panic("unreachable")
}

// NextChars returns the characters c for which r.Derivative(c) may match
// something. For regexes produced by [Parse] and by derivatives of them, the
// set is exact: every member leads to a regex with a non-empty language.
func (r Regex) NextChars() CharSet {
	switch r.kind {
	case KindEmpty, KindNull:
		return CharSet{}
	case KindChar:
		return singleChar(r.char)
	case KindChoice:
		return r.subs[0].NextChars().Union(r.subs[1].NextChars())
	case KindSequence:
		head := r.head()
		if head.MatchesEmpty() {
			return head.NextChars().Union(r.tail().NextChars())
		}
		return head.NextChars()
	case KindRepeat:
		return r.subs[0].NextChars()
	}
	panic("unreachable")
}

// Simplify returns a regex equivalent to r that uses a Sequence only to hold
// two or more elements. A Null element makes the whole sequence Null, Empty
// elements are dropped and nested sequences are spliced into their parent.
// Regexes of other kinds are returned unchanged.
//
// Simplify is idempotent.
func (r Regex) Simplify() Regex {
	if r.kind != KindSequence {
		return r
	}
	elements := make([]Regex, 0, len(r.subs))
	for _, el := range r.subs {
		el = el.Simplify()
		switch el.kind {
		case KindNull:
			return Null()
		case KindEmpty:
			continue
		case KindSequence:
			elements = append(elements, el.subs...)
		default:
			elements = append(elements, el)
		}
	}
	switch len(elements) {
	case 0:
		return Empty()
	case 1:
		return elements[0]
	}
	return Regex{kind: KindSequence, subs: elements}
}

func isMetaChar(c rune) bool {
	switch c {
	case '(', ')', '|', '*', '+', '\\':
		return true
	}
	return false
}

// String renders r in pattern syntax. Null has no pattern syntax and renders
// as "∅". Choices are not parenthesized, so parsing the result gives back r
// only for regexes in the shape the parser produces.
func (r Regex) String() string {
	var b strings.Builder
	r.writeTo(&b)
	return b.String()
}

func (r Regex) writeTo(b *strings.Builder) {
	switch r.kind {
	case KindEmpty:
	case KindNull:
		b.WriteString("∅")
	case KindChar:
		if isMetaChar(r.char) {
			b.WriteByte('\\')
		}
		b.WriteRune(r.char)
	case KindChoice:
		r.subs[0].writeTo(b)
		b.WriteByte('|')
		r.subs[1].writeTo(b)
	case KindSequence:
		for _, el := range r.subs {
			el.writeTo(b)
		}
	case KindRepeat:
		if r.subs[0].kind == KindChar {
			r.subs[0].writeTo(b)
		} else {
			b.WriteByte('(')
			r.subs[0].writeTo(b)
			b.WriteByte(')')
		}
		b.WriteByte('*')
	default:
		panic("unreachable")
	}
}

// GoString renders r as the constructor calls that build it, e.g.
// "Sequence(Char('a'), Repeat(Char('b')))".
func (r Regex) GoString() string {
	var b strings.Builder
	r.writeGoTo(&b)
	return b.String()
}

func (r Regex) writeGoTo(b *strings.Builder) {
	b.WriteString(r.kind.String())
	b.WriteByte('(')
	if r.kind == KindChar {
		b.WriteString(strconv.QuoteRune(r.char))
	}
	for i, sub := range r.subs {
		if i > 0 {
			b.WriteString(", ")
		}
		sub.writeGoTo(b)
	}
	b.WriteByte(')')
}
