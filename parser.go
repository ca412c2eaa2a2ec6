package reex

import (
	"strconv"
	"unicode/utf8"
)

// ErrorKind classifies a [ParseError]. ErrorKind values are errors
// themselves, so errors.Is(err, ErrUnexpectedToken) works on any error
// returned by [Parse].
type ErrorKind uint8

const (
	// A specific character was required but something else was found.
	ErrUnexpectedToken ErrorKind = iota + 1
	// The pattern ended where a character was required.
	ErrUnexpectedEndOfInput
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrUnexpectedEndOfInput:
		return "unexpected end of input"
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// EndOfInput stands for the end of the pattern in [ParseError.Expected] and
// [ParseError.Found].
const EndOfInput rune = -1

// ParseError describes why a pattern could not be parsed.
type ParseError struct {
	Kind ErrorKind
	// For ErrUnexpectedToken, the character that was required, or EndOfInput
	// if the pattern should have ended.
	Expected rune
	// For ErrUnexpectedToken, the character that was found, or EndOfInput.
	Found rune
	// Byte offset into the pattern.
	Offset int
}

var _ error = (*ParseError)(nil)

func describeRune(r rune) string {
	if r == EndOfInput {
		return "end of input"
	}
	return strconv.QuoteRune(r)
}

func (e *ParseError) Error() string {
	msg := "parse error at offset " + strconv.Itoa(e.Offset) + ": "
	if e.Kind == ErrUnexpectedToken {
		return msg + "expected " + describeRune(e.Expected) + ", found " + describeRune(e.Found)
	}
	return msg + e.Kind.Error()
}

// Is reports whether target is the Kind of e.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

type parser struct {
	pattern string
	pos     int
}

// If the pattern is exhausted, returns EndOfInput, true
func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.pattern) {
		return EndOfInput, true
	}
	c, _ := utf8.DecodeRuneInString(p.pattern[p.pos:])
	return c, false
}

func (p *parser) next() (rune, error) {
	if p.pos >= len(p.pattern) {
		return 0, &ParseError{Kind: ErrUnexpectedEndOfInput, Offset: p.pos}
	}
	c, size := utf8.DecodeRuneInString(p.pattern[p.pos:])
	p.pos += size
	return c, nil
}

func (p *parser) eat(expected rune) error {
	c, ended := p.peek()
	if ended || c != expected {
		return &ParseError{Kind: ErrUnexpectedToken, Expected: expected, Found: c, Offset: p.pos}
	}
	p.pos += utf8.RuneLen(c)
	return nil
}

// regex := term ('|' regex)?
func (p *parser) regex() (Regex, error) {
	term, err := p.term()
	if err != nil {
		return Regex{}, err
	}
	if c, ended := p.peek(); ended || c != '|' {
		return term, nil
	}
	p.pos++
	rest, err := p.regex()
	if err != nil {
		return Regex{}, err
	}
	return Choice(term, rest), nil
}

// term := factor*
func (p *parser) term() (Regex, error) {
	var factors []Regex
	for {
		c, ended := p.peek()
		if ended || c == ')' || c == '|' {
			break
		}
		factor, err := p.factor()
		if err != nil {
			return Regex{}, err
		}
		factors = append(factors, factor)
	}
	return Regex{kind: KindSequence, subs: factors}.Simplify(), nil
}

// factor := base ('*' | '+')?
func (p *parser) factor() (Regex, error) {
	base, err := p.base()
	if err != nil {
		return Regex{}, err
	}
	switch c, _ := p.peek(); c {
	case '*':
		p.pos++
		return Repeat(base), nil
	case '+':
		p.pos++
		return Sequence(base, Repeat(base)), nil
	}
	return base, nil
}

// base := '\' ANY | '(' regex ')' | ANY
func (p *parser) base() (Regex, error) {
	c, err := p.next()
	if err != nil {
		return Regex{}, err
	}
	switch c {
	case '\\':
		escaped, err := p.next()
		if err != nil {
			return Regex{}, err
		}
		return Char(escaped), nil
	case '(':
		inner, err := p.regex()
		if err != nil {
			return Regex{}, err
		}
		if err := p.eat(')'); err != nil {
			return Regex{}, err
		}
		return inner, nil
	}
	return Char(c), nil
}

// Parse parses a pattern into a [Regex].
//
// Every character other than "(", ")", "|", "*", "+" and "\" is a literal.
// A "\" makes the character after it literal. "*" and "+" apply to the
// preceding character or group; at the start of a term or right after
// another "*" or "+" they are literals. Each concatenation is simplified, so
// a parsed regex never holds a nested or single-element Sequence.
//
// The returned error, if any, is a *[ParseError].
func Parse(pattern string) (Regex, error) {
	p := parser{pattern: pattern}
	re, err := p.regex()
	if err != nil {
		return Regex{}, err
	}
	if c, ended := p.peek(); !ended {
		// Only an unbalanced ')' stops the top-level regex early.
		return Regex{}, &ParseError{Kind: ErrUnexpectedToken, Expected: EndOfInput, Found: c, Offset: p.pos}
	}
	return re, nil
}

// MustParse is like [Parse] but panics if the pattern cannot be parsed.
// It simplifies safe initialization of global variables holding regexes.
func MustParse(pattern string) Regex {
	re, err := Parse(pattern)
	if err != nil {
		panic("reex: MustParse: " + err.Error())
	}
	return re
}
