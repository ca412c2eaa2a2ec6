package reex

import (
	"math/rand/v2"
	"strings"
)

// DefaultStopProbability is the chance that generation stops at a point where
// the text produced so far is already a match.
const DefaultStopProbability = 0.10

// Generator produces random strings that a regex matches.
//
// A Generator is not safe for concurrent use when Rand is set.
type Generator struct {
	// Checked independently at every point where the generated text would
	// already match.
	StopProbability float64
	// Once this many characters have been produced, generation stops at the
	// first point where the text matches. Negative means no limit.
	MaxLength int
	// Source of randomness. If nil, the global source of math/rand/v2 is
	// used.
	Rand *rand.Rand
}

// GeneratorOption configures a [Generator] created by [NewGenerator].
type GeneratorOption func(g *Generator)

// WithStopProbability sets [Generator.StopProbability].
func WithStopProbability(p float64) GeneratorOption {
	return func(g *Generator) { g.StopProbability = p }
}

// WithMaxLength sets [Generator.MaxLength].
func WithMaxLength(n int) GeneratorOption {
	return func(g *Generator) { g.MaxLength = n }
}

// WithSeed makes the generator deterministic.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) { g.Rand = rand.New(rand.NewPCG(seed, seed)) }
}

// NewGenerator returns a Generator that stops with [DefaultStopProbability],
// has no length limit and uses the global random source, unless configured
// otherwise by opts.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		StopProbability: DefaultStopProbability,
		MaxLength:       -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) float64() float64 {
	if g.Rand == nil {
		return rand.Float64()
	}
	return g.Rand.Float64()
}

func (g *Generator) intN(n int) int {
	if g.Rand == nil {
		return rand.IntN(n)
	}
	return g.Rand.IntN(n)
}

// Generate returns a random string matched by r.
//
// At each step where the text so far matches, generation stops if the length
// budget is used up, or else with probability StopProbability. Otherwise the
// next character is picked uniformly from r.NextChars() and r is replaced by
// its derivative. Generation also stops when no character can follow.
//
// With a MaxLength of 0 and a regex that does not match the empty string,
// characters are still produced until an accepting point is reached; the
// output is then not bounded by MaxLength. A StopProbability of 0 with no
// MaxLength never stops on a regex whose language is infinite.
func (g *Generator) Generate(r Regex) string {
	var b strings.Builder
	budget := g.MaxLength
	for {
		if r.MatchesEmpty() {
			if budget == 0 || g.float64() < g.StopProbability {
				break
			}
		}
		choices := r.NextChars()
		if choices.IsEmpty() {
			break
		}
		c := choices.At(g.intN(choices.Len()))
		if budget > 0 {
			budget--
		}
		b.WriteRune(c)
		r = r.Derivative(c)
	}
	return b.String()
}

// RandomMatch returns a random string matched by r, using the defaults of
// [NewGenerator].
func RandomMatch(r Regex) string {
	return NewGenerator().Generate(r)
}
