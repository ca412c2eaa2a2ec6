package reex

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
	"gotest.tools/v3/assert"
)

type matchCase struct {
	Pattern string
	Match   []string
	NoMatch []string `yaml:"nomatch"`
}

// oracle runs the RE2 rendering of a regex through conventional engines.
type oracle struct {
	stdlib *regexp.Regexp
	core   *coregex.Regex
	pcre   *regexp2.Regexp
}

func newOracle(t *testing.T, re Regex) oracle {
	t.Helper()
	anchored := "^(?:" + re.RE2() + ")$"
	stdlib, err := regexp.Compile(anchored)
	assert.NilError(t, err, anchored)
	core, err := coregex.Compile(anchored)
	assert.NilError(t, err, anchored)
	// .NET's "$" also matches before a final newline.
	pcre, err := regexp2.Compile(`\A(?:`+re.RE2()+`)\z`, regexp2.None)
	assert.NilError(t, err, anchored)
	return oracle{stdlib: stdlib, core: core, pcre: pcre}
}

func (o oracle) results(s string) (stdlib, core, pcre string) {
	pcreMatched, err := o.pcre.MatchString(s)
	pcre = fmt.Sprint(pcreMatched)
	if err != nil {
		pcre = err.Error()
	}
	return fmt.Sprint(o.stdlib.MatchString(s)), fmt.Sprint(o.core.MatchString(s)), pcre
}

type runner struct {
	t *testing.T
}

func newRunner(t *testing.T) runner {
	return runner{t: t}
}

func (r *runner) testCase(pattern, source string, expected bool) {
	r.t.Run("", func(t *testing.T) {
		t.Parallel()
		t.Logf("Match(MustParse(%q), %q)\n", pattern, source)

		re, err := Parse(pattern)
		assert.NilError(t, err)
		actual := re.Match(source)
		stdlib, core, pcre := newOracle(t, re).results(source)

		want := fmt.Sprint(expected)
		if actual != expected || stdlib != want || core != want || pcre != want {
			t.Fatalf(`Invalid result:
  regexp:    %v
  coregex:   %v
  regexp2:   %v
  Expected:  %v
  Actual:    %v
`, stdlib, core, pcre, expected, actual)
		}
	})
}

// Match
func (r *runner) m(pattern string, sources ...string) {
	for _, source := range sources {
		r.testCase(pattern, source, true)
	}
}

// Not Match
func (r *runner) n(pattern string, sources ...string) {
	for _, source := range sources {
		r.testCase(pattern, source, false)
	}
}

func TestMatch(t *testing.T) {
	r := newRunner(t)

	r.m("abc", "abc")
	r.n("abc", "ab")
	r.n("ab", "abc")

	r.m("(ab|c)(d|ef)(g|h+)", "abdg", "abefhhhh")
	r.n("(ab|c)(d|ef)(g|h+)", "abdefg", "")

	r.m("(ab)*(ce)*", "", "abab")
	r.n("(ab)*(ce)*", "ababc")

	// Characters the pattern never mentions.
	r.n("a*", "b", "aab", "\x00")
	r.m("ü+", "üüü")
	r.n("ü+", "u")
}

func TestMatchFixtures(t *testing.T) {
	r := newRunner(t)
	for _, tc := range loadYAML[matchCase](t, "match.yaml") {
		r.m(tc.Pattern, tc.Match...)
		r.n(tc.Pattern, tc.NoMatch...)
	}
}

func TestMatchDifferential(t *testing.T) {
	patterns := []string{
		"(ab|c)(d|ef)(g|h+)",
		"(ab)*(ce)*",
		"a*(b|c)*df*",
		"((a|b)*c)+d",
		"(a|ab)(c|bcd)(d*)",
		"(a+|b)*",
		"a(b|)c*|(ac)+",
	}
	rnd := rand.New(rand.NewPCG(5, 6))
	for _, pattern := range patterns {
		re := MustParse(pattern)
		o := newOracle(t, re)
		alphabet := re.alphabet()
		for i := 0; i < 200; i++ {
			s := randomString(rnd, alphabet, 8)
			want, _, _ := o.results(s)
			assert.Equal(t, fmt.Sprint(re.Match(s)), want, "Match(MustParse(%q), %q)", pattern, s)
		}
	}
}

// alphabet returns every character mentioned in r, plus one that is not.
func (r Regex) alphabet() []rune {
	var s CharSet
	var walk func(r Regex)
	walk = func(r Regex) {
		if r.kind == KindChar {
			s = s.Union(singleChar(r.char))
		}
		for _, sub := range r.subs {
			walk(sub)
		}
	}
	walk(r)
	return append(s.Runes(), '!')
}

func TestMatchLongInput(t *testing.T) {
	re := MustParse("(ab)*c")
	s := strings.Repeat("ab", 500) + "c"
	assert.Assert(t, re.Match(s))
	assert.Assert(t, !re.Match(s+"c"))
}

func TestMatchString(t *testing.T) {
	ok, err := MatchString("a(b|c)*", "abcb")
	assert.NilError(t, err)
	assert.Assert(t, ok)

	ok, err = MatchString("a(b|c)*", "abd")
	assert.NilError(t, err)
	assert.Assert(t, !ok)

	_, err = MatchString("a(b", "ab")
	assert.ErrorIs(t, err, ErrUnexpectedToken)
}

func TestRE2(t *testing.T) {
	assert.Equal(t, Empty().RE2(), "(?:)")
	assert.Equal(t, Null().RE2(), `[^\x00-\x{10FFFF}]`)
	assert.Equal(t, Char('+').RE2(), `\+`)
	assert.Equal(t, MustParse("a*(b|c)").RE2(), "(?:(?:a)*(?:b|c))")

	// Null matches nothing, even in a conventional engine.
	assert.Assert(t, !regexp.MustCompile("^(?:"+Sequence(Null(), Repeat(a)).RE2()+")$").MatchString(""))
	assert.Assert(t, regexp.MustCompile("^(?:"+Choice(Null(), Repeat(a)).RE2()+")$").MatchString("aa"))

	// Derivatives can be handed to another engine too.
	d := MustParse("(ab|c)(d|ef)").Derivative('a')
	assert.Assert(t, regexp.MustCompile("^(?:"+d.RE2()+")$").MatchString("bef"))
}
