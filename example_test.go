package reex

import "fmt"

func Example() {
	re := MustParse("(ab|c)(d|ef)(g|h+)")
	fmt.Println(re.Match("abefhhhh"))
	fmt.Println(re.Match("abdefg"))

	// Output:
	// true
	// false
}

func ExampleRegex_Derivative() {
	re := MustParse("ab*")
	d := re.Derivative('a')
	fmt.Printf("%v %#v\n", d, d)
	fmt.Println(d.MatchesEmpty())

	// Output:
	// b* Repeat(Char('b'))
	// true
}

func ExampleRegex_NextChars() {
	fmt.Println(MustParse("(ab)*(ce)*").NextChars())

	// Output:
	// [ac]
}

func ExampleGenerator_Generate() {
	g := NewGenerator(WithMaxLength(0))
	fmt.Printf("%q\n", g.Generate(MustParse("ab+c*")))

	// Output:
	// "ab"
}

func ExampleParse() {
	_, err := Parse("(ab")
	fmt.Println(err)

	// Output:
	// parse error at offset 3: expected ')', found end of input
}
