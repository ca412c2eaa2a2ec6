package reex

// Match reports whether r matches the whole of s.
//
// It takes the derivative of r with respect to each character of s in turn
// and then checks whether what is left accepts the empty string. Characters
// that r never mentions simply lead to a regex that matches nothing.
func Match(r Regex, s string) bool {
	for _, c := range s {
		r = r.Derivative(c)
	}
	return r.MatchesEmpty()
}

// Match reports whether r matches the whole of s. See [Match].
func (r Regex) Match(s string) bool {
	return Match(r, s)
}

// MatchString reports whether pattern matches the whole of s.
// It mirrors regexp.MatchString; the error is the one returned by [Parse].
func MatchString(pattern, s string) (bool, error) {
	re, err := Parse(pattern)
	if err != nil {
		return false, err
	}
	return Match(re, s), nil
}
