package reex

import (
	"slices"
	"strings"
)

type charRange struct {
	lo rune
	hi rune
}

// CharSet is an immutable set of runes.
// The zero value is the empty set.
type CharSet struct {
	// Non-overlapping, non-adjacent ranges sorted in ascending order
	ranges []charRange
}

// NewCharSet returns the set containing the given runes.
func NewCharSet(rs ...rune) CharSet {
	var s CharSet
	for _, r := range rs {
		s = s.Union(CharSet{ranges: []charRange{{lo: r, hi: r}}})
	}
	return s
}

func singleChar(r rune) CharSet {
	return CharSet{ranges: []charRange{{lo: r, hi: r}}}
}

// Union returns the set of runes in either s or other.
func (s CharSet) Union(other CharSet) CharSet {
	if len(s.ranges) == 0 {
		return other
	}
	if len(other.ranges) == 0 {
		return s
	}
	ranges := make([]charRange, 0, len(s.ranges)+len(other.ranges))
	i := 0
	j := 0
	for {
		var next charRange
		if i < len(s.ranges) && (j >= len(other.ranges) || s.ranges[i].lo < other.ranges[j].lo) {
			next = s.ranges[i]
			i++
		} else if j < len(other.ranges) {
			next = other.ranges[j]
			j++
		} else {
			break
		}
		if len(ranges) == 0 {
			ranges = append(ranges, next)
			continue
		}
		r := &ranges[len(ranges)-1]
		if next.hi <= r.hi {
			continue
		}
		if next.lo <= r.hi+1 {
			r.hi = next.hi
			continue
		}
		ranges = append(ranges, next)
	}
	return CharSet{ranges: ranges}
}

// Len returns the number of runes in s.
func (s CharSet) Len() int {
	n := 0
	for _, r := range s.ranges {
		n += int(r.hi-r.lo) + 1
	}
	return n
}

// IsEmpty reports whether s contains no runes.
func (s CharSet) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Contains reports whether c is in s.
func (s CharSet) Contains(c rune) bool {
	_, found := slices.BinarySearchFunc(s.ranges, c, func(r charRange, c rune) int {
		if r.hi < c {
			return -1
		}
		if r.lo > c {
			return 1
		}
		return 0
	})
	return found
}

// At returns the i-th smallest rune of s.
// It panics if i is out of range.
func (s CharSet) At(i int) rune {
	if i >= 0 {
		for _, r := range s.ranges {
			size := int(r.hi-r.lo) + 1
			if i < size {
				return r.lo + rune(i)
			}
			i -= size
		}
	}
	panic("reex: CharSet.At: index out of range")
}

// Runes returns the members of s in ascending order.
func (s CharSet) Runes() []rune {
	res := make([]rune, 0, s.Len())
	for _, r := range s.ranges {
		for c := r.lo; c <= r.hi; c++ {
			res = append(res, c)
		}
	}
	return res
}

// Equal reports whether s and other contain the same runes.
func (s CharSet) Equal(other CharSet) bool {
	return slices.Equal(s.ranges, other.ranges)
}

// String formats s like a bracket expression, e.g. "[ac-e]".
func (s CharSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range s.ranges {
		b.WriteRune(r.lo)
		if r.hi > r.lo+1 {
			b.WriteByte('-')
		}
		if r.hi > r.lo {
			b.WriteRune(r.hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}
