package syntax

import "fmt"

// Span is a half-open byte range [Start, End) into a unit's content.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Valid reports whether the span lies within content of the given length.
func (s Span) Valid(contentLen int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= contentLen
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the two spans share at least one byte.
// Two empty spans at the same offset are treated as overlapping.
func (s Span) Overlaps(other Span) bool {
	if s == other {
		return true
	}
	return s.Start < other.End && other.Start < s.End
}

// String implements fmt.Stringer.
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
