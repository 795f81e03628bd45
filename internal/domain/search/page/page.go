package page

import "strconv"

// Unset marks a limit that was never configured.
const Unset = -1

// Page is a limit/offset pair. A negative limit means no limit; an offset of
// zero or less is never sent to the engine.
type Page struct {
	Limit  int
	Offset int
}

// New returns a page with no limit and no offset.
func New() Page { return Page{Limit: Unset} }

// HasLimit reports whether the limit should be applied.
func (p Page) HasLimit() bool { return p.Limit >= 0 }

// EffectiveOffset returns the offset to send, zero when none applies.
func (p Page) EffectiveOffset() int {
	if p.Offset > 0 {
		return p.Offset
	}
	return 0
}

// ParseLimit accepts a non-negative decimal digit string. Anything else
// (signs, spaces, empty) yields Unset.
func ParseLimit(s string) int {
	if s == "" {
		return Unset
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Unset
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Unset
	}
	return n
}
