package identity

import "strings"

// PlayerReference carries every identifier a pick or result row knows about
// a player. Different data providers assign disjoint primary keys to the same
// real player, so matching works on the full identifier set rather than any
// single key. Normalized display-name equality is a first-class match signal,
// not a fallback; full entity resolution is deliberately out of scope.
type PlayerReference struct {
	RawID       string
	ProviderID  string
	DisplayName string
}

// Set is a collection of normalized identity strings.
type Set map[string]struct{}

// Normalize lowercases, trims, and strips every character outside [a-z0-9].
func Normalize(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IdentitySet builds the normalized identity set for a reference, omitting
// identifiers that normalize to empty.
func IdentitySet(ref PlayerReference) Set {
	out := make(Set, 3)
	for _, candidate := range []string{ref.RawID, ref.ProviderID, ref.DisplayName} {
		if normalized := Normalize(candidate); normalized != "" {
			out[normalized] = struct{}{}
		}
	}
	return out
}

// Matches reports whether two references share at least one normalized
// identity.
func Matches(a, b PlayerReference) bool {
	return IdentitySet(a).Intersects(IdentitySet(b))
}

// Add merges every identity from other into s.
func (s Set) Add(other Set) {
	for key := range other {
		s[key] = struct{}{}
	}
}

// Intersects reports whether the two sets share any identity.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for key := range small {
		if _, ok := large[key]; ok {
			return true
		}
	}
	return false
}
