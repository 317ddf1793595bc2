package tripadvisor

import (
	"strings"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

// MatchesGroups reports whether a normalized summary passes the group
// policy. Matching is case-insensitive on trimmed names. Deny wins: any
// overlap with deny rejects. A non-empty allow list then requires at
// least one overlap. Empty lists impose nothing.
func MatchesGroups(s *domain.Summary, allow, deny []string) bool {
	groups := normSet(s.Types)

	if len(deny) > 0 && intersects(groups, normSet(deny)) {
		return false
	}
	if len(allow) > 0 {
		return intersects(groups, normSet(allow))
	}
	return true
}

func normSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func intersects(a, b map[string]struct{}) bool {
	for v := range a {
		if _, ok := b[v]; ok {
			return true
		}
	}
	return false
}
