package builder

import (
	"strings"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

// routingKeywords maps a catalog category to substrings looked up in group
// names. First group whose name contains one of the keywords wins; keyword
// order is the tie-break within a group name.
var routingKeywords = map[string][]string{
	domain.CategoryStarter: {"starter", "appetizer", "entree"},
	domain.CategoryMain:    {"main", "mains"},
	domain.CategorySide:    {"side"},
	domain.CategoryDessert: {"dessert", "sweet"},
	domain.CategoryDrink:   {"drink", "beverage"},
}

// RouteCategory picks the destination group for an item added without an
// explicit target. Fallback order is fixed: keyword match on group names,
// then the last-targeted group, then the first group. Returns "" only when
// there are no groups at all.
func RouteCategory(groups []domain.Group, category, lastTargetedID string) string {
	if len(groups) == 0 {
		return ""
	}

	for _, kw := range routingKeywords[strings.ToLower(category)] {
		for i := range groups {
			if strings.Contains(strings.ToLower(groups[i].Name), kw) {
				return groups[i].ID
			}
		}
	}

	if lastTargetedID != "" {
		for i := range groups {
			if groups[i].ID == lastTargetedID {
				return lastTargetedID
			}
		}
	}

	return groups[0].ID
}
