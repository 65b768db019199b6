// internal/app/system/taxonomy/taxonomy.go
//
// Controlled vocabularies for event categories and badges. Matching
// is deliberately loose: user input like "Beach Cleanup" or
// "community-gardening" still lands on a canonical category.
package taxonomy

import "strings"

// Canonical event categories.
const (
	CategoryCleanup   = "cleanup"
	CategoryGardening = "gardening"
	CategoryRecycling = "recycling"
	CategoryAwareness = "awareness"
	CategoryWorkshop  = "workshop"
)

// Categories returns all canonical event categories in display order.
func Categories() []string {
	return []string{
		CategoryCleanup,
		CategoryGardening,
		CategoryRecycling,
		CategoryAwareness,
		CategoryWorkshop,
	}
}

// Category canonicalizes an event category. Input that contains a
// known category as a substring maps to that category; anything else
// falls back to "awareness".
func Category(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if strings.Contains(s, c) {
			return c
		}
	}
	// A few common synonyms.
	switch {
	case strings.Contains(s, "garden") || strings.Contains(s, "plant") || strings.Contains(s, "tree"):
		return CategoryGardening
	case strings.Contains(s, "recycl") || strings.Contains(s, "waste"):
		return CategoryRecycling
	case strings.Contains(s, "clean"):
		return CategoryCleanup
	case strings.Contains(s, "class") || strings.Contains(s, "training"):
		return CategoryWorkshop
	}
	return CategoryAwareness
}

// IsCategory reports whether s is already a canonical category.
func IsCategory(s string) bool {
	for _, c := range Categories() {
		if s == c {
			return true
		}
	}
	return false
}

// Badges users can earn.
const (
	BadgeTreePlanter   = "Tree Planter"
	BadgeRecyclingHero = "Recycling Hero"
	BadgeCleanupCrew   = "Cleanup Crew"
	BadgeCommunityStar = "Community Star"
)

// Badges returns all known badges in display order.
func Badges() []string {
	return []string{
		BadgeTreePlanter,
		BadgeRecyclingHero,
		BadgeCleanupCrew,
		BadgeCommunityStar,
	}
}

// IsBadge reports whether s names a known badge. Comparison ignores
// case and surrounding whitespace.
func IsBadge(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, b := range Badges() {
		if s == strings.ToLower(b) {
			return true
		}
	}
	return false
}

// FilterBadges keeps only known badges, canonicalizing their casing
// and dropping duplicates while preserving order.
func FilterBadges(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if !IsBadge(s) {
			continue
		}
		b := canonicalBadge(s)
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// canonicalBadge returns the display form of a known badge.
func canonicalBadge(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, b := range Badges() {
		if s == strings.ToLower(b) {
			return b
		}
	}
	return ""
}
