// internal/domain/scoring/leaderboard.go
package scoring

import (
	"sort"

	"github.com/ecoecho-app/ecoecho/internal/domain/models"
)

// Entry is one leaderboard row. The leaderboard is a derived, read-only
// projection; it is never written back to the store.
type Entry struct {
	Rank      int               `json:"rank"`
	User      models.PublicUser `json:"user"`
	EcoPoints int               `json:"ecoPoints"`
	Counts    Counts            `json:"counts"`
}

// Build computes every user's score and returns the ranked board.
//
// Ordering is descending by score with ascending user id hex as the
// tie-break, so repeated runs over the same input produce the same
// order regardless of input arrival order. Rank is the 1-based
// position.
func Build(users []models.User, events []models.Event, articles []models.Article) []Entry {
	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		counts := Count(events, articles, u.ID)
		entries = append(entries, Entry{
			User:      u.Public(),
			EcoPoints: counts.Score(),
			Counts:    counts,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].EcoPoints != entries[j].EcoPoints {
			return entries[i].EcoPoints > entries[j].EcoPoints
		}
		return entries[i].User.ID.Hex() < entries[j].User.ID.Hex()
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
