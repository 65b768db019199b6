// internal/domain/scoring/scoring.go

// Package scoring derives EcoPoints and the leaderboard from raw
// activity records. Scores are computed on demand from events and
// articles; the eco_points field stored on users is a display
// convenience and is never authoritative for ranking.
package scoring

import (
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Point weights per activity kind.
const (
	PointsPerEventCreated   = 50
	PointsPerArticleWritten = 25
	PointsPerEventJoined    = 10
)

// Counts holds a user's activity tallies.
type Counts struct {
	EventsCreated   int `json:"eventsCreated"`
	ArticlesWritten int `json:"articlesWritten"`
	EventsJoined    int `json:"eventsJoined"`
}

// Score converts activity counts into an EcoPoints total.
func (c Counts) Score() int {
	return c.EventsCreated*PointsPerEventCreated +
		c.ArticlesWritten*PointsPerArticleWritten +
		c.EventsJoined*PointsPerEventJoined
}

// Count tallies the given user's activities.
//
// EventsJoined excludes events the user created: the join transition
// never admits the creator, so a participant entry for the creator can
// only be a corrupt record, and it must not double-count on top of the
// creation points.
func Count(events []models.Event, articles []models.Article, userID primitive.ObjectID) Counts {
	var c Counts
	for _, e := range events {
		if e.CreatedBy == userID {
			c.EventsCreated++
			continue
		}
		if e.HasParticipant(userID) {
			c.EventsJoined++
		}
	}
	for _, a := range articles {
		if a.CreatedBy == userID {
			c.ArticlesWritten++
		}
	}
	return c
}

// Score computes the user's EcoPoints from the full activity sets.
// Absent activity yields zero; there are no error conditions.
func Score(events []models.Event, articles []models.Article, userID primitive.ObjectID) int {
	return Count(events, articles, userID).Score()
}
