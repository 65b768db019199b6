// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is an optional event coordinate pair.
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// EventImpact holds optional per-event impact counters.
type EventImpact struct {
	TreesPlanted       int `bson:"trees_planted,omitempty" json:"treesPlanted,omitempty"`
	PlasticCollectedKg int `bson:"plastic_collected_kg,omitempty" json:"plasticCollectedKg,omitempty"`
}

// Event is a community activity users can create and join.
//
// Participants never contains CreatedBy; the join transition rejects
// the creator, and the stores only mutate the set with $addToSet/$pull.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	// Category is free text; display icons are matched loosely against
	// the taxonomy vocabulary.
	Category string    `bson:"category" json:"category"`
	Location *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	Address  string    `bson:"address" json:"address"`
	Country  string    `bson:"country" json:"country"`
	StartAt  time.Time `bson:"start_at" json:"startAt"`
	EndAt    time.Time `bson:"end_at" json:"endAt"`
	// Cost in whole currency units; 0 means free.
	Cost int `bson:"cost" json:"cost"`

	CreatedBy    primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`

	Impact       EventImpact `bson:"impact" json:"impact"`
	BeforePhotos []string    `bson:"before_photos" json:"beforePhotos"`
	AfterPhotos  []string    `bson:"after_photos" json:"afterPhotos"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasParticipant reports whether the given user id is in the
// participant set.
func (e Event) HasParticipant(id primitive.ObjectID) bool {
	for _, p := range e.Participants {
		if p == id {
			return true
		}
	}
	return false
}
