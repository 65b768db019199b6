// internal/domain/models/chat.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatParticipant is the denormalized display snapshot for one side of
// a chat. It is written at chat creation and refreshed by profile
// edits (fan-out), never resolved live at read time.
type ChatParticipant struct {
	Name         string `bson:"name" json:"name"`
	ProfileImage string `bson:"profile_image" json:"profileImage"`
}

// Chat is a two-party conversation.
//
// PairKey is the sorted "hexA:hexB" of the two participant ids and
// carries a unique index, which makes lookup-or-create idempotent for
// an unordered pair even under concurrent creation attempts.
type Chat struct {
	ID             primitive.ObjectID         `bson:"_id,omitempty" json:"id"`
	PairKey        string                     `bson:"pair_key" json:"-"`
	ParticipantIDs []primitive.ObjectID       `bson:"participant_ids" json:"participantIds"`
	Participants   map[string]ChatParticipant `bson:"participants" json:"participants"`
	LastMessage    *Message                   `bson:"last_message" json:"lastMessage"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasParticipant reports whether the user is one of the two parties.
func (c Chat) HasParticipant(id primitive.ObjectID) bool {
	for _, p := range c.ParticipantIDs {
		if p == id {
			return true
		}
	}
	return false
}

// Message is a single chat message. Messages are immutable once
// created.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    primitive.ObjectID `bson:"chat_id" json:"chatId"`
	SenderID  primitive.ObjectID `bson:"sender_id" json:"senderId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
