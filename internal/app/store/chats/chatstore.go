// internal/app/store/chats/chatstore.go
package chatstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/ecoecho-app/ecoecho/internal/app/system/htmlsanitize"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	chats    *mongo.Collection
	messages *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		chats:    db.Collection("chats"),
		messages: db.Collection("messages"),
	}
}

var (
	// ErrSelfChat is returned when a user tries to open a chat with
	// themselves.
	ErrSelfChat = errors.New("cannot open a chat with yourself")

	// ErrEmptyMessage is returned when a message has no text left after
	// HTML stripping.
	ErrEmptyMessage = errors.New("message text is required")
)

// PairKey returns the canonical key for a two-user chat: both ids in
// hex, sorted, joined with a colon. A-B and B-A yield the same key,
// and the unique index on it makes the pair's chat a singleton.
func PairKey(a, b primitive.ObjectID) string {
	ha, hb := a.Hex(), b.Hex()
	if ha > hb {
		ha, hb = hb, ha
	}
	return ha + ":" + hb
}

func snapshot(u models.User) models.ChatParticipant {
	return models.ChatParticipant{
		Name:         u.Name,
		ProfileImage: u.ProfileImage,
	}
}

// LookupOrCreate returns the chat between the two users, creating it
// on first contact. Concurrent first contacts race on the unique
// pair_key index; the loser re-reads the winner's document.
func (s *Store) LookupOrCreate(ctx context.Context, me, other models.User) (*models.Chat, error) {
	if me.ID == other.ID {
		return nil, ErrSelfChat
	}
	key := PairKey(me.ID, other.ID)

	var existing models.Chat
	err := s.chats.FindOne(ctx, bson.M{"pair_key": key}).Decode(&existing)
	if err == nil {
		return &existing, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	chat := models.Chat{
		ID:             primitive.NewObjectID(),
		PairKey:        key,
		ParticipantIDs: []primitive.ObjectID{me.ID, other.ID},
		Participants: map[string]models.ChatParticipant{
			me.ID.Hex():    snapshot(me),
			other.ID.Hex(): snapshot(other),
		},
		LastMessage: nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.chats.InsertOne(ctx, chat); err != nil {
		if wafflemongo.IsDup(err) {
			// Someone else created the chat between lookup and insert.
			if err := s.chats.FindOne(ctx, bson.M{"pair_key": key}).Decode(&existing); err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &chat, nil
}

// GetByID loads a chat. Membership checks belong to the caller.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	var chat models.Chat
	if err := s.chats.FindOne(ctx, bson.M{"_id": id}).Decode(&chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListForUser returns the user's chats, most recent activity first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.chats.Find(ctx, bson.M{"participant_ids": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Chat
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendMessage stores a message and mirrors it onto the chat's
// last_message projection. Messages are immutable once written.
func (s *Store) AppendMessage(ctx context.Context, chatID, senderID primitive.ObjectID, textBody string) (*models.Message, error) {
	textBody = strings.TrimSpace(htmlsanitize.StripTags(textBody))
	if textBody == "" {
		return nil, ErrEmptyMessage
	}

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      textBody,
		CreatedAt: time.Now(),
	}

	if _, err := s.messages.InsertOne(ctx, msg); err != nil {
		return nil, err
	}

	_, err := s.chats.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{"$set": bson.M{
		"last_message": msg,
		"updated_at":   msg.CreatedAt,
	}})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns a chat's messages oldest first.
func (s *Store) ListMessages(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.messages.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RefreshParticipantInfo rewrites the user's denormalized name and
// image snapshot in every chat they belong to. Called after a profile
// edit so chat lists do not serve stale identity.
func (s *Store) RefreshParticipantInfo(ctx context.Context, u models.User) error {
	field := "participants." + u.ID.Hex()
	_, err := s.chats.UpdateMany(ctx,
		bson.M{"participant_ids": u.ID},
		bson.M{"$set": bson.M{field: snapshot(u)}})
	return err
}
