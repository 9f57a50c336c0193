package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message kinds stored in the messages collection
const (
	KindBroadcast = "broadcast-message"
	KindPrivate   = "private-message"
	KindStatus    = "status"
)

// BroadcastRecipient is the reserved recipient meaning "everyone in the room"
const BroadcastRecipient = "everyone"

// TimeLayout is the human readable clock format stored alongside SentAt
const TimeLayout = "15:04:05"

// Status message bodies appended by the join flow and the sweeper
const (
	StatusJoinedText = "joined the room"
	StatusLeftText   = "left the room"
)

// Message holds the structure for the messages collection in mongo. SentAt
// carries the millisecond send time used for ordering and windowing; Time is
// the formatted clock string clients render.
type Message struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	From    string             `json:"from" bson:"from"`
	FromKey string             `json:"-" bson:"fromKey"`
	To      string             `json:"to" bson:"to"`
	ToKey   string             `json:"-" bson:"toKey"`
	Text    string             `json:"text" bson:"text"`
	Kind    string             `json:"kind" bson:"kind"`
	Time    string             `json:"time" bson:"time"`
	SentAt  primitive.DateTime `json:"sentAt" bson:"sentAt"`
}

// Keyed returns a copy with FromKey and ToKey set to the normalized names.
// Names are case-insensitive everywhere, so visibility queries run against
// the keys rather than the display names.
func (m Message) Keyed() Message {
	m.FromKey = NormalizeName(m.From)
	m.ToKey = NormalizeName(m.To)
	return m
}

// NewStatusMessage builds the system notice appended when a participant
// enters or leaves the room
func NewStatusMessage(from, text string, at time.Time) Message {
	return Message{
		From:   from,
		To:     BroadcastRecipient,
		Text:   text,
		Kind:   KindStatus,
		Time:   at.Format(TimeLayout),
		SentAt: primitive.NewDateTimeFromTime(at),
	}.Keyed()
}

// MessageBody is the body accepted by the send and edit endpoints
type MessageBody struct {
	To   string `json:"to" validate:"required,min=1,max=50"`
	Text string `json:"text" validate:"required,min=1"`
	Kind string `json:"kind" validate:"required,oneof=broadcast-message private-message"`
}

// MessagePatch carries the fields an edit may replace; nil fields are left
// untouched. ToKey is derived from To by the storage layer, never set by
// callers.
type MessagePatch struct {
	To    *string `bson:"to,omitempty"`
	ToKey *string `bson:"toKey,omitempty"`
	Text  *string `bson:"text,omitempty"`
	Kind  *string `bson:"kind,omitempty"`
}

// VisibleTo reports whether the message may appear in the given user's
// history. The comparison runs on normalized names, matching the stored
// key fields.
func (m Message) VisibleTo(user string) bool {
	key := NormalizeName(user)
	return m.Kind == KindBroadcast ||
		m.Kind == KindStatus ||
		NormalizeName(m.To) == key ||
		NormalizeName(m.From) == key ||
		m.To == BroadcastRecipient
}
