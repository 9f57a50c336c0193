package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant holds the structure for the participants collection in mongo.
// NameKey is the case-folded form of Name; a unique index on it guarantees
// at most one active participant per normalized name.
type Participant struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	NameKey  string             `json:"-" bson:"nameKey"`
	LastSeen primitive.DateTime `json:"lastSeen" bson:"lastSeen"`
}

// NormalizeName folds a display name to its canonical comparison form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// JoinRequest is the body accepted by the join endpoint
type JoinRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
