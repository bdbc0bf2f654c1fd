package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that may manage clinic content.
// Passwords are stored as bcrypt hashes only and never serialized.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Created  time.Time          `bson:"created" json:"created"`
}
