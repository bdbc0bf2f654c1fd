package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a blog entry published by the clinic.
// The url field is unique only among posts that set one; it must be
// omitted from the stored document when empty so the sparse index applies.
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Type          string             `bson:"type" json:"type"`
	Body          string             `bson:"body" json:"body"`
	Info          string             `bson:"info,omitempty" json:"info,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Tags          []string           `bson:"tags" json:"tags"`
	PublishedDate time.Time          `bson:"publishedDate" json:"publishedDate"`
	URL           string             `bson:"url,omitempty" json:"url,omitempty"`
}
