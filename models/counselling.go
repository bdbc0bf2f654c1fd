package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a reply embedded in an online counselling thread. Comments have
// no identity of their own and live only inside their parent document.
type Comment struct {
	Writer         string    `bson:"writer" json:"writer"`
	Content        string    `bson:"content" json:"content"`
	RegisteredDate time.Time `bson:"registeredDate" json:"registeredDate"`
}

// NewComment builds a comment stamped with the current time.
func NewComment(writer, content string) Comment {
	return Comment{Writer: writer, Content: content, RegisteredDate: time.Now()}
}

// OnlineCounselling is a password-gated Q&A entry. The password field holds a
// bcrypt hash; reading the full document requires presenting the plaintext.
type OnlineCounselling struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Writer         string             `bson:"writer" json:"writer"`
	Password       string             `bson:"password" json:"password"`
	Content        string             `bson:"content" json:"content"`
	Reply          bool               `bson:"reply" json:"reply"`
	RegisteredDate time.Time          `bson:"registeredDate" json:"registeredDate"`
	Comments       []Comment          `bson:"comments" json:"comments"`
}
